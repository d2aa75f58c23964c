package session

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"SteamShop/pkg/kit"
)

const (
	tokenTTL     = 24 * time.Hour
	readyTimeout = 1 * time.Second
)

type Server struct {
	Log   *zap.Logger
	Prefs PrefStore
	JWT   *TokenMaker
}

type loginReq struct {
	UID string `json:"uid"`
}

type loginResp struct {
	AccessToken string  `json:"access_token"`
	Profile     Profile `json:"profile"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := kit.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	uid := strings.ToUpper(strings.TrimSpace(req.UID))
	if uid == "" {
		uid = NewUID()
	}
	if !ValidUID(uid) {
		kit.WriteError(w, r, http.StatusBadRequest, "bad uid", nil)
		return
	}

	p := ProfileFor(uid)
	if err := SaveProfile(r.Context(), s.Prefs, p); err != nil {
		s.Log.Error("save profile failed", zap.Error(err), zap.String("uid", uid))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	tok, err := s.JWT.New(uid, tokenTTL)
	if err != nil {
		s.Log.Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, loginResp{AccessToken: tok, Profile: p})
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.claims(w, r)
	if !ok {
		return
	}

	p, err := LoadProfile(r.Context(), s.Prefs, claims.UserID)
	if errors.Is(err, ErrNoProfile) {
		kit.WriteError(w, r, http.StatusUnauthorized, "logged out", nil)
		return
	}
	if err != nil {
		s.Log.Error("load profile failed", zap.Error(err), zap.String("uid", claims.UserID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.claims(w, r)
	if !ok {
		return
	}

	if err := DeleteProfile(r.Context(), s.Prefs, claims.UserID); err != nil {
		s.Log.Error("delete profile failed", zap.Error(err), zap.String("uid", claims.UserID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) claims(w http.ResponseWriter, r *http.Request) (Claims, bool) {
	raw, ok := kit.BearerToken(r)
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
		return Claims{}, false
	}

	c, err := s.JWT.Parse(raw)
	if err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
		return Claims{}, false
	}
	return c, true
}

type deviceModeResp struct {
	Mode   DeviceMode `json:"mode"`
	Mobile bool       `json:"mobile"`
}

func (s *Server) handleGetDeviceMode(w http.ResponseWriter, r *http.Request) {
	uid, _ := kit.UserIDFromContext(r.Context())

	width := 0
	if v := r.URL.Query().Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			kit.WriteError(w, r, http.StatusBadRequest, "bad width", map[string]any{"width": v})
			return
		}
		width = n
	}

	m, err := LoadDeviceMode(r.Context(), s.Prefs, uid)
	if err != nil {
		s.Log.Error("load device mode failed", zap.Error(err), zap.String("uid", uid))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, deviceModeResp{Mode: m, Mobile: m.Mobile(width)})
}

type deviceModeReq struct {
	Mode string `json:"mode"`
}

func (s *Server) handleSetDeviceMode(w http.ResponseWriter, r *http.Request) {
	uid, _ := kit.UserIDFromContext(r.Context())

	var req deviceModeReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	m, ok := ParseDeviceMode(req.Mode)
	if !ok {
		kit.WriteError(w, r, http.StatusBadRequest, "bad mode", map[string]any{"allowed": []DeviceMode{DeviceAuto, DeviceMobile, DeviceDesktop}})
		return
	}

	if err := SaveDeviceMode(r.Context(), s.Prefs, uid, m); err != nil {
		s.Log.Error("save device mode failed", zap.Error(err), zap.String("uid", uid))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Prefs.Ping(ctx); err != nil {
		s.Log.Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) routes(r chi.Router, login *kit.IPRateLimiter) {
	r.Route("/session", func(rr chi.Router) {
		rr.With(login.Middleware).Post("/login", s.handleLogin)
		rr.Get("/whoami", s.handleWhoAmI)
		rr.Post("/logout", s.handleLogout)
	})

	r.Route("/prefs", func(rr chi.Router) {
		rr.Use(kit.RequireUserHeaders)
		rr.Get("/device-mode", s.handleGetDeviceMode)
		rr.Put("/device-mode", s.handleSetDeviceMode)
	})

	r.Get("/healthz", kit.Healthz)
	r.Get("/readyz", s.handleReady)
}
