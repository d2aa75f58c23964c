package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"SteamShop/internal/session"
	"SteamShop/pkg/kit"
)

func AuthJWT(jwt *session.TokenMaker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := kit.BearerToken(r)
			if !ok {
				kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
				return
			}
			claims, err := jwt.Parse(raw)
			if err != nil {
				kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(kit.WithUserID(r.Context(), claims.UserID)))
		})
	}
}

const sessionCheckTimeout = 1 * time.Second

var errSessionCheck = errors.New("session check failed")

// RequireSession rejects tokens whose profile was removed by logout. The
// token itself stays valid until expiry, so the session service is asked.
func RequireSession(sessionURL string, client *http.Client, log *zap.Logger) func(http.Handler) http.Handler {
	whoami := strings.TrimRight(sessionURL, "/") + "/session/whoami"
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			live, err := sessionLive(r.Context(), client, whoami, r.Header.Get("Authorization"))
			if err != nil {
				log.Warn("session check failed", zap.Error(err))
				kit.WriteError(w, r, http.StatusServiceUnavailable, "session unavailable", nil)
				return
			}
			if !live {
				kit.WriteError(w, r, http.StatusUnauthorized, "logged out", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionLive(ctx context.Context, client *http.Client, url, authz string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, sessionCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", authz)

	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", errSessionCheck, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusUnauthorized:
		return false, nil
	default:
		return false, fmt.Errorf("%w: status=%d", errSessionCheck, resp.StatusCode)
	}
}

// InjectHeaders replaces whatever identity the client sent with the one
// verified by AuthJWT, if any.
func InjectHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Header.Del(kit.HeaderUserID)
		if uid, ok := kit.UserIDFromContext(r.Context()); ok {
			r.Header.Set(kit.HeaderUserID, uid)
		}
		next.ServeHTTP(w, r)
	})
}

var errBadUpstream = errors.New("bad upstream url")

func NewReverseProxy(target string, log *zap.Logger) (*httputil.ReverseProxy, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", errBadUpstream, target, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", errBadUpstream, target)
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(u)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Warn("upstream failed", zap.String("upstream", u.Host), zap.String("path", r.URL.Path), zap.Error(err))
			kit.WriteError(w, r, http.StatusBadGateway, "upstream unavailable", nil)
		},
	}, nil
}
