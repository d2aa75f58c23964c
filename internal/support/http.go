package support

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"SteamShop/pkg/kit"
)

const (
	msgSent     = "Сообщение успешно отправлено!"
	msgAccepted = "Сообщение принято. Настройте SMTP для реальной отправки."
)

type Server struct {
	Sender Sender
	Log    *zap.Logger

	// To is the support inbox, From the envelope sender.
	To   string
	From string
}

type sendResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Ticket  string `json:"ticket"`
}

func (s *Server) Routes(limit *kit.IPRateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", kit.Healthz)
	r.Get("/readyz", kit.Healthz)
	r.With(limit.Middleware).Post("/support", s.send)

	return r
}

func (s *Server) send(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, kit.MaxBodyBytes))
	if err != nil {
		kit.WriteError(w, r, http.StatusRequestEntityTooLarge, "body too large", nil)
		return
	}

	m, err := ParseMessage(raw)
	var se *SchemaError
	switch {
	case err == nil:
	case errors.As(err, &se):
		kit.WriteError(w, r, http.StatusBadRequest, "bad payload", se.Violations)
		return
	case errors.Is(err, ErrFieldsRequired), errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrInvalidName):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	default:
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	ticket := uuid.NewString()
	log := s.log().With(zap.String("ticket", ticket), zap.String("from_email", m.Email))

	from := s.From
	if from == "" {
		from = s.To
	}

	err = s.Sender.Send(r.Context(), Compose(m, from, s.To))
	switch {
	case err == nil:
		log.Info("support message sent")
		kit.WriteJSON(w, http.StatusOK, sendResp{Success: true, Message: msgSent, Ticket: ticket})
	case errors.Is(err, ErrDeliveryDisabled):
		log.Info("support message accepted without delivery")
		kit.WriteJSON(w, http.StatusOK, sendResp{Success: true, Message: msgAccepted, Ticket: ticket})
	default:
		log.Error("support message send failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusBadGateway, "send failed", map[string]any{"cause": err.Error()})
	}
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
