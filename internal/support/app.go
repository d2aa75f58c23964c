package support

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"SteamShop/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

const (
	sendLimitPerMin = 5
	limitWindow     = time.Minute
)

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if s.Sender == nil {
		s.Sender = NopSender{}
	}

	r := chi.NewRouter()

	kit.UseCommon(r, deps.Log)
	kit.Instrument(r, kit.MetricsDeps{
		Service:  deps.Service,
		Registry: deps.Registry,
		Enabled:  deps.MetricsEnabled,
		Token:    deps.MetricsToken,
	})

	r.Mount("/", s.Routes(kit.NewIPRateLimiter(sendLimitPerMin, limitWindow)))
	return r
}
