package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"SteamShop/internal/session"
	"SteamShop/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

type Deps struct {
	SessionURL string
	CatalogURL string
	OrderURL   string
	SupportURL string
	JWTSecret  string
}

func (d Deps) upstreams() []upstream {
	return []upstream{
		{"session", d.SessionURL},
		{"catalog", d.CatalogURL},
		{"order", d.OrderURL},
		{"support", d.SupportURL},
	}
}

type upstream struct {
	name string
	url  string
}

const (
	readyTimeout      = 2 * time.Second
	readyProbeTimeout = 700 * time.Millisecond
)

var readyClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
	},
}

func NewHandler(deps Deps, httpDeps HTTPDeps) (http.Handler, error) {
	proxies := make(map[string]http.Handler, 4)
	for _, up := range deps.upstreams() {
		p, err := NewReverseProxy(up.url, httpDeps.Log)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", up.name, err)
		}
		proxies[up.name] = InjectHeaders(p)
	}

	jwt := session.NewTokenMaker(deps.JWTSecret)

	r := chi.NewRouter()
	kit.UseCommon(r, httpDeps.Log)
	kit.Instrument(r, kit.MetricsDeps{
		Service:  httpDeps.Service,
		Registry: httpDeps.Registry,
		Enabled:  httpDeps.MetricsEnabled,
		Token:    httpDeps.MetricsToken,
	})

	r.Get("/healthz", kit.Healthz)
	r.Get("/readyz", readyz(deps, httpDeps.Log))

	handle(r, proxies["catalog"], "/listings", "/listings/*", "/filters")
	handle(r, proxies["session"], "/session/*")
	handle(r, proxies["support"], "/support")

	r.Group(func(pr chi.Router) {
		pr.Use(AuthJWT(jwt))
		pr.Use(RequireSession(deps.SessionURL, readyClient, httpDeps.Log))
		handle(pr, proxies["session"], "/prefs/*")
		handle(pr, proxies["order"],
			"/wallet", "/wallet/*",
			"/cart", "/cart/*",
			"/orders", "/orders/*",
			"/contact/*",
		)
	})

	return r, nil
}

func handle(r chi.Router, h http.Handler, patterns ...string) {
	for _, p := range patterns {
		r.Handle(p, h)
	}
}

type probeError struct {
	upstream string
	err      error
}

func (e *probeError) Error() string { return e.upstream + ": " + e.err.Error() }
func (e *probeError) Unwrap() error { return e.err }

// readyz probes every upstream concurrently and reports the first failure.
func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		g, gctx := errgroup.WithContext(ctx)
		for _, up := range deps.upstreams() {
			g.Go(func() error {
				if err := checkReady(gctx, up.url+"/readyz"); err != nil {
					return &probeError{upstream: up.name, err: err}
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			log.Warn("readyz failed", zap.Error(err))

			name := "upstream"
			var pe *probeError
			if errors.As(err, &pe) {
				name = pe.upstream
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, name+" not ready", nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func checkReady(ctx context.Context, url string) error {
	cctx, cancel := context.WithTimeout(ctx, readyProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := readyClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status=%d", resp.StatusCode)
	}

	return nil
}
