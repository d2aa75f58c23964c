package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"SteamShop/internal/gateway"
	"SteamShop/pkg/kit"
)

func main() {
	const service = "gateway"

	conf, err := kit.LoadConfig(service)
	if err != nil {
		kit.NewLogger(service, "info").Fatal("config", zap.Error(err))
	}

	log := kit.NewLogger(service, conf.LogLevel)
	defer func() { _ = log.Sync() }()

	deps := gateway.Deps{
		JWTSecret:  conf.JWTSecret,
		SessionURL: conf.SessionURL,
		CatalogURL: conf.CatalogURL,
		OrderURL:   conf.OrderURL,
		SupportURL: conf.SupportURL,
	}

	h, err := gateway.NewHandler(deps, gateway.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: conf.Metrics.Enabled,
		MetricsToken:   conf.Metrics.Token,
	})
	if err != nil {
		log.Fatal("init gateway handler failed", zap.Error(err))
	}

	if err := kit.RunHTTPServer(conf.Addr(), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
