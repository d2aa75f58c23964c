package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"SteamShop/internal/order"
	"SteamShop/pkg/kit"
)

func main() {
	const service = "order"

	conf, err := kit.LoadConfig(service)
	if err != nil {
		kit.NewLogger(service, "info").Fatal("config", zap.Error(err))
	}

	log := kit.NewLogger(service, conf.LogLevel)
	defer func() { _ = log.Sync() }()

	s := &order.Server{
		Store:      order.NewMemStore(conf.Wallet.StartBalance),
		Catalog:    order.NewCatalogClient(conf.CatalogURL),
		Log:        log,
		ContactURL: conf.ContactURL,
	}

	h := order.NewHandler(s, order.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: conf.Metrics.Enabled,
		MetricsToken:   conf.Metrics.Token,
	})

	if err := kit.RunHTTPServer(conf.Addr(), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
