package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"SteamShop/internal/catalog"
	"SteamShop/pkg/kit"
)

func main() {
	const service = "catalog"

	conf, err := kit.LoadConfig(service)
	if err != nil {
		kit.NewLogger(service, "info").Fatal("config", zap.Error(err))
	}

	log := kit.NewLogger(service, conf.LogLevel)
	defer func() { _ = log.Sync() }()

	gen := catalog.DefaultConfig()
	gen.Size = conf.Catalog.Size
	gen.PriceCeiling = conf.Catalog.PriceCeiling

	listings, err := catalog.Generate(gen, catalog.RandFor(conf.Catalog.Seed))
	if err != nil {
		log.Fatal("generate catalog failed", zap.Error(err))
	}
	log.Info("catalog generated",
		zap.Int("listings", len(listings)),
		zap.Uint64("seed", conf.Catalog.Seed),
	)

	s := &catalog.Server{
		Store:    catalog.NewMemStore(listings),
		Log:      log,
		Defaults: catalog.DefaultParams(conf.Catalog.PriceCeiling),
	}

	h := catalog.NewHandler(s, catalog.HTTPDeps{
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
