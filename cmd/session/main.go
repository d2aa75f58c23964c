package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"SteamShop/internal/session"
	"SteamShop/pkg/kit"
)

func main() {
	const service = "session"

	conf, err := kit.LoadConfig(service)
	if err != nil {
		kit.NewLogger(service, "info").Fatal("config", zap.Error(err))
	}

	log := kit.NewLogger(service, conf.LogLevel)
	defer func() { _ = log.Sync() }()

	var prefs session.PrefStore = session.NewMemPrefs()
	if conf.Redis.Addr != "" {
		rdb := session.DialRedis(conf.Redis.Addr, conf.Redis.Password, conf.Redis.DB)
		defer func() { _ = rdb.Close() }()

		rp := session.NewRedisPrefs(rdb)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rp.Ping(ctx)
		cancel()
		if err != nil {
			log.Fatal("redis unavailable", zap.String("addr", conf.Redis.Addr), zap.Error(err))
		}
		prefs = rp
		log.Info("using redis preference store", zap.String("addr", conf.Redis.Addr))
	}

	s := &session.Server{
		Log:   log,
		Prefs: prefs,
		JWT:   session.NewTokenMaker(conf.JWTSecret),
	}

	h := session.NewHandler(s, session.HTTPDeps{
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
