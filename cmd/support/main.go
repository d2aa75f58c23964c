package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"SteamShop/internal/support"
	"SteamShop/pkg/kit"
)

func main() {
	const service = "support"

	conf, err := kit.LoadConfig(service)
	if err != nil {
		kit.NewLogger(service, "info").Fatal("config", zap.Error(err))
	}

	log := kit.NewLogger(service, conf.LogLevel)
	defer func() { _ = log.Sync() }()

	sender, from := newSender(conf, log)

	s := &support.Server{
		Sender: sender,
		Log:    log,
		To:     conf.Support.To,
		From:   from,
	}

	h := support.NewHandler(s, support.HTTPDeps{
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

// newSender prefers SMTP credentials, then SES, and otherwise accepts
// messages without delivering them.
func newSender(conf *kit.Config, log *zap.Logger) (support.Sender, string) {
	from := conf.Support.From

	switch {
	case conf.SMTP.User != "" && conf.SMTP.Password != "":
		if from == "" {
			from = conf.SMTP.User
		}
		log.Info("support delivery via smtp", zap.String("server", conf.SMTP.Server), zap.Int("port", conf.SMTP.Port))
		return &support.SMTPSender{
			Host:     conf.SMTP.Server,
			Port:     conf.SMTP.Port,
			User:     conf.SMTP.User,
			Password: conf.SMTP.Password,
		}, from

	case conf.SES.Region != "":
		ses, err := support.NewSESSender(context.Background(), conf.SES.Region)
		if err != nil {
			log.Fatal("ses init failed", zap.Error(err))
		}
		if from == "" {
			from = conf.Support.To
		}
		log.Info("support delivery via ses", zap.String("region", conf.SES.Region))
		return ses, from

	default:
		log.Warn("support delivery not configured, messages are accepted but not sent")
		return support.NopSender{}, from
	}
}
