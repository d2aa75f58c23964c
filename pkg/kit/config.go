package kit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const minJWTSecretLen = 32

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Service  string `mapstructure:"service"`
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	JWTSecret string `mapstructure:"jwt_secret"`

	Metrics MetricsConfig `mapstructure:"metrics"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Wallet  WalletConfig  `mapstructure:"wallet"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
	SES     SESConfig     `mapstructure:"ses"`
	Support SupportConfig `mapstructure:"support"`

	SessionURL string `mapstructure:"session_url"`
	CatalogURL string `mapstructure:"catalog_url"`
	OrderURL   string `mapstructure:"order_url"`
	SupportURL string `mapstructure:"support_url"`
	ContactURL string `mapstructure:"contact_url"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
}

type CatalogConfig struct {
	Size         int    `mapstructure:"size"`
	Seed         uint64 `mapstructure:"seed"`
	PriceCeiling int    `mapstructure:"price_ceiling"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type WalletConfig struct {
	StartBalance int64 `mapstructure:"start_balance"`
}

type SMTPConfig struct {
	Server   string `mapstructure:"server"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

type SESConfig struct {
	Region string `mapstructure:"region"`
}

type SupportConfig struct {
	To   string `mapstructure:"to"`
	From string `mapstructure:"from"`
}

var defaultPorts = map[string]string{
	"gateway": "8080",
	"session": "8081",
	"catalog": "8082",
	"order":   "8083",
	"support": "8084",
}

// LoadConfig layers defaults, an optional configs/config.yaml, an optional
// .env file and the process environment, in increasing precedence.
// Nested keys map to upper snake case env names: catalog.size is CATALOG_SIZE.
func LoadConfig(service string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, service)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Service = service

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, service string) {
	port, ok := defaultPorts[service]
	if !ok {
		port = "8080"
	}

	v.SetDefault("port", port)
	v.SetDefault("log_level", "info")
	v.SetDefault("jwt_secret", "")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.token", "")

	v.SetDefault("catalog.size", 732)
	v.SetDefault("catalog.seed", 0)
	v.SetDefault("catalog.price_ceiling", 10000)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("wallet.start_balance", 5000)

	v.SetDefault("smtp.server", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.password", "")

	v.SetDefault("ses.region", "")

	v.SetDefault("support.to", "steamshop202@gmail.com")
	v.SetDefault("support.from", "")

	v.SetDefault("session_url", "http://session:8081")
	v.SetDefault("catalog_url", "http://catalog:8082")
	v.SetDefault("order_url", "http://order:8083")
	v.SetDefault("support_url", "http://support:8084")
	v.SetDefault("contact_url", "https://t.me/yoursupport")
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("%w: port is required", ErrInvalidConfig)
	}

	switch c.Service {
	case "gateway", "session":
		if len(c.JWTSecret) < minJWTSecretLen {
			return fmt.Errorf("%w: JWT_SECRET is required and must be at least %d chars", ErrInvalidConfig, minJWTSecretLen)
		}
	case "catalog":
		if c.Catalog.Size <= 0 {
			return fmt.Errorf("%w: catalog.size must be positive", ErrInvalidConfig)
		}
		if c.Catalog.PriceCeiling <= 0 {
			return fmt.Errorf("%w: catalog.price_ceiling must be positive", ErrInvalidConfig)
		}
	case "order":
		if c.Wallet.StartBalance < 0 {
			return fmt.Errorf("%w: wallet.start_balance must not be negative", ErrInvalidConfig)
		}
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
