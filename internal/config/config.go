package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config captures all runtime configuration derived from environment variables.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	DBURL     string `env:"DB_URL"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	CheckoutURL         string `env:"CHECKOUT_URL"`
	CheckoutTimeoutSecs int    `env:"CHECKOUT_TIMEOUT_SECS" envDefault:"5"`
	CheckoutSuccessURL  string `env:"CHECKOUT_SUCCESS_URL" envDefault:"http://localhost:5173/success"`
	CheckoutCancelURL   string `env:"CHECKOUT_CANCEL_URL" envDefault:"http://localhost:5173/pricing"`
	PriceIDTier1        string `env:"PRICE_ID_TIER1"`
	PriceIDTier2        string `env:"PRICE_ID_TIER2"`

	ReadTimeoutSecs  int `env:"SERVER_READ_TIMEOUT" envDefault:"15"`
	WriteTimeoutSecs int `env:"SERVER_WRITE_TIMEOUT" envDefault:"15"`
	IdleTimeoutSecs  int `env:"SERVER_IDLE_TIMEOUT" envDefault:"60"`

	DBMaxConns        int `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMinConns        int `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxIdleSecs     int `env:"DB_MAX_CONN_IDLE_SECS" envDefault:"300"`
	DBMaxLifeSecs     int `env:"DB_MAX_CONN_LIFETIME_SECS" envDefault:"3600"`
	DBConnTimeoutSecs int `env:"DB_CONN_TIMEOUT_SECS" envDefault:"10"`
	DBStatementCache  int `env:"DB_STATEMENT_CACHE_CAPACITY" envDefault:"256"`
}

// Load reads configuration from environment variables, applying defaults and validation.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.CheckoutURL == "" {
		return Config{}, fmt.Errorf("CHECKOUT_URL is required")
	}
	if cfg.PriceIDTier1 == "" || cfg.PriceIDTier2 == "" {
		return Config{}, fmt.Errorf("PRICE_ID_TIER1 and PRICE_ID_TIER2 are required")
	}
	if cfg.CheckoutTimeoutSecs <= 0 {
		return Config{}, fmt.Errorf("CHECKOUT_TIMEOUT_SECS must be positive")
	}
	if cfg.DBMaxConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if cfg.DBMinConns < 0 {
		return Config{}, fmt.Errorf("DB_MIN_CONNS must be non-negative")
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		return Config{}, fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
	}
	if cfg.DBStatementCache < 0 {
		return Config{}, fmt.Errorf("DB_STATEMENT_CACHE_CAPACITY must be non-negative")
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return Config{}, fmt.Errorf("LOG_FORMAT must be json or text")
	}

	return cfg, nil
}
