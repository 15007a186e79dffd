package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	libconfig "meterdesk/backend/libs/config"
)

// Config defines billing service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"BILLING_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"BILLING_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"BILLING_REDIS_ADDR"`
		Password string `yaml:"password" env:"BILLING_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"BILLING_REDIS_DB"`
	} `yaml:"redis"`
	Invoice struct {
		Prefix         string          `yaml:"prefix" env:"BILLING_INVOICE_PREFIX"`
		NumberTTLHours int             `yaml:"numberTtlHours" env:"BILLING_INVOICE_NUMBER_TTL_HOURS"`
		DefaultRate    decimal.Decimal `yaml:"defaultRate" env:"BILLING_DEFAULT_RATE"`
		CompanyName    string          `yaml:"companyName" env:"BILLING_COMPANY_NAME"`
		Currency       string          `yaml:"currency" env:"BILLING_CURRENCY"`
	} `yaml:"invoice"`
	Live struct {
		WriteTimeoutSeconds int `yaml:"writeTimeoutSeconds" env:"BILLING_LIVE_WRITE_TIMEOUT"`
	} `yaml:"live"`
}

// Load configuration from file/env.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8083"
	cfg.Invoice.Prefix = "INV"
	cfg.Invoice.NumberTTLHours = 24 * 365
	cfg.Invoice.DefaultRate = decimal.NewFromInt(1)
	cfg.Invoice.Currency = "INR"
	cfg.Live.WriteTimeoutSeconds = 10

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	cfg.Invoice.Prefix = strings.TrimSpace(cfg.Invoice.Prefix)
	if cfg.Invoice.Prefix == "" {
		return nil, errors.New("config: invoice prefix required")
	}
	if cfg.Invoice.DefaultRate.IsNegative() {
		return nil, errors.New("config: default rate must not be negative")
	}
	if cfg.Invoice.NumberTTLHours < 0 {
		return nil, errors.New("config: invoice number ttl must not be negative")
	}
	return cfg, nil
}

// HTTPAddress returns :port style string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8083"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// NumberTTL is how long an issued invoice number stays reserved.
func (c *Config) NumberTTL() time.Duration {
	return time.Duration(c.Invoice.NumberTTLHours) * time.Hour
}

// LiveWriteTimeout bounds a single websocket write.
func (c *Config) LiveWriteTimeout() time.Duration {
	if c.Live.WriteTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Live.WriteTimeoutSeconds) * time.Second
}
