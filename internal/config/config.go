package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/practice.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	// TickInterval is how often timers advance by one counted second.
	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"1s"`
	// DefaultSectionSeconds is used when a session does not set its own
	// section length. 1920 s is one 32-minute SAT module.
	DefaultSectionSeconds int `env:"DEFAULT_SECTION_SECONDS" envDefault:"1920"`
	// AdminKeyHash is a bcrypt hash of the key allowed to register views at
	// runtime. Empty disables runtime registration.
	AdminKeyHash string `env:"ADMIN_KEY_HASH"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("TICK_INTERVAL must be positive, got %s", cfg.TickInterval)
	}
	if cfg.DefaultSectionSeconds < 0 {
		return nil, fmt.Errorf("DEFAULT_SECTION_SECONDS must not be negative, got %d", cfg.DefaultSectionSeconds)
	}
	return &cfg, nil
}
