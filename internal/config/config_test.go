package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/satprep/practice/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.TickInterval != time.Second {
		t.Errorf("TickInterval = %s", cfg.TickInterval)
	}
	if cfg.DefaultSectionSeconds != 1920 {
		t.Errorf("DefaultSectionSeconds = %d", cfg.DefaultSectionSeconds)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("TICK_INTERVAL", "250ms")
	t.Setenv("DEFAULT_SECTION_SECONDS", "2100")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != slog.LevelDebug || cfg.TickInterval != 250*time.Millisecond || cfg.DefaultSectionSeconds != 2100 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{name: "negative section", key: "DEFAULT_SECTION_SECONDS", value: "-1"},
		{name: "zero tick", key: "TICK_INTERVAL", value: "0s"},
		{name: "unparsable tick", key: "TICK_INTERVAL", value: "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := config.Load(); err == nil {
				t.Fatalf("Load succeeded with %s=%s", tt.key, tt.value)
			}
		})
	}
}
