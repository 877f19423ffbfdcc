package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DefaultLocation != "Chile" {
		t.Errorf("DefaultLocation = %q, want Chile", cfg.DefaultLocation)
	}
	if cfg.SourceTimeout != 10*time.Second {
		t.Errorf("SourceTimeout = %v", cfg.SourceTimeout)
	}
	if cfg.SearchTimeout != 15*time.Second {
		t.Errorf("SearchTimeout = %v", cfg.SearchTimeout)
	}
	if cfg.Adzuna.Country != "cl" {
		t.Errorf("Adzuna.Country = %q, want cl", cfg.Adzuna.Country)
	}
	if cfg.Watch.IntervalHours != 6 {
		t.Errorf("Watch.IntervalHours = %d, want 6", cfg.Watch.IntervalHours)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("PANOPTES_PORT", "9191")
	t.Setenv("PANOPTES_ADZUNA_APP_ID", "my-id")
	t.Setenv("PANOPTES_CACHE_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9191" {
		t.Errorf("Port = %q, want env override", cfg.Port)
	}
	if cfg.Adzuna.AppID != "my-id" {
		t.Errorf("Adzuna.AppID = %q, want env override", cfg.Adzuna.AppID)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Errorf("CacheTTL = %v, want 30m", cfg.CacheTTL)
	}
}

func TestLoadRejectsInconsistentTimeouts(t *testing.T) {
	viper.Reset()
	t.Setenv("PANOPTES_SEARCH_TIMEOUT", "5s")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when search_timeout <= source_timeout")
	}
}

func TestLoadRejectsBadWatchInterval(t *testing.T) {
	viper.Reset()
	t.Setenv("PANOPTES_WATCH_INTERVAL_HOURS", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero watch interval")
	}
}
