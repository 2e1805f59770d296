package api

import "testing"

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DSN", "results.db")
	t.Setenv("PORT", "8443")
	t.Setenv("HIBP_URL", "https://hibp.internal/range")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Should not fail loading configuration: %s", err)
	}

	if cfg.Port != "8443" {
		t.Errorf("PORT should be read from the environment, got %q", cfg.Port)
	}
	if cfg.DBDsn != "results.db" {
		t.Errorf("DB_DSN should be read from the environment, got %q", cfg.DBDsn)
	}
	if cfg.HibpURL != "https://hibp.internal/range" {
		t.Errorf("HIBP_URL should be read from the environment, got %q", cfg.HibpURL)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("DB_DRIVER should default to sqlite, got %q", cfg.DBDriver)
	}
}
