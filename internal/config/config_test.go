package config

import (
	"errors"
	"testing"
	"time"
)

// newTestManager skips .env loading so tests only see the process
// environment controlled through t.Setenv.
func newTestManager() *Manager {
	return &Manager{}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvAPIKey, EnvBaseURL, EnvTimeout, EnvDownloadDir, EnvHistoryPath} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := newTestManager().Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want default", cfg.Timeout)
	}
	if cfg.DownloadDir == "" || cfg.HistoryPath == "" {
		t.Error("download dir and history path must always resolve")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "  secret  ")
	t.Setenv(EnvBaseURL, "https://staging.test/api")
	t.Setenv(EnvTimeout, "15s")
	t.Setenv(EnvDownloadDir, "/tmp/cards")
	t.Setenv(EnvHistoryPath, "/tmp/cards/history.db")

	cfg, err := newTestManager().Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("APIKey = %q, want trimmed value", cfg.APIKey)
	}
	if cfg.BaseURL != "https://staging.test/api" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.DownloadDir != "/tmp/cards" || cfg.HistoryPath != "/tmp/cards/history.db" {
		t.Errorf("paths = %q %q", cfg.DownloadDir, cfg.HistoryPath)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	for _, raw := range []string{"soon", "-5s", "0"} {
		t.Run(raw, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvTimeout, raw)
			if _, err := newTestManager().Load(); err == nil {
				t.Errorf("timeout %q should not load", raw)
			}
		})
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Validate = %v, want ErrMissingAPIKey", err)
	}
	cfg.APIKey = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate with key = %v", err)
	}
}
