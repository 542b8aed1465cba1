// Package config loads cardlab's runtime configuration from the
// environment. A .env file in the working directory is honored when
// present so the internal API key never has to live in shell history.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// EnvAPIKey is the required internal rendering API key.
	EnvAPIKey = "CARDLAB_API_KEY"
	// EnvBaseURL overrides the rendering backend base URL.
	EnvBaseURL = "CARDLAB_BASE_URL"
	// EnvTimeout overrides the per-request timeout (Go duration syntax).
	EnvTimeout = "CARDLAB_TIMEOUT"
	// EnvDownloadDir overrides where downloaded assets are written.
	EnvDownloadDir = "CARDLAB_DOWNLOAD_DIR"
	// EnvHistoryPath overrides the local history database path.
	EnvHistoryPath = "CARDLAB_HISTORY_PATH"

	// DefaultBaseURL is the production rendering backend.
	DefaultBaseURL = "https://render.cardlab.dev/api/v1"
	// DefaultTimeout bounds each rendering backend call.
	DefaultTimeout = 90 * time.Second
)

// ErrMissingAPIKey indicates the required internal key is absent. This is
// a configuration failure, surfaced before any network call is attempted.
var ErrMissingAPIKey = errors.New("config: " + EnvAPIKey + " is not set")

// Config holds everything the app needs at runtime.
type Config struct {
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	DownloadDir string
	HistoryPath string
}

// Manager handles configuration loading.
type Manager struct {
	envFile string
}

// NewManager creates a new configuration manager reading ".env" when present.
func NewManager() *Manager {
	return &Manager{envFile: ".env"}
}

// Load assembles the configuration from the environment. A missing API key
// is not an error here; callers gate generation on Validate so read-only
// commands (history) still work without credentials.
func (m *Manager) Load() (*Config, error) {
	if m.envFile != "" {
		// Missing .env is fine; a malformed one is not.
		if err := godotenv.Load(m.envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", m.envFile, err)
		}
	}

	cfg := &Config{
		APIKey:      strings.TrimSpace(os.Getenv(EnvAPIKey)),
		BaseURL:     strings.TrimSpace(os.Getenv(EnvBaseURL)),
		Timeout:     DefaultTimeout,
		DownloadDir: strings.TrimSpace(os.Getenv(EnvDownloadDir)),
		HistoryPath: strings.TrimSpace(os.Getenv(EnvHistoryPath)),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if raw := strings.TrimSpace(os.Getenv(EnvTimeout)); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvTimeout, raw, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid %s %q: must be positive", EnvTimeout, raw)
		}
		cfg.Timeout = d
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = defaultDownloadDir()
	}
	if cfg.HistoryPath == "" {
		cfg.HistoryPath = defaultHistoryPath()
	}

	return cfg, nil
}

// Validate is the pre-flight check run before any generation attempt.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func defaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	downloads := filepath.Join(home, "Downloads")
	if info, err := os.Stat(downloads); err == nil && info.IsDir() {
		return downloads
	}
	return home
}

func defaultHistoryPath() string {
	return filepath.Join(stateDir(), "history.db")
}

func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "cardlab")
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "cardlab")
	default:
		return filepath.Join(home, ".local", "state", "cardlab")
	}
}
