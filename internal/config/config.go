// ABOUTME: Nutri configuration management with backend selection.
// ABOUTME: Layers the JSON config file, .env and NUTRI_* variables, then opens storage.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/harperreed/nutri/internal/storage"
	"github.com/joho/godotenv"
)

// Supported storage backends.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// Backends lists every backend OpenStorage understands.
var Backends = []string{BackendSQLite, BackendBadger}

// Config stores nutri configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "badger".
	Backend string `json:"backend,omitempty" env:"NUTRI_BACKEND"`

	// DataDir is the root directory for data storage.
	// SQLite puts nutri.db here. Badger uses a badger/ folder here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/nutri.
	DataDir string `json:"data_dir,omitempty" env:"NUTRI_DATA_DIR"`

	// LogLevel is one of debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty" env:"NUTRI_LOG_LEVEL"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured log level, defaulting to "warn".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// Validate checks that the backend is known.
func (c *Config) Validate() error {
	backend := c.GetBackend()
	for _, b := range Backends {
		if b == backend {
			return nil
		}
	}
	return fmt.Errorf("unknown backend: %q (want one of %s)", backend, strings.Join(Backends, ", "))
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// StoragePath returns where the given backend keeps its data under the
// configured data directory.
func (c *Config) StoragePath(backend string) (string, error) {
	dataDir := c.GetDataDir()
	switch backend {
	case BackendSQLite:
		if c.DataDir == "" {
			return storage.DefaultDBPath(), nil
		}
		return filepath.Join(dataDir, "nutri.db"), nil
	case BackendBadger:
		return filepath.Join(dataDir, "badger"), nil
	default:
		return "", fmt.Errorf("unknown backend: %q", backend)
	}
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend opens the named backend under the configured data directory.
func (c *Config) OpenBackend(backend string) (storage.Repository, error) {
	path, err := c.StoragePath(backend)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendSQLite:
		return storage.Open(path)
	default:
		return storage.OpenBadger(path)
	}
}

// ApplyEnv overlays NUTRI_* environment variables on c. Variables from the
// given .env files (default ".env") are loaded first without overriding the
// real environment. Missing .env files are ignored.
func (c *Config) ApplyEnv(dotenvFiles ...string) error {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "nutri", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
