// Package clientcfg handles the CLI configuration directory and file.
package clientcfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name under the config root.
	AppName = "todolistapp"

	// ConfigFile is the TOML settings filename inside the app directory.
	ConfigFile = "config.toml"

	DefaultServerURL      = "http://localhost:8080"
	DefaultTimeoutSeconds = 15
)

// Config holds the CLI settings.
type Config struct {
	// ServerURL is the base URL of the task service.
	ServerURL string `toml:"server_url"`

	// TimeoutSeconds bounds each request to the server.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// Dir is the configuration directory; it is not read from the file.
	Dir string `toml:"-"`
}

// Load builds the configuration in priority order: defaults, then the TOML
// config file if present, then environment variables. A missing config file
// is not an error.
func Load(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{
		ServerURL:      DefaultServerURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
		Dir:            dir,
	}

	path := filepath.Join(dir, ConfigFile)
	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading config file %s: %w", path, err)
	}

	if url := os.Getenv("TODO_SERVER_URL"); url != "" {
		cfg.ServerURL = url
	}

	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("server_url must not be empty")
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
	cfg.Dir = dir
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
