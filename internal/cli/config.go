package cli

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/mkessler/aurq/pkg/aur"
)

// Config holds the optional CLI configuration, loaded from a TOML file.
// Zero fields fall back to the library defaults.
type Config struct {
	BaseURL   string `toml:"base_url"`   // RPC endpoint override
	Timeout   int    `toml:"timeout"`    // request timeout in seconds
	UserAgent string `toml:"user_agent"` // User-Agent override
}

// defaultConfigPath returns the conventional config location,
// $XDG_CONFIG_HOME/aurq/config.toml.
func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "aurq", "config.toml"), nil
}

// loadConfig reads the TOML config from path. An empty path means the
// default location, where a missing file is fine and yields a zero Config;
// an explicitly given path must exist.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return Config{}, nil
		}
		path = p
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

// newRPCClient builds an AUR client from the loaded config. A malformed
// base URL is reported here, before any request is attempted.
func newRPCClient(cfg Config, logger *log.Logger) (*aur.Client, error) {
	var httpClient *http.Client
	if cfg.Timeout > 0 {
		httpClient = &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second}
	}
	client, err := aur.NewClient(aur.Config{
		BaseURL:    cfg.BaseURL,
		HTTPClient: httpClient,
		UserAgent:  cfg.UserAgent,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return client, nil
}
