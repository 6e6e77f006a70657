// Package config loads and finalizes the service configuration from TOML
// files and environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/faktura-io/faktura/pkg/cosmos"
	"github.com/faktura-io/faktura/pkg/render"
	"github.com/faktura-io/faktura/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvFakturaEnv             = "FAKTURA_ENV"
	EnvFakturaShutdownTimeout = "FAKTURA_SHUTDOWN_TIMEOUT"
	EnvFakturaVersion         = "FAKTURA_VERSION"
)

var cosmosEnv = &cosmos.Env{
	ConnectionString: "FAKTURA_COSMOS_CONNECTION_STRING",
	Endpoint:         "FAKTURA_COSMOS_ENDPOINT",
	DatabaseID:       "FAKTURA_COSMOS_DATABASE_ID",
	ContainerID:      "FAKTURA_COSMOS_CONTAINER_ID",
	PageSizeHint:     "FAKTURA_COSMOS_PAGE_SIZE_HINT",
}

var storageEnv = &storage.Env{
	ContainerName:    "FAKTURA_STORAGE_CONTAINER_NAME",
	ConnectionString: "FAKTURA_STORAGE_CONNECTION_STRING",
	ServiceURL:       "FAKTURA_STORAGE_SERVICE_URL",
	DownloadTimeout:  "FAKTURA_STORAGE_DOWNLOAD_TIMEOUT",
}

var renderEnv = &render.Env{
	StylesheetPath: "FAKTURA_RENDER_STYLESHEET_PATH",
	Validate:       "FAKTURA_RENDER_VALIDATE",
	FontSize:       "FAKTURA_RENDER_FONT_SIZE",
}

// Config is the root configuration for the faktura service.
type Config struct {
	Server          ServerConfig   `toml:"server"`
	Cosmos          cosmos.Config  `toml:"cosmos"`
	Storage         storage.Config `toml:"storage"`
	Render          render.Config  `toml:"render"`
	API             APIConfig      `toml:"api"`
	ShutdownTimeout string         `toml:"shutdown_timeout"`
	Version         string         `toml:"version"`
}

// Env returns the FAKTURA_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvFakturaEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and
// environment variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Cosmos.Merge(&overlay.Cosmos)
	c.Storage.Merge(&overlay.Storage)
	c.Render.Merge(&overlay.Render)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Cosmos.Finalize(cosmosEnv); err != nil {
		return fmt.Errorf("cosmos: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Render.Finalize(renderEnv); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvFakturaShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvFakturaVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvFakturaEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
