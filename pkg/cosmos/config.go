package cosmos

import (
	"fmt"
	"os"
)

// Config holds Azure Cosmos DB connection parameters. Either
// ConnectionString or Endpoint must be set; when only Endpoint is set,
// the default Azure credential chain is used.
type Config struct {
	ConnectionString string `toml:"connection_string"`
	Endpoint         string `toml:"endpoint"`
	DatabaseID       string `toml:"database_id"`
	ContainerID      string `toml:"container_id"`
	PageSizeHint     int32  `toml:"page_size_hint"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	ConnectionString string
	Endpoint         string
	DatabaseID       string
	ContainerID      string
	PageSizeHint     string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.DatabaseID != "" {
		c.DatabaseID = overlay.DatabaseID
	}
	if overlay.ContainerID != "" {
		c.ContainerID = overlay.ContainerID
	}
	if overlay.PageSizeHint != 0 {
		c.PageSizeHint = overlay.PageSizeHint
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.ConnectionString != "" {
		if v := os.Getenv(env.ConnectionString); v != "" {
			c.ConnectionString = v
		}
	}
	if env.Endpoint != "" {
		if v := os.Getenv(env.Endpoint); v != "" {
			c.Endpoint = v
		}
	}
	if env.DatabaseID != "" {
		if v := os.Getenv(env.DatabaseID); v != "" {
			c.DatabaseID = v
		}
	}
	if env.ContainerID != "" {
		if v := os.Getenv(env.ContainerID); v != "" {
			c.ContainerID = v
		}
	}
	if env.PageSizeHint != "" {
		if v := os.Getenv(env.PageSizeHint); v != "" {
			var hint int32
			if _, err := fmt.Sscanf(v, "%d", &hint); err == nil && hint > 0 {
				c.PageSizeHint = hint
			}
		}
	}
}

func (c *Config) validate() error {
	if c.ConnectionString == "" && c.Endpoint == "" {
		return fmt.Errorf("connection_string or endpoint required")
	}
	if c.DatabaseID == "" {
		return fmt.Errorf("database_id required")
	}
	if c.ContainerID == "" {
		return fmt.Errorf("container_id required")
	}
	return nil
}
