package config

import (
	"fmt"
	"os"

	"github.com/faktura-io/faktura/pkg/formatting"
	"github.com/faktura-io/faktura/pkg/middleware"
	"github.com/faktura-io/faktura/pkg/openapi"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "FAKTURA_CORS_ENABLED",
	Origins:          "FAKTURA_CORS_ORIGINS",
	AllowedMethods:   "FAKTURA_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "FAKTURA_CORS_ALLOWED_HEADERS",
	AllowCredentials: "FAKTURA_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "FAKTURA_CORS_MAX_AGE",
}

var authEnv = &middleware.AuthEnv{
	Enabled:   "FAKTURA_AUTH_ENABLED",
	IssuerURL: "FAKTURA_AUTH_ISSUER_URL",
	Audience:  "FAKTURA_AUTH_AUDIENCE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "FAKTURA_OPENAPI_TITLE",
	Description: "FAKTURA_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, auth, and OpenAPI settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Auth        middleware.AuthConfig `toml:"auth"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// MaxBodySizeBytes returns MaxBodySize parsed into bytes.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 1 * 1024 * 1024 // 1MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS, auth, and OpenAPI configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Auth.Merge(&overlay.Auth)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("FAKTURA_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("FAKTURA_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}
