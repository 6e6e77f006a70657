package render

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds invoice rendering parameters. StylesheetPath points at the
// XSLT stylesheet applied to invoice XML before PDF layout.
type Config struct {
	StylesheetPath string  `toml:"stylesheet_path"`
	Validate       *bool   `toml:"validate"`
	FontSize       float64 `toml:"font_size"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	StylesheetPath string
	Validate       string
	FontSize       string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.StylesheetPath != "" {
		c.StylesheetPath = overlay.StylesheetPath
	}
	if overlay.Validate != nil {
		c.Validate = overlay.Validate
	}
	if overlay.FontSize != 0 {
		c.FontSize = overlay.FontSize
	}
}

// ShouldValidate reports whether rendered PDFs are checked with pdfcpu.
func (c *Config) ShouldValidate() bool {
	return c.Validate == nil || *c.Validate
}

func (c *Config) loadDefaults() {
	if c.FontSize == 0 {
		c.FontSize = 9
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.StylesheetPath != "" {
		if v := os.Getenv(env.StylesheetPath); v != "" {
			c.StylesheetPath = v
		}
	}
	if env.Validate != "" {
		if v := os.Getenv(env.Validate); v != "" {
			if validate, err := strconv.ParseBool(v); err == nil {
				c.Validate = &validate
			}
		}
	}
	if env.FontSize != "" {
		if v := os.Getenv(env.FontSize); v != "" {
			if size, err := strconv.ParseFloat(v, 64); err == nil && size > 0 {
				c.FontSize = size
			}
		}
	}
}

func (c *Config) validate() error {
	if c.StylesheetPath == "" {
		return fmt.Errorf("stylesheet_path required")
	}
	return nil
}
