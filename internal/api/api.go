// Package api assembles the API module with the invoice domain system,
// middleware, and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/faktura-io/faktura/internal/config"
	"github.com/faktura-io/faktura/internal/infrastructure"
	"github.com/faktura-io/faktura/pkg/middleware"
	"github.com/faktura-io/faktura/pkg/module"
)

// NewModule creates the API module with the domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)

	if cfg.API.Auth.Enabled {
		verifier, err := middleware.NewVerifier(
			infra.Lifecycle.Context(),
			&cfg.API.Auth,
		)
		if err != nil {
			return nil, fmt.Errorf("auth verifier init failed: %w", err)
		}
		m.Use(middleware.Auth(verifier, runtime.Logger))
	}

	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.RequestID())
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
