// Package infrastructure provides core service initialization for
// application startup. It assembles the common dependencies (logging,
// document database, archive storage, rendering) that domain systems
// require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/faktura-io/faktura/internal/config"
	"github.com/faktura-io/faktura/pkg/cosmos"
	"github.com/faktura-io/faktura/pkg/lifecycle"
	"github.com/faktura-io/faktura/pkg/render"
	"github.com/faktura-io/faktura/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, database access, archive storage, and invoice rendering.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Cosmos    cosmos.System
	Storage   storage.System
	Renderer  render.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := cosmos.New(&cfg.Cosmos, logger)
	if err != nil {
		return nil, fmt.Errorf("cosmos init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	renderer, err := render.New(&cfg.Render, logger)
	if err != nil {
		return nil, fmt.Errorf("render init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Cosmos:    db,
		Storage:   store,
		Renderer:  renderer,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// The renderer holds a compiled stylesheet, released on shutdown.
func (i *Infrastructure) Start() error {
	if err := i.Cosmos.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("cosmos start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}

	i.Lifecycle.OnShutdown(func() {
		<-i.Lifecycle.Context().Done()
		i.Renderer.Close()
	})

	return nil
}
