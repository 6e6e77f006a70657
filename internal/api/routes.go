package api

import (
	"fmt"
	"net/http"

	"github.com/faktura-io/faktura/internal/config"
	"github.com/faktura-io/faktura/pkg/openapi"
	"github.com/faktura-io/faktura/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config) error {
	routes.Register(
		mux,
		domain.Invoices.Handler(cfg.API.MaxBodySizeBytes()).Routes(),
	)

	spec := buildSpec(cfg)
	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}
