// Package cosmos provides read query access to the invoice document
// database backed by Azure Cosmos DB.
package cosmos

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"github.com/faktura-io/faktura/pkg/lifecycle"
)

// Parameter names a value bound to an @-placeholder in a query.
type Parameter struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// System manages document database queries and lifecycle coordination.
type System interface {
	// Start registers a startup hook that probes the configured database.
	Start(lc *lifecycle.Coordinator) error
	// Query executes a cross-partition SQL query and drains all result
	// pages. Backend failures surface as Azure response errors for the
	// fault normalization layer to classify.
	Query(ctx context.Context, query string, params []Parameter) ([]json.RawMessage, error)
}

type database struct {
	container    *azcosmos.ContainerClient
	databaseID   string
	pageSizeHint int32
	logger       *slog.Logger
}

// New creates a document database system from the given configuration.
// A connection string takes precedence; otherwise the endpoint is used
// with the default Azure credential chain. No connection is established
// until Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}

	container, err := client.NewContainer(cfg.DatabaseID, cfg.ContainerID)
	if err != nil {
		return nil, fmt.Errorf("resolve container %s/%s: %w", cfg.DatabaseID, cfg.ContainerID, err)
	}

	return &database{
		container:    container,
		databaseID:   cfg.DatabaseID,
		pageSizeHint: cfg.PageSizeHint,
		logger:       logger.With("system", "cosmos"),
	}, nil
}

func newClient(cfg *Config) (*azcosmos.Client, error) {
	if cfg.ConnectionString != "" {
		client, err := azcosmos.NewClientFromConnectionString(cfg.ConnectionString, nil)
		if err != nil {
			return nil, fmt.Errorf("create cosmos client: %w", err)
		}
		return client, nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve azure credential: %w", err)
	}

	client, err := azcosmos.NewClient(cfg.Endpoint, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create cosmos client: %w", err)
	}
	return client, nil
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting document database system")

	lc.OnStartup(func() {
		if _, err := d.container.Read(lc.Context(), nil); err != nil {
			d.logger.Error("document database probe failed", "database", d.databaseID, "error", err)
			return
		}

		d.logger.Info("document database reachable", "database", d.databaseID)
	})

	return nil
}

func (d *database) Query(ctx context.Context, query string, params []Parameter) ([]json.RawMessage, error) {
	opts := &azcosmos.QueryOptions{}

	if d.pageSizeHint > 0 {
		opts.PageSizeHint = d.pageSizeHint
	}
	for _, p := range params {
		opts.QueryParameters = append(opts.QueryParameters, azcosmos.QueryParameter{
			Name:  p.Name,
			Value: p.Value,
		})
	}

	// An empty partition key runs the query across all partitions.
	pager := d.container.NewQueryItemsPager(query, azcosmos.NewPartitionKey(), opts)

	var items []json.RawMessage
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query items: %w", err)
		}
		for _, raw := range page.Items {
			items = append(items, json.RawMessage(raw))
		}
	}

	return items, nil
}
