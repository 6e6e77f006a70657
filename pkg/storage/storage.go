// Package storage provides read access to the invoice archive backed by
// Azure Blob Storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/faktura-io/faktura/pkg/lifecycle"
)

// System manages archive read operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that probes the archive container.
	Start(lc *lifecycle.Coordinator) error
	// Download reads the full blob at the given key into memory.
	// Not-found and transport failures surface as Azure response errors
	// for the fault normalization layer to classify.
	Download(ctx context.Context, key string) ([]byte, error)
	// Exists reports whether a blob exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
}

type archive struct {
	client    *azblob.Client
	container string
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates an archive system from the given configuration. A connection
// string takes precedence; otherwise the service URL is used with the
// default Azure credential chain. No connection is established until Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}

	return &archive{
		client:    client,
		container: cfg.ContainerName,
		timeout:   cfg.DownloadTimeoutDuration(),
		logger:    logger.With("system", "storage"),
	}, nil
}

func newClient(cfg *Config) (*azblob.Client, error) {
	if cfg.ConnectionString != "" {
		client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
		if err != nil {
			return nil, fmt.Errorf("create archive client: %w", err)
		}
		return client, nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve azure credential: %w", err)
	}

	client, err := azblob.NewClient(cfg.ServiceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create archive client: %w", err)
	}
	return client, nil
}

func (a *archive) Start(lc *lifecycle.Coordinator) error {
	a.logger.Info("starting archive system")

	lc.OnStartup(func() {
		containerClient := a.client.ServiceClient().NewContainerClient(a.container)

		if _, err := containerClient.GetProperties(lc.Context(), nil); err != nil {
			a.logger.Error("archive container probe failed", "container", a.container, "error", err)
			return
		}

		a.logger.Info("archive container reachable", "container", a.container)
	})

	return nil
}

func (a *archive) Download(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.DownloadStream(ctx, a.container, key, nil)
	if err != nil {
		return nil, fmt.Errorf("download blob %s: %w", key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}

	return data, nil
}

func (a *archive) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	blobClient := a.client.
		ServiceClient().
		NewContainerClient(a.container).
		NewBlobClient(key)

	_, err := blobClient.GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check blob existence %s: %w", key, err)
	}

	return true, nil
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
