package invoices

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/faktura-io/faktura/pkg/cosmos"
	"github.com/faktura-io/faktura/pkg/render"
	"github.com/faktura-io/faktura/pkg/storage"
)

type service struct {
	db       cosmos.System
	archive  storage.System
	renderer render.System
	logger   *slog.Logger
}

// New creates the invoice domain service implementing the System interface.
func New(
	db cosmos.System,
	archive storage.System,
	renderer render.System,
	logger *slog.Logger,
) System {
	return &service{
		db:       db,
		archive:  archive,
		renderer: renderer,
		logger:   logger.With("system", "invoices"),
	}
}

func (s *service) Handler(maxBodySize int64) *Handler {
	return NewHandler(s, s.logger, maxBodySize)
}

func (s *service) Query(ctx context.Context, req QueryRequest) (map[string]json.RawMessage, error) {
	items, err := s.db.Query(ctx, req.Query, req.Parameters)
	if err != nil {
		return nil, err
	}

	keyed, err := keyByID(items)
	if err != nil {
		return nil, err
	}

	s.logger.Info("query executed", "items", len(keyed))
	return keyed, nil
}

func (s *service) Fetch(ctx context.Context, invoiceID string, format Format) (*FetchResult, error) {
	xmlBytes, err := s.archive.Download(ctx, invoiceID+".xml")
	if err != nil {
		return nil, err
	}

	if format == FormatPDF {
		pdfBytes, err := s.renderer.Render(xmlBytes)
		if err != nil {
			return nil, err
		}

		s.logger.Info("invoice rendered", "invoice_id", invoiceID, "bytes", len(pdfBytes))
		return &FetchResult{Data: pdfBytes, ContentType: format.ContentType()}, nil
	}

	s.logger.Info("invoice fetched", "invoice_id", invoiceID, "bytes", len(xmlBytes))
	return &FetchResult{Data: xmlBytes, ContentType: format.ContentType()}, nil
}

// keyByID indexes query items by their id field. Items are stored raw so
// the response preserves whatever projection the query selected.
func keyByID(items []json.RawMessage) (map[string]json.RawMessage, error) {
	keyed := make(map[string]json.RawMessage, len(items))

	for _, item := range items {
		var probe struct {
			ID *string `json:"id"`
		}
		if err := json.Unmarshal(item, &probe); err != nil || probe.ID == nil {
			return nil, missingIdentifier(string(item))
		}
		keyed[*probe.ID] = item
	}

	return keyed, nil
}
