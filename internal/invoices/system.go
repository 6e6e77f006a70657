package invoices

import (
	"context"
	"encoding/json"
)

// System defines the public contract for invoice domain operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	// Query executes the SQL request against the document database and
	// returns the matched items keyed by their id field.
	Query(ctx context.Context, req QueryRequest) (map[string]json.RawMessage, error)

	// Fetch retrieves invoice XML from the archive, rendering it to PDF
	// when the pdf format is requested.
	Fetch(ctx context.Context, invoiceID string, format Format) (*FetchResult, error)
}
