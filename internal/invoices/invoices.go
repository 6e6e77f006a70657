// Package invoices implements the invoice archive domain: document
// database queries and XML/PDF invoice retrieval.
package invoices

import (
	"github.com/faktura-io/faktura/pkg/cosmos"
)

// Format selects the representation returned by the download operation.
type Format string

const (
	FormatXML Format = "xml"
	FormatPDF Format = "pdf"
)

// Valid reports whether the format is one of the supported values.
func (f Format) Valid() bool {
	return f == FormatXML || f == FormatPDF
}

// ContentType returns the response media type for the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/xml; charset=utf-8"
}

// QueryRequest is the body accepted by the query operation. The SQL text
// must select the `id` column unaliased; results are keyed by it.
type QueryRequest struct {
	Query      string             `json:"query" validate:"required"`
	Parameters []cosmos.Parameter `json:"parameters,omitempty" validate:"dive"`
}

// FetchResult carries retrieved invoice content and its media type.
type FetchResult struct {
	Data        []byte
	ContentType string
}

// EmptyResultMessage is returned with status 200 when a query matches no
// items. A body is returned, so 204 is deliberately not used.
const EmptyResultMessage = "Query returned no items."
