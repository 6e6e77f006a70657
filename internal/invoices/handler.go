package invoices

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/faktura-io/faktura/pkg/handlers"
	"github.com/faktura-io/faktura/pkg/routes"
)

// Handler provides HTTP endpoints for invoice operations.
type Handler struct {
	sys         System
	logger      *slog.Logger
	validate    *validator.Validate
	maxBodySize int64
}

// NewHandler creates a Handler with the given system, logger, and request
// body size limit.
func NewHandler(sys System, logger *slog.Logger, maxBodySize int64) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "invoices"),
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group definition for invoice endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/invoices",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/query", Handler: h.Query},
			{Method: "GET", Pattern: "/download", Handler: h.Download},
		},
	}
}

// Query accepts a JSON body with a SQL query and optional parameters,
// executes it against the document database, and returns the matched
// items keyed by id. An empty result returns the empty-result message
// with status 200.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondFault(w, h.logger, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		handlers.RespondFault(w, h.logger, err)
		return
	}

	items, err := h.sys.Query(r.Context(), req)
	if err != nil {
		handlers.RespondFault(w, h.logger, MapFault(err))
		return
	}

	if len(items) == 0 {
		h.logger.Info(EmptyResultMessage)
		handlers.RespondJSON(w, http.StatusOK, EmptyResultMessage)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Download retrieves the invoice identified by the invoice_id query
// parameter, as raw XML or rendered to PDF per file_format.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	invoiceID := params.Get("invoice_id")
	if invoiceID == "" {
		handlers.RespondFault(w, h.logger, missingParam("invoice_id"))
		return
	}

	rawFormat := params.Get("file_format")
	if rawFormat == "" {
		handlers.RespondFault(w, h.logger, missingParam("file_format"))
		return
	}

	format := Format(rawFormat)
	if !format.Valid() {
		handlers.RespondFault(w, h.logger, unsupportedFormat(rawFormat))
		return
	}

	result, err := h.sys.Fetch(r.Context(), invoiceID, format)
	if err != nil {
		handlers.RespondFault(w, h.logger, MapFault(err))
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}
