// Package handlers provides shared HTTP response helpers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/faktura-io/faktura/pkg/fault"
)

// RespondJSON writes data as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes a `{"error": ...}` JSON body with the
// given status code.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("request failed", "status", status, "error", err)
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}

// RespondFault normalizes err into the uniform fault envelope, logs its
// classification, and writes the envelope with its own status code.
func RespondFault(w http.ResponseWriter, logger *slog.Logger, err error) {
	f := fault.Normalize(err)

	logger.Error(
		"fault handled",
		"exception", f.Exception,
		"status", f.StatusCode,
		"message", f.Message,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.StatusCode)
	w.Write(f.Body())
}
