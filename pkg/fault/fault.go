// Package fault defines the uniform error envelope returned by every
// endpoint and the normalization rules that fit heterogeneous backend
// failures into it.
package fault

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultMessage is returned when a failure could not be classified.
const DefaultMessage = "Unexpected error, please contact the service administrator."

// Fault is the wire envelope for a failed operation. StatusCode doubles
// as the HTTP response status. Details carries the underlying error text
// and may be null when nothing useful survives normalization.
type Fault struct {
	Exception  string  `json:"exception"`
	Message    string  `json:"message"`
	StatusCode int     `json:"status_code"`
	Details    *string `json:"details"`

	cause error
}

// New creates a Fault with the given classifier, operator-facing message,
// and status code.
func New(exception, message string, status int) *Fault {
	return &Fault{
		Exception:  exception,
		Message:    message,
		StatusCode: status,
	}
}

// Wrap creates a Fault that records err as both its cause and its details.
func Wrap(err error, exception, message string, status int) *Fault {
	f := New(exception, message, status)
	f.cause = err
	if err != nil {
		f.Details = ptr(err.Error())
	}
	return f
}

// Internal creates a 500 Fault with the default administrator-contact message.
func Internal(err error) *Fault {
	return Wrap(err, classify(err), DefaultMessage, http.StatusInternalServerError)
}

// BadRequest creates a 400 Fault with the given classifier and message.
func BadRequest(exception, message string) *Fault {
	return New(exception, message, http.StatusBadRequest)
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s (%d): %s", f.Exception, f.StatusCode, f.Message)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (f *Fault) Unwrap() error {
	return f.cause
}

// WithDetails returns f with its details replaced by the given text.
func (f *Fault) WithDetails(details string) *Fault {
	f.Details = ptr(details)
	return f
}

// Body renders the envelope as JSON. Envelope construction must never
// fail; if marshaling does, a hand-built envelope is returned instead.
func (f *Fault) Body() []byte {
	data, err := json.Marshal(f)
	if err != nil {
		details := "null"
		if f.Details != nil {
			d, _ := json.Marshal(*f.Details)
			details = string(d)
		}
		exception, _ := json.Marshal(f.Exception)
		message, _ := json.Marshal(f.Message)
		return fmt.Appendf(nil,
			`{"exception":%s,"message":%s,"status_code":%d,"details":%s}`,
			exception, message, f.StatusCode, details,
		)
	}
	return data
}

func ptr(s string) *string {
	return &s
}
