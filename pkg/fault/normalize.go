package fault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/go-playground/validator/v10"

	"github.com/faktura-io/faktura/pkg/formatting"
)

// Normalize converts any error into a Fault. Faults pass through
// unchanged; Azure SDK response errors keep their service status code;
// timeouts, malformed or oversized request bodies, and validation
// failures map to fitting client statuses. Everything else becomes an
// internal Fault
// with the default message.
func Normalize(err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return normalizeResponse(err, respErr)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Wrap(err, "Timeout", "Request timeout.", http.StatusRequestTimeout)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Wrap(err, "Timeout", "Request timeout.", http.StatusRequestTimeout)
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		message := fmt.Sprintf("Request body exceeds the %s limit.",
			formatting.FormatBytes(maxBytesErr.Limit, 0))
		return Wrap(err, classify(maxBytesErr), message, http.StatusRequestEntityTooLarge)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return Wrap(err, classify(err), "Request body is not valid JSON.", http.StatusBadRequest)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return Wrap(err, "ValidationError", validationMessage(validationErrs), http.StatusBadRequest)
	}

	return Internal(err)
}

func normalizeResponse(err error, respErr *azcore.ResponseError) *Fault {
	exception := respErr.ErrorCode
	if exception == "" {
		exception = "ResponseError"
	}

	status := respErr.StatusCode
	message := "HTTP response error from backing service. Check details."

	switch {
	case bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound):
		status = http.StatusNotFound
		message = "Invoice not found in the archive."
	case status == http.StatusNotFound:
		message = "Backing resource not found. Check connection string."
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		message = "The supplied credential cannot serve the request. Check connection string."
	case status == http.StatusRequestTimeout:
		message = "Request timeout."
	case status == 0:
		status = http.StatusBadGateway
	}

	return Wrap(err, exception, message, status)
}

func validationMessage(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Request validation failed."
	}
	first := errs[0]
	return fmt.Sprintf(
		"Request validation failed on field %q (rule %q).",
		strings.ToLower(first.Field()), first.Tag(),
	)
}

// classify derives a short exception name from the error's dynamic type,
// falling back to a generic label for plain stdlib error values.
func classify(err error) string {
	if err == nil {
		return "UnknownError"
	}

	name := fmt.Sprintf("%T", err)
	name = strings.TrimLeft(name, "*")
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}

	switch name {
	case "errorString", "wrapError", "wrapErrors", "joinError":
		return "Error"
	}
	return name
}
