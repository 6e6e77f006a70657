package invoices

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/faktura-io/faktura/pkg/fault"
	"github.com/faktura-io/faktura/pkg/render"
	"github.com/faktura-io/faktura/pkg/storage"
)

func missingParam(name string) *fault.Fault {
	return fault.BadRequest(
		"MissingParameter",
		fmt.Sprintf("No %s parameter in the request.", name),
	).WithDetails(fmt.Sprintf("missing query parameter: %s", name))
}

func unsupportedFormat(value string) *fault.Fault {
	return fault.BadRequest(
		"UnsupportedFormat",
		"file_format must be xml or pdf.",
	).WithDetails(fmt.Sprintf("unsupported file_format: %s", value))
}

func missingIdentifier(item string) *fault.Fault {
	return fault.BadRequest(
		"MissingIdentifier",
		"Key 'id' not found in a query item. Perhaps your query renamed column 'id'?",
	).WithDetails(item)
}

// MapFault converts domain and subsystem errors into the uniform fault
// envelope, deferring unknown errors to the normalization layer.
func MapFault(err error) *fault.Fault {
	switch {
	case errors.Is(err, storage.ErrEmptyKey), errors.Is(err, storage.ErrInvalidKey):
		return fault.Wrap(err, "InvalidIdentifier", "Invalid invoice_id.", http.StatusBadRequest)
	case errors.Is(err, render.ErrTransform):
		return fault.Wrap(err,
			"TransformError",
			"Invoice XML could not be transformed. Check details.",
			http.StatusUnprocessableEntity,
		)
	case errors.Is(err, render.ErrGenerate), errors.Is(err, render.ErrInvalidOutput):
		return fault.Wrap(err,
			"RenderError",
			"Failed to render invoice PDF.",
			http.StatusInternalServerError,
		)
	}

	return fault.Normalize(err)
}
