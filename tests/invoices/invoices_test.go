package invoices_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/faktura-io/faktura/internal/invoices"
	"github.com/faktura-io/faktura/pkg/cosmos"
	"github.com/faktura-io/faktura/pkg/lifecycle"
	"github.com/faktura-io/faktura/pkg/render"
	"github.com/faktura-io/faktura/pkg/storage"
)

type fakeDB struct {
	items []json.RawMessage
	err   error

	gotQuery  string
	gotParams []cosmos.Parameter
}

func (d *fakeDB) Start(*lifecycle.Coordinator) error { return nil }

func (d *fakeDB) Query(_ context.Context, query string, params []cosmos.Parameter) ([]json.RawMessage, error) {
	d.gotQuery = query
	d.gotParams = params
	if d.err != nil {
		return nil, d.err
	}
	return d.items, nil
}

type fakeArchive struct {
	blobs map[string][]byte
	err   error
}

func (a *fakeArchive) Start(*lifecycle.Coordinator) error { return nil }

func (a *fakeArchive) Download(_ context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if a.err != nil {
		return nil, a.err
	}
	data, ok := a.blobs[key]
	if !ok {
		return nil, &azcore.ResponseError{ErrorCode: "BlobNotFound", StatusCode: http.StatusNotFound}
	}
	return data, nil
}

func (a *fakeArchive) Exists(_ context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	_, ok := a.blobs[key]
	return ok, nil
}

func validateKey(key string) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return storage.ErrInvalidKey
	}
	return nil
}

type fakeRenderer struct {
	output []byte
	err    error
}

func (r *fakeRenderer) Render([]byte) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.output, nil
}

func (r *fakeRenderer) Close() {}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSystem(db *fakeDB, archive *fakeArchive, renderer *fakeRenderer) invoices.System {
	if db == nil {
		db = &fakeDB{}
	}
	if archive == nil {
		archive = &fakeArchive{}
	}
	if renderer == nil {
		renderer = &fakeRenderer{output: []byte("%PDF-1.7 fake")}
	}
	return invoices.New(db, archive, renderer, discardLogger())
}

func TestQueryKeysItemsByID(t *testing.T) {
	db := &fakeDB{items: []json.RawMessage{
		json.RawMessage(`{"id":"INV-1001","total":120.5}`),
		json.RawMessage(`{"id":"INV-1002","total":89.0}`),
	}}
	sys := newSystem(db, nil, nil)

	got, err := sys.Query(context.Background(), invoices.QueryRequest{
		Query: "SELECT * FROM c",
	})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("items: got %d, want 2", len(got))
	}
	for _, id := range []string{"INV-1001", "INV-1002"} {
		if _, ok := got[id]; !ok {
			t.Errorf("missing item for id %s", id)
		}
	}
	if db.gotQuery != "SELECT * FROM c" {
		t.Errorf("query passed through: got %q", db.gotQuery)
	}
}

func TestQueryForwardsParameters(t *testing.T) {
	db := &fakeDB{}
	sys := newSystem(db, nil, nil)

	_, err := sys.Query(context.Background(), invoices.QueryRequest{
		Query: "SELECT * FROM c WHERE c.customer = @customer",
		Parameters: []cosmos.Parameter{
			{Name: "@customer", Value: "acme"},
		},
	})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	if len(db.gotParams) != 1 || db.gotParams[0].Name != "@customer" {
		t.Errorf("parameters: got %v", db.gotParams)
	}
}

func TestQueryMissingIDColumn(t *testing.T) {
	db := &fakeDB{items: []json.RawMessage{
		json.RawMessage(`{"invoice":"INV-1001","total":120.5}`),
	}}
	sys := newSystem(db, nil, nil)

	_, err := sys.Query(context.Background(), invoices.QueryRequest{Query: "SELECT c.invoice FROM c"})
	if err == nil {
		t.Fatal("expected error for item without id, got nil")
	}

	f := invoices.MapFault(err)
	if f.StatusCode != http.StatusBadRequest {
		t.Errorf("status_code: got %d, want 400", f.StatusCode)
	}
	if f.Exception != "MissingIdentifier" {
		t.Errorf("exception: got %s, want MissingIdentifier", f.Exception)
	}
}

func TestFetchXML(t *testing.T) {
	archive := &fakeArchive{blobs: map[string][]byte{
		"INV-1001.xml": []byte("<invoice/>"),
	}}
	sys := newSystem(nil, archive, nil)

	result, err := sys.Fetch(context.Background(), "INV-1001", invoices.FormatXML)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if string(result.Data) != "<invoice/>" {
		t.Errorf("data: got %q", result.Data)
	}
	if result.ContentType != "text/xml; charset=utf-8" {
		t.Errorf("content-type: got %s", result.ContentType)
	}
}

func TestFetchPDF(t *testing.T) {
	archive := &fakeArchive{blobs: map[string][]byte{
		"INV-1001.xml": []byte("<invoice/>"),
	}}
	renderer := &fakeRenderer{output: []byte("%PDF-1.7 rendered")}
	sys := newSystem(nil, archive, renderer)

	result, err := sys.Fetch(context.Background(), "INV-1001", invoices.FormatPDF)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if string(result.Data) != "%PDF-1.7 rendered" {
		t.Errorf("data: got %q", result.Data)
	}
	if result.ContentType != "application/pdf" {
		t.Errorf("content-type: got %s", result.ContentType)
	}
}

func TestFetchMissingInvoice(t *testing.T) {
	sys := newSystem(nil, &fakeArchive{}, nil)

	_, err := sys.Fetch(context.Background(), "INV-9999", invoices.FormatXML)
	if err == nil {
		t.Fatal("expected error for missing invoice, got nil")
	}

	f := invoices.MapFault(err)
	if f.StatusCode != http.StatusNotFound {
		t.Errorf("status_code: got %d, want 404", f.StatusCode)
	}
	if f.Message != "Invoice not found in the archive." {
		t.Errorf("message: got %q", f.Message)
	}
}

func TestFormatValid(t *testing.T) {
	tests := []struct {
		format invoices.Format
		want   bool
	}{
		{invoices.FormatXML, true},
		{invoices.FormatPDF, true},
		{invoices.Format("csv"), false},
		{invoices.Format(""), false},
		{invoices.Format("XML"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.Valid(); got != tt.want {
				t.Errorf("Valid(%q) = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestMapFault(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantStatus    int
		wantException string
	}{
		{
			name:          "empty key",
			err:           storage.ErrEmptyKey,
			wantStatus:    http.StatusBadRequest,
			wantException: "InvalidIdentifier",
		},
		{
			name:          "invalid key",
			err:           fmt.Errorf("download: %w", storage.ErrInvalidKey),
			wantStatus:    http.StatusBadRequest,
			wantException: "InvalidIdentifier",
		},
		{
			name:          "transform failure",
			err:           fmt.Errorf("render: %w", render.ErrTransform),
			wantStatus:    http.StatusUnprocessableEntity,
			wantException: "TransformError",
		},
		{
			name:          "generation failure",
			err:           render.ErrGenerate,
			wantStatus:    http.StatusInternalServerError,
			wantException: "RenderError",
		},
		{
			name:          "invalid output",
			err:           render.ErrInvalidOutput,
			wantStatus:    http.StatusInternalServerError,
			wantException: "RenderError",
		},
		{
			name:          "unknown error falls through to normalization",
			err:           errors.New("boom"),
			wantStatus:    http.StatusInternalServerError,
			wantException: "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := invoices.MapFault(tt.err)
			if f.StatusCode != tt.wantStatus {
				t.Errorf("status_code: got %d, want %d", f.StatusCode, tt.wantStatus)
			}
			if f.Exception != tt.wantException {
				t.Errorf("exception: got %s, want %s", f.Exception, tt.wantException)
			}
		})
	}
}
