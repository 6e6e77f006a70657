// Package render converts invoice XML into PDF documents. The XML is run
// through a configured XSLT stylesheet and the transformed output is laid
// out as a report-style PDF.
package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/wamuir/go-xslt"
)

// System renders invoice XML documents to PDF.
type System interface {
	// Render transforms the XML with the configured stylesheet and lays
	// the result out as a PDF document.
	Render(xmlBytes []byte) ([]byte, error)
	// Close releases the compiled stylesheet.
	Close()
}

type renderer struct {
	stylesheet *xslt.Stylesheet
	fontSize   float64
	validate   bool
	logger     *slog.Logger
}

// New creates a renderer from the given configuration. The stylesheet is
// read and compiled once; compilation failures are returned immediately.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	data, err := os.ReadFile(cfg.StylesheetPath)
	if err != nil {
		return nil, fmt.Errorf("read stylesheet %s: %w", cfg.StylesheetPath, err)
	}

	stylesheet, err := xslt.NewStylesheet(data)
	if err != nil {
		return nil, fmt.Errorf("compile stylesheet %s: %w", cfg.StylesheetPath, err)
	}

	return &renderer{
		stylesheet: stylesheet,
		fontSize:   cfg.FontSize,
		validate:   cfg.ShouldValidate(),
		logger:     logger.With("system", "render"),
	}, nil
}

func (r *renderer) Render(xmlBytes []byte) ([]byte, error) {
	transformed, err := r.stylesheet.Transform(xmlBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransform, err)
	}

	pdfBytes, err := r.layout(transformed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerate, err)
	}

	if r.validate {
		if err := api.Validate(bytes.NewReader(pdfBytes), nil); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOutput, err)
		}

		count, err := api.PageCount(bytes.NewReader(pdfBytes), nil)
		if err == nil {
			r.logger.Debug("invoice rendered", "pages", count, "bytes", len(pdfBytes))
		}
	}

	return pdfBytes, nil
}

func (r *renderer) Close() {
	r.stylesheet.Close()
}

// layout writes the transformed output line by line into an A4 portrait
// document, the way the archive's legacy renderer did.
func (r *renderer) layout(content []byte) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", r.fontSize)
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	translate := doc.UnicodeTranslatorFromDescriptor("")
	for line := range strings.Lines(string(content)) {
		doc.MultiCell(0, r.fontSize/2, translate(strings.TrimRight(line, "\n")), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
