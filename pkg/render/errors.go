package render

import "errors"

var (
	// ErrTransform indicates the XML could not be parsed or transformed
	// by the configured stylesheet.
	ErrTransform = errors.New("xslt transform failed")
	// ErrGenerate indicates PDF layout or serialization failed.
	ErrGenerate = errors.New("pdf generation failed")
	// ErrInvalidOutput indicates the rendered PDF failed validation.
	ErrInvalidOutput = errors.New("rendered pdf failed validation")
)
