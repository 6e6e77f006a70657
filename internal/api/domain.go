package api

import (
	"github.com/faktura-io/faktura/internal/invoices"
)

// Domain holds the domain systems that comprise the API.
type Domain struct {
	Invoices invoices.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	invoicesSystem := invoices.New(
		runtime.Cosmos,
		runtime.Storage,
		runtime.Renderer,
		runtime.Logger,
	)

	return &Domain{
		Invoices: invoicesSystem,
	}
}
