// Package tui provides an interactive terminal user interface for docask.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docask/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Search ranks indexed documents.
	Search driving.SearchService

	// Ask generates answers from ranked documents. Optional; without it
	// the answer key reports that generation is unavailable.
	Ask driving.AskService

	// TopK is the number of results per query. Zero means domain.DefaultTopK.
	TopK int

	// Model overrides the configured answer model when non-empty.
	Model string
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(search driving.SearchService, ask driving.AskService) *Ports {
	return &Ports{
		Search: search,
		Ask:    ask,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
