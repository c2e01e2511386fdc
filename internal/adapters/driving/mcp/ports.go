package mcp

import (
	"github.com/custodia-labs/docask/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Search ranks indexed documents.
	Search driving.SearchService

	// Ask retrieves context and generates answers. Optional.
	Ask driving.AskService

	// DefaultTopK is used when a tool call omits top. Zero means domain.DefaultTopK.
	DefaultTopK int
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
