package mcp

import (
	"github.com/custodia-labs/docstats/internal/core/ports/driving"
	"github.com/custodia-labs/docstats/internal/health"
	"github.com/custodia-labs/docstats/internal/observe"
)

// Ports aggregates the driving ports required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Scores scores and extracts documents.
	Scores driving.ScoreService

	// Metrics records tool calls. Optional; defaults to the global provider.
	Metrics *observe.Metrics

	// Checkers back the HTTP /readyz endpoint. Optional.
	Checkers []health.Checker
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Scores == nil {
		return ErrMissingScoreService
	}
	return nil
}
