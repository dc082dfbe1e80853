// Package mcp provides an MCP (Model Context Protocol) server adapter for docstats.
// It lets AI assistants score the readability of text, web pages and stored PDFs.
package mcp

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/docstats/internal/core/domain"
)

// ErrMissingScoreService is returned when the score service is not provided.
var ErrMissingScoreService = errors.New("mcp: score service is required")

// toolError prefixes err with its kind so clients can branch on it.
func toolError(err error) error {
	return fmt.Errorf("%s: %w", domain.ErrorKind(err), err)
}
