package driven

import (
	"context"

	"github.com/custodia-labs/docstats/internal/core/domain"
)

// ExtractorRegistry selects the appropriate extractor for a document.
type ExtractorRegistry interface {
	// Extract runs the extractor registered for class.
	// It returns domain.ErrUnsupportedContentType when none is registered.
	Extract(ctx context.Context, class domain.ContentClass, raw *domain.RawDocument) (string, domain.Origin, error)

	// Register adds an extractor, replacing any previous one for its class.
	Register(extractor Extractor)
}
