package driven

import (
	"context"

	"github.com/custodia-labs/docstats/internal/core/domain"
)

// Extractor turns raw bytes of one content class into plain text.
// Each extractor handles exactly one class (HTML or PDF).
type Extractor interface {
	// Class returns the content class this extractor handles.
	Class() domain.ContentClass

	// Origin returns the provenance recorded on documents it produces.
	Origin() domain.Origin

	// Extract returns the document's text. Failures wrap domain.ErrExtractionFailure.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)
}
