package driving

import (
	"context"

	"github.com/custodia-labs/docstats/internal/core/domain"
)

// ScoreService scores text from a single content source.
type ScoreService interface {
	// Score validates req, acquires and extracts its text, and returns the report.
	// Validation happens before any I/O.
	Score(ctx context.Context, req domain.SourceRequest) (*domain.ScoreReport, error)

	// Extract validates req and returns the normalised document without scoring it.
	Extract(ctx context.Context, req domain.SourceRequest) (*domain.ExtractedDocument, error)
}
