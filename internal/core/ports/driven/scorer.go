package driven

import "github.com/custodia-labs/docstats/internal/core/domain"

// Scorer computes readability metrics for normalised text.
// Implementations must be pure: the same text always yields the same report.
type Scorer interface {
	// Score returns the report for text. Empty text or text without words
	// fails with domain.ErrInvalidInput.
	Score(text string) (*domain.ScoreReport, error)
}
