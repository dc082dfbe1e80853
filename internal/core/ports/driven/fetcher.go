package driven

import (
	"context"

	"github.com/custodia-labs/docstats/internal/core/domain"
)

// Fetcher retrieves remote web content.
type Fetcher interface {
	// Fetch performs a single bounded GET of rawURL.
	// Non-2xx responses, timeouts and transport errors are returned as
	// errors wrapping domain.ErrFetchFailure. No retries are attempted.
	Fetch(ctx context.Context, rawURL string) (*domain.RawDocument, error)
}
