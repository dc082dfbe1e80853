package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/docstats/internal/core/domain"
)

// wrapError converts a storage API error into a fetch failure whose detail
// says what went wrong.
func wrapError(uri string, err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s: unauthorised (invalid credentials)", domain.ErrFetchFailure, uri)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %s: forbidden (insufficient permissions)", domain.ErrFetchFailure, uri)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s: object not found", domain.ErrFetchFailure, uri)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s: rate limit exceeded", domain.ErrFetchFailure, uri)
		default:
			return fmt.Errorf("%w: %s: storage API status %d: %s", domain.ErrFetchFailure, uri, gerr.Code, gerr.Message)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: timed out", domain.ErrFetchFailure, uri)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrFetchFailure, uri, err)
}
