package driven

import "context"

// ObjectStore reads objects from cloud storage.
type ObjectStore interface {
	// Read returns the full contents of bucket/object.
	// Any retrieval error is returned wrapping domain.ErrFetchFailure.
	Read(ctx context.Context, bucket, object string) ([]byte, error)
}
