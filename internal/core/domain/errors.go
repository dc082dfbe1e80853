package domain

import "errors"

// Domain errors represent business logic failures.
// Every failure path in the scoring pipeline wraps exactly one of these
// so front-ends can classify it with errors.Is.
var (
	// ErrInvalidRequest indicates a malformed or ambiguous source selection.
	// It is a caller error and is raised before any I/O happens.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrFetchFailure indicates the network or storage retrieval failed.
	// Callers may retry.
	ErrFetchFailure = errors.New("fetch failure")

	// ErrUnsupportedContentType indicates remote content was reached but
	// could not be classified as HTML or PDF.
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrExtractionFailure indicates content was reached but yielded no usable text.
	ErrExtractionFailure = errors.New("extraction failure")

	// ErrInvalidInput indicates malformed or invalid input to a component,
	// such as empty text handed to the scorer.
	ErrInvalidInput = errors.New("invalid input")
)

// Error kinds are stable identifiers used by front-ends in error payloads.
const (
	KindInvalidRequest         = "invalid_request"
	KindFetchFailure           = "fetch_failure"
	KindUnsupportedContentType = "unsupported_content_type"
	KindExtractionFailure      = "extraction_failure"
	KindInternal               = "internal"
)

// ErrorKind returns the stable kind string for err.
// Unknown errors are reported as KindInternal.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalidRequest
	case errors.Is(err, ErrFetchFailure):
		return KindFetchFailure
	case errors.Is(err, ErrUnsupportedContentType):
		return KindUnsupportedContentType
	case errors.Is(err, ErrExtractionFailure):
		return KindExtractionFailure
	default:
		return KindInternal
	}
}
