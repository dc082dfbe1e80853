package domain

// RawDocument represents opaque bytes fetched from a remote source.
// It is the fetcher's output before classification and extraction.
type RawDocument struct {
	// URI is the location the bytes were fetched from, after redirects.
	URI string

	// MIMEType is the declared content type (e.g., "application/pdf").
	// It may carry parameters such as charset and may be empty.
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// StatusCode is the HTTP status for web fetches; zero otherwise.
	StatusCode int
}
