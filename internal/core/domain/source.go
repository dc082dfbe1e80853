package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// StorageScheme is the URI scheme accepted for cloud storage PDFs.
const StorageScheme = "gs://"

// SourceKind identifies which acquisition path a Source takes.
type SourceKind string

const (
	// SourceText is literal text supplied by the caller.
	SourceText SourceKind = "text"

	// SourceWeb is a web URL fetched over HTTP(S).
	SourceWeb SourceKind = "web_url"

	// SourceStorage is a PDF object in cloud storage.
	SourceStorage SourceKind = "gcs_uri"
)

// SourceRequest is the transport-agnostic request shape.
// Exactly one field must be set; Source enforces that.
type SourceRequest struct {
	// Text is literal text to score.
	Text string `json:"text,omitempty"`

	// WebURL is an absolute http(s) URL pointing at HTML or PDF content.
	WebURL string `json:"web_url,omitempty"`

	// GCSURI is a gs://bucket/object reference to a PDF.
	GCSURI string `json:"gcs_uri,omitempty"`

	// GCSPDFURI is an alias of GCSURI kept for older clients.
	GCSPDFURI string `json:"gcs_pdf_uri,omitempty"`
}

// Source validates the request and returns the single Source it names.
// It fails with ErrInvalidRequest when zero or more than one field is set,
// or when the chosen field is malformed.
func (r SourceRequest) Source() (Source, error) {
	gcs := r.GCSURI
	if gcs == "" {
		gcs = r.GCSPDFURI
	} else if r.GCSPDFURI != "" && r.GCSPDFURI != r.GCSURI {
		return nil, fmt.Errorf("%w: gcs_uri and gcs_pdf_uri disagree", ErrInvalidRequest)
	}

	provided := 0
	for _, v := range []string{r.Text, r.WebURL, gcs} {
		if v != "" {
			provided++
		}
	}
	if provided != 1 {
		return nil, fmt.Errorf("%w: exactly one of text, web_url, or gcs_uri must be provided", ErrInvalidRequest)
	}

	switch {
	case r.Text != "":
		return NewTextSource(r.Text)
	case r.WebURL != "":
		return NewWebSource(r.WebURL)
	default:
		return NewStorageSource(gcs)
	}
}

// Source is one validated content source.
// The interface is sealed: TextSource, WebSource and StorageSource are the
// only implementations, so a Source always names exactly one path.
type Source interface {
	// Kind reports the acquisition path.
	Kind() SourceKind

	// Identifier is a stable provenance string for logs and reports.
	Identifier() string

	isSource()
}

// TextSource is literal text.
type TextSource struct {
	Text string
}

// NewTextSource returns a TextSource. Blank text is rejected.
func NewTextSource(text string) (TextSource, error) {
	if strings.TrimSpace(text) == "" {
		return TextSource{}, fmt.Errorf("%w: text must contain non-whitespace characters", ErrInvalidRequest)
	}
	return TextSource{Text: text}, nil
}

// Kind implements Source.
func (TextSource) Kind() SourceKind { return SourceText }

// Identifier implements Source.
func (TextSource) Identifier() string { return "direct text" }

func (TextSource) isSource() {}

// WebSource is an absolute http(s) URL.
type WebSource struct {
	URL *url.URL
}

// NewWebSource parses raw and returns a WebSource.
func NewWebSource(raw string) (WebSource, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return WebSource{}, fmt.Errorf("%w: web_url: %v", ErrInvalidRequest, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if (scheme != "http" && scheme != "https") || u.Host == "" {
		return WebSource{}, fmt.Errorf("%w: web_url must be an absolute http(s) URL", ErrInvalidRequest)
	}
	return WebSource{URL: u}, nil
}

// Kind implements Source.
func (WebSource) Kind() SourceKind { return SourceWeb }

// Identifier implements Source.
func (s WebSource) Identifier() string { return s.URL.String() }

func (WebSource) isSource() {}

// StorageSource is a PDF object in cloud storage.
type StorageSource struct {
	Bucket string
	Object string
}

// NewStorageSource parses a gs://bucket/object URI.
func NewStorageSource(uri string) (StorageSource, error) {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, StorageScheme) {
		return StorageSource{}, fmt.Errorf("%w: gcs_uri must be a valid gs:// URI", ErrInvalidRequest)
	}
	bucket, object, ok := strings.Cut(strings.TrimPrefix(uri, StorageScheme), "/")
	if !ok || bucket == "" || object == "" {
		return StorageSource{}, fmt.Errorf("%w: gcs_uri must name a bucket and an object", ErrInvalidRequest)
	}
	return StorageSource{Bucket: bucket, Object: object}, nil
}

// Kind implements Source.
func (StorageSource) Kind() SourceKind { return SourceStorage }

// Identifier implements Source.
func (s StorageSource) Identifier() string { return StorageScheme + s.Bucket + "/" + s.Object }

func (StorageSource) isSource() {}
