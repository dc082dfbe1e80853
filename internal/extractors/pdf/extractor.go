package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docstats/internal/core/domain"
	"github.com/custodia-labs/docstats/internal/core/ports/driven"
	"github.com/custodia-labs/docstats/internal/logger"
	"github.com/custodia-labs/docstats/internal/normaliser"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// DefaultMaxBytes is the largest document accepted when no limit is configured.
const DefaultMaxBytes = 50 << 20

// Extractor handles PDF documents.
type Extractor struct {
	maxBytes int64
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxBytes rejects documents larger than n bytes. Zero or negative
// values keep the default.
func WithMaxBytes(n int64) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxBytes = n
		}
	}
}

// New creates a new PDF extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{maxBytes: DefaultMaxBytes}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Class returns the content class this extractor handles.
func (e *Extractor) Class() domain.ContentClass {
	return domain.ContentPDF
}

// Origin returns the provenance recorded for PDF documents.
func (e *Extractor) Origin() domain.Origin {
	return domain.OriginPDF
}

// Extract returns the text of every page in order, one page per line group.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}
	if len(raw.Content) == 0 {
		return "", fmt.Errorf("%w: empty PDF document", domain.ErrExtractionFailure)
	}
	if int64(len(raw.Content)) > e.maxBytes {
		return "", fmt.Errorf("%w: PDF is %d bytes, limit is %d",
			domain.ErrExtractionFailure, len(raw.Content), e.maxBytes)
	}

	reader, err := openReader(raw.Content)
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return "", fmt.Errorf("%w: PDF is encrypted", domain.ErrExtractionFailure)
		}
		return "", fmt.Errorf("%w: opening PDF: %v", domain.ErrExtractionFailure, err)
	}

	numPages := pageCount(reader)
	pages := make([]string, 0, numPages)
	skipped := 0
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: PDF extraction stopped at page %d of %d: %w",
				domain.ErrFetchFailure, i, numPages, err)
		}
		text, ok := pageText(reader, i)
		if !ok {
			skipped++
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}
	if skipped > 0 {
		logger.Warn("Skipped %d unreadable page(s) of %d in %s", skipped, numPages, raw.URI)
	}

	text := normaliser.Normalise(strings.Join(pages, "\n"))
	if text == "" {
		return "", fmt.Errorf("%w: no text content found in PDF (%d pages)",
			domain.ErrExtractionFailure, numPages)
	}
	return text, nil
}

// openReader wraps pdf.NewReader, which can panic on badly damaged
// cross-reference tables.
func openReader(content []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			reader = nil
			err = fmt.Errorf("malformed PDF structure: %v", r)
		}
	}()
	return pdf.NewReader(bytes.NewReader(content), int64(len(content)))
}

func pageCount(reader *pdf.Reader) (n int) {
	defer func() {
		if r := recover(); r != nil {
			n = 0
		}
	}()
	return reader.NumPage()
}

// pageText returns the trimmed plain text of page i. ok is false when the
// page could not be decoded.
func pageText(reader *pdf.Reader, i int) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			text, ok = "", false
		}
	}()

	page := reader.Page(i)
	if page.V.IsNull() {
		return "", true
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(content), true
}
