package extractors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docstats/internal/core/domain"
)

type stubExtractor struct {
	class domain.ContentClass
	text  string
	err   error
	calls int
}

func (s *stubExtractor) Class() domain.ContentClass { return s.class }

func (s *stubExtractor) Origin() domain.Origin {
	if s.class == domain.ContentPDF {
		return domain.OriginPDF
	}
	return domain.OriginHTML
}

func (s *stubExtractor) Extract(_ context.Context, _ *domain.RawDocument) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestRegistry_Default(t *testing.T) {
	r := Default(0)

	assert.Equal(t, 2, r.Classes())
	require.NotNil(t, r.Get(domain.ContentHTML))
	require.NotNil(t, r.Get(domain.ContentPDF))
	assert.Nil(t, r.Get(domain.ContentUnsupported))
}

func TestRegistry_ExtractRoutesByClass(t *testing.T) {
	htmlStub := &stubExtractor{class: domain.ContentHTML, text: "from html"}
	pdfStub := &stubExtractor{class: domain.ContentPDF, text: "from pdf"}

	r := NewRegistry()
	r.Register(htmlStub)
	r.Register(pdfStub)

	text, origin, err := r.Extract(context.Background(), domain.ContentPDF, &domain.RawDocument{})
	require.NoError(t, err)
	assert.Equal(t, "from pdf", text)
	assert.Equal(t, domain.OriginPDF, origin)
	assert.Equal(t, 0, htmlStub.calls)
	assert.Equal(t, 1, pdfStub.calls)
}

func TestRegistry_ExtractUnsupported(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubExtractor{class: domain.ContentHTML})

	_, _, err := r.Extract(context.Background(), domain.ContentUnsupported, &domain.RawDocument{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedContentType)

	_, _, err = r.Extract(context.Background(), domain.ContentPDF, &domain.RawDocument{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedContentType)
}

func TestRegistry_ExtractError(t *testing.T) {
	failure := errors.Join(domain.ErrExtractionFailure, errors.New("empty"))
	r := NewRegistry()
	r.Register(&stubExtractor{class: domain.ContentHTML, err: failure})

	_, origin, err := r.Extract(context.Background(), domain.ContentHTML, &domain.RawDocument{})
	assert.ErrorIs(t, err, domain.ErrExtractionFailure)
	assert.Empty(t, origin)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubExtractor{class: domain.ContentHTML, text: "old"})
	r.Register(&stubExtractor{class: domain.ContentHTML, text: "new"})

	text, _, err := r.Extract(context.Background(), domain.ContentHTML, &domain.RawDocument{})
	require.NoError(t, err)
	assert.Equal(t, "new", text)
	assert.Equal(t, 1, r.Classes())
}

func TestRegistry_EndToEndHTML(t *testing.T) {
	raw := &domain.RawDocument{
		MIMEType: "text/html",
		Content:  []byte("<html><body><article><p>Hello there, reader.</p></article></body></html>"),
	}

	text, origin, err := Default(0).Extract(context.Background(), domain.ContentHTML, raw)
	require.NoError(t, err)
	assert.Equal(t, "Hello there, reader.", text)
	assert.Equal(t, domain.OriginHTML, origin)
}
