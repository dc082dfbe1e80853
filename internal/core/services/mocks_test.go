package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/docstats/internal/core/domain"
	"github.com/custodia-labs/docstats/internal/core/ports/driven"
)

// mockFetcher implements driven.Fetcher for testing.
type mockFetcher struct {
	mu    sync.Mutex
	doc   *domain.RawDocument
	err   error
	calls []string
}

func (m *mockFetcher) Fetch(_ context.Context, rawURL string) (*domain.RawDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, rawURL)
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockObjectStore implements driven.ObjectStore for testing.
type mockObjectStore struct {
	mu      sync.Mutex
	content []byte
	err     error
	reads   [][2]string
}

func (m *mockObjectStore) Read(_ context.Context, bucket, object string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads = append(m.reads, [2]string{bucket, object})
	if m.err != nil {
		return nil, m.err
	}
	return m.content, nil
}

func (m *mockObjectStore) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reads)
}

// mockExtractor implements driven.Extractor for testing.
type mockExtractor struct {
	class  domain.ContentClass
	origin domain.Origin
	text   string
	err    error
	got    *domain.RawDocument
}

func (m *mockExtractor) Class() domain.ContentClass { return m.class }

func (m *mockExtractor) Origin() domain.Origin { return m.origin }

func (m *mockExtractor) Extract(_ context.Context, raw *domain.RawDocument) (string, error) {
	m.got = raw
	return m.text, m.err
}

// mockRegistry implements driven.ExtractorRegistry for testing.
type mockRegistry struct {
	extractors map[domain.ContentClass]driven.Extractor
}

func newMockRegistry(extractors ...driven.Extractor) *mockRegistry {
	r := &mockRegistry{extractors: make(map[domain.ContentClass]driven.Extractor)}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

func (m *mockRegistry) Register(e driven.Extractor) {
	m.extractors[e.Class()] = e
}

func (m *mockRegistry) Extract(
	ctx context.Context, class domain.ContentClass, raw *domain.RawDocument,
) (string, domain.Origin, error) {
	e, ok := m.extractors[class]
	if !ok {
		return "", "", domain.ErrUnsupportedContentType
	}
	text, err := e.Extract(ctx, raw)
	if err != nil {
		return "", "", err
	}
	return text, e.Origin(), nil
}

// mockScorer implements driven.Scorer for testing.
type mockScorer struct {
	report *domain.ScoreReport
	err    error
	texts  []string
}

func (m *mockScorer) Score(text string) (*domain.ScoreReport, error) {
	m.texts = append(m.texts, text)
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}
