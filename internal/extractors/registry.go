package extractors

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/docstats/internal/core/domain"
	"github.com/custodia-labs/docstats/internal/core/ports/driven"
	"github.com/custodia-labs/docstats/internal/extractors/html"
	"github.com/custodia-labs/docstats/internal/extractors/pdf"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps content classes to extractors.
type Registry struct {
	mu         sync.RWMutex
	extractors map[domain.ContentClass]driven.Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[domain.ContentClass]driven.Extractor),
	}
}

// Default returns a registry with the HTML and PDF extractors registered.
// pdfMaxBytes caps accepted PDF size; zero keeps the extractor default.
func Default(pdfMaxBytes int64) *Registry {
	r := NewRegistry()
	r.Register(html.New())
	r.Register(pdf.New(pdf.WithMaxBytes(pdfMaxBytes)))
	return r
}

// Register adds an extractor, replacing any previous one for its class.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[extractor.Class()] = extractor
}

// Get returns the extractor for class, or nil.
func (r *Registry) Get(class domain.ContentClass) driven.Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.extractors[class]
}

// Classes returns the number of registered content classes.
func (r *Registry) Classes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.extractors)
}

// Extract runs the extractor registered for class.
func (r *Registry) Extract(
	ctx context.Context, class domain.ContentClass, raw *domain.RawDocument,
) (string, domain.Origin, error) {
	extractor := r.Get(class)
	if extractor == nil {
		return "", "", fmt.Errorf("%w: no extractor for %s content", domain.ErrUnsupportedContentType, class)
	}
	text, err := extractor.Extract(ctx, raw)
	if err != nil {
		return "", "", err
	}
	return text, extractor.Origin(), nil
}
