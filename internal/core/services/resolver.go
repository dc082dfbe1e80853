package services

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/custodia-labs/docstats/internal/core/domain"
	"github.com/custodia-labs/docstats/internal/core/ports/driven"
	"github.com/custodia-labs/docstats/internal/logger"
	"github.com/custodia-labs/docstats/internal/normaliser"
	"github.com/custodia-labs/docstats/internal/observe"
)

// storageMIMEType is assumed for every cloud storage object.
const storageMIMEType = "application/pdf"

// Resolver turns a validated Source into normalised text.
// Literal text is passed through; remote sources are fetched, classified
// and handed to the matching extractor.
type Resolver struct {
	fetcher    driven.Fetcher
	store      driven.ObjectStore
	extractors driven.ExtractorRegistry
	metrics    *observe.Metrics
}

// NewResolver creates a new resolver.
// store may be nil, in which case storage sources fail with a fetch failure.
func NewResolver(fetcher driven.Fetcher, store driven.ObjectStore, extractors driven.ExtractorRegistry) *Resolver {
	return &Resolver{
		fetcher:    fetcher,
		store:      store,
		extractors: extractors,
		metrics:    observe.DefaultMetrics(),
	}
}

// SetMetrics replaces the metrics sink.
func (r *Resolver) SetMetrics(m *observe.Metrics) {
	r.metrics = m
}

// Resolve acquires and extracts the text named by src.
func (r *Resolver) Resolve(ctx context.Context, src domain.Source) (doc *domain.ExtractedDocument, err error) {
	ctx, span := observe.StartSpan(ctx, "resolve",
		trace.WithAttributes(observe.Attr("source.kind", string(src.Kind()))))
	defer func() { observe.EndSpan(span, err) }()

	logger.Section("Resolve")
	logger.Debug("Source: %s (%s)", src.Identifier(), src.Kind())

	switch s := src.(type) {
	case domain.TextSource:
		doc, err = r.resolveText(s)
	case domain.WebSource:
		doc, err = r.resolveWeb(ctx, s)
	case domain.StorageSource:
		doc, err = r.resolveStorage(ctx, s)
	default:
		err = fmt.Errorf("%w: unknown source type %T", domain.ErrInvalidRequest, src)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("Resolved %s: %d characters (%s)", doc.Description, len(doc.Text), doc.Origin)
	return doc, nil
}

func (r *Resolver) resolveText(s domain.TextSource) (*domain.ExtractedDocument, error) {
	text := normaliser.Normalise(s.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: text contains no visible characters", domain.ErrInvalidRequest)
	}
	return &domain.ExtractedDocument{
		Text:        text,
		Origin:      domain.OriginText,
		SourceID:    s.Identifier(),
		Description: s.Identifier(),
	}, nil
}

func (r *Resolver) resolveWeb(ctx context.Context, s domain.WebSource) (*domain.ExtractedDocument, error) {
	if r.fetcher == nil {
		return nil, fmt.Errorf("%w: web fetching is not configured", domain.ErrFetchFailure)
	}

	start := time.Now()
	fetchCtx, span := observe.StartSpan(ctx, "fetch")
	raw, err := r.fetcher.Fetch(fetchCtx, s.Identifier())
	observe.EndSpan(span, err)
	r.metrics.RecordFetch(ctx, string(domain.SourceWeb), time.Since(start), err != nil)
	if err != nil {
		return nil, err
	}

	uri := raw.URI
	if uri == "" {
		uri = s.Identifier()
	}
	class := domain.ClassifyContent(raw.MIMEType, raw.Content, uri)
	logger.Debug("Classified %s as %s (declared %q, %d bytes)", uri, class, raw.MIMEType, len(raw.Content))
	if class == domain.ContentUnsupported {
		declared := raw.MIMEType
		if declared == "" {
			declared = "unknown"
		}
		return nil, fmt.Errorf("%w: %s (content type %s)", domain.ErrUnsupportedContentType, s.Identifier(), declared)
	}

	text, origin, err := r.extract(ctx, class, raw)
	if err != nil {
		return nil, err
	}

	description := "URL: " + s.Identifier()
	if origin == domain.OriginPDF {
		description = "Web PDF: " + s.Identifier()
	}
	return &domain.ExtractedDocument{
		Text:        text,
		Origin:      origin,
		SourceID:    s.Identifier(),
		Description: description,
	}, nil
}

func (r *Resolver) resolveStorage(ctx context.Context, s domain.StorageSource) (*domain.ExtractedDocument, error) {
	if r.store == nil {
		return nil, fmt.Errorf("%w: cloud storage is not configured", domain.ErrFetchFailure)
	}

	start := time.Now()
	readCtx, span := observe.StartSpan(ctx, "storage.read")
	content, err := r.store.Read(readCtx, s.Bucket, s.Object)
	observe.EndSpan(span, err)
	r.metrics.RecordFetch(ctx, string(domain.SourceStorage), time.Since(start), err != nil)
	if err != nil {
		return nil, err
	}

	raw := &domain.RawDocument{
		URI:      s.Identifier(),
		MIMEType: storageMIMEType,
		Content:  content,
	}
	text, origin, err := r.extract(ctx, domain.ContentPDF, raw)
	if err != nil {
		return nil, err
	}

	return &domain.ExtractedDocument{
		Text:        text,
		Origin:      origin,
		SourceID:    s.Identifier(),
		Description: "GCS: " + s.Identifier(),
	}, nil
}

// extract runs the registered extractor and normalises its output.
func (r *Resolver) extract(
	ctx context.Context, class domain.ContentClass, raw *domain.RawDocument,
) (text string, origin domain.Origin, err error) {
	start := time.Now()
	ctx, span := observe.StartSpan(ctx, "extract",
		trace.WithAttributes(observe.Attr("content.class", class.String())))
	defer func() {
		observe.EndSpan(span, err)
		r.metrics.RecordExtract(ctx, class.String(), time.Since(start))
	}()

	text, origin, err = r.extractors.Extract(ctx, class, raw)
	if err != nil {
		return "", "", err
	}

	text = normaliser.Normalise(text)
	if text == "" {
		return "", "", fmt.Errorf("%w: no text extracted from %s", domain.ErrExtractionFailure, raw.URI)
	}
	return text, origin, nil
}
