package services

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/custodia-labs/docstats/internal/core/domain"
	"github.com/custodia-labs/docstats/internal/core/ports/driven"
	"github.com/custodia-labs/docstats/internal/core/ports/driving"
	"github.com/custodia-labs/docstats/internal/logger"
	"github.com/custodia-labs/docstats/internal/observe"
)

// Ensure ScoreService implements the interface.
var _ driving.ScoreService = (*ScoreService)(nil)

// ScoreService validates a request, resolves its text and scores it.
type ScoreService struct {
	resolver *Resolver
	scorer   driven.Scorer
	metrics  *observe.Metrics
}

// NewScoreService creates a new score service.
func NewScoreService(resolver *Resolver, scorer driven.Scorer) *ScoreService {
	return &ScoreService{
		resolver: resolver,
		scorer:   scorer,
		metrics:  observe.DefaultMetrics(),
	}
}

// SetMetrics replaces the metrics sink for the service and its resolver.
func (s *ScoreService) SetMetrics(m *observe.Metrics) {
	s.metrics = m
	s.resolver.SetMetrics(m)
}

// Score validates req before any I/O, then resolves and scores its text.
func (s *ScoreService) Score(ctx context.Context, req domain.SourceRequest) (report *domain.ScoreReport, err error) {
	kind := "invalid"
	defer func() { s.record(ctx, kind, err) }()

	src, err := req.Source()
	if err != nil {
		logger.Debug("Rejected request: %v", err)
		return nil, err
	}
	kind = string(src.Kind())

	ctx, span := observe.StartSpan(ctx, "score_request",
		trace.WithAttributes(observe.Attr("source.kind", kind)))
	defer func() { observe.EndSpan(span, err) }()

	doc, err := s.resolver.Resolve(ctx, src)
	if err != nil {
		return nil, err
	}

	report, err = s.score(ctx, doc)
	if err != nil {
		return nil, err
	}
	logger.Info("Scored %s: %d words, %d sentences", doc.Description, report.WordCount, report.SentenceCount)
	return report, nil
}

// Extract validates req and returns the normalised document without scoring.
func (s *ScoreService) Extract(ctx context.Context, req domain.SourceRequest) (*domain.ExtractedDocument, error) {
	src, err := req.Source()
	if err != nil {
		return nil, err
	}
	return s.resolver.Resolve(ctx, src)
}

// score runs the scorer on doc. A document with no countable words is a
// request problem for literal text and an extraction problem otherwise.
func (s *ScoreService) score(ctx context.Context, doc *domain.ExtractedDocument) (report *domain.ScoreReport, err error) {
	_, span := observe.StartSpan(ctx, "score")
	defer func() { observe.EndSpan(span, err) }()

	if report, err = s.scorer.Score(doc.Text); err == nil {
		return report, nil
	}
	if !errors.Is(err, domain.ErrInvalidInput) {
		return nil, err
	}
	if doc.Origin == domain.OriginText {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	return nil, fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailure, doc.Description, err)
}

func (s *ScoreService) record(ctx context.Context, kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = domain.ErrorKind(err)
	}
	s.metrics.RecordScoreRequest(ctx, kind, outcome)
}
