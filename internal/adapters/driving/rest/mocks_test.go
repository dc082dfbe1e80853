package rest

import (
	"context"

	"github.com/custodia-labs/docstats/internal/core/domain"
)

// mockScoreService is a mock implementation of driving.ScoreService.
type mockScoreService struct {
	report *domain.ScoreReport
	doc    *domain.ExtractedDocument
	err    error
	got    []domain.SourceRequest
}

func (m *mockScoreService) Score(_ context.Context, req domain.SourceRequest) (*domain.ScoreReport, error) {
	m.got = append(m.got, req)
	return m.report, m.err
}

func (m *mockScoreService) Extract(_ context.Context, req domain.SourceRequest) (*domain.ExtractedDocument, error) {
	m.got = append(m.got, req)
	return m.doc, m.err
}
