package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidRequest", ErrInvalidRequest},
		{"ErrFetchFailure", ErrFetchFailure},
		{"ErrUnsupportedContentType", ErrUnsupportedContentType},
		{"ErrExtractionFailure", ErrExtractionFailure},
		{"ErrInvalidInput", ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrFetchFailure, ErrExtractionFailure))
	assert.False(t, errors.Is(ErrUnsupportedContentType, ErrFetchFailure))
	assert.False(t, errors.Is(ErrInvalidRequest, ErrInvalidInput))
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"invalid request", fmt.Errorf("%w: two sources", ErrInvalidRequest), KindInvalidRequest},
		{"fetch failure", fmt.Errorf("%w: status 404", ErrFetchFailure), KindFetchFailure},
		{"unsupported", fmt.Errorf("%w: image/png", ErrUnsupportedContentType), KindUnsupportedContentType},
		{"extraction", fmt.Errorf("%w: empty page", ErrExtractionFailure), KindExtractionFailure},
		{"double wrapped", fmt.Errorf("resolve: %w", fmt.Errorf("%w: x", ErrFetchFailure)), KindFetchFailure},
		{"unknown", errors.New("boom"), KindInternal},
		{"invalid input is internal", ErrInvalidInput, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorKind(tt.err))
		})
	}
}
