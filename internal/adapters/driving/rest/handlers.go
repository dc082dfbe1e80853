package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/custodia-labs/docstats/internal/core/domain"
	"github.com/custodia-labs/docstats/internal/observe"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r, s.opts.MaxRequestBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	report, err := s.scores.Score(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// decodeRequest reads exactly one JSON object with no unknown fields.
func decodeRequest(w http.ResponseWriter, r *http.Request, limit int64) (domain.SourceRequest, error) {
	var req domain.SourceRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return req, fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrInvalidRequest, tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return req, fmt.Errorf("%w: empty request body", domain.ErrInvalidRequest)
		default:
			return req, fmt.Errorf("%w: malformed JSON: %v", domain.ErrInvalidRequest, err)
		}
	}
	if dec.More() {
		return req, fmt.Errorf("%w: request body must contain a single JSON object", domain.ErrInvalidRequest)
	}
	return req, nil
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrExtractionFailure):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnsupportedContentType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrFetchFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	kind := domain.ErrorKind(err)
	detail := err.Error()

	log := observe.Logger(r.Context())
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("score request failed")
		detail = "internal error"
	} else {
		log.Debug().Err(err).Str("kind", kind).Msg("score request rejected")
	}

	writeJSON(w, status, errorBody{Error: kind, Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
