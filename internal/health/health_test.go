package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h *Handler, path string) (int, result) {
	t.Helper()
	mux := http.NewServeMux()
	h.Register(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var res result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return rec.Code, res
}

func TestHealthz(t *testing.T) {
	failing := Checker{Name: "broken", Check: func(context.Context) error { return errors.New("down") }}

	code, res := serve(t, New(failing), "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", res.Status)
}

func TestReadyz_AllPass(t *testing.T) {
	h := New(
		Checker{Name: "extractors", Check: func(context.Context) error { return nil }},
		Checker{Name: "scorer", Check: func(context.Context) error { return nil }},
	)

	code, res := serve(t, h, "/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, map[string]string{"extractors": "ok", "scorer": "ok"}, res.Checks)
}

func TestReadyz_Failure(t *testing.T) {
	h := New(
		Checker{Name: "extractors", Check: func(context.Context) error { return nil }},
		Checker{Name: "storage", Check: func(context.Context) error { return errors.New("no credentials") }},
	)

	code, res := serve(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "fail", res.Status)
	assert.Equal(t, "fail: no credentials", res.Checks["storage"])
	assert.Equal(t, "ok", res.Checks["extractors"])
}

func TestReadyz_CheckSeesDeadline(t *testing.T) {
	var hasDeadline bool
	h := New(Checker{Name: "deadline", Check: func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	}})

	serve(t, h, "/readyz")
	assert.True(t, hasDeadline)
}

func TestReadyz_ChecksRunConcurrently(t *testing.T) {
	a, b := make(chan struct{}), make(chan struct{})
	wait := func(mine, other chan struct{}) func(context.Context) error {
		return func(ctx context.Context) error {
			close(mine)
			select {
			case <-other:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	h := New(
		Checker{Name: "storage", Check: wait(a, b)},
		Checker{Name: "fetch", Check: wait(b, a)},
	)

	code, res := serve(t, h, "/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]string{"storage": "ok", "fetch": "ok"}, res.Checks)
}
