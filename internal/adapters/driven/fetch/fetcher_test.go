package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docstats/internal/core/domain"
)

func TestFetch_Success(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><p>Hi</p></body></html>"))
	}))
	defer srv.Close()

	f := New(Config{UserAgent: "docstats-test"}, srv.Client())
	doc, err := f.Fetch(context.Background(), srv.URL+"/page")
	require.NoError(t, err)

	assert.Equal(t, "text/html; charset=utf-8", doc.MIMEType)
	assert.Equal(t, "<html><body><p>Hi</p></body></html>", string(doc.Content))
	assert.Equal(t, http.StatusOK, doc.StatusCode)
	assert.Equal(t, srv.URL+"/page", doc.URI)
	assert.Equal(t, "docstats-test", gotUA)
	assert.Contains(t, gotAccept, "application/pdf")
}

func TestFetch_DefaultUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	_, err := New(Config{}, srv.Client()).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				hits.Add(1)
				w.WriteHeader(status)
			}))
			defer srv.Close()

			_, err := New(Config{}, srv.Client()).Fetch(context.Background(), srv.URL)
			assert.ErrorIs(t, err, domain.ErrFetchFailure)
			assert.Contains(t, err.Error(), "status")
			assert.Equal(t, int32(1), hits.Load(), "no retries")
		})
	}
}

func TestFetch_Redirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	})
	mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := New(Config{MaxRedirects: 3}, srv.Client())

	doc, err := f.Fetch(context.Background(), srv.URL+"/old")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/new", doc.URI)
	assert.Equal(t, "application/pdf", doc.MIMEType)

	_, err = f.Fetch(context.Background(), srv.URL+"/loop")
	assert.ErrorIs(t, err, domain.ErrFetchFailure)
}

func TestFetch_BodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
	}))
	defer srv.Close()

	_, err := New(Config{MaxBytes: 1024}, srv.Client()).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, domain.ErrFetchFailure)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestFetch_BodyAtLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 1024)))
	}))
	defer srv.Close()

	doc, err := New(Config{MaxBytes: 1024}, srv.Client()).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, doc.Content, 1024)
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(Config{Timeout: 50 * time.Millisecond}, srv.Client()).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, domain.ErrFetchFailure)
}

func TestFetch_UnsupportedScheme(t *testing.T) {
	_, err := New(Config{}, nil).Fetch(context.Background(), "ftp://example.com/file.pdf")
	assert.ErrorIs(t, err, domain.ErrFetchFailure)
}

func TestFetch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(Config{}, nil).Fetch(context.Background(), url)
	assert.ErrorIs(t, err, domain.ErrFetchFailure)
}

func TestFetch_TooManyRequestsSetsBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := New(Config{}, srv.Client())
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, domain.ErrFetchFailure)

	f.limiter.mu.Lock()
	retryAt := f.limiter.retryAt
	f.limiter.mu.Unlock()
	assert.WithinDuration(t, time.Now().Add(120*time.Second), retryAt, 5*time.Second)

	// The next fetch waits for the backoff and gives up with the context.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = f.Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, domain.ErrFetchFailure)
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, retryAfter("5"))
	assert.Equal(t, time.Duration(0), retryAfter(""))
	assert.Equal(t, time.Duration(0), retryAfter("soon"))

	future := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	assert.InDelta(t, time.Minute.Seconds(), retryAfter(future).Seconds(), 2)
}

func TestRateLimiter_Unlimited(t *testing.T) {
	l := NewRateLimiter(0, 0)
	for i := 0; i < 100; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
}

func TestRateLimiter_RespectsContext(t *testing.T) {
	l := NewRateLimiter(0.001, 1)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx))
}
