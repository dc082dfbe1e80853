package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/docstats/internal/core/domain"
	"github.com/custodia-labs/docstats/internal/core/ports/driven"
	"github.com/custodia-labs/docstats/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Defaults used when Config leaves a field zero.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultMaxBytes     = 20 << 20
	DefaultMaxRedirects = 5
	DefaultUserAgent    = "docstats/1.0 (+https://github.com/custodia-labs/docstats)"
)

// acceptHeader advertises the content docstats can score.
const acceptHeader = "text/html,application/xhtml+xml,application/pdf;q=0.9,*/*;q=0.5"

// Config configures a Fetcher.
type Config struct {
	Timeout           time.Duration
	UserAgent         string
	MaxBytes          int64
	MaxRedirects      int
	RequestsPerSecond float64
	Burst             int
}

// Fetcher retrieves web documents over HTTP(S).
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	timeout   time.Duration
	limiter   *RateLimiter
}

// New creates a Fetcher. A nil client gets a fresh http.Client; a given
// client is copied so its redirect policy can be set.
func New(cfg Config, client *http.Client) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = DefaultMaxRedirects
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	var c http.Client
	if client != nil {
		c = *client
	}
	c.CheckRedirect = checkRedirect(cfg.MaxRedirects)

	return &Fetcher{
		client:    &c,
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBytes,
		timeout:   cfg.Timeout,
		limiter:   NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}
}

// Fetch performs one GET of rawURL and returns the body, declared content
// type and final URL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.RawDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetchFailure, rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetchFailure, rawURL, err)
	}
	if !isHTTPScheme(req.URL) {
		return nil, fmt.Errorf("%w: unsupported URL scheme %q", domain.ErrFetchFailure, req.URL.Scheme)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader)

	logger.Debug("GET %s", rawURL)
	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s: timed out after %s", domain.ErrFetchFailure, rawURL, f.timeout)
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetchFailure, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		f.limiter.RecordRateLimited(retryAfter(resp.Header.Get("Retry-After")))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: HTTP status %d", domain.ErrFetchFailure, rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: reading body: %v", domain.ErrFetchFailure, rawURL, err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w: %s: body exceeds %d bytes", domain.ErrFetchFailure, rawURL, f.maxBytes)
	}

	logger.Debug("Fetched %s: status %d, %d bytes, %q", rawURL, resp.StatusCode, len(body), resp.Header.Get("Content-Type"))
	return &domain.RawDocument{
		URI:        resp.Request.URL.String(),
		MIMEType:   resp.Header.Get("Content-Type"),
		Content:    body,
		StatusCode: resp.StatusCode,
	}, nil
}

func checkRedirect(maxHops int) func(req *http.Request, via []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxHops {
			return fmt.Errorf("stopped after %d redirects", maxHops)
		}
		if !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// retryAfter parses a Retry-After header given in seconds or as an HTTP date.
func retryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		return time.Until(t)
	}
	return 0
}
