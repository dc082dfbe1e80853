// Package rest serves the score service over HTTP.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/docstats/internal/core/ports/driving"
	"github.com/custodia-labs/docstats/internal/health"
	"github.com/custodia-labs/docstats/internal/logger"
	"github.com/custodia-labs/docstats/internal/observe"
)

// ErrMissingScoreService is returned when the score service is not provided.
var ErrMissingScoreService = errors.New("rest: score service is required")

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 10 * time.Second

// Options configures the REST server.
type Options struct {
	// MaxRequestBytes caps the request body. Non-positive means 1 MiB.
	MaxRequestBytes int64

	// ReadHeaderTimeout bounds header reads. Zero means 10s.
	ReadHeaderTimeout time.Duration

	// Metrics records request metrics. Nil uses observe.DefaultMetrics.
	Metrics *observe.Metrics

	// MetricsHandler serves /metrics. Nil uses promhttp.Handler.
	MetricsHandler http.Handler

	// Checkers are run by /readyz.
	Checkers []health.Checker
}

// Server is the REST front-end.
type Server struct {
	scores  driving.ScoreService
	opts    Options
	handler http.Handler
}

// NewServer builds the router for scores.
func NewServer(scores driving.ScoreService, opts Options) (*Server, error) {
	if scores == nil {
		return nil, ErrMissingScoreService
	}
	if opts.MaxRequestBytes <= 0 {
		opts.MaxRequestBytes = 1 << 20
	}
	if opts.ReadHeaderTimeout <= 0 {
		opts.ReadHeaderTimeout = 10 * time.Second
	}
	if opts.Metrics == nil {
		opts.Metrics = observe.DefaultMetrics()
	}
	if opts.MetricsHandler == nil {
		opts.MetricsHandler = promhttp.Handler()
	}

	s := &Server{scores: scores, opts: opts}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /scores/", s.handleScore)
	mux.HandleFunc("POST /scores", s.handleScore)
	mux.Handle("GET /metrics", opts.MetricsHandler)
	health.New(opts.Checkers...).Register(mux)

	s.handler = observe.Middleware(opts.Metrics)(mux)
	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("REST server listening on %s", ln.Addr())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
