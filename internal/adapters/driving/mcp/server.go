package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/docstats/internal/health"
	"github.com/custodia-labs/docstats/internal/logger"
	"github.com/custodia-labs/docstats/internal/observe"
)

// Version is the MCP server version.
const Version = "0.1.0"

const shutdownTimeout = 10 * time.Second

// Server is the MCP server for docstats.
type Server struct {
	ports        *Ports
	server       *mcp.Server
	jsonResponse bool
	events       *EventStore
}

// Option configures a Server.
type Option func(*Server)

// WithJSONResponse makes the HTTP transport answer with plain JSON instead
// of an SSE stream.
func WithJSONResponse(v bool) Option {
	return func(s *Server) { s.jsonResponse = v }
}

// WithEventStore replaces the in-memory store used to replay HTTP streams
// to reconnecting clients.
func WithEventStore(store *EventStore) Option {
	return func(s *Server) { s.events = store }
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports, opts ...Option) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if ports.Metrics == nil {
		ports.Metrics = observe.DefaultMetrics()
	}

	impl := &mcp.Implementation{
		Name:    "docstats",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
		events: NewEventStore(DefaultMaxEventsPerStream),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("MCP server running on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP handler, with the health endpoints mounted
// next to it. Streams are recorded in the event store so clients can resume
// with Last-Event-ID.
func (s *Server) Handler() http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, &mcp.StreamableHTTPOptions{
		JSONResponse: s.jsonResponse,
		EventStore:   s.events,
	})

	mux := http.NewServeMux()
	health.New(s.ports.Checkers...).Register(mux)
	mux.Handle("/", streamable)

	return observe.Middleware(s.ports.Metrics)(mux)
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener is RunHTTP on an existing listener.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("MCP server listening on %s", ln.Addr())
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
