package gcs

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"

	"github.com/custodia-labs/docstats/internal/core/domain"
	"github.com/custodia-labs/docstats/internal/core/ports/driven"
	"github.com/custodia-labs/docstats/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ObjectStore = (*Store)(nil)

// Defaults used when Config leaves a field zero.
const (
	DefaultTimeout  = 60 * time.Second
	DefaultMaxBytes = 50 << 20
)

// Config configures a Store.
type Config struct {
	// Endpoint overrides the API base URL (emulators, tests).
	Endpoint string

	// CredentialsFile is a service account or authorised user JSON file.
	CredentialsFile string

	// AccessToken is a pre-issued OAuth2 bearer token.
	AccessToken string

	// Anonymous disables authentication.
	Anonymous bool

	// Timeout bounds each object read.
	Timeout time.Duration

	// MaxBytes caps object size.
	MaxBytes int64
}

// Store reads objects from Google Cloud Storage.
// The API client is created on first use so that a process without
// credentials can still serve other sources.
type Store struct {
	cfg  Config
	opts []option.ClientOption

	mu      sync.Mutex
	service *storage.Service
}

// New creates a Store. Extra client options are appended after those
// derived from cfg.
func New(cfg Config, extra ...option.ClientOption) *Store {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	return &Store{
		cfg:  cfg,
		opts: append(clientOptions(cfg), extra...),
	}
}

func clientOptions(cfg Config) []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(storage.DevstorageReadOnlyScope)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	switch {
	case cfg.Anonymous:
		opts = append(opts, option.WithoutAuthentication())
	case cfg.AccessToken != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"})
		opts = append(opts, option.WithTokenSource(ts))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	return opts
}

// client returns the API client, creating it on first successful call.
func (s *Store) client(ctx context.Context) (*storage.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.service != nil {
		return s.service, nil
	}
	// The client outlives this request; credentials must not inherit its deadline.
	svc, err := storage.NewService(context.WithoutCancel(ctx), s.opts...)
	if err != nil {
		return nil, err
	}
	s.service = svc
	return svc, nil
}

// Configured reports whether explicit credentials or anonymous access were
// set. Without them the store falls back to Application Default Credentials.
func (s *Store) Configured() bool {
	return s.cfg.Anonymous || s.cfg.AccessToken != "" || s.cfg.CredentialsFile != ""
}

// Ready builds the API client when credentials are configured, so a bad
// credentials file shows up before the first gs:// request. With no
// configuration it succeeds without touching ADC.
func (s *Store) Ready(ctx context.Context) error {
	if !s.Configured() {
		return nil
	}
	if _, err := s.client(ctx); err != nil {
		return fmt.Errorf("creating storage client: %w", err)
	}
	return nil
}

// Read downloads bucket/object.
func (s *Store) Read(ctx context.Context, bucket, object string) ([]byte, error) {
	uri := domain.StorageScheme + bucket + "/" + object

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	svc, err := s.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: creating storage client: %v", domain.ErrFetchFailure, uri, err)
	}

	logger.Debug("Downloading %s", uri)
	resp, err := svc.Objects.Get(bucket, object).Context(ctx).Download()
	if err != nil {
		return nil, wrapError(uri, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.MaxBytes+1))
	if err != nil {
		return nil, wrapError(uri, err)
	}
	if int64(len(data)) > s.cfg.MaxBytes {
		return nil, fmt.Errorf("%w: %s: object exceeds %d bytes", domain.ErrFetchFailure, uri, s.cfg.MaxBytes)
	}

	logger.Debug("Downloaded %s: %d bytes", uri, len(data))
	return data, nil
}
