// Command docstats computes readability metrics over REST, MCP or the command line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/docstats/internal/adapters/driven/config"
	"github.com/custodia-labs/docstats/internal/adapters/driven/fetch"
	"github.com/custodia-labs/docstats/internal/adapters/driven/gcs"
	"github.com/custodia-labs/docstats/internal/adapters/driving/cli"
	"github.com/custodia-labs/docstats/internal/core/services"
	"github.com/custodia-labs/docstats/internal/extractors"
	"github.com/custodia-labs/docstats/internal/health"
	"github.com/custodia-labs/docstats/internal/logger"
	"github.com/custodia-labs/docstats/internal/observe"
	"github.com/custodia-labs/docstats/internal/readability"
)

func main() {
	cli.SetBuilder(build)
	os.Exit(cli.Execute())
}

// build is the composition root: it wires driven adapters into the core
// services according to cfg.
func build(ctx context.Context, cfg config.Config) (*cli.App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "docstats",
		ServiceVersion: cli.Version(),
		Registerer:     registry,
	})
	if err != nil {
		return nil, fmt.Errorf("initialising telemetry: %w", err)
	}
	metrics := observe.DefaultMetrics()

	fetcher := fetch.New(fetch.Config{
		Timeout:           cfg.Fetch.Timeout.Duration,
		UserAgent:         cfg.Fetch.UserAgent,
		MaxBytes:          cfg.Fetch.MaxBytes,
		MaxRedirects:      cfg.Fetch.MaxRedirects,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
		Burst:             cfg.Fetch.Burst,
	}, nil)

	store := gcs.New(gcs.Config{
		Endpoint:        cfg.Storage.Endpoint,
		CredentialsFile: cfg.Storage.CredentialsFile,
		AccessToken:     cfg.Storage.AccessToken,
		Anonymous:       cfg.Storage.Anonymous,
		Timeout:         cfg.Storage.Timeout.Duration,
		MaxBytes:        cfg.PDF.MaxBytes,
	})

	extractorRegistry := extractors.Default(cfg.PDF.MaxBytes)

	resolver := services.NewResolver(fetcher, store, extractorRegistry)
	scores := services.NewScoreService(resolver, readability.New())
	scores.SetMetrics(metrics)

	logger.Debug("Services ready (fetch timeout %s, storage timeout %s)",
		cfg.Fetch.Timeout.Duration, cfg.Storage.Timeout.Duration)

	return &cli.App{
		Scores:         scores,
		Metrics:        metrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Checkers: []health.Checker{{Name: "storage", Check: store.Ready}},
		Close: shutdown,
	}, nil
}
