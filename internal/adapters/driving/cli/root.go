// Package cli implements the docstats command line using Cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docstats/internal/adapters/driven/config"
	"github.com/custodia-labs/docstats/internal/core/ports/driving"
	"github.com/custodia-labs/docstats/internal/health"
	"github.com/custodia-labs/docstats/internal/logger"
	"github.com/custodia-labs/docstats/internal/observe"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// App is everything the commands need from the composition root.
type App struct {
	// Scores is the score service every front-end drives.
	Scores driving.ScoreService

	// Metrics records request and tool metrics.
	Metrics *observe.Metrics

	// MetricsHandler serves the Prometheus exposition.
	MetricsHandler http.Handler

	// Checkers back /readyz.
	Checkers []health.Checker

	// Close flushes telemetry. May be nil.
	Close func(context.Context) error
}

// Builder wires an App from the loaded configuration.
type Builder func(ctx context.Context, cfg config.Config) (*App, error)

var (
	cfgFile  string
	verbose  bool
	jsonLogs bool

	cfg     = config.Default()
	builder Builder
	app     *App
)

var rootCmd = &cobra.Command{
	Use:   "docstats",
	Short: "Readability metrics for text, web pages and PDFs",
	Long: `docstats computes readability metrics (Flesch Reading Ease, Flesch-Kincaid,
Gunning Fog, SMOG, Dale-Chall, Spache and more) for literal text, a web page
or PDF at a URL, or a PDF stored in Google Cloud Storage.

It runs as a REST server, an MCP tool server, or a one-shot command.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "write logs as JSON")
}

// SetBuilder registers the composition root used to build services.
func SetBuilder(b Builder) {
	builder = b
}

// Version returns the build version.
func Version() string {
	return version
}

// setup loads configuration and configures logging before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		path = os.Getenv(config.EnvPrefix + "CONFIG")
	}

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = loaded

	if cmd.Flags().Changed("verbose") {
		cfg.Log.Verbose = verbose
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Log.JSON = jsonLogs
	}
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetJSON(cfg.Log.JSON)
	logger.SetVerbose(cfg.Log.Verbose)

	if path != "" {
		logger.Debug("Loaded config from %s", path)
	}
	return nil
}

// services returns the App, building it on first use.
func services(ctx context.Context) (*App, error) {
	if app != nil {
		return app, nil
	}
	if builder == nil {
		return nil, errors.New("score service not configured")
	}

	built, err := builder(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initialising services: %w", err)
	}
	app = built
	return app, nil
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)

	if app != nil && app.Close != nil {
		if cerr := app.Close(context.WithoutCancel(ctx)); cerr != nil {
			logger.Warn("Flushing telemetry: %v", cerr)
		}
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
