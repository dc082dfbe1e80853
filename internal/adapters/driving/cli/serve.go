package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docstats/internal/adapters/driving/rest"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST server",
	Long: `Start the REST server.

Routes:
  POST /scores/   score one source: {"text"|"web_url"|"gcs_uri": "..."}
  GET  /healthz   liveness
  GET  /readyz    readiness
  GET  /metrics   Prometheus metrics

Examples:
  docstats serve
  docstats serve --host 127.0.0.1 --port 9000
  curl -s localhost:8080/scores/ -d '{"text":"The cat sat on the mat."}'`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "listen host (default from config)")
	serveCmd.Flags().IntP("port", "p", 0, "listen port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	server := cfg.Server
	if cmd.Flags().Changed("host") {
		server.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		server.Port, _ = cmd.Flags().GetInt("port")
	}

	a, err := services(cmd.Context())
	if err != nil {
		return err
	}

	srv, err := rest.NewServer(a.Scores, rest.Options{
		MaxRequestBytes:   server.MaxRequestBytes,
		ReadHeaderTimeout: server.ReadHeaderTimeout.Duration,
		Metrics:           a.Metrics,
		MetricsHandler:    a.MetricsHandler,
		Checkers:          a.Checkers,
	})
	if err != nil {
		return err
	}

	return srv.Run(cmd.Context(), server.Addr())
}
