package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docstats/internal/core/domain"
)

var (
	scoreText   string
	scoreURL    string
	scoreGCSURI string
	scoreJSON   bool
	extractJSON bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score the readability of one source",
	Long: `Compute readability metrics for exactly one of literal text, a web page or
PDF at a URL, or a PDF in Google Cloud Storage.

Examples:
  docstats score --text "The cat sat on the mat."
  docstats score --url https://example.com/article --json
  docstats score --gcs-uri gs://reports/2025/q1.pdf`,
	Args: cobra.NoArgs,
	RunE: runScore,
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Print the normalised text docstats would score",
	Args:  cobra.NoArgs,
	RunE:  runExtract,
}

func init() {
	for _, c := range []*cobra.Command{scoreCmd, extractCmd} {
		c.Flags().StringVarP(&scoreText, "text", "t", "", "literal text to score")
		c.Flags().StringVarP(&scoreURL, "url", "u", "", "http(s) URL of an HTML page or PDF")
		c.Flags().StringVarP(&scoreGCSURI, "gcs-uri", "g", "", "gs://bucket/object URI of a PDF")
	}
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "output the report as JSON")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "output the document as JSON")
	rootCmd.AddCommand(scoreCmd, extractCmd)
}

func sourceRequest() domain.SourceRequest {
	return domain.SourceRequest{
		Text:   scoreText,
		WebURL: scoreURL,
		GCSURI: scoreGCSURI,
	}
}

// kindError prefixes err with its stable kind.
func kindError(err error) error {
	return fmt.Errorf("%s: %w", domain.ErrorKind(err), err)
}

func runScore(cmd *cobra.Command, _ []string) error {
	a, err := services(cmd.Context())
	if err != nil {
		return err
	}

	report, err := a.Scores.Score(cmd.Context(), sourceRequest())
	if err != nil {
		return kindError(err)
	}

	if scoreJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	outputReportTable(cmd, report)
	return nil
}

func outputReportTable(cmd *cobra.Command, report *domain.ScoreReport) {
	metrics := report.Metrics()
	width := 0
	for _, name := range domain.MetricNames {
		width = max(width, len(name))
	}

	cmd.Println("Readability:")
	for _, name := range domain.MetricNames {
		value := "n/a"
		if v := metrics[name]; v != nil {
			value = fmt.Sprintf("%.2f", *v)
		}
		cmd.Printf("  %-*s  %s\n", width, name, value)
	}
	cmd.Println()
	cmd.Println("Counts:")
	cmd.Printf("  %-*s  %d\n", width, "word_count", report.WordCount)
	cmd.Printf("  %-*s  %d\n", width, "sentence_count", report.SentenceCount)
	cmd.Printf("  %-*s  %d\n", width, "syllable_count", report.SyllableCount)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	a, err := services(cmd.Context())
	if err != nil {
		return err
	}

	doc, err := a.Scores.Extract(cmd.Context(), sourceRequest())
	if err != nil {
		return kindError(err)
	}

	if extractJSON {
		data, err := json.MarshalIndent(map[string]string{
			"text":        doc.Text,
			"origin":      string(doc.Origin),
			"source":      doc.SourceID,
			"description": doc.Description,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println("# " + doc.Description)
	cmd.Println(strings.TrimSpace(doc.Text))
	return nil
}
