package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docstats/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for docstats resources.
	uriScheme = "docstats://"
)

// metricDescriptions documents each metric in report order.
var metricDescriptions = map[string]string{
	"flesch_reading_ease":          "0-100+, higher is easier",
	"flesch_kincaid_grade":         "US school grade level",
	"gunning_fog":                  "years of formal education needed",
	"smog_index":                   "grade level; needs at least 3 sentences",
	"automated_readability_index":  "grade level from characters per word",
	"coleman_liau_index":           "grade level from letters per 100 words",
	"linsear_write_formula":        "grade level from the first 100 words",
	"dale_chall_readability_score": "4.9 or lower is easy for grade 4",
	"text_standard":                "consensus grade level across formulas",
	"spache":                       "primary-grade level; needs at least 100 words",
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static catalogue of the metrics in a score report.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "metrics",
		Name:        "metrics",
		Description: "Readability metrics reported by get_readability_scores",
		MIMEType:    "application/json",
	}, s.handleMetricsResource)

	// Template for extracted document text.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{+source}",
		Name:        "document-text",
		Description: "Normalised text of a web URL or gs:// PDF",
		MIMEType:    "text/plain",
	}, s.handleDocumentResource)
}

// handleMetricsResource returns the metric catalogue.
func (s *Server) handleMetricsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type metricInfo struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	infos := make([]metricInfo, len(domain.MetricNames))
	for i, name := range domain.MetricNames {
		infos[i] = metricInfo{Name: name, Description: metricDescriptions[name]}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling metrics: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentResource returns the extracted text of a remote document.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract the source from URI: docstats://documents/{source}
	srcReq, ok := extractSource(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Scores.Extract(ctx, srcReq)
	if err != nil {
		return nil, fmt.Errorf("extracting document: %w", toolError(err))
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     doc.Text,
		}},
	}, nil
}

// extractSource maps docstats://documents/{source} to a request. The source
// is either a gs:// URI or an http(s) URL.
func extractSource(uri string) (domain.SourceRequest, bool) {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return domain.SourceRequest{}, false
	}

	source := strings.TrimPrefix(uri, prefix)
	switch {
	case strings.HasPrefix(source, "gs://"):
		return domain.SourceRequest{GCSURI: source}, true
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return domain.SourceRequest{WebURL: source}, true
	default:
		return domain.SourceRequest{}, false
	}
}
