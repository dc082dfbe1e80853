package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docstats/internal/core/domain"
	"github.com/custodia-labs/docstats/internal/observe"
)

const (
	toolScore   = "get_readability_scores"
	toolExtract = "extract_text"
)

// SourceInput is the input schema shared by every tool. Exactly one field
// must be set.
type SourceInput struct {
	Text      string `json:"text,omitempty" jsonschema:"literal text to score"`
	WebURL    string `json:"web_url,omitempty" jsonschema:"http(s) URL of an HTML page or PDF"`
	GCSURI    string `json:"gcs_uri,omitempty" jsonschema:"gs://bucket/object URI of a PDF in Cloud Storage"`
	GCSPDFURI string `json:"gcs_pdf_uri,omitempty" jsonschema:"alias of gcs_uri"`
}

func (in SourceInput) request() domain.SourceRequest {
	return domain.SourceRequest{
		Text:      in.Text,
		WebURL:    in.WebURL,
		GCSURI:    in.GCSURI,
		GCSPDFURI: in.GCSPDFURI,
	}
}

// ExtractOutput is the output schema for the extract tool.
type ExtractOutput struct {
	Text        string `json:"text"`
	Origin      string `json:"origin"`
	Source      string `json:"source"`
	Description string `json:"description"`
	Characters  int    `json:"characters"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: toolScore,
		Description: "Compute readability metrics (Flesch, Gunning Fog, SMOG, Dale-Chall, Spache and more) " +
			"for exactly one of: literal text, a web URL (HTML or PDF), or a gs:// PDF",
	}, s.handleScore)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolExtract,
		Description: "Return the normalised plain text docstats would score for a source",
	}, s.handleExtract)
}

// handleScore handles the get_readability_scores tool invocation.
func (s *Server) handleScore(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SourceInput,
) (*mcp.CallToolResult, domain.ScoreReport, error) {
	callID := uuid.NewString()
	log := observe.Logger(ctx).With().Str("tool", toolScore).Str("call_id", callID).Logger()
	log.Debug().Msg("tool call started")
	notifyProgress(ctx, req, "scoring")

	report, err := s.ports.Scores.Score(ctx, input.request())
	s.ports.Metrics.RecordToolCall(ctx, toolScore, outcome(err))
	if err != nil {
		log.Debug().Err(err).Msg("tool call failed")
		return nil, domain.ScoreReport{}, toolError(err)
	}

	log.Debug().Int("words", report.WordCount).Msg("tool call completed")
	return nil, *report, nil
}

// handleExtract handles the extract_text tool invocation.
func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SourceInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	doc, err := s.ports.Scores.Extract(ctx, input.request())
	s.ports.Metrics.RecordToolCall(ctx, toolExtract, outcome(err))
	if err != nil {
		return nil, ExtractOutput{}, toolError(err)
	}

	return nil, ExtractOutput{
		Text:        doc.Text,
		Origin:      string(doc.Origin),
		Source:      doc.SourceID,
		Description: doc.Description,
		Characters:  len([]rune(doc.Text)),
	}, nil
}

// notifyProgress reports a step to clients that asked for progress.
// Delivery failures only cost the client a progress message.
func notifyProgress(ctx context.Context, req *mcp.CallToolRequest, message string) {
	if req == nil || req.Session == nil || req.Params == nil {
		return
	}
	token := req.Params.GetProgressToken()
	if token == nil {
		return
	}
	err := req.Session.NotifyProgress(ctx, &mcp.ProgressNotificationParams{
		ProgressToken: token,
		Message:       message,
		Total:         1,
	})
	if err != nil {
		log := observe.Logger(ctx)
		log.Debug().Err(err).Msg("progress notification not delivered")
	}
}

func outcome(err error) string {
	if err != nil {
		return domain.ErrorKind(err)
	}
	return "ok"
}
