package domain

// Origin records which extractor produced a document's text.
type Origin string

const (
	// OriginText is literal text passed through without extraction.
	OriginText Origin = "text"

	// OriginHTML is text extracted from an HTML page.
	OriginHTML Origin = "html"

	// OriginPDF is text extracted from a PDF document.
	OriginPDF Origin = "pdf"
)

// ExtractedDocument is normalised text plus provenance.
// It is created by the resolver and consumed once by the scorer.
type ExtractedDocument struct {
	// Text is the normalised text handed to the scorer. Never empty.
	Text string

	// Origin is the extraction path taken.
	Origin Origin

	// SourceID identifies where the text came from (URL, gs:// URI or "direct text").
	SourceID string

	// Description is a human-readable provenance line, e.g. "Web PDF: https://...".
	Description string
}
