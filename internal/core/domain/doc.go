// Package domain defines the core business entities for docstats.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SourceRequest: The wire shape of a scoring request
//   - Source: Exactly one validated content source (text, web URL, storage URI)
//   - RawDocument: Opaque bytes fetched from a remote source
//   - ExtractedDocument: Normalised text plus provenance
//   - ScoreReport: Readability metrics and basic counts
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
