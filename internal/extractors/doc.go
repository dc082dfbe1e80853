// Package extractors provides implementations of the Extractor interface
// for the content classes docstats can score. Each extractor knows how to
// pull readable text out of one format.
//
// Extractors are registered with the ExtractorRegistry at startup.
package extractors
