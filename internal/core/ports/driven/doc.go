// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Fetcher: Retrieves bytes for a web URL (HTTP adapter)
//   - ObjectStore: Reads a cloud storage object (Cloud Storage adapter)
//   - Extractor: Turns HTML or PDF bytes into plain text
//   - ExtractorRegistry: Selects the extractor for a content class
//   - Scorer: Computes readability metrics for normalised text
//
// Storage credentials are never looked up ambiently by core: the ObjectStore
// is constructed by the caller and injected, so tests can substitute a fake.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
