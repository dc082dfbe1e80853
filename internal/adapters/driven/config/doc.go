// Package config loads docstats configuration from a TOML file and the
// environment.
//
// Values are layered: built-in defaults, then the file (if any), then
// DOCSTATS_* environment variables. The environment name for a key is the
// dotted key upper-cased with dots replaced by underscores, so fetch.timeout
// becomes DOCSTATS_FETCH_TIMEOUT.
package config
