// Package fetch provides the HTTP implementation of the Fetcher port.
//
// Each fetch is a single bounded GET: a per-request timeout, a redirect cap,
// and a body size limit. Requests share a token-bucket rate limiter. Nothing
// is retried; any failure is reported as a fetch failure.
package fetch
