// Package http provides the HTTP REST API implementation.
//
// The HTTP server exposes endpoints for:
//   - District, subdistrict and village datasets
//   - District lookup by id
//   - Search across all datasets
//   - Dataset statistics
//   - Health checks
//   - Prometheus metrics
//
// Any other path is served from the static directory.
package http
