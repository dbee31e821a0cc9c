// Package server exposes dependents queries over HTTP.
//
// # Endpoints
//
//	GET /healthz                    liveness and snapshot summary
//	GET /v1/packages                every loaded package
//	GET /v1/dependents/{name}       dependents of name
//
// The dependents endpoint accepts direct=true, owners=a,b and
// format=json|text|markdown|dot|svg. Errors are JSON objects carrying the
// error code and message, with the status derived from the code.
//
// The project set is loaded once before the server starts and never
// refreshed, so the server never writes to the catalog store while serving.
// Rendered responses are memoized in a bounded LRU keyed by the normalized
// query.
//
// Every response carries an X-Request-ID header; an incoming one is kept,
// otherwise a random UUID is generated.
package server
