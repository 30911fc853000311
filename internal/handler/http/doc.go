// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API: authentication and session resolution, user administration, per-domain
// AI assistant calls, request tracing, access logging, and response
// compression. Cross-cutting concerns are handled in this package before
// requests are delegated to the service layer.
package http
