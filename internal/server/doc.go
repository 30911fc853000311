// Package server runs the enabled transport listeners (HTTP API, gRPC
// health) and coordinates their signal-driven graceful shutdown.
package server
