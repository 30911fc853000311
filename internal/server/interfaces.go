package server

// Server is the lifecycle contract shared by the transport servers.
type Server interface {
	// RunServer starts serving and blocks until the server stops.
	RunServer()

	// Shutdown stops the server gracefully and frees its resources.
	Shutdown()
}
