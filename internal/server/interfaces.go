package server

// Server is the lifecycle contract of the document server.
//
// RunServer blocks until a stop signal arrives or the listener fails;
// Shutdown stops accepting requests and drains the ones in flight.
type Server interface {
	RunServer()
	Shutdown()
}
