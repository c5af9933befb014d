// Package server runs the document server's HTTP transport.
//
// It owns the listener lifecycle: startup, SIGINT/SIGTERM/SIGQUIT handling
// and a bounded graceful shutdown that lets in-flight pushes finish.
package server
