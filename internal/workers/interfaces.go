// Package workers runs the sync client's background loops.
//
// Each Worker blocks in Run until its context is cancelled. Workers runs a
// set of them together and stops all of them when one fails.
package workers

import "context"

// Worker is a long-running background loop.
//
// Run blocks until ctx is cancelled and returns nil in that case. A non-nil
// error means the worker gave up and the whole set should stop.
type Worker interface {
	Run(ctx context.Context) error
}

// ConnectivityTarget receives connectivity transitions.
type ConnectivityTarget interface {
	SetOnline(online bool)
}

// PendingChangesCounter recounts documents edited since the last sync.
type PendingChangesCounter interface {
	RecalculatePendingChanges(ctx context.Context) (int, error)
}
