//go:build !unix

package client

import "os"

// Platforms without user signals only get the stop signal; manual sync and
// auth toggling are unavailable there.
var (
	stopSignals = []os.Signal{os.Interrupt}

	manualSyncSignal os.Signal
	toggleAuthSignal os.Signal
)

func notifyControls(chan<- os.Signal) {}
