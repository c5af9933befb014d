//go:build unix

package client

import (
	"os"
	"os/signal"
	"syscall"
)

var (
	stopSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

	manualSyncSignal os.Signal = syscall.SIGUSR1
	toggleAuthSignal os.Signal = syscall.SIGUSR2
)

func notifyControls(ch chan<- os.Signal) {
	signal.Notify(ch, manualSyncSignal, toggleAuthSignal)
}
