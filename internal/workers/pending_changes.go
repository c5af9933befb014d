package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/jonboulle/clockwork"
)

// PendingChangesWorker recounts local edits on a fixed period so that edits
// made outside the sync client show up in the published state.
type PendingChangesWorker struct {
	counter  PendingChangesCounter
	interval time.Duration
	clock    clockwork.Clock

	logger *logger.Logger
}

func NewPendingChangesWorker(counter PendingChangesCounter, interval time.Duration, clock clockwork.Clock, logger *logger.Logger) *PendingChangesWorker {
	return &PendingChangesWorker{
		counter:  counter,
		interval: interval,
		clock:    clock,
		logger:   logger,
	}
}

func (w *PendingChangesWorker) Run(ctx context.Context) error {
	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			n, err := w.counter.RecalculatePendingChanges(ctx)
			if err != nil {
				// a broken local store is not fatal; the next tick retries
				w.logger.Err(err).Msg("recount pending changes")
				continue
			}
			w.logger.Debug().Int("pending_changes", n).Msg("pending changes recounted")
		}
	}
}
