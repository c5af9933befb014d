// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/second-brain-sync/internal/adapter"
	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/merge"
	"github.com/MKhiriev/second-brain-sync/internal/metrics"
	"github.com/MKhiriev/second-brain-sync/internal/retry"
	"github.com/MKhiriev/second-brain-sync/internal/store"
	"github.com/MKhiriev/second-brain-sync/internal/utils"
	"github.com/MKhiriev/second-brain-sync/models"
)

// Cycle trigger reasons surfaced in logs and error messages.
const (
	ReasonStartup   = "startup"
	ReasonScheduled = "scheduled"
	ReasonOnline    = "online"
	ReasonAuth      = "auth"
	ReasonManual    = "manual"
)

type subscription struct {
	listener StateListener
	active   atomic.Bool
}

// delivery is one snapshot waiting to reach the listeners subscribed when it
// was taken.
type delivery struct {
	state models.SyncState
	subs  []*subscription
}

// Orchestrator owns the sync state machine of one account. At most one cycle
// runs at a time. Scheduled, connectivity and auth triggers go through a
// single-slot queue drained by one runner goroutine; SyncNow runs on the
// caller's goroutine and is dropped while a cycle is in flight.
type Orchestrator struct {
	docs    *store.DocumentStore
	runner  *CycleRunner
	clock   clockwork.Clock
	logger  *logger.Logger
	metrics *metrics.Sync
	ids     IDGenerator

	policy    retry.Policy
	retryOpts []retry.Option
	interval  time.Duration

	// cycleMu is held for the whole duration of a cycle.
	cycleMu sync.Mutex

	mu            sync.Mutex
	state         models.SyncState
	online        bool
	syncing       bool
	subscriptions []*subscription
	outbox        []delivery
	delivering    bool

	triggers chan string

	runMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ SyncEngine = (*Orchestrator)(nil)

// NewOrchestrator reads the persisted auth flag from docs and computes the
// initial pending change count. No cycle runs until Start or SyncNow.
func NewOrchestrator(ctx context.Context, docs *store.DocumentStore, transport adapter.RemoteTransport, opts ...OrchestratorOption) (*Orchestrator, error) {
	o := defaultOrchestratorOptions()
	for _, opt := range opts {
		opt(&o)
	}

	auth, err := docs.LoadAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("load auth status: %w", err)
	}

	orch := &Orchestrator{
		docs:     docs,
		runner:   NewCycleRunner(docs, transport, merge.NewMerger(o.clock), o.descriptors, o.concurrency),
		clock:    o.clock,
		logger:   o.logger,
		metrics:  o.metrics,
		ids:      o.idGenerator,
		policy:   o.policy,
		interval: o.interval,
		online:   o.online,
		state: models.SyncState{
			Status:     connectivityStatus(o.online),
			AuthStatus: auth,
		},
		triggers: make(chan string, 1),
	}
	if o.jitter != nil {
		orch.retryOpts = append(orch.retryOpts, retry.WithJitterSource(o.jitter))
	}
	for _, l := range o.listeners {
		orch.subscriptions = append(orch.subscriptions, newSubscription(l))
	}

	orch.recalculate(ctx)
	return orch, nil
}

// Start schedules a cycle every interval and queues an immediate startup
// cycle. Calling Start on a running orchestrator does nothing.
func (o *Orchestrator) Start(ctx context.Context) {
	o.runMu.Lock()
	defer o.runMu.Unlock()

	if o.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	ticker := o.clock.NewTicker(o.interval)
	o.wg.Add(1)
	go o.run(runCtx, ticker)

	o.enqueue(ReasonStartup)
}

// Stop cancels the ticker and waits for the runner to exit. A cycle already
// in flight runs to completion first.
func (o *Orchestrator) Stop() {
	o.runMu.Lock()
	cancel := o.cancel
	o.cancel = nil
	o.runMu.Unlock()

	if cancel != nil {
		cancel()
	}
	o.wg.Wait()
}

func (o *Orchestrator) run(ctx context.Context, ticker clockwork.Ticker) {
	defer o.wg.Done()
	defer ticker.Stop()

	cycleCtx := context.WithoutCancel(ctx)
	for {
		var reason string
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			reason = ReasonScheduled
		case reason = <-o.triggers:
		}

		if ctx.Err() != nil {
			return
		}
		_ = o.trySync(cycleCtx, reason, true)
	}
}

func (o *Orchestrator) enqueue(reason string) {
	select {
	case o.triggers <- reason:
	default:
	}
}

// SyncNow implements [SyncEngine].
func (o *Orchestrator) SyncNow(ctx context.Context, reason string) error {
	return o.trySync(ctx, reason, false)
}

// trySync refreshes the pending count, then runs a cycle unless another one
// is in flight, the account is signed out or the remote is unreachable. With
// wait set it queues behind an in-flight cycle instead of giving up.
func (o *Orchestrator) trySync(ctx context.Context, reason string, wait bool) error {
	o.recalculate(ctx)

	if wait {
		o.cycleMu.Lock()
	} else if !o.cycleMu.TryLock() {
		return nil
	}
	defer o.cycleMu.Unlock()

	if !o.admit() {
		return nil
	}
	return o.runCycle(ctx, reason)
}

// admit applies the auth and connectivity gates, settling the status when a
// cycle is refused.
func (o *Orchestrator) admit() bool {
	admitted := false
	o.update(func(s *models.SyncState) {
		switch {
		case s.AuthStatus != models.AuthStatusSignedIn:
			s.Status = connectivityStatus(o.online)
		case !o.online:
			s.Status = models.SyncStatusOffline
		default:
			admitted = true
			o.syncing = true
			s.Status = models.SyncStatusSyncing
		}
		s.ErrorMessage = ""
	})
	return admitted
}

func (o *Orchestrator) runCycle(ctx context.Context, reason string) error {
	cycleID := o.ids.Generate()
	log := o.logger.GetChildLogger()
	log.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("cycle_id", cycleID).Str("reason", reason)
	})
	ctx = log.WithContext(utils.WithCycleID(ctx, cycleID))

	start := o.clock.Now()
	result, err := retry.Do[models.CycleResult](ctx, o.policy, o.runner.RunCycle, func(attempt int) {
		o.metrics.ObserveAttempt(attempt)
		if attempt > 0 {
			log.Warn().Int("attempt", attempt).Msg("retrying sync cycle")
		}
		o.update(func(s *models.SyncState) {
			s.Retries = attempt
		})
	}, o.retryOpts...)
	took := o.clock.Since(start)

	if err != nil {
		o.metrics.ObserveCycle(metrics.ResultFailure, 0, took)
		log.Err(err).
			Str("func", "Orchestrator.runCycle").
			Dur("took", took).
			Msg("sync cycle failed")
		o.update(func(s *models.SyncState) {
			o.syncing = false
			s.Status = models.SyncStatusError
			s.ErrorMessage = fmt.Sprintf("Sync failed (%s): %v", reason, err)
		})
	} else {
		o.metrics.ObserveCycle(metrics.ResultSuccess, result.Conflicts, took)
		log.Info().
			Int("conflicts", result.Conflicts).
			Strs("committed", result.Committed).
			Dur("took", took).
			Msg("sync cycle completed")
		o.update(func(s *models.SyncState) {
			o.syncing = false
			s.Status = models.SyncStatusIdle
			s.Retries = 0
			s.ConflictCount = result.Conflicts
			s.LastSuccessfulSyncAt = o.clock.Now().UTC()
			s.ErrorMessage = ""
		})
	}

	o.recalculate(context.WithoutCancel(ctx))
	return err
}

// SignIn persists the signed-in flag and queues an auth cycle.
func (o *Orchestrator) SignIn(ctx context.Context) error {
	if err := o.docs.SaveAuth(ctx, models.AuthStatusSignedIn); err != nil {
		return fmt.Errorf("persist auth status: %w", err)
	}

	o.update(func(s *models.SyncState) {
		s.AuthStatus = models.AuthStatusSignedIn
		if !o.syncing {
			s.Status = connectivityStatus(o.online)
		}
	})
	o.enqueue(ReasonAuth)
	return nil
}

// SignOut persists the signed-out flag. A cycle in flight is not aborted.
func (o *Orchestrator) SignOut(ctx context.Context) error {
	if err := o.docs.SaveAuth(ctx, models.AuthStatusSignedOut); err != nil {
		return fmt.Errorf("persist auth status: %w", err)
	}

	o.update(func(s *models.SyncState) {
		s.AuthStatus = models.AuthStatusSignedOut
	})
	return nil
}

// SetOnline delivers a connectivity event. Going offline never starts a
// cycle; coming back online queues one.
func (o *Orchestrator) SetOnline(online bool) {
	o.update(func(s *models.SyncState) {
		o.online = online
		switch {
		case !online:
			s.Status = models.SyncStatusOffline
		case o.syncing:
			s.Status = models.SyncStatusSyncing
		default:
			s.Status = models.SyncStatusIdle
		}
		s.ErrorMessage = ""
	})

	if online {
		o.enqueue(ReasonOnline)
	}
}

// Subscribe delivers the current state to listener right away and every
// change afterwards, until the returned func is called. Listeners may call
// back into the orchestrator; snapshots caused by such calls are delivered
// once the listener returns.
func (o *Orchestrator) Subscribe(listener StateListener) func() {
	sub := newSubscription(listener)

	o.mu.Lock()
	o.subscriptions = append(o.subscriptions, sub)
	o.outbox = append(o.outbox, delivery{state: o.state, subs: []*subscription{sub}})
	o.mu.Unlock()

	o.deliver()

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.active.Store(false)

			o.mu.Lock()
			defer o.mu.Unlock()
			o.subscriptions = slices.DeleteFunc(slices.Clone(o.subscriptions), func(s *subscription) bool {
				return s == sub
			})
		})
	}
}

func newSubscription(listener StateListener) *subscription {
	sub := &subscription{listener: listener}
	sub.active.Store(true)
	return sub
}

// State returns a snapshot of the current state.
func (o *Orchestrator) State() models.SyncState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// RecalculatePendingChanges recounts local changes against the shadow
// snapshot and publishes the result.
func (o *Orchestrator) RecalculatePendingChanges(ctx context.Context) (int, error) {
	n, err := o.runner.PendingChanges(ctx)
	if err != nil {
		return 0, fmt.Errorf("recalculate pending changes: %w", err)
	}

	o.metrics.SetPendingChanges(n)
	o.update(func(s *models.SyncState) {
		s.PendingChanges = n
	})
	return n, nil
}

func (o *Orchestrator) recalculate(ctx context.Context) {
	if _, err := o.RecalculatePendingChanges(ctx); err != nil {
		o.logger.Warn().Err(err).Str("func", "Orchestrator.recalculate").Send()
	}
}

// update applies fn under the state lock and queues the resulting snapshot
// for every listener.
func (o *Orchestrator) update(fn func(s *models.SyncState)) {
	o.mu.Lock()
	fn(&o.state)
	o.outbox = append(o.outbox, delivery{state: o.state, subs: o.subscriptions})
	o.mu.Unlock()

	o.deliver()
}

// deliver drains the outbox in order with no lock held while a listener
// runs. One goroutine drains at a time; any other caller, including a
// listener re-entering through update, leaves its snapshot in the queue.
func (o *Orchestrator) deliver() {
	o.mu.Lock()
	if o.delivering {
		o.mu.Unlock()
		return
	}
	o.delivering = true
	defer func() {
		o.delivering = false
		o.mu.Unlock()
	}()

	for len(o.outbox) > 0 {
		d := o.outbox[0]
		o.outbox = o.outbox[1:]
		o.mu.Unlock()

		for _, sub := range d.subs {
			if sub.active.Load() {
				sub.listener(d.state)
			}
		}

		o.mu.Lock()
	}
}

func connectivityStatus(online bool) models.SyncStatus {
	if online {
		return models.SyncStatusIdle
	}
	return models.SyncStatusOffline
}
