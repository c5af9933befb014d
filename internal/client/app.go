package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/metrics"
	"github.com/MKhiriev/second-brain-sync/internal/service"
	"github.com/MKhiriev/second-brain-sync/internal/workers"
	"github.com/MKhiriev/second-brain-sync/models"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const metricsShutdownTimeout = 5 * time.Second

type App struct {
	engine  service.SyncEngine
	workers *workers.Workers
	metrics *http.Server

	last   models.SyncState
	logger *logger.Logger
}

// NewApp assembles the client runtime. metricsAddr may be empty, in which
// case no metrics listener is started.
func NewApp(engine service.SyncEngine, ws *workers.Workers, metricsAddr string, gatherer prometheus.Gatherer, logger *logger.Logger) (*App, error) {
	if engine == nil {
		return nil, errNoSyncEngine
	}
	if ws == nil {
		ws = workers.NewWorkers()
	}

	app := &App{
		engine:  engine,
		workers: ws,
		logger:  logger,
	}
	if metricsAddr != "" && gatherer != nil {
		app.metrics = &http.Server{
			Addr:              metricsAddr,
			Handler:           metrics.Handler(gatherer),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return app, nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), stopSignals...)
	defer stop()

	controls := make(chan os.Signal, 1)
	notifyControls(controls)
	defer signal.Stop(controls)

	return a.run(ctx, controls)
}

// run blocks until ctx is done or a component fails. The engine is stopped
// last so the in-flight cycle can finish after the workers are gone.
func (a *App) run(ctx context.Context, controls <-chan os.Signal) error {
	unsubscribe := a.engine.Subscribe(a.logState)
	defer unsubscribe()

	g, ctx := errgroup.WithContext(ctx)

	a.engine.Start(ctx)
	defer a.engine.Stop()

	g.Go(func() error {
		return a.workers.Run(ctx)
	})

	if a.metrics != nil {
		g.Go(a.serveMetrics)
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer cancel()
			return a.metrics.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case sig := <-controls:
				a.handleControl(ctx, sig)
			}
		}
	})

	a.logger.Info().Msg("sync client started")
	err := g.Wait()
	a.logger.Info().Err(err).Msg("sync client stopping")

	return err
}

func (a *App) serveMetrics() error {
	a.logger.Info().Str("address", a.metrics.Addr).Msg("serving metrics")
	if err := a.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics listener: %w", err)
	}
	return nil
}

func (a *App) handleControl(ctx context.Context, sig os.Signal) {
	switch {
	case sig == nil:
	case sig == manualSyncSignal:
		if err := a.engine.SyncNow(ctx, service.ReasonManual); err != nil {
			a.logger.Warn().Err(err).Msg("manual sync failed")
		}
	case sig == toggleAuthSignal:
		var err error
		if a.engine.State().AuthStatus == models.AuthStatusSignedIn {
			err = a.engine.SignOut(ctx)
		} else {
			err = a.engine.SignIn(ctx)
		}
		if err != nil {
			a.logger.Err(err).Msg("toggle auth")
		}
	default:
		a.logger.Debug().Str("signal", sig.String()).Msg("ignored signal")
	}
}

// logState reports status and auth transitions at info level and every
// other snapshot at debug.
func (a *App) logState(state models.SyncState) {
	event := a.logger.Debug()
	if state.Status != a.last.Status || state.AuthStatus != a.last.AuthStatus {
		event = a.logger.Info()
	}
	if state.Status == models.SyncStatusError && state.ErrorMessage != a.last.ErrorMessage {
		event = a.logger.Warn()
	}
	a.last = state

	event.
		Str("status", string(state.Status)).
		Str("auth_status", string(state.AuthStatus)).
		Int("pending_changes", state.PendingChanges).
		Int("conflict_count", state.ConflictCount).
		Int("retries", state.Retries).
		Str("error_message", state.ErrorMessage).
		Time("last_successful_sync_at", state.LastSuccessfulSyncAt).
		Msg("sync state")
}
