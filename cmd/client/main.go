package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/second-brain-sync/internal/adapter"
	"github.com/MKhiriev/second-brain-sync/internal/client"
	"github.com/MKhiriev/second-brain-sync/internal/config"
	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/metrics"
	"github.com/MKhiriev/second-brain-sync/internal/service"
	"github.com/MKhiriev/second-brain-sync/internal/store"
	"github.com/MKhiriev/second-brain-sync/internal/workers"
	"github.com/MKhiriev/second-brain-sync/models"
	"github.com/jonboulle/clockwork"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("second-brain-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = logger.NewRotatingLogger("second-brain-client", cfg.Log.File, cfg.Log.Level)

	ctx := context.Background()

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	remote, err := adapter.NewRemote(cfg.Adapter, storages.Documents, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote transport")
	}

	registry := metrics.NewRegistry()
	clock := clockwork.NewRealClock()

	engine, err := service.NewOrchestrator(ctx, storages.Documents, remote,
		service.WithClock(clock),
		service.WithLogger(log),
		service.WithMetrics(metrics.NewSync(registry)),
		service.WithRetryPolicy(cfg.Sync.Policy),
		service.WithConcurrency(cfg.Sync.Concurrency),
		service.WithSyncInterval(cfg.Workers.SyncInterval),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("create sync engine")
	}

	background := workers.NewWorkers(
		workers.NewConnectivityProber(remote, engine, cfg.Workers.ConnectivityInterval, clock, log),
		workers.NewPendingChangesWorker(engine, cfg.Workers.PendingInterval, clock, log),
	)

	app, err := client.NewApp(engine, background, cfg.Metrics.Address, registry, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Error().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
}
