package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/second-brain-sync/internal/config"
	"github.com/MKhiriev/second-brain-sync/internal/handler"
	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/metrics"
	"github.com/MKhiriev/second-brain-sync/internal/server"
	"github.com/MKhiriev/second-brain-sync/internal/service"
	"github.com/MKhiriev/second-brain-sync/internal/store"
	"github.com/MKhiriev/second-brain-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := buildInfo()

	log := logger.NewLogger("second-brain-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = logger.NewRotatingLogger("second-brain-server", cfg.Log.File, cfg.Log.Level)

	log.Debug().
		Str("address", cfg.HTTPAddress).
		Dur("request_timeout", cfg.RequestTimeout).
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	registry := metrics.NewRegistry()
	services := service.NewServices(storages, metrics.NewServer(registry), log)

	version := cfg.Version
	if info.HasVersion() {
		version = info.BuildVersion()
	}

	serverCfg := config.Server{HTTPAddress: cfg.HTTPAddress, RequestTimeout: cfg.RequestTimeout}
	handlers, err := handler.NewHandlers(services, registry, serverCfg, version, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, serverCfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func buildInfo() models.AppBuildInfo {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(info)
	return info
}
