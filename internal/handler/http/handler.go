package http

import (
	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

type Handler struct {
	services *service.Services
	gatherer prometheus.Gatherer
	version  string

	logger *logger.Logger
}

// NewHandler builds the REST handler. A nil gatherer leaves /metrics
// unregistered.
func NewHandler(services *service.Services, gatherer prometheus.Gatherer, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		gatherer: gatherer,
		version:  version,
		logger:   logger,
	}
}
