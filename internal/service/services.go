package service

import (
	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/metrics"
	"github.com/MKhiriev/second-brain-sync/internal/store"
)

type Services struct {
	DocumentService DocumentService
}

func NewServices(storages *store.Storages, m *metrics.Server, logger *logger.Logger) *Services {
	documents := NewDocumentService(storages.DocumentRepository, m, logger)

	return &Services{
		DocumentService: NewDocumentValidationService().Wrap(documents),
	}
}
