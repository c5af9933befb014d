package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/metrics"
	"github.com/MKhiriev/second-brain-sync/internal/store"
	"github.com/MKhiriev/second-brain-sync/models"
)

type documentService struct {
	documentRepository store.DocumentRepository
	metrics            *metrics.Server

	logger *logger.Logger
}

func NewDocumentService(documentRepository store.DocumentRepository, m *metrics.Server, logger *logger.Logger) DocumentService {
	return &documentService{
		documentRepository: documentRepository,
		metrics:            m,
		logger:             logger,
	}
}

// GetDocument returns the latest pushed copy. A document nobody pushed yet
// yields [ErrDocumentNotFound], which is not counted as a failed pull.
func (d *documentService) GetDocument(ctx context.Context, documentID string) (models.DocumentEnvelope, error) {
	envelope, err := d.documentRepository.GetDocument(ctx, documentID)
	if errors.Is(err, store.ErrDocumentNotFound) {
		d.metrics.ObserveRequest(metrics.OperationPull, nil)
		return models.DocumentEnvelope{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, documentID)
	}
	d.metrics.ObserveRequest(metrics.OperationPull, err)
	if err != nil {
		return models.DocumentEnvelope{}, err
	}
	return envelope, nil
}

// SaveDocument replaces the stored copy with envelope.Document.
func (d *documentService) SaveDocument(ctx context.Context, envelope models.DocumentEnvelope) (models.DocumentEnvelope, error) {
	saved, err := d.documentRepository.SaveDocument(ctx, envelope.DocumentID, envelope.Document)
	d.metrics.ObserveRequest(metrics.OperationPush, err)
	if err != nil {
		return models.DocumentEnvelope{}, err
	}

	logger.FromContext(ctx).Debug().
		Str("document_id", saved.DocumentID).
		Int64("version", saved.Version).
		Msg("document saved")
	return saved, nil
}

func (d *documentService) Ping(ctx context.Context) error {
	return d.documentRepository.Ping(ctx)
}
