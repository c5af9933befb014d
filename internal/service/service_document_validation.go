package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/second-brain-sync/internal/validators"
	"github.com/MKhiriev/second-brain-sync/models"
)

type DocumentValidationService struct {
	inner     DocumentService
	validator validators.Validator
}

func NewDocumentValidationService() DocumentServiceWrapper {
	return &DocumentValidationService{
		validator: validators.NewDocumentValidator(),
	}
}

func (v *DocumentValidationService) Wrap(inner DocumentService) DocumentService {
	return &DocumentValidationService{
		inner:     inner,
		validator: v.validator,
	}
}

func (v *DocumentValidationService) GetDocument(ctx context.Context, documentID string) (models.DocumentEnvelope, error) {
	if err := v.validator.Validate(ctx, documentID); err != nil {
		return models.DocumentEnvelope{}, fmt.Errorf("%w: %w", ErrInvalidDocumentID, err)
	}
	return v.inner.GetDocument(ctx, documentID)
}

func (v *DocumentValidationService) SaveDocument(ctx context.Context, envelope models.DocumentEnvelope) (models.DocumentEnvelope, error) {
	if err := v.validator.Validate(ctx, envelope, validators.FieldDocumentID); err != nil {
		return models.DocumentEnvelope{}, fmt.Errorf("%w: %w", ErrInvalidDocumentID, err)
	}
	if err := v.validator.Validate(ctx, envelope, validators.FieldDocument); err != nil {
		return models.DocumentEnvelope{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return v.inner.SaveDocument(ctx, envelope)
}

func (v *DocumentValidationService) Ping(ctx context.Context) error {
	return v.inner.Ping(ctx)
}
