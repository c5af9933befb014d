package validators

import (
	"context"
	"regexp"

	"github.com/MKhiriev/second-brain-sync/models"
)

const (
	FieldDocumentID = "document_id"
	FieldDocument   = "document"
)

const (
	// MaxDocumentIDLength matches the documents.document_id column.
	MaxDocumentIDLength = 128
	// MaxDocumentSize bounds one pushed document in bytes.
	MaxDocumentSize = 8 << 20
)

var documentIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

type DocumentValidator struct {
}

func NewDocumentValidator() Validator {
	return &DocumentValidator{}
}

// Validate accepts a bare document id (string) or a [models.DocumentEnvelope].
func (v *DocumentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case string:
		return validateDocumentID(value)

	case models.DocumentEnvelope:
		return v.validateEnvelope(ctx, value, fields...)
	case *models.DocumentEnvelope:
		return v.validateEnvelope(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *DocumentValidator) validateEnvelope(_ context.Context, envelope models.DocumentEnvelope, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDocumentID, FieldDocument}
	}

	for _, f := range fields {
		switch f {
		case FieldDocumentID:
			if err := validateDocumentID(envelope.DocumentID); err != nil {
				return err
			}
		case FieldDocument:
			if len(envelope.Document) == 0 {
				return ErrEmptyDocument
			}
			if len(envelope.Document) > MaxDocumentSize {
				return ErrDocumentTooLarge
			}
			if _, err := models.DecodeDocument(envelope.Document); err != nil {
				return ErrInvalidDocument
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateDocumentID(id string) error {
	if len(id) > MaxDocumentIDLength {
		return ErrDocumentIDTooLong
	}
	if !documentIDPattern.MatchString(id) {
		return ErrInvalidDocumentID
	}
	return nil
}
