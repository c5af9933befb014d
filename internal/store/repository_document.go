package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/models"
)

// documentRepository is the PostgreSQL-backed implementation of
// [DocumentRepository] over the "documents" table.
type documentRepository struct {
	*DB
	logger *logger.Logger
}

// NewDocumentRepository constructs a [DocumentRepository] backed by db.
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	return &documentRepository{
		DB:     db,
		logger: logger,
	}
}

// GetDocument returns the stored envelope or [ErrDocumentNotFound].
func (r *documentRepository) GetDocument(ctx context.Context, documentID string) (models.DocumentEnvelope, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetDocumentQuery(documentID)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.GetDocument").Msg("failed to create query")
		return models.DocumentEnvelope{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		envelope models.DocumentEnvelope
		payload  []byte
	)
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(
		&envelope.DocumentID,
		&payload,
		&envelope.Version,
		&envelope.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DocumentEnvelope{}, ErrDocumentNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.GetDocument").
			Str("document_id", documentID).
			Str("pg_code", postgresError(err)).
			Msg("failed to query document")
		return models.DocumentEnvelope{}, r.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}

	envelope.Document = json.RawMessage(payload)
	return envelope, nil
}

// SaveDocument upserts payload and returns the stored envelope with its new
// version and timestamp.
func (r *documentRepository) SaveDocument(ctx context.Context, documentID string, payload json.RawMessage) (models.DocumentEnvelope, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSaveDocumentQuery(documentID, payload)
	if err != nil {
		log.Err(err).Str("func", "documentRepository.SaveDocument").Msg("failed to create query")
		return models.DocumentEnvelope{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	envelope := models.DocumentEnvelope{DocumentID: documentID, Document: payload}
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&envelope.Version, &envelope.UpdatedAt)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.SaveDocument").
			Str("document_id", documentID).
			Int("size", len(payload)).
			Str("pg_code", postgresError(err)).
			Msg("failed to upsert document")
		return models.DocumentEnvelope{}, r.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	return envelope, nil
}

func (r *documentRepository) Ping(ctx context.Context) error {
	if err := r.DB.PingContext(ctx); err != nil {
		return r.classify(err)
	}
	return nil
}

// classify marks retryable database failures with [ErrStorageUnavailable].
func (r *documentRepository) classify(err error) error {
	if r.errorClassificator != nil && r.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return err
}
