package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/second-brain-sync/internal/logger"
)

// Storages groups the document server repositories.
type Storages struct {
	DocumentRepository DocumentRepository

	db *DB
}

// NewStorages connects to PostgreSQL at dsn and applies migrations.
func NewStorages(ctx context.Context, dsn string, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		DocumentRepository: NewDocumentRepository(db, log),
		db:                 db,
	}, nil
}

func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
