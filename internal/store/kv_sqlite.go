package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/second-brain-sync/internal/logger"
)

// sqliteKVStore keeps every key in the kv table of the client database.
type sqliteKVStore struct {
	*DB
	logger *logger.Logger
}

// NewSQLiteKVStore returns a [KVStore] backed by db. The kv table must exist,
// see [DB.Migrate].
func NewSQLiteKVStore(db *DB, logger *logger.Logger) KVStore {
	return &sqliteKVStore{
		DB:     db,
		logger: logger,
	}
}

func (s *sqliteKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.FromContext(ctx)

	var value string
	err := s.DB.QueryRowContext(ctx, getValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "sqliteKVStore.Get").
			Str("key", key).
			Msg("failed to read value")
		return "", false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, true, nil
}

func (s *sqliteKVStore) Set(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	if _, err := s.DB.ExecContext(ctx, setValue, key, value); err != nil {
		log.Err(err).
			Str("func", "sqliteKVStore.Set").
			Str("key", key).
			Int("size", len(value)).
			Msg("failed to upsert value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteKVStore) Remove(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	if _, err := s.DB.ExecContext(ctx, removeValue, key); err != nil {
		log.Err(err).
			Str("func", "sqliteKVStore.Remove").
			Str("key", key).
			Msg("failed to delete value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
