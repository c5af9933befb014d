package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/second-brain-sync/internal/config"
	"github.com/MKhiriev/second-brain-sync/internal/logger"
)

// ClientStorages groups the client-side stores passed to the sync engine.
type ClientStorages struct {
	// KV is the raw key/value store selected by the configured driver.
	KV KVStore

	// Documents reads and writes documents, the shadow map and the auth flag.
	Documents *DocumentStore

	closer func() error
}

// NewClientStorages opens the key/value store selected by cfg.Driver:
//   - "sqlite": a SQLite file at cfg.DSN, migrated on open;
//   - "file": a JSON file at cfg.DSN;
//   - "memory": nothing is persisted.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Str("driver", cfg.Driver).Msg("creating new storages...")

	var (
		kv     KVStore
		closer = func() error { return nil }
	)

	switch cfg.Driver {
	case config.LocalDriverSQLite, "":
		db, err := NewConnectSQLite(ctx, cfg.DSN, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		kv = NewSQLiteKVStore(db, log)
		closer = db.Close

	case config.LocalDriverFile:
		fileKV, err := NewFileKVStore(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("file storage error: %w", err)
		}
		kv = fileKV

	case config.LocalDriverMemory:
		kv = NewMemoryKVStore()

	default:
		return nil, fmt.Errorf("%w: unknown local driver %q", config.ErrInvalidStorageConfigs, cfg.Driver)
	}

	return &ClientStorages{
		KV:        kv,
		Documents: NewDocumentStore(kv),
		closer:    closer,
	}, nil
}

// Close releases the underlying database, if any.
func (s *ClientStorages) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
