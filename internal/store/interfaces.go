package store

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/second-brain-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KVStore is a key/value store over string keys holding JSON text.
// A missing key is reported with ok == false and a nil error.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// DocumentRepository is the server-side document storage.
type DocumentRepository interface {
	GetDocument(ctx context.Context, documentID string) (models.DocumentEnvelope, error)
	SaveDocument(ctx context.Context, documentID string, payload json.RawMessage) (models.DocumentEnvelope, error)
	Ping(ctx context.Context) error
}
