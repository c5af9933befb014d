package service

import (
	"context"

	"github.com/MKhiriev/second-brain-sync/models"
)

// StateListener receives every [models.SyncState] snapshot. Listeners run
// synchronously on the goroutine that changed the state and must not call
// back into mutating orchestrator methods.
type StateListener func(models.SyncState)

// SyncEngine is the client-facing contract of the sync orchestrator.
type SyncEngine interface {
	Start(ctx context.Context)
	Stop()

	// SyncNow runs a cycle on the caller's goroutine unless gated. It returns
	// the cycle error, or nil when the cycle succeeded or was skipped.
	SyncNow(ctx context.Context, reason string) error

	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	SetOnline(online bool)

	Subscribe(listener StateListener) (unsubscribe func())
	State() models.SyncState
	RecalculatePendingChanges(ctx context.Context) (int, error)
}

// DocumentService is the server-side store of remote document copies.
type DocumentService interface {
	GetDocument(ctx context.Context, documentID string) (models.DocumentEnvelope, error)
	SaveDocument(ctx context.Context, envelope models.DocumentEnvelope) (models.DocumentEnvelope, error)
	Ping(ctx context.Context) error
}

// DocumentServiceWrapper defines middleware composition for DocumentService.
// Implementations wrap an existing DocumentService to add behavior such as
// validating.
type DocumentServiceWrapper interface {
	Wrap(DocumentService) DocumentService
}
