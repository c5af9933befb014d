package adapter

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/retry"
	"github.com/MKhiriev/second-brain-sync/internal/store"
	"github.com/MKhiriev/second-brain-sync/models"
)

// LocalDriveTransport simulates a remote drive inside the local store. All
// remote documents live in one id -> document map under [store.RemoteKey].
// Calls fail transiently at the configured fault rate so retry paths are
// exercised without a server.
type LocalDriveTransport struct {
	docs      *store.DocumentStore
	faultRate float64
	random    func() float64

	mu     sync.Mutex
	root   map[string]models.Document
	loaded bool
}

// LocalDriveOption customises a [LocalDriveTransport].
type LocalDriveOption func(*LocalDriveTransport)

// WithRandomSource replaces the fault dice. fn must return values in [0, 1).
func WithRandomSource(fn func() float64) LocalDriveOption {
	return func(t *LocalDriveTransport) {
		t.random = fn
	}
}

// NewLocalDriveTransport returns a simulated remote over docs. A faultRate of
// zero or less disables fault injection.
func NewLocalDriveTransport(docs *store.DocumentStore, faultRate float64, opts ...LocalDriveOption) *LocalDriveTransport {
	t := &LocalDriveTransport{
		docs:      docs,
		faultRate: faultRate,
		random:    rand.Float64,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Pull implements [RemoteTransport].
func (t *LocalDriveTransport) Pull(ctx context.Context, documentID string) (models.Document, error) {
	if err := t.fault("pulling"); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.load(ctx); err != nil {
		return nil, fmt.Errorf("pull %s: %w", documentID, err)
	}
	return t.root[documentID], nil
}

// Push implements [RemoteTransport]. The whole remote map is rewritten; on a
// failed write the in-memory copy is left untouched.
func (t *LocalDriveTransport) Push(ctx context.Context, documentID string, doc models.Document) error {
	if err := t.fault("pushing"); err != nil {
		return err
	}

	// stored by value so later changes to doc never leak into the remote
	payload, err := models.EncodeDocument(doc)
	if err != nil {
		return retry.Permanent(fmt.Errorf("push %s: encode: %w", documentID, err))
	}
	stored, err := models.DecodeDocument(payload)
	if err != nil {
		return retry.Permanent(fmt.Errorf("push %s: decode: %w", documentID, err))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err = t.load(ctx); err != nil {
		return fmt.Errorf("push %s: %w", documentID, err)
	}

	next := make(map[string]models.Document, len(t.root)+1)
	for id, d := range t.root {
		next[id] = d
	}
	next[documentID] = stored

	if err = t.docs.SaveDocumentMap(ctx, store.RemoteKey, next); err != nil {
		return fmt.Errorf("push %s: %w", documentID, err)
	}
	t.root = next

	logger.FromContext(ctx).Debug().
		Str("document_id", documentID).
		Msg("document pushed to local drive")
	return nil
}

// Ping implements [HealthChecker]. The simulated drive is always reachable.
func (t *LocalDriveTransport) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (t *LocalDriveTransport) fault(op string) error {
	if t.faultRate <= 0 || t.random() >= t.faultRate {
		return nil
	}
	return retry.Transient(fmt.Errorf("%w while %s document", ErrSimulatedFault, op))
}

// load reads the remote map once. Callers hold t.mu.
func (t *LocalDriveTransport) load(ctx context.Context) error {
	if t.loaded {
		return nil
	}
	root, err := t.docs.LoadDocumentMap(ctx, store.RemoteKey)
	if err != nil {
		return err
	}
	t.root = root
	t.loaded = true
	return nil
}
