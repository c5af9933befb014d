package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/second-brain-sync/internal/retry"
	"github.com/MKhiriev/second-brain-sync/internal/store"
	"github.com/MKhiriev/second-brain-sync/models"
)

var testNow = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

var tasksDescriptor = models.DocumentDescriptor{ID: "work.tasks", LocalKey: "second-brain.work.tasks.work.v1"}

func testPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func newTestDocs() *store.DocumentStore {
	return store.NewDocumentStore(store.NewMemoryKVStore())
}

func doc(t *testing.T, raw string) models.Document {
	t.Helper()
	d, err := models.DecodeDocument([]byte(raw))
	require.NoError(t, err)
	return d
}

func signIn(t *testing.T, docs *store.DocumentStore) {
	t.Helper()
	require.NoError(t, docs.SaveAuth(context.Background(), models.AuthStatusSignedIn))
}

type staticIDs string

func (s staticIDs) Generate() string { return string(s) }

func newTestOrchestrator(t *testing.T, docs *store.DocumentStore, remote *fakeRemote, opts ...OrchestratorOption) (*Orchestrator, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(testNow)
	base := []OrchestratorOption{
		WithClock(clock),
		WithRetryPolicy(testPolicy()),
		WithJitterSource(func() float64 { return 0 }),
		WithDescriptors([]models.DocumentDescriptor{tasksDescriptor}),
		WithIDGenerator(staticIDs("cycle-test")),
	}
	orch, err := NewOrchestrator(context.Background(), docs, remote, append(base, opts...)...)
	require.NoError(t, err)
	return orch, clock
}

// fakeRemote is an in-memory RemoteTransport with scripted pull failures.
type fakeRemote struct {
	mu       sync.Mutex
	docs     map[string]models.Document
	pulls    map[string]int
	pushes   map[string]int
	pullErrs []error

	// entered is signalled on every pull; block, when set, holds pulls until
	// closed.
	entered chan struct{}
	block   chan struct{}
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		docs:   make(map[string]models.Document),
		pulls:  make(map[string]int),
		pushes: make(map[string]int),
	}
}

func (f *fakeRemote) Pull(ctx context.Context, documentID string) (models.Document, error) {
	f.mu.Lock()
	f.pulls[documentID]++
	if len(f.pullErrs) > 0 {
		err := f.pullErrs[0]
		f.pullErrs = f.pullErrs[1:]
		f.mu.Unlock()
		return nil, err
	}
	d := f.docs[documentID]
	entered, block := f.entered, f.block
	f.mu.Unlock()

	if entered != nil {
		select {
		case entered <- struct{}{}:
		default:
		}
	}
	if block != nil {
		<-block
	}
	return d, nil
}

func (f *fakeRemote) Push(_ context.Context, documentID string, d models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes[documentID]++
	f.docs[documentID] = d
	return nil
}

func (f *fakeRemote) pullCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pulls[id]
}

func (f *fakeRemote) pushCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pushes[id]
}

func (f *fakeRemote) failPulls(errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pullErrs = append(f.pullErrs, errs...)
}

// stateRecorder collects every delivered snapshot.
type stateRecorder struct {
	mu     sync.Mutex
	states []models.SyncState
}

func (r *stateRecorder) listen(s models.SyncState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *stateRecorder) snapshots() []models.SyncState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.SyncState(nil), r.states...)
}

func (r *stateRecorder) retries() []int {
	var out []int
	for _, s := range r.snapshots() {
		if len(out) == 0 || out[len(out)-1] != s.Retries {
			out = append(out, s.Retries)
		}
	}
	return out
}
