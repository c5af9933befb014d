package merge

import (
	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/second-brain-sync/models"
)

// Merger reconciles a local and a remote copy of the same document.
// It is safe for concurrent use.
type Merger struct {
	clock clockwork.Clock
}

// NewMerger returns a Merger using clock for the "now" fallback of merged
// entities. A nil clock means wall-clock time.
func NewMerger(clock clockwork.Clock) *Merger {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Merger{clock: clock}
}

// Merge returns the reconciled document and the number of field-level
// conflicts encountered. Inputs are never modified.
//
//   - both nil: nil, 0
//   - one nil: the other side unchanged, 0
//   - both entity collections with the same field: entity-level merge
//   - otherwise: whole-document last-writer-wins, 0
func (m *Merger) Merge(local, remote models.Document) (models.Document, int) {
	switch {
	case local == nil && remote == nil:
		return nil, 0
	case local == nil:
		return remote, 0
	case remote == nil:
		return local, 0
	}

	if canonicalJSON(local) == canonicalJSON(remote) {
		return local, 0
	}

	localShape := Classify(local)
	remoteShape := Classify(remote)

	if localShape.Kind == ShapeEntityCollection &&
		remoteShape.Kind == ShapeEntityCollection &&
		localShape.Field == remoteShape.Field {
		return m.mergeCollections(localShape, remoteShape)
	}

	return mergeWhole(local, remote), 0
}

// mergeWhole keeps the side with the later updatedAt/lastSyncedAt.
func mergeWhole(local, remote models.Document) models.Document {
	winner, _ := pickLatest(
		fieldValue{value: local, present: true},
		fieldValue{value: remote, present: true},
		documentTimestamp(local),
		documentTimestamp(remote),
	)
	return winner.value
}

func documentTimestamp(doc models.Document) string {
	obj, ok := doc.(map[string]any)
	if !ok {
		return ""
	}
	return firstNonEmpty(
		stringValue(obj, models.EntityUpdatedAtField),
		stringValue(obj, models.DocumentLastSyncedAtField),
	)
}

func (m *Merger) mergeCollections(local, remote Shape) (models.Document, int) {
	entities, conflicts := m.mergeEntities(local.Entities, remote.Entities)

	items := make([]any, 0, len(entities))
	for _, e := range entities {
		items = append(items, e)
	}

	if local.Bare && remote.Bare {
		return items, conflicts
	}

	merged := make(map[string]any, len(local.Object)+len(remote.Object))
	for k, v := range local.Object {
		merged[k] = v
	}
	for k, v := range remote.Object {
		merged[k] = v
	}
	merged[local.Field] = items

	return merged, conflicts
}
