package merge

import "github.com/MKhiriev/second-brain-sync/models"

// PendingChanges estimates how many local changes are not reflected in the
// shadow copy. The count over-approximates: an entity counts once whether one
// field or all of them changed, and any difference between opaque documents
// counts as a single change. It must not be used for merge decisions.
func PendingChanges(local, shadow models.Document) int {
	if canonicalJSON(local) == canonicalJSON(shadow) {
		return 0
	}

	localShape := Classify(local)
	shadowShape := Classify(shadow)
	if localShape.Kind != ShapeEntityCollection ||
		shadowShape.Kind != ShapeEntityCollection ||
		localShape.Field != shadowShape.Field {
		return 1
	}

	shadowByID := make(map[string]models.Entity, len(shadowShape.Entities))
	for _, e := range shadowShape.Entities {
		shadowByID[entityID(e)] = e
	}
	localIDs := make(map[string]struct{}, len(localShape.Entities))

	delta := 0
	for _, e := range localShape.Entities {
		id := entityID(e)
		localIDs[id] = struct{}{}
		other, ok := shadowByID[id]
		if !ok || canonicalJSON(e) != canonicalJSON(other) {
			delta++
		}
	}
	for _, e := range shadowShape.Entities {
		if _, ok := localIDs[entityID(e)]; !ok {
			delta++
		}
	}
	return delta
}
