package merge

import (
	"sort"

	"github.com/MKhiriev/second-brain-sync/models"
)

// mergeEntities unions two collections by id. Local order is kept; entities
// only present remotely are appended in remote order.
func (m *Merger) mergeEntities(local, remote []models.Entity) ([]models.Entity, int) {
	order := make([]string, 0, len(local)+len(remote))
	byID := make(map[string]models.Entity, len(local)+len(remote))

	for _, e := range local {
		id := entityID(e)
		if _, seen := byID[id]; !seen {
			order = append(order, id)
		}
		byID[id] = e
	}

	conflicts := 0
	for _, re := range remote {
		id := entityID(re)
		le, ok := byID[id]
		if !ok {
			order = append(order, id)
			byID[id] = re
			continue
		}

		merged, c := m.mergeEntityFields(le, re)
		conflicts += c
		byID[id] = merged
	}

	result := make([]models.Entity, 0, len(order))
	for _, id := range order {
		result = append(result, byID[id])
	}
	return result, conflicts
}

// mergeEntityFields merges two versions of the same entity field by field.
// A conflict is counted for a field when the values differ and both sides
// carry an effective timestamp for it.
func (m *Merger) mergeEntityFields(local, remote models.Entity) (models.Entity, int) {
	if canonicalJSON(local) == canonicalJSON(remote) {
		return local, 0
	}

	localStamps := fieldTimestamps(local)
	remoteStamps := fieldTimestamps(remote)

	merged := make(models.Entity, len(local)+len(remote))
	for k, v := range local {
		merged[k] = v
	}
	for k, v := range remote {
		merged[k] = v
	}

	mergedStamps := make(map[string]any, len(localStamps)+len(remoteStamps))
	for field, ts := range localStamps {
		mergedStamps[field] = ts
	}
	for field, ts := range remoteStamps {
		if existing, ok := localStamps[field]; ok {
			ts = pickLatestTimestamp(existing, ts)
		}
		mergedStamps[field] = ts
	}

	conflicts := 0
	for _, field := range candidateFields(local, remote, localStamps, remoteStamps) {
		lv := lookup(local, field)
		rv := lookup(remote, field)
		lts := effectiveTimestamp(local, localStamps, field)
		rts := effectiveTimestamp(remote, remoteStamps, field)

		winner, ts := pickLatest(lv, rv, lts, rts)

		if !lv.equal(rv) && lts != "" && rts != "" {
			conflicts++
		}

		if winner.present {
			merged[field] = winner.value
		} else {
			delete(merged, field)
		}
		if ts != "" {
			mergedStamps[field] = ts
		}
	}

	// ids are not stamped
	delete(mergedStamps, models.EntityIDField)

	updatedAt := pickLatestTimestamp(
		stringValue(local, models.EntityUpdatedAtField),
		stringValue(remote, models.EntityUpdatedAtField),
	)
	if updatedAt == "" {
		updatedAt = formatNow(m.clock)
	}
	merged[models.EntityUpdatedAtField] = updatedAt

	if len(mergedStamps) > 0 {
		merged[models.EntityLastUpdatedByFieldField] = mergedStamps
	} else {
		delete(merged, models.EntityLastUpdatedByFieldField)
	}

	return merged, conflicts
}

// fieldTimestamps reads lastUpdatedByField. Non-object values yield an empty
// map and non-string entries are dropped.
func fieldTimestamps(e models.Entity) map[string]string {
	raw, ok := e[models.EntityLastUpdatedByFieldField].(map[string]any)
	if !ok {
		return map[string]string{}
	}
	stamps := make(map[string]string, len(raw))
	for field, v := range raw {
		if s, isStr := v.(string); isStr && s != "" {
			stamps[field] = s
		}
	}
	return stamps
}

func effectiveTimestamp(e models.Entity, stamps map[string]string, field string) string {
	return firstNonEmpty(
		stamps[field],
		stringValue(e, models.EntityUpdatedAtField),
		stringValue(e, models.EntityCreatedAtField),
	)
}

// candidateFields is the sorted union of entity keys and stamped fields,
// without the bookkeeping keys that are merged separately.
func candidateFields(local, remote models.Entity, localStamps, remoteStamps map[string]string) []string {
	set := make(map[string]struct{}, len(local)+len(remote))
	for k := range local {
		set[k] = struct{}{}
	}
	for k := range remote {
		set[k] = struct{}{}
	}
	for k := range localStamps {
		set[k] = struct{}{}
	}
	for k := range remoteStamps {
		set[k] = struct{}{}
	}
	delete(set, models.EntityLastUpdatedByFieldField)
	delete(set, models.EntityUpdatedAtField)

	fields := make([]string, 0, len(set))
	for k := range set {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}
