package merge

import "github.com/MKhiriev/second-brain-sync/models"

// BareArrayField is the synthetic entity-array field name given to documents
// that are a bare array of entities.
const BareArrayField = "items"

// ShapeKind tags the variant held by a [Shape].
type ShapeKind int

const (
	// ShapeOpaque documents are merged only as a whole unit.
	ShapeOpaque ShapeKind = iota
	// ShapeEntityCollection documents carry an ordered sequence of entities.
	ShapeEntityCollection
)

// Shape is the classification of a document.
type Shape struct {
	Kind ShapeKind

	// Field is the entity-array field name. Set only for entity collections.
	Field string

	// Bare reports that the document itself is the entity array.
	Bare bool

	// Entities holds the collection in document order.
	Entities []models.Entity

	// Object is the enclosing object of a non-bare collection.
	Object map[string]any
}

// Classify determines the shape of doc.
//
// A bare array qualifies when every element is an object with a non-empty
// string id (the empty array qualifies). An object qualifies when exactly one
// of its fields holds a non-empty qualifying array, or when none does and
// exactly one field holds an empty array. Anything else is opaque.
func Classify(doc models.Document) Shape {
	switch v := doc.(type) {
	case []any:
		entities, ok := entityArray(v)
		if !ok {
			return Shape{Kind: ShapeOpaque}
		}
		return Shape{Kind: ShapeEntityCollection, Field: BareArrayField, Bare: true, Entities: entities}

	case map[string]any:
		var (
			nonEmpty      []string
			empty         []string
			nonEmptyItems []models.Entity
		)
		for key, value := range v {
			arr, isArr := value.([]any)
			if !isArr {
				continue
			}
			entities, ok := entityArray(arr)
			if !ok {
				continue
			}
			if len(entities) == 0 {
				empty = append(empty, key)
				continue
			}
			nonEmpty = append(nonEmpty, key)
			nonEmptyItems = entities
		}

		switch {
		case len(nonEmpty) == 1:
			return Shape{Kind: ShapeEntityCollection, Field: nonEmpty[0], Entities: nonEmptyItems, Object: v}
		case len(nonEmpty) == 0 && len(empty) == 1:
			return Shape{Kind: ShapeEntityCollection, Field: empty[0], Entities: []models.Entity{}, Object: v}
		}
	}

	return Shape{Kind: ShapeOpaque}
}

func entityArray(arr []any) ([]models.Entity, bool) {
	entities := make([]models.Entity, 0, len(arr))
	for _, item := range arr {
		entity, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		if entityID(entity) == "" {
			return nil, false
		}
		entities = append(entities, entity)
	}
	return entities, true
}

func entityID(e models.Entity) string {
	id, _ := e[models.EntityIDField].(string)
	return id
}
