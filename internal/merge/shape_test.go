package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		kind  ShapeKind
		field string
		bare  bool
		count int
	}{
		{name: "bare array", raw: `[{"id":"a"},{"id":"b"}]`, kind: ShapeEntityCollection, field: BareArrayField, bare: true, count: 2},
		{name: "empty bare array", raw: `[]`, kind: ShapeEntityCollection, field: BareArrayField, bare: true},
		{name: "bare array missing id", raw: `[{"id":"a"},{"name":"b"}]`, kind: ShapeOpaque},
		{name: "bare array empty id", raw: `[{"id":""}]`, kind: ShapeOpaque},
		{name: "bare array numeric id", raw: `[{"id":1}]`, kind: ShapeOpaque},
		{name: "bare array of scalars", raw: `[1,2]`, kind: ShapeOpaque},
		{name: "object with one entity field", raw: `{"tasks":[{"id":"a"}],"mode":"work","tags":["x"]}`, kind: ShapeEntityCollection, field: "tasks", count: 1},
		{name: "object with two entity fields", raw: `{"tasks":[{"id":"a"}],"people":[{"id":"b"}]}`, kind: ShapeOpaque},
		{name: "non-empty wins over empty", raw: `{"tasks":[{"id":"a"}],"archived":[]}`, kind: ShapeEntityCollection, field: "tasks", count: 1},
		{name: "single empty array", raw: `{"tasks":[]}`, kind: ShapeEntityCollection, field: "tasks"},
		{name: "two empty arrays", raw: `{"tasks":[],"people":[]}`, kind: ShapeOpaque},
		{name: "plain object", raw: `{"theme":"dark"}`, kind: ShapeOpaque},
		{name: "string", raw: `"x"`, kind: ShapeOpaque},
		{name: "null", raw: `null`, kind: ShapeOpaque},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape := Classify(doc(t, tt.raw))
			assert.Equal(t, tt.kind, shape.Kind)
			if tt.kind == ShapeEntityCollection {
				assert.Equal(t, tt.field, shape.Field)
				assert.Equal(t, tt.bare, shape.Bare)
				assert.Len(t, shape.Entities, tt.count)
			}
		})
	}
}
