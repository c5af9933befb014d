package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPendingChanges(t *testing.T) {
	tests := []struct {
		name   string
		local  string
		shadow string
		want   int
	}{
		{name: "both null", local: `null`, shadow: `null`, want: 0},
		{name: "identical", local: `{"tasks":[{"id":"1"}]}`, shadow: `{"tasks":[{"id":"1"}]}`, want: 0},
		{name: "never synced", local: `{"tasks":[{"id":"1"}]}`, shadow: `null`, want: 1},
		{name: "opaque differs", local: `{"theme":"dark"}`, shadow: `{"theme":"light"}`, want: 1},
		{name: "field name differs", local: `{"tasks":[{"id":"1"}]}`, shadow: `{"items":[{"id":"1"}]}`, want: 1},
		{
			name:   "added, edited and removed",
			local:  `[{"id":"1","t":"a"},{"id":"2","t":"changed"},{"id":"4"}]`,
			shadow: `[{"id":"1","t":"a"},{"id":"2","t":"b"},{"id":"3"}]`,
			want:   3,
		},
		{
			name:   "many fields on one entity count once",
			local:  `[{"id":"1","a":1,"b":2,"c":3}]`,
			shadow: `[{"id":"1","a":0,"b":0,"c":0}]`,
			want:   1,
		},
		{name: "top-level key only", local: `{"tasks":[{"id":"1"}],"v":2}`, shadow: `{"tasks":[{"id":"1"}],"v":1}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PendingChanges(doc(t, tt.local), doc(t, tt.shadow)))
		})
	}
}
