package merge

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/second-brain-sync/models"
)

var testNow = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

func newTestMerger() *Merger {
	return NewMerger(clockwork.NewFakeClockAt(testNow))
}

func doc(t *testing.T, raw string) models.Document {
	t.Helper()
	dec := json.NewDecoder(bytes.NewBufferString(raw))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func requireSameJSON(t *testing.T, want, got any) {
	t.Helper()
	require.Equal(t, canonicalJSON(want), canonicalJSON(got))
}
