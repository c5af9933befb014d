package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name       string
		data       any
		status     int
		wantStatus int
		wantBody   string
		wantErr    bool
	}{
		{
			name:       "envelope",
			data:       map[string]any{"document_id": "tasks", "document": map[string]any{"tasks": []any{}}},
			status:     http.StatusOK,
			wantStatus: http.StatusOK,
			wantBody:   `{"document":{"tasks":[]},"document_id":"tasks"}`,
		},
		{
			name:       "custom status",
			data:       map[string]string{"status": "unavailable"},
			status:     http.StatusServiceUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"unavailable"}`,
		},
		{
			name:       "null",
			data:       nil,
			status:     http.StatusOK,
			wantStatus: http.StatusOK,
			wantBody:   `null`,
		},
		{
			name:       "unmarshalable",
			data:       map[string]any{"ch": make(chan int)},
			status:     http.StatusOK,
			wantStatus: http.StatusInternalServerError,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			n, err := WriteJSON(rr, tt.data, tt.status)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantErr {
				require.Error(t, err)
				assert.Zero(t, n)
				assert.NotEqual(t, "application/json", rr.Header().Get("Content-Type"))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, len(tt.wantBody), n)
			assert.True(t, json.Valid(rr.Body.Bytes()))
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
		})
	}
}
