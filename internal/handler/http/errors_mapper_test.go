package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/second-brain-sync/internal/app"
	"github.com/MKhiriev/second-brain-sync/internal/service"
	"github.com/MKhiriev/second-brain-sync/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"id mismatch", ErrDocumentIDMismatch, http.StatusBadRequest, app.MsgDocumentIDMismatch},
		{"invalid id", fmt.Errorf("%w: too long", service.ErrInvalidDocumentID), http.StatusBadRequest, app.MsgInvalidDocumentID},
		{"invalid document", fmt.Errorf("%w: empty", service.ErrInvalidDocument), http.StatusBadRequest, app.MsgInvalidDocument},
		{"service not found", service.ErrDocumentNotFound, http.StatusNotFound, app.MsgDocumentNotFound},
		{"store not found", store.ErrDocumentNotFound, http.StatusNotFound, app.MsgDocumentNotFound},
		{"storage unavailable", fmt.Errorf("ping: %w", store.ErrStorageUnavailable), http.StatusServiceUnavailable, app.MsgStorageUnavailable},
		{"query failure", store.ErrExecutingQuery, http.StatusInternalServerError, app.MsgInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, app.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := statusFromError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, msg)
		})
	}
}
