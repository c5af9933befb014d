package adapter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/second-brain-sync/internal/retry"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseWithStatus(t *testing.T, status int, body string) *resty.Response {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	resp, err := resty.New().R().Get(srv.URL)
	require.NoError(t, err)
	return resp
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		wantErr       error
		wantTransient bool
	}{
		{name: "400", status: http.StatusBadRequest, wantErr: ErrBadRequest},
		{name: "401", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "403", status: http.StatusForbidden, wantErr: ErrForbidden},
		{name: "404", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "409", status: http.StatusConflict, wantErr: ErrConflict},
		{name: "429", status: http.StatusTooManyRequests, wantErr: ErrTooManyRequests, wantTransient: true},
		{name: "500", status: http.StatusInternalServerError, wantErr: ErrInternalServerError, wantTransient: true},
		{name: "502", status: http.StatusBadGateway, wantErr: ErrBadGateway, wantTransient: true},
		{name: "503", status: http.StatusServiceUnavailable, wantErr: ErrServerUnavailable, wantTransient: true},
		{name: "504", status: http.StatusGatewayTimeout, wantErr: ErrServerUnavailable, wantTransient: true},
		{name: "507", status: http.StatusInsufficientStorage, wantTransient: true},
		{name: "418", status: http.StatusTeapot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapHTTPError(responseWithStatus(t, tt.status, "connection details"))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantTransient, retry.IsTransient(err))
		})
	}
}

func TestMapHTTPError_Success(t *testing.T) {
	assert.NoError(t, mapHTTPError(responseWithStatus(t, http.StatusOK, "")))
	assert.NoError(t, mapHTTPError(responseWithStatus(t, http.StatusNoContent, "")))
}
