package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/service"
	"github.com/MKhiriev/second-brain-sync/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type fakeDocumentService struct {
	getFn   func(ctx context.Context, documentID string) (models.DocumentEnvelope, error)
	saveFn  func(ctx context.Context, envelope models.DocumentEnvelope) (models.DocumentEnvelope, error)
	pingErr error
}

func (f *fakeDocumentService) GetDocument(ctx context.Context, documentID string) (models.DocumentEnvelope, error) {
	return f.getFn(ctx, documentID)
}

func (f *fakeDocumentService) SaveDocument(ctx context.Context, envelope models.DocumentEnvelope) (models.DocumentEnvelope, error) {
	return f.saveFn(ctx, envelope)
}

func (f *fakeDocumentService) Ping(context.Context) error {
	return f.pingErr
}

// newTestRouter wires svc behind the same validation wrapper the server uses.
func newTestRouter(t *testing.T, svc service.DocumentService, reg *prometheus.Registry) http.Handler {
	t.Helper()

	services := &service.Services{
		DocumentService: service.NewDocumentValidationService().Wrap(svc),
	}
	var gatherer prometheus.Gatherer
	if reg != nil {
		gatherer = reg
	}
	return NewHandler(services, gatherer, "1.2.3", logger.Nop()).Init()
}

func serve(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) models.DocumentEnvelope {
	t.Helper()

	var envelope models.DocumentEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	return envelope
}

func stamp() *time.Time {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &ts
}
