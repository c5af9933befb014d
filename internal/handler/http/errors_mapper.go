package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/second-brain-sync/internal/app"
	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/service"
	"github.com/MKhiriev/second-brain-sync/internal/store"
)

type errorStatus struct {
	target  error
	status  int
	message string
}

// errorStatuses is checked in order; the first match wins.
var errorStatuses = []errorStatus{
	{ErrDocumentIDMismatch, http.StatusBadRequest, app.MsgDocumentIDMismatch},
	{service.ErrInvalidDocumentID, http.StatusBadRequest, app.MsgInvalidDocumentID},
	{service.ErrInvalidDocument, http.StatusBadRequest, app.MsgInvalidDocument},
	{service.ErrDocumentNotFound, http.StatusNotFound, app.MsgDocumentNotFound},
	{store.ErrDocumentNotFound, http.StatusNotFound, app.MsgDocumentNotFound},
	{store.ErrStorageUnavailable, http.StatusServiceUnavailable, app.MsgStorageUnavailable},
}

// statusFromError maps a service error to a response status and the
// message written to the body. Unknown errors become a 500.
func statusFromError(err error) (int, string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError logs err on the request logger and answers with the mapped
// status. 4xx responses are logged at warn level, the rest at error.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status, body := statusFromError(err)

	log := logger.FromRequest(r)
	event := log.Error()
	if status < http.StatusInternalServerError {
		event = log.Warn()
	}
	event.Err(err).Int("status", status).Msg(msg)

	http.Error(w, body, status)
}
