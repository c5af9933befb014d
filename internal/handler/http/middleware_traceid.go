package http

import (
	"net/http"

	"github.com/MKhiriev/second-brain-sync/internal/utils"
	"github.com/rs/zerolog"
)

// maxTraceIDLength caps client-supplied ids before they reach log lines.
const maxTraceIDLength = 128

// withTraceID attaches a request-scoped logger carrying trace_id. Clients
// send their cycle id in X-Trace-ID; requests without one get a fresh
// UUIDv7. The id is echoed in the response and stored in the context.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	ids := utils.NewUUIDGenerator()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(utils.CycleIDHeader)
		if traceID == "" || len(traceID) > maxTraceIDLength {
			traceID = ids.Generate()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		ctx := utils.WithCycleID(r.Context(), traceID)
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(utils.CycleIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}
