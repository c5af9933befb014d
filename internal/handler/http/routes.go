package http

import (
	"github.com/MKhiriev/second-brain-sync/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/api/health", h.health)

	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		r.Get("/api/documents/{id}", h.getDocument)
		r.Put("/api/documents/{id}", h.putDocument)
	})

	if h.gatherer != nil {
		router.Method("GET", "/metrics", metrics.Handler(h.gatherer))
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
