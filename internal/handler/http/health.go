package http

import (
	"net/http"

	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/utils"
	"github.com/MKhiriev/second-brain-sync/models"
)

const (
	healthOK          = "ok"
	healthUnavailable = "unavailable"
)

// health reports "ok" only while storage answers a ping. Sync clients use
// it as their connectivity probe.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	response := models.HealthResponse{Status: healthOK, Version: h.version}
	status := http.StatusOK

	if err := h.services.DocumentService.Ping(r.Context()); err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("storage ping failed")
		response.Status = healthUnavailable
		status = http.StatusServiceUnavailable
	}

	if _, err := utils.WriteJSON(w, response, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing health response")
	}
}
