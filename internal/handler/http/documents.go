package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/second-brain-sync/internal/app"
	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/utils"
	"github.com/MKhiriev/second-brain-sync/internal/validators"
	"github.com/MKhiriev/second-brain-sync/models"
	"github.com/go-chi/chi/v5"
)

// maxEnvelopeSize bounds a PUT body: the document itself plus room for
// the envelope fields.
const maxEnvelopeSize = validators.MaxDocumentSize + 4<<10

func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "id")

	envelope, err := h.services.DocumentService.GetDocument(r.Context(), documentID)
	if err != nil {
		writeError(w, r, err, "error getting document")
		return
	}

	if _, err = utils.WriteJSON(w, envelope, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing document")
	}
}

func (h *Handler) putDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	documentID := chi.URLParam(r, "id")

	var envelope models.DocumentEnvelope
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEnvelopeSize)).Decode(&envelope); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn().Err(err).Msg("document body too large")
			http.Error(w, app.MsgInvalidDocument, http.StatusRequestEntityTooLarge)
			return
		}
		log.Warn().Err(err).Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if envelope.DocumentID != "" && envelope.DocumentID != documentID {
		writeError(w, r, ErrDocumentIDMismatch, "rejected document")
		return
	}
	envelope.DocumentID = documentID

	saved, err := h.services.DocumentService.SaveDocument(r.Context(), envelope)
	if err != nil {
		writeError(w, r, err, "error saving document")
		return
	}

	if _, err = utils.WriteJSON(w, saved, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing saved document")
	}
}
