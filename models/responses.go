package models

import (
	"encoding/json"
	"time"
)

// DocumentEnvelope is the wire representation of a remote document exchanged
// between the HTTP transport and the document server.
type DocumentEnvelope struct {
	// DocumentID identifies the document. The server fills it on pull and
	// ignores it on push (the id in the URL wins).
	DocumentID string `json:"document_id"`

	// Document is the raw JSON body of the document.
	Document json.RawMessage `json:"document"`

	// Version counts pushes accepted by the server. Informational.
	Version int64 `json:"version,omitempty"`

	// UpdatedAt is the server-side time of the last push. Informational.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// HealthResponse is returned by the document server health endpoint and is
// used by the client connectivity prober.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
