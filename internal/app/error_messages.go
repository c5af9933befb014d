// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains message strings shared by the document server
// handlers and middleware.
//
// The Msg* constants end up in plain-text response bodies and log entries.
// The sync client surfaces them verbatim in its error state, so wording
// changes here are visible to users.
package app

const (
	// MsgInvalidJSON is returned when a request body is not a JSON envelope.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidDocumentID is returned for ids that are empty, too long or
	// contain characters outside the allowed set.
	MsgInvalidDocumentID = "invalid document id"

	// MsgDocumentIDMismatch is returned when the envelope names a different
	// document than the request path.
	MsgDocumentIDMismatch = "document id in body does not match path"

	// MsgInvalidDocument is returned when the payload is empty, oversized or
	// not valid JSON.
	MsgInvalidDocument = "invalid document"

	// MsgDocumentNotFound is returned when nothing was pushed under the id.
	MsgDocumentNotFound = "document not found"

	// MsgStorageUnavailable is returned while the database is unreachable.
	// Clients treat the accompanying 503 as retryable.
	MsgStorageUnavailable = "storage temporarily unavailable"

	// MsgMethodNotAllowed is returned for known paths hit with an
	// unregistered method.
	MsgMethodNotAllowed = "method not allowed"

	// MsgInternalServerError covers every failure the client cannot fix.
	MsgInternalServerError = "internal server error"
)
