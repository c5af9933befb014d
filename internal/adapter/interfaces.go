// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for exchanging
// documents with the remote side of the sync engine.
//
// The primary abstraction is [RemoteTransport], which decouples the sync
// orchestrator from the underlying protocol. Two implementations ship with
// the package: an HTTP/REST transport talking to the document server
// ([NewHTTPTransport]) and a store-backed simulated remote with fault
// injection ([NewLocalDriveTransport]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling. Failures worth retrying (network errors, 5xx, 429) are additionally
// wrapped with [retry.Transient].
package adapter

import (
	"context"

	"github.com/MKhiriev/second-brain-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// RemoteTransport moves whole documents between this client and the remote
// copy. Implementations must be safe for concurrent use across distinct
// document ids.
type RemoteTransport interface {
	// Pull returns the remote copy of documentID, or nil if the remote has
	// never seen it.
	Pull(ctx context.Context, documentID string) (models.Document, error)

	// Push replaces the remote copy of documentID with doc.
	Push(ctx context.Context, documentID string, doc models.Document) error
}

// HealthChecker reports whether the remote side is reachable. It feeds the
// connectivity signal of the orchestrator.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Remote is a transport that can also report reachability.
type Remote interface {
	RemoteTransport
	HealthChecker
}

var (
	_ Remote = (*HTTPTransport)(nil)
	_ Remote = (*LocalDriveTransport)(nil)
)
