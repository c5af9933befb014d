// Package http implements the document server's REST API.
//
// Routes:
//
//	GET  /api/documents/{id}  latest pushed copy of a document
//	PUT  /api/documents/{id}  replace the stored copy
//	GET  /api/health          liveness and storage reachability
//	GET  /metrics             Prometheus exposition
//
// Every request passes through trace-id and access-log middleware. The
// trace id is taken from X-Trace-ID, which sync clients fill with their
// cycle id, so one cycle can be followed across client and server logs.
package http
