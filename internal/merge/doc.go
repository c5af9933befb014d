// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package merge implements deterministic reconciliation of JSON documents.
//
// A document is classified once into a tagged variant ([Shape]): either an
// entity collection (a bare array of entities, or an object with exactly one
// entity-array field) or an opaque value. Entity collections are merged
// entity by entity and field by field using per-field timestamps
// (lastUpdatedByField); everything else is merged as a whole, newest
// timestamp first, with a lexical tiebreak on canonical JSON so the outcome
// does not depend on argument order.
//
// The package also provides [PendingChanges], the shadow-based change
// detector used for observability. Nothing in this package performs I/O;
// the only ambient dependency is the injected clock used when an entity
// carries no usable updatedAt on either side.
package merge
