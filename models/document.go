// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Document is a decoded JSON value representing one syncable unit of state
// (e.g. all tasks of a mode). It holds one of: nil (absent), []any, map[string]any,
// string, json.Number or bool. Documents are decoded with json.Decoder.UseNumber
// so numeric payloads survive a round trip unchanged.
type Document = any

// Entity is one addressable record inside a document's entity collection.
// The "id" key is required and is the only key used to correlate entities
// between local and remote copies.
type Entity = map[string]any

// Well-known entity keys.
const (
	EntityIDField                 = "id"
	EntityUpdatedAtField          = "updatedAt"
	EntityCreatedAtField          = "createdAt"
	EntityLastUpdatedByFieldField = "lastUpdatedByField"
	DocumentLastSyncedAtField     = "lastSyncedAt"
)

// DocumentDescriptor binds a syncable document id to the local storage key
// its value lives under.
type DocumentDescriptor struct {
	// ID is the document identifier used by the remote transport.
	ID string `json:"id"`

	// LocalKey is the key/value store key holding the JSON-encoded document.
	LocalKey string `json:"local_key"`
}

// DefaultDescriptors returns the syncable documents of the second-brain
// application, in the order they are processed during a cycle.
func DefaultDescriptors() []DocumentDescriptor {
	return []DocumentDescriptor{
		{ID: "work.tasks", LocalKey: "second-brain.work.tasks.work.v1"},
		{ID: "work.projects", LocalKey: "second-brain.work.projects.work"},
		{ID: "work.people", LocalKey: "second-brain.work.people.work.v1"},
		{ID: "work.sprints", LocalKey: "second-brain.work.sprints.work"},
		{ID: "work.meetings", LocalKey: "second-brain.work.meetings.work"},
		{ID: "personal.tasks", LocalKey: "second-brain.personal.tasks.v1"},
		{ID: "personal.projects", LocalKey: "second-brain.personal.projects.v1"},
		{ID: "personal.people", LocalKey: "second-brain.personal.people.v1"},
		{ID: "personal.daily-log", LocalKey: "second-brain.personal.daily-log.v1"},
		{ID: "personal.exercise-log", LocalKey: "second-brain.personal.exercise-log.v1"},
		{ID: "personal.calendar", LocalKey: "second-brain.personal.calendar.v1"},
	}
}
