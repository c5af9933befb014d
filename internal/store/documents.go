// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/models"
)

// Persistent keys owned by the sync engine.
const (
	ShadowKey = "second-brain.sync.shadow.v1"
	RemoteKey = "second-brain.sync.remote.v1"
	AuthKey   = "second-brain.sync.auth.v1"
)

// DocumentStore reads and writes JSON documents through a [KVStore].
// Malformed JSON is treated as absent and never returned as an error.
type DocumentStore struct {
	kv KVStore
}

func NewDocumentStore(kv KVStore) *DocumentStore {
	return &DocumentStore{kv: kv}
}

// KV exposes the underlying store.
func (s *DocumentStore) KV() KVStore {
	return s.kv
}

// LoadDocument returns the document under key, or nil when it is missing or
// not valid JSON.
func (s *DocumentStore) LoadDocument(ctx context.Context, key string) (models.Document, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}

	doc, err := models.DecodeDocument([]byte(raw))
	if err != nil {
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("func", "DocumentStore.LoadDocument").
			Str("key", key).
			Msg("malformed document treated as absent")
		return nil, nil
	}
	return doc, nil
}

// SaveDocument stores doc under key as JSON.
func (s *DocumentStore) SaveDocument(ctx context.Context, key string, doc models.Document) error {
	payload, err := models.EncodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err = s.kv.Set(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// LoadDocumentMap returns the id -> document map under key. A missing or
// malformed value yields an empty map.
func (s *DocumentStore) LoadDocumentMap(ctx context.Context, key string) (map[string]models.Document, error) {
	doc, err := s.LoadDocument(ctx, key)
	if err != nil {
		return nil, err
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return map[string]models.Document{}, nil
	}
	result := make(map[string]models.Document, len(obj))
	for id, d := range obj {
		result[id] = d
	}
	return result, nil
}

// SaveDocumentMap stores documents under key in a single write.
func (s *DocumentStore) SaveDocumentMap(ctx context.Context, key string, documents map[string]models.Document) error {
	obj := make(map[string]any, len(documents))
	for id, d := range documents {
		obj[id] = d
	}
	return s.SaveDocument(ctx, key, obj)
}

// LoadShadow returns the snapshot of every document as of the last
// successful sync.
func (s *DocumentStore) LoadShadow(ctx context.Context) (map[string]models.Document, error) {
	return s.LoadDocumentMap(ctx, ShadowKey)
}

// SaveShadow replaces the shadow snapshot atomically.
func (s *DocumentStore) SaveShadow(ctx context.Context, shadow map[string]models.Document) error {
	return s.SaveDocumentMap(ctx, ShadowKey, shadow)
}

// LoadAuth returns the persisted auth flag; missing means signed out.
func (s *DocumentStore) LoadAuth(ctx context.Context) (models.AuthStatus, error) {
	doc, err := s.LoadDocument(ctx, AuthKey)
	if err != nil {
		return models.AuthStatusSignedOut, err
	}
	raw, _ := doc.(string)
	return models.ParseAuthStatus(raw), nil
}

func (s *DocumentStore) SaveAuth(ctx context.Context, status models.AuthStatus) error {
	return s.SaveDocument(ctx, AuthKey, string(status))
}
