// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestCycleIDCtxKey(t *testing.T) {
	if CycleIDCtxKey.String() != "cycleID" {
		t.Errorf("expected 'cycleID', got '%s'", CycleIDCtxKey.String())
	}
}

func TestCycleIDFromContext_Success(t *testing.T) {
	ctx := WithCycleID(context.Background(), "0190a4b2-cycle")

	cycleID, ok := CycleIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if cycleID != "0190a4b2-cycle" {
		t.Errorf("expected cycleID='0190a4b2-cycle', got %q", cycleID)
	}
}

func TestCycleIDFromContext_Missing(t *testing.T) {
	cycleID, ok := CycleIDFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if cycleID != "" {
		t.Errorf("expected empty cycleID, got %q", cycleID)
	}
}

func TestCycleIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), CycleIDCtxKey, 42)

	if _, ok := CycleIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestCycleIDFromContext_Empty(t *testing.T) {
	ctx := WithCycleID(context.Background(), "")

	if _, ok := CycleIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for empty id, got true")
	}
}

func TestCycleIDFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("otherKey"), "id")

	if _, ok := CycleIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}
