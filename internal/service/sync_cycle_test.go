// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/second-brain-sync/internal/adapter"
	"github.com/MKhiriev/second-brain-sync/internal/merge"
	"github.com/MKhiriev/second-brain-sync/internal/mock"
	"github.com/MKhiriev/second-brain-sync/internal/store"
	"github.com/MKhiriev/second-brain-sync/models"
)

func newTestRunner(docs *store.DocumentStore, transport adapter.RemoteTransport, descriptors []models.DocumentDescriptor, concurrency int) *CycleRunner {
	return NewCycleRunner(docs, transport, merge.NewMerger(clockwork.NewFakeClockAt(testNow)), descriptors, concurrency)
}

func TestRunCycle_TaskStatusScenario(t *testing.T) {
	ctx := context.Background()
	local := newTestDocs()
	remote := adapter.NewLocalDriveTransport(newTestDocs(), 0)

	require.NoError(t, local.SaveDocument(ctx, tasksDescriptor.LocalKey, doc(t,
		`{"tasks":[{"id":"t1","title":"Draft","status":"backlog","updatedAt":"2024-01-01T10:00:00Z"}]}`)))
	require.NoError(t, remote.Push(ctx, tasksDescriptor.ID, doc(t,
		`{"tasks":[{"id":"t1","title":"Draft","status":"in progress","updatedAt":"2024-01-01T11:00:00Z"}]}`)))

	runner := newTestRunner(local, remote, []models.DocumentDescriptor{tasksDescriptor}, 1)
	result, err := runner.RunCycle(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Conflicts)
	assert.Equal(t, map[string]int{tasksDescriptor.ID: 1}, result.DocumentConflicts)
	assert.Equal(t, []string{tasksDescriptor.ID}, result.Committed)

	merged, err := local.LoadDocument(ctx, tasksDescriptor.LocalKey)
	require.NoError(t, err)
	task := merged.(map[string]any)["tasks"].([]any)[0].(map[string]any)
	assert.Equal(t, "in progress", task["status"])

	shadow, err := local.LoadShadow(ctx)
	require.NoError(t, err)
	assert.Equal(t, merged, shadow[tasksDescriptor.ID])

	pushed, err := remote.Pull(ctx, tasksDescriptor.ID)
	require.NoError(t, err)
	assert.Equal(t, merged, pushed)
}

func TestRunCycle_SkipsDocumentsAbsentOnBothSides(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockRemoteTransport(ctrl)
	docs := newTestDocs()

	transport.EXPECT().Pull(gomock.Any(), tasksDescriptor.ID).Return(nil, nil)

	result, err := newTestRunner(docs, transport, []models.DocumentDescriptor{tasksDescriptor}, 1).RunCycle(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Committed)
	assert.Zero(t, result.Conflicts)

	_, ok, err := docs.KV().Get(context.Background(), tasksDescriptor.LocalKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRunCycle_RemoteOnlyDocumentIsAdopted(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockRemoteTransport(ctrl)
	docs := newTestDocs()
	remoteDoc := doc(t, `[{"id":"n1","body":"from another device"}]`)

	gomock.InOrder(
		transport.EXPECT().Pull(gomock.Any(), tasksDescriptor.ID).Return(remoteDoc, nil),
		transport.EXPECT().Push(gomock.Any(), tasksDescriptor.ID, remoteDoc).Return(nil),
	)

	_, err := newTestRunner(docs, transport, []models.DocumentDescriptor{tasksDescriptor}, 1).RunCycle(context.Background())
	require.NoError(t, err)

	local, err := docs.LoadDocument(context.Background(), tasksDescriptor.LocalKey)
	require.NoError(t, err)
	assert.Equal(t, remoteDoc, local)
}

func TestRunCycle_FailureLeavesShadowUntouched(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	transport := mock.NewMockRemoteTransport(ctrl)
	docs := newTestDocs()

	notes := models.DocumentDescriptor{ID: "personal.notes", LocalKey: "notes"}
	require.NoError(t, docs.SaveDocument(ctx, tasksDescriptor.LocalKey, doc(t, `{"tasks":[]}`)))
	require.NoError(t, docs.SaveShadow(ctx, map[string]models.Document{"old": "snapshot"}))

	boom := errors.New("permission denied")
	transport.EXPECT().Pull(gomock.Any(), tasksDescriptor.ID).Return(nil, nil)
	transport.EXPECT().Push(gomock.Any(), tasksDescriptor.ID, gomock.Any()).Return(nil)
	transport.EXPECT().Pull(gomock.Any(), notes.ID).Return(nil, boom)

	runner := newTestRunner(docs, transport, []models.DocumentDescriptor{tasksDescriptor, notes}, 1)
	_, err := runner.RunCycle(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "sync personal.notes: permission denied", err.Error())

	shadow, err := docs.LoadShadow(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]models.Document{"old": "snapshot"}, shadow)
}

func TestRunCycle_ConcurrentDocuments(t *testing.T) {
	ctx := context.Background()
	docs := newTestDocs()
	remote := newFakeRemote()

	descriptors := models.DefaultDescriptors()
	for i, d := range descriptors {
		if i%2 == 0 {
			require.NoError(t, docs.SaveDocument(ctx, d.LocalKey, doc(t, `{"items":[{"id":"a"}]}`)))
		} else {
			remote.docs[d.ID] = doc(t, `{"items":[{"id":"b"}]}`)
		}
	}

	result, err := newTestRunner(docs, remote, descriptors, 4).RunCycle(ctx)
	require.NoError(t, err)

	ids := make([]string, len(descriptors))
	for i, d := range descriptors {
		ids[i] = d.ID
		assert.Equal(t, 1, remote.pullCount(d.ID))
		assert.Equal(t, 1, remote.pushCount(d.ID))
	}
	assert.Equal(t, ids, result.Committed)

	shadow, err := docs.LoadShadow(ctx)
	require.NoError(t, err)
	assert.Len(t, shadow, len(descriptors))
}

func TestPendingChanges(t *testing.T) {
	ctx := context.Background()
	docs := newTestDocs()
	notes := models.DocumentDescriptor{ID: "personal.notes", LocalKey: "notes"}
	runner := newTestRunner(docs, newFakeRemote(), []models.DocumentDescriptor{tasksDescriptor, notes}, 1)

	n, err := runner.PendingChanges(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, docs.SaveDocument(ctx, tasksDescriptor.LocalKey, doc(t, `{"tasks":[{"id":"1"},{"id":"2"}]}`)))
	require.NoError(t, docs.SaveDocument(ctx, notes.LocalKey, doc(t, `{"text":"hello"}`)))
	require.NoError(t, docs.SaveShadow(ctx, map[string]models.Document{
		tasksDescriptor.ID: doc(t, `{"tasks":[{"id":"1"},{"id":"3"}]}`),
	}))

	n, err = runner.PendingChanges(ctx)
	require.NoError(t, err)
	// tasks: "2" added and "3" removed; notes: opaque and absent from shadow
	assert.Equal(t, 3, n)
}
