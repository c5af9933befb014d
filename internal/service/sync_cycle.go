// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/second-brain-sync/internal/adapter"
	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/internal/merge"
	"github.com/MKhiriev/second-brain-sync/internal/store"
	"github.com/MKhiriev/second-brain-sync/models"
)

// CycleRunner executes one pull-merge-push pass over every registered
// document. It does not retry and does not guard against concurrent calls;
// the orchestrator does both.
type CycleRunner struct {
	docs        *store.DocumentStore
	transport   adapter.RemoteTransport
	merger      *merge.Merger
	descriptors []models.DocumentDescriptor
	concurrency int
}

// NewCycleRunner returns a runner processing descriptors with at most
// concurrency documents in flight. concurrency below 1 means sequential.
func NewCycleRunner(
	docs *store.DocumentStore,
	transport adapter.RemoteTransport,
	merger *merge.Merger,
	descriptors []models.DocumentDescriptor,
	concurrency int,
) *CycleRunner {
	return &CycleRunner{
		docs:        docs,
		transport:   transport,
		merger:      merger,
		descriptors: descriptors,
		concurrency: max(concurrency, 1),
	}
}

type documentOutcome struct {
	merged    models.Document
	conflicts int
	committed bool
}

// RunCycle syncs every document. Merged documents are written locally and
// pushed as they are processed; the shadow snapshot is saved once, after
// every document succeeded. The first error aborts the cycle and leaves the
// shadow untouched.
func (r *CycleRunner) RunCycle(ctx context.Context) (models.CycleResult, error) {
	shadow, err := r.docs.LoadShadow(ctx)
	if err != nil {
		return models.CycleResult{}, fmt.Errorf("load shadow: %w", err)
	}

	outcomes := make([]documentOutcome, len(r.descriptors))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, descriptor := range r.descriptors {
		g.Go(func() error {
			outcome, err := r.syncDocument(gctx, descriptor)
			if err != nil {
				return fmt.Errorf("sync %s: %w", descriptor.ID, err)
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return models.CycleResult{}, err
	}

	result := models.CycleResult{DocumentConflicts: make(map[string]int)}
	for i, outcome := range outcomes {
		result.Conflicts += outcome.conflicts
		if !outcome.committed {
			continue
		}
		id := r.descriptors[i].ID
		shadow[id] = outcome.merged
		result.DocumentConflicts[id] = outcome.conflicts
		result.Committed = append(result.Committed, id)
	}

	if err = r.docs.SaveShadow(ctx, shadow); err != nil {
		return models.CycleResult{}, fmt.Errorf("save shadow: %w", err)
	}
	return result, nil
}

func (r *CycleRunner) syncDocument(ctx context.Context, descriptor models.DocumentDescriptor) (documentOutcome, error) {
	local, err := r.docs.LoadDocument(ctx, descriptor.LocalKey)
	if err != nil {
		return documentOutcome{}, err
	}

	remote, err := r.transport.Pull(ctx, descriptor.ID)
	if err != nil {
		return documentOutcome{}, err
	}

	merged, conflicts := r.merger.Merge(local, remote)
	if merged == nil {
		return documentOutcome{}, nil
	}

	if err = r.docs.SaveDocument(ctx, descriptor.LocalKey, merged); err != nil {
		return documentOutcome{}, err
	}
	if err = r.transport.Push(ctx, descriptor.ID, merged); err != nil {
		return documentOutcome{}, err
	}

	if conflicts > 0 {
		logger.FromContext(ctx).Info().
			Str("document_id", descriptor.ID).
			Int("conflicts", conflicts).
			Msg("conflicts resolved")
	}
	return documentOutcome{merged: merged, conflicts: conflicts, committed: true}, nil
}

// PendingChanges sums the change estimate of every document against shadow.
func (r *CycleRunner) PendingChanges(ctx context.Context) (int, error) {
	shadow, err := r.docs.LoadShadow(ctx)
	if err != nil {
		return 0, fmt.Errorf("load shadow: %w", err)
	}

	total := 0
	for _, descriptor := range r.descriptors {
		local, err := r.docs.LoadDocument(ctx, descriptor.LocalKey)
		if err != nil {
			return 0, err
		}
		total += merge.PendingChanges(local, shadow[descriptor.ID])
	}
	return total, nil
}
