// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/second-brain-sync/internal/adapter"
	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/jonboulle/clockwork"
)

// ConnectivityProber pings the remote on a fixed period and reports
// online/offline transitions to its target. Repeated results are not
// reported again, so the target sees one call per transition.
type ConnectivityProber struct {
	checker  adapter.HealthChecker
	target   ConnectivityTarget
	interval time.Duration
	clock    clockwork.Clock

	known  bool
	online bool

	logger *logger.Logger
}

func NewConnectivityProber(checker adapter.HealthChecker, target ConnectivityTarget, interval time.Duration, clock clockwork.Clock, logger *logger.Logger) *ConnectivityProber {
	return &ConnectivityProber{
		checker:  checker,
		target:   target,
		interval: interval,
		clock:    clock,
		logger:   logger,
	}
}

// Run probes once immediately and then on every tick until ctx ends.
func (p *ConnectivityProber) Run(ctx context.Context) error {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			p.probe(ctx)
		}
	}
}

// probe bounds each ping by the probe interval so a hung request cannot
// delay the next one.
func (p *ConnectivityProber) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	err := p.checker.Ping(pingCtx)
	if ctx.Err() != nil {
		return
	}

	online := err == nil
	if p.known && p.online == online {
		return
	}
	p.known, p.online = true, online

	event := p.logger.Info()
	if !online {
		event = p.logger.Warn().Err(err)
	}
	event.Bool("online", online).Msg("connectivity changed")

	p.target.SetOnline(online)
}
