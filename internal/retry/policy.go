// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package retry runs fallible operations with bounded exponential backoff
// and jitter, retrying only errors classified as transient.
package retry

import (
	"math"
	"time"
)

// Policy bounds a retried operation.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	JitterRatio float64
}

// DefaultPolicy is the policy used for a whole sync cycle.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 4,
		BaseDelay:   700 * time.Millisecond,
		MaxDelay:    6 * time.Second,
		JitterRatio: 0.2,
	}
}

// Delay returns the wait after the n-th failed attempt (1-indexed):
// min(MaxDelay, BaseDelay*2^(n-1)) plus jitter in [0, delay*JitterRatio).
// r is a uniform sample from [0, 1).
func (p Policy) Delay(n int, r float64) time.Duration {
	if n < 1 {
		n = 1
	}

	delay := float64(p.BaseDelay) * math.Pow(2, float64(n-1))
	if p.MaxDelay > 0 && delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}

	if p.JitterRatio > 0 && r > 0 {
		delay += delay * p.JitterRatio * r
	}
	return time.Duration(delay)
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}
