package retry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// Operation is one attempt of a retried call.
type Operation[T any] func(ctx context.Context) (T, error)

type options struct {
	jitter func() float64
}

// Option customizes Do.
type Option func(*options)

// WithJitterSource replaces the uniform [0, 1) source used for jitter.
func WithJitterSource(src func() float64) Option {
	return func(o *options) {
		if src != nil {
			o.jitter = src
		}
	}
}

// Do calls op up to policy.MaxAttempts times. onAttempt, when set, is invoked
// with the 0-based attempt index before every attempt including the first.
//
// A non-transient error is returned unchanged on first occurrence. When all
// attempts fail transiently the result wraps both ErrRetryExhausted and the
// last operation error. Cancelling ctx stops waiting and returns ctx.Err().
func Do[T any](ctx context.Context, policy Policy, op Operation[T], onAttempt func(attempt int), opts ...Option) (T, error) {
	o := options{jitter: rand.Float64}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		result    T
		attempt   int
		last      error
		exhausted bool
	)
	maxAttempts := policy.attempts()

	backoff := goretry.BackoffFunc(func() (time.Duration, bool) {
		if attempt >= maxAttempts {
			exhausted = true
			return 0, true
		}
		return policy.Delay(attempt, o.jitter()), false
	})

	err := goretry.Do(ctx, backoff, func(ctx context.Context) error {
		if onAttempt != nil {
			onAttempt(attempt)
		}
		attempt++

		v, err := op(ctx)
		if err != nil {
			last = err
			if IsTransient(err) {
				return goretry.RetryableError(err)
			}
			return err
		}
		result = v
		return nil
	})

	switch {
	case err == nil:
		return result, nil
	case exhausted:
		var zero T
		return zero, fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, attempt, last)
	default:
		var zero T
		return zero, err
	}
}
