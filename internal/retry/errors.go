package retry

import (
	"context"
	"errors"
	"net"
	"regexp"
)

// ErrRetryExhausted is returned, wrapping the last operation error, when every
// attempt failed with a transient error.
var ErrRetryExhausted = errors.New("retry attempts exhausted")

var transientPattern = regexp.MustCompile(
	`(?i)timeout|timed out|network|connection (refused|reset)|too many requests|service unavailable|bad gateway|\b(429|50[0-4])\b`,
)

// TransientError flags Err as worth retrying.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Transient always reports true.
func (e *TransientError) Transient() bool {
	return true
}

// Transient wraps err as a TransientError. A nil err stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// PermanentError flags Err as never worth retrying, whatever its message
// says.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// Transient always reports false.
func (e *PermanentError) Transient() bool {
	return false
}

// Permanent wraps err as a PermanentError. A nil err stays nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsTransient reports whether err is expected to resolve on retry.
//
// An explicit flag (any error in the chain with a Transient() bool method)
// decides first. Otherwise deadline and net timeouts are transient, and so is
// any error whose message looks like a network, timeout, 5xx or 429 failure.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var flagged interface{ Transient() bool }
	if errors.As(err, &flagged) {
		return flagged.Transient()
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return transientPattern.MatchString(err.Error())
}
