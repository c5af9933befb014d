// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, id generation,
// HTTP response writing and HTTP client initialization.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// CycleIDCtxKey is the key used to store the identifier of the running
// synchronization cycle in the context. Transports forward it to the
// document server so client and server logs can be correlated.
var CycleIDCtxKey = contextKey("cycleID")

// CycleIDHeader carries the cycle id on outgoing requests. The document
// server reuses it as the request trace id.
const CycleIDHeader = "X-Trace-ID"

// WithCycleID returns a copy of ctx carrying cycleID.
func WithCycleID(ctx context.Context, cycleID string) context.Context {
	return context.WithValue(ctx, CycleIDCtxKey, cycleID)
}

// CycleIDFromContext retrieves the cycle identifier from the context.
//
// Returns the id and an ok flag:
//   - ok == true : value is found, is a string and is not empty
//   - ok == false: value is missing, empty or has an unexpected type
func CycleIDFromContext(ctx context.Context) (string, bool) {
	cycleID, ok := ctx.Value(CycleIDCtxKey).(string)
	return cycleID, ok && cycleID != ""
}
