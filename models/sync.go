package models

import "time"

// SyncStatus is the orchestrator's connectivity/activity state.
type SyncStatus string

const (
	SyncStatusIdle    SyncStatus = "idle"
	SyncStatusSyncing SyncStatus = "syncing"
	SyncStatusOffline SyncStatus = "offline"
	SyncStatusError   SyncStatus = "error"
)

// AuthStatus gates whether cycles run at all.
type AuthStatus string

const (
	AuthStatusSignedIn  AuthStatus = "signed-in"
	AuthStatusSignedOut AuthStatus = "signed-out"
)

// ParseAuthStatus maps a persisted flag to an AuthStatus. Anything other than
// "signed-in" is treated as signed out.
func ParseAuthStatus(raw string) AuthStatus {
	if AuthStatus(raw) == AuthStatusSignedIn {
		return AuthStatusSignedIn
	}
	return AuthStatusSignedOut
}

// SyncState is an immutable snapshot of the orchestrator state delivered to
// subscribers. It is a value type: modifying a received snapshot never
// affects the orchestrator.
type SyncState struct {
	Status     SyncStatus `json:"status"`
	AuthStatus AuthStatus `json:"auth_status"`

	// PendingChanges is the number of local changes not yet reflected in the
	// shadow snapshot. Informational only.
	PendingChanges int `json:"pending_changes"`

	// ConflictCount is the number of field-level conflicts resolved by the
	// most recent successful cycle.
	ConflictCount int `json:"conflict_count"`

	// LastSuccessfulSyncAt is zero until the first successful cycle.
	LastSuccessfulSyncAt time.Time `json:"last_successful_sync_at"`

	ErrorMessage string `json:"error_message"`

	// Retries is the attempt index of the in-flight cycle.
	Retries int `json:"retries"`
}

// CycleResult summarises one completed synchronization cycle.
type CycleResult struct {
	// Conflicts is the total number of field-level conflicts across documents.
	Conflicts int

	// DocumentConflicts holds the conflict count of each committed document.
	DocumentConflicts map[string]int

	// Committed lists the ids of documents written and pushed, in commit order.
	Committed []string
}
