package models

import "time"

// Attempt outcomes recorded in the journal.
const (
	// AttemptOutcomeSuccess marks a decryption that recovered plaintext.
	AttemptOutcomeSuccess = "success"

	// AttemptOutcomeFailure marks a decryption rejected by the cipher
	// (wrong password or unrecoverable envelope).
	AttemptOutcomeFailure = "failure"

	// AttemptOutcomeFrozen marks the failure that tripped the lockout
	// threshold and froze the account.
	AttemptOutcomeFrozen = "frozen"

	// AttemptOutcomeReset marks an explicit administrative or logout reset
	// of the account's lockout state.
	AttemptOutcomeReset = "reset"
)

// AttemptRecord is one row of the unseal audit journal. The journal is an
// observability trail only: lockout decisions never read it back, so the
// live lockout state stays ephemeral.
type AttemptRecord struct {
	// ID is the journal-assigned row identifier.
	ID int64 `json:"id" db:"id"`

	// AccountID is the opaque account identifier the attempt was made
	// against. Derived, never the raw e-mail.
	AccountID string `json:"account_id" db:"account_id"`

	// Outcome is one of the AttemptOutcome* constants.
	Outcome string `json:"outcome" db:"outcome"`

	// TraceID links the record to the request that produced it.
	TraceID string `json:"trace_id,omitempty" db:"trace_id"`

	// AttemptedAt is when the attempt was recorded.
	AttemptedAt time.Time `json:"attempted_at" db:"attempted_at"`
}

// AttemptStats aggregates journal rows for one account. Served by the
// lockout status endpoint alongside the live guard state.
type AttemptStats struct {
	// AccountID is the account the statistics describe.
	AccountID string `json:"account_id"`

	// TotalFailed counts every recorded failure, including the ones that
	// froze the account.
	TotalFailed int `json:"total_failed"`

	// TotalSuccess counts recorded successful decryptions.
	TotalSuccess int `json:"total_success"`

	// LastFailureAt is the most recent failure timestamp, if any.
	LastFailureAt *time.Time `json:"last_failure_at,omitempty"`
}
