package models

import "time"

// LockoutStatus is the answer to "may this account attempt a decryption
// right now". It is a read-only snapshot; querying it never mutates the
// underlying lockout state.
type LockoutStatus struct {
	// Allowed reports whether a decryption attempt is currently permitted.
	Allowed bool `json:"allowed"`

	// RemainingMillis is the number of milliseconds until the freeze
	// expires. Zero when Allowed is true.
	RemainingMillis int64 `json:"remaining_millis,omitempty"`

	// FailedAttempts is the number of consecutive failures recorded so far
	// in the current counting window. Zero while frozen (the freeze
	// supersedes the count) and after any reset.
	FailedAttempts int `json:"failed_attempts"`
}

// FailureOutcome describes the lockout state resulting from one recorded
// decryption failure, in the shape callers need for user feedback: either
// "N attempts remaining" or "frozen until T".
type FailureOutcome struct {
	// Frozen reports whether this failure tripped the threshold and froze
	// the account.
	Frozen bool `json:"frozen"`

	// FrozenUntil is the instant the freeze expires. Zero unless Frozen.
	FrozenUntil time.Time `json:"frozen_until,omitempty"`

	// AttemptsRemaining is how many more failures the account can absorb
	// before freezing. Zero when Frozen.
	AttemptsRemaining int `json:"attempts_remaining"`
}
