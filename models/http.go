package models

// LoginRequest starts a session from an externally issued ID token.
type LoginRequest struct {
	// IDToken is the compact JWS the identity provider handed to the
	// client. Only its claims are consumed here; verifying it against the
	// provider is the sign-in flow's job, not this core's.
	IDToken string `json:"id_token"`

	// Freeze and Email optionally carry a freeze handoff from a previous
	// session. Both are untrusted input.
	Freeze string `json:"freeze,omitempty"`
	Email  string `json:"email,omitempty"`
}

// LoginResponse returns the established session identity. The session token
// itself travels in the Authorization response header.
type LoginResponse struct {
	// User is the identity extracted from the ID token.
	User User `json:"user"`

	// AccountID is the opaque identifier lockout state is keyed by.
	AccountID string `json:"account_id"`

	// Frozen reports whether the account arrived frozen (either from live
	// state or from a restored handoff).
	Frozen bool `json:"frozen"`

	// RemainingMillis is the time left on the freeze when Frozen is true.
	RemainingMillis int64 `json:"remaining_millis,omitempty"`
}

// LockoutStatusResponse combines the live guard state with the journal's
// aggregate view of the account.
type LockoutStatusResponse struct {
	Status LockoutStatus `json:"status"`
	Stats  *AttemptStats `json:"stats,omitempty"`
}

// ErrorResponse is the JSON error body for non-2xx API responses.
type ErrorResponse struct {
	// Error is a short human-readable description of what went wrong.
	Error string `json:"error"`

	// AttemptsRemaining is set on failed unseal attempts so clients can
	// warn the user before the account freezes.
	AttemptsRemaining *int `json:"attempts_remaining,omitempty"`

	// RemainingMillis is set on frozen rejections: milliseconds until the
	// account thaws.
	RemainingMillis int64 `json:"remaining_millis,omitempty"`
}
