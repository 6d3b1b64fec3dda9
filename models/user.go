package models

// User represents the identity of the person driving the current session.
// It is extracted from the claims of an externally issued ID token and is
// never persisted; it lives only for the lifetime of a session.
type User struct {
	// Subject is the stable unique identifier assigned by the identity
	// provider ("sub" claim). It never changes for a given account.
	Subject string `json:"sub"`

	// Email is the account's e-mail address. The lockout account ID is
	// derived deterministically from this value.
	Email string `json:"email"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown by clients.
	Name string `json:"name"`

	// Picture is an optional avatar URL supplied by the identity provider.
	Picture string `json:"picture,omitempty"`
}
