package crypto

import "errors"

// Sentinel errors returned by [CipherEngine]. Callers match them with
// [errors.Is]; the distinction matters because only ErrAuthFailed counts as a
// failed attempt against the account's lockout state.
var (
	// ErrInvalidInput is returned by Encrypt when the password or the
	// plaintext is empty. Never counted as a failed attempt.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidEnvelope is returned by Decrypt when the envelope is
	// syntactically malformed in a way detectable before the cipher runs
	// (not base64, or shorter than the embedded salt and nonce).
	// Never counted as a failed attempt.
	ErrInvalidEnvelope = errors.New("malformed envelope")

	// ErrAuthFailed is the uniform failure channel for decryption: wrong
	// password, corrupted ciphertext, and empty recovered plaintext all
	// surface as this one error. It is the only error the caller reports
	// to the lockout guard.
	ErrAuthFailed = errors.New("authentication failed")
)

// CipherEngine is the stateless password-based encryption transform.
//
// Both operations are pure: the engine keeps no state between calls and is
// safe for concurrent use. An envelope produced by Encrypt is opaque and
// self-contained — it embeds the key-derivation salt and the cipher nonce,
// so the same password is all that is needed to get the plaintext back.
// The envelope format is an implementation detail of this deployment; no
// cross-implementation stability is promised.
type CipherEngine interface {
	// Encrypt seals plaintext under a key derived from password and
	// returns the string-encoded envelope.
	// Returns ErrInvalidInput if password or plaintext is empty.
	Encrypt(plaintext, password string) (string, error)

	// Decrypt recovers the plaintext from an envelope given the password
	// it was sealed with.
	// Returns ErrInvalidEnvelope for pre-cipher-detectable syntax errors
	// and ErrAuthFailed for everything else that prevents recovery.
	Decrypt(envelope, password string) (string, error)
}
