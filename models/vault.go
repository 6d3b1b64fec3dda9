package models

// SealRequest asks the vault to encrypt content under a password.
type SealRequest struct {
	// Content is the text to seal. For binary documents the client sends
	// the raw bytes base64-encoded in Content and sets Binary, and the
	// server applies the marker framing before encryption.
	Content string `json:"content"`

	// Password is the passphrase the envelope key is derived from.
	// Never logged and never stored.
	Password string `json:"password"`

	// Binary marks Content as base64 of an uploaded document rather than
	// plain text.
	Binary bool `json:"binary,omitempty"`
}

// SealResponse carries the resulting opaque envelope.
type SealResponse struct {
	// Envelope is the encrypted artifact. It embeds everything needed to
	// decrypt it again given the same password, and is meaningful only to
	// the deployment that produced it.
	Envelope string `json:"envelope"`
}

// UnsealRequest asks the vault to decrypt an envelope under a password.
// The request is gated by the account's lockout state before the cipher
// is ever invoked.
type UnsealRequest struct {
	// Envelope is the encrypted artifact previously produced by a seal.
	Envelope string `json:"envelope"`

	// Password is the passphrase to attempt decryption with.
	Password string `json:"password"`
}

// UnsealResponse carries the recovered content on success.
type UnsealResponse struct {
	// Kind reports whether the recovered content was plain text or a
	// framed binary document.
	Kind FrameKind `json:"kind"`

	// Content is the recovered payload without the binary marker: the
	// plain text itself, or base64 of the original document bytes.
	Content string `json:"content"`
}
