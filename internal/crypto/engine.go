// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Shemin

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	// saltSize is the length of the per-envelope key-derivation salt.
	saltSize = 16

	// nonceSize is the standard AES-GCM nonce length.
	nonceSize = 12
)

// cipherEngine is the private implementation of [CipherEngine].
type cipherEngine struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target without touching the envelope format.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewCipherEngine constructs a [CipherEngine] with the Argon2id parameters
// recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewCipherEngine() CipherEngine {
	return &cipherEngine{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// deriveKey derives a 256-bit AES key from password and salt using Argon2id
// with the parameters stored in the receiver.
func (e *cipherEngine) deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(password),
		salt,
		e.argonTime,
		e.argonMemory,
		e.argonThreads,
		e.argonKeyLen,
	)
}

// Encrypt implements [CipherEngine]. It draws a fresh 16-byte salt, derives
// the key with Argon2id, and seals the plaintext with AES-256-GCM under a
// random 12-byte nonce. The output is a Base64 (standard encoding) string of
// the blob: salt (16 bytes) ‖ nonce (12 bytes) ‖ ciphertext. Embedding the
// salt and nonce makes the envelope self-contained: Decrypt needs only the
// envelope and the password.
//
// Returns ErrInvalidInput if password or plaintext is empty, or a wrapped
// error if the CSPRNG or cipher construction fails.
func (e *cipherEngine) Encrypt(plaintext, password string) (string, error) {
	if password == "" || plaintext == "" {
		return "", ErrInvalidInput
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	block, err := aes.NewCipher(e.deriveKey(password, salt))
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("create gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// blob = salt || nonce || ciphertext
	blob := make([]byte, 0, saltSize+gcm.NonceSize()+len(plaintext)+gcm.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = gcm.Seal(blob, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [CipherEngine]. It Base64-decodes the envelope, splits
// out the salt and nonce, re-derives the key from the password, and opens the
// ciphertext with AES-256-GCM.
//
// Failure policy: envelopes that fail Base64 decoding or are too short to
// contain the salt and nonce are rejected with ErrInvalidEnvelope before the
// cipher runs. Once the cipher is involved, every failure collapses into the
// single ErrAuthFailed channel — a GCM tag mismatch cannot distinguish a
// wrong password from corrupted ciphertext, and an envelope that opens to an
// empty plaintext is treated the same way so that callers have exactly one
// failure signal to count against the lockout.
func (e *cipherEngine) Decrypt(envelope, password string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return "", ErrInvalidEnvelope
	}
	if len(blob) < saltSize+nonceSize {
		return "", ErrInvalidEnvelope
	}

	salt, nonce, ciphertext := blob[:saltSize], blob[saltSize:saltSize+nonceSize], blob[saltSize+nonceSize:]

	block, err := aes.NewCipher(e.deriveKey(password, salt))
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("create gcm: %w", err)
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// Wrong password and corrupted envelope are indistinguishable here.
		return "", ErrAuthFailed
	}
	if len(plaintext) == 0 {
		return "", ErrAuthFailed
	}

	return string(plaintext), nil
}
