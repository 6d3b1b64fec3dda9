// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Shemin

// Package adapter provides transport-layer abstractions for communicating
// with the lockbox server.
//
// The primary abstraction is [ServerAdapter], which decouples the CLI client
// from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrAccountFrozen] for 423, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/dshemin/lockbox/models"
)

// ServerAdapter defines transport-agnostic communication with the lockbox
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It is called automatically after a
	// successful Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Login establishes a session from an externally issued ID token,
	// optionally carrying a freeze handoff from a previous session. On
	// success the bearer token from the Authorization response header is
	// stored via SetToken.
	Login(ctx context.Context, request models.LoginRequest) (models.LoginResponse, error)

	// Logout tears down the session and returns the lockout snapshot taken
	// before the server-side reset, so a frozen client can carry the freeze
	// into its next session.
	Logout(ctx context.Context) (models.LockoutStatus, error)

	// Seal encrypts content under a password and returns the opaque
	// envelope.
	Seal(ctx context.Context, request models.SealRequest) (models.SealResponse, error)

	// Unseal decrypts an envelope under a password. Returns
	// [ErrAccountFrozen] (wrapped) when the account is frozen and
	// [ErrUnauthorized] (wrapped) on a failed attempt.
	Unseal(ctx context.Context, request models.UnsealRequest) (models.UnsealResponse, error)

	// Status fetches the live lockout state plus journal aggregates for the
	// session's account.
	Status(ctx context.Context) (models.LockoutStatusResponse, error)

	// ServerVersion fetches the server's application version string.
	ServerVersion(ctx context.Context) (string, error)
}
