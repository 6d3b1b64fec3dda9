// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Shemin

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for lockbox.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the account-ID hash key,
	// session token parameters, and the application version.
	App App `envPrefix:"APP_"`

	// Lockout holds the attempt-limiting policy applied to decryption.
	Lockout Lockout `envPrefix:"LOCKOUT_"`

	// Storage holds configuration for the attempt journal backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control identity
// derivation, session tokens, and versioning.
type App struct {
	// HashKey is the secret key used when deriving opaque account IDs from
	// e-mail addresses with HMAC-SHA256. Must be kept confidential and
	// stable for a deployment, or previously derived IDs stop matching.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// TokenSignKey is the secret key used to sign and verify session JWTs.
	// Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued session JWT.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a session JWT remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Lockout holds the attempt-limiting policy knobs.
type Lockout struct {
	// MaxAttempts is the number of consecutive failed decryptions that
	// freezes an account. Zero means "use the built-in default" (3).
	// Env: LOCKOUT_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// FreezeDuration is how long a frozen account stays frozen
	// (e.g. "1h"). Zero means "use the built-in default" (1 hour).
	// Env: LOCKOUT_FREEZE_DURATION
	FreezeDuration time.Duration `env:"FREEZE_DURATION"`
}

// Storage groups the configuration for the persistence backends.
type Storage struct {
	// Journal holds the attempt-journal database settings.
	Journal Journal `envPrefix:"JOURNAL_"`
}

// Journal holds connection settings for the SQLite attempt journal.
type Journal struct {
	// DSN is the SQLite database path (e.g. "./lockbox-journal.db").
	// Empty disables the journal entirely; the lockout logic does not
	// depend on it.
	// Env: STORAGE_JOURNAL_DSN
	DSN string `env:"DSN"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SweepInterval is how often the freeze sweeper re-opens expired
	// lockouts (e.g. "30s"). Zero disables the sweeper; expiry is then
	// detected lazily on the next attempt.
	// Env: WORKERS_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first non-zero value wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
