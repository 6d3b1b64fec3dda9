// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Shemin

// Package lockout implements the attempt-limiting gate that sits in front of
// decryption. It tracks consecutive failed attempts per account and, once a
// threshold is reached, freezes the account until a deadline elapses.
//
// State is per-process and ephemeral: accounts are created implicitly on
// first sight, reset on success or logout, and vanish with the process. A
// freeze carried in from an earlier session arrives through Restore and is
// treated as untrusted input.
package lockout

import (
	"sync"
	"time"

	"github.com/dshemin/lockbox/internal/logger"
	"github.com/dshemin/lockbox/models"
)

// Defaults applied when the configured values are missing or non-positive.
const (
	DefaultMaxAttempts    = 3
	DefaultFreezeDuration = time.Hour
)

// Config carries the two lockout policy knobs.
type Config struct {
	// MaxAttempts is the number of consecutive failures that trips the
	// freeze. Must be positive; defaults to DefaultMaxAttempts.
	MaxAttempts int

	// FreezeDuration is how long a tripped account stays frozen.
	// Must be positive; defaults to DefaultFreezeDuration.
	FreezeDuration time.Duration
}

// state is the per-account mutable record. An account is in one of three
// implicit phases: Open (no record, or zero values), Counting (failedAttempts
// in 1..MaxAttempts-1), Frozen (frozenUntil in the future). The attempt count
// resets to zero the moment the account freezes; the freeze supersedes it.
type state struct {
	failedAttempts int
	frozenUntil    time.Time
}

// Guard owns the lockout state for every account seen by this process.
// All methods are safe for concurrent use: the state map is guarded by one
// mutex, which serializes the failure counter per account as required.
type Guard struct {
	mu       sync.Mutex
	accounts map[string]*state

	maxAttempts    int
	freezeDuration time.Duration

	now func() time.Time

	logger *logger.Logger
}

// Option customises a Guard at construction time.
type Option func(*Guard)

// WithClock replaces the guard's time source. Intended for tests and for
// callers that need deterministic freeze deadlines.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		g.now = now
	}
}

// NewGuard constructs a Guard with the given policy. Non-positive config
// values fall back to the package defaults.
func NewGuard(cfg Config, log *logger.Logger, opts ...Option) *Guard {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.FreezeDuration <= 0 {
		cfg.FreezeDuration = DefaultFreezeDuration
	}

	g := &Guard{
		accounts:       make(map[string]*state),
		maxAttempts:    cfg.MaxAttempts,
		freezeDuration: cfg.FreezeDuration,
		now:            time.Now,
		logger:         log,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// CanAttempt reports whether accountID may attempt a decryption right now.
// It is a pure query: no state is mutated, so an expired freeze is reported
// as allowed here and physically cleared by the next mutating call or by
// SweepExpired.
func (g *Guard) CanAttempt(accountID string) models.LockoutStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.statusLocked(accountID)
}

// statusLocked computes the snapshot for accountID. Caller must hold g.mu.
func (g *Guard) statusLocked(accountID string) models.LockoutStatus {
	st, ok := g.accounts[accountID]
	if !ok {
		return models.LockoutStatus{Allowed: true}
	}

	now := g.now()
	if !st.frozenUntil.IsZero() && now.Before(st.frozenUntil) {
		return models.LockoutStatus{
			Allowed:         false,
			RemainingMillis: st.frozenUntil.Sub(now).Milliseconds(),
		}
	}

	// Expired freezes read as a clean slate even before they are swept.
	if !st.frozenUntil.IsZero() {
		return models.LockoutStatus{Allowed: true}
	}

	return models.LockoutStatus{Allowed: true, FailedAttempts: st.failedAttempts}
}

// RecordFailure applies one failed decryption attempt to accountID and
// returns the resulting outcome. It must be called exactly once per failure
// that actually reached the cipher — never for input rejected beforehand.
//
// Calling it while the account is still frozen is a caller contract breach;
// the guard answers with the current frozen outcome instead of counting.
func (g *Guard) RecordFailure(accountID string) models.FailureOutcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	st, ok := g.accounts[accountID]
	if !ok {
		st = &state{}
		g.accounts[accountID] = st
	}

	if !st.frozenUntil.IsZero() {
		if now.Before(st.frozenUntil) {
			return models.FailureOutcome{Frozen: true, FrozenUntil: st.frozenUntil}
		}
		// Freeze elapsed: back to Open before counting this failure.
		st.frozenUntil = time.Time{}
		st.failedAttempts = 0
	}

	st.failedAttempts++
	if st.failedAttempts >= g.maxAttempts {
		st.failedAttempts = 0
		st.frozenUntil = now.Add(g.freezeDuration)

		g.logger.Warn().
			Str("account_id", accountID).
			Time("frozen_until", st.frozenUntil).
			Msg("lockout threshold reached, account frozen")

		return models.FailureOutcome{Frozen: true, FrozenUntil: st.frozenUntil}
	}

	g.logger.Debug().
		Str("account_id", accountID).
		Int("failed_attempts", st.failedAttempts).
		Msg("failed attempt recorded")

	return models.FailureOutcome{AttemptsRemaining: g.maxAttempts - st.failedAttempts}
}

// RecordSuccess clears accountID back to Open after a successful decryption.
func (g *Guard) RecordSuccess(accountID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.accounts, accountID)
}

// Reset explicitly clears accountID, including mid-freeze. Used on logout
// and administrative resets; it is not a decrypt outcome.
func (g *Guard) Reset(accountID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.accounts[accountID]; ok {
		g.logger.Debug().Str("account_id", accountID).Msg("lockout state reset")
	}
	delete(g.accounts, accountID)
}

// Restore imports a freeze carried across a session boundary by the caller.
// The handoff travels an untrusted channel, so only the deadline is imported,
// and only when it still lies in the future; attempt counts never transfer.
// Returns true when the freeze was applied.
func (g *Guard) Restore(accountID string, frozenUntil time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !frozenUntil.After(g.now()) {
		return false
	}

	st, ok := g.accounts[accountID]
	if !ok {
		st = &state{}
		g.accounts[accountID] = st
	}

	// Never shorten a freeze the guard already knows about.
	if frozenUntil.After(st.frozenUntil) {
		st.frozenUntil = frozenUntil
		st.failedAttempts = 0
	}

	g.logger.Info().
		Str("account_id", accountID).
		Time("frozen_until", st.frozenUntil).
		Msg("freeze restored from handoff")

	return true
}

// SweepExpired removes every account whose freeze deadline has passed and
// returns their IDs. Accounts that are merely counting failures are left
// alone. Called periodically by the freeze sweeper worker so that expired
// freezes are re-opened proactively rather than on the next attempt.
func (g *Guard) SweepExpired() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	var reopened []string
	for accountID, st := range g.accounts {
		if !st.frozenUntil.IsZero() && !now.Before(st.frozenUntil) {
			delete(g.accounts, accountID)
			reopened = append(reopened, accountID)
		}
	}

	return reopened
}
