// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Shemin

package workers

import (
	"context"
	"time"

	"github.com/dshemin/lockbox/internal/lockout"
	"github.com/dshemin/lockbox/internal/logger"
)

// DefaultSweepInterval is used when no interval is configured.
const DefaultSweepInterval = time.Minute

// FreezeSweeper periodically removes expired freezes from the lockout guard
// so accounts are re-opened proactively instead of on their next attempt.
// The guard stays correct without it (expired freezes read as allowed); the
// sweeper only keeps the state map from accumulating dead records.
type FreezeSweeper struct {
	guard    *lockout.Guard
	interval time.Duration

	ctx    context.Context
	logger *logger.Logger
}

// NewFreezeSweeper constructs a sweeper bound to ctx. The sweep loop stops
// when ctx is cancelled. A non-positive interval falls back to
// DefaultSweepInterval.
func NewFreezeSweeper(ctx context.Context, guard *lockout.Guard, interval time.Duration, logger *logger.Logger) *FreezeSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	return &FreezeSweeper{
		guard:    guard,
		interval: interval,
		ctx:      ctx,
		logger:   logger,
	}
}

// Run starts the sweep loop in a background goroutine and returns
// immediately.
func (s *FreezeSweeper) Run() {
	go s.loop()
}

func (s *FreezeSweeper) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("freeze sweeper started")

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info().Msg("freeze sweeper stopped")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *FreezeSweeper) sweep() {
	reopened := s.guard.SweepExpired()
	if len(reopened) == 0 {
		return
	}

	s.logger.Info().
		Int("count", len(reopened)).
		Strs("account_ids", reopened).
		Msg("expired freezes swept")
}
