// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Shemin

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Only values that would make the process misbehave are rejected; absent
// optional settings (journal DSN, sweep interval) are fine.
func (cfg *StructuredConfig) validate() error {
	if cfg.Lockout.MaxAttempts < 0 || cfg.Lockout.FreezeDuration < 0 {
		return ErrInvalidLockoutConfigs
	}

	if cfg.App.TokenSignKey != "" && cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
