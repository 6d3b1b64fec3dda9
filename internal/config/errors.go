package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidLockoutConfigs indicates invalid lockout policy settings
	// (negative attempt threshold or freeze duration).
	ErrInvalidLockoutConfigs = errors.New("invalid lockout configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a token sign key without an issuer).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
)
