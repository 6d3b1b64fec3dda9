package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshemin/lockbox/models"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrAccountFrozen marks any error produced because the account's
	// lockout freeze is still active. Match with [errors.Is]; the concrete
	// value is a [*FreezeError] carrying the deadline.
	ErrAccountFrozen = errors.New("account is frozen")

	// ErrAuthenticationFailed marks a decryption rejected by the cipher.
	// The concrete value is a [*AuthFailureError] carrying the lockout
	// outcome of the failure.
	ErrAuthenticationFailed = errors.New("authentication failed")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// FreezeError is returned when an operation is rejected because the account
// is frozen. It matches [ErrAccountFrozen] via [errors.Is].
type FreezeError struct {
	// RemainingMillis is the time left until the freeze expires.
	RemainingMillis int64
}

func (e *FreezeError) Error() string {
	return fmt.Sprintf("account is frozen for another %s", time.Duration(e.RemainingMillis)*time.Millisecond)
}

func (e *FreezeError) Is(target error) bool {
	return target == ErrAccountFrozen
}

// AuthFailureError is returned when a decryption attempt failed and was
// counted against the account's lockout state. It matches
// [ErrAuthenticationFailed] via [errors.Is]. When the failure tripped the
// threshold, Outcome.Frozen is set and the error also matches
// [ErrAccountFrozen].
type AuthFailureError struct {
	// Outcome is the lockout state resulting from this failure.
	Outcome models.FailureOutcome
}

func (e *AuthFailureError) Error() string {
	if e.Outcome.Frozen {
		return "authentication failed, account is now frozen"
	}

	return fmt.Sprintf("authentication failed, %d attempts remaining", e.Outcome.AttemptsRemaining)
}

func (e *AuthFailureError) Is(target error) bool {
	if target == ErrAuthenticationFailed {
		return true
	}

	return e.Outcome.Frozen && target == ErrAccountFrozen
}
