package service

import (
	"context"

	"github.com/dshemin/lockbox/models"
)

// VaultService is the password-based encryption surface: sealing content
// into opaque envelopes and unsealing them back, with every unseal gated by
// the account's lockout state.
type VaultService interface {
	Seal(ctx context.Context, accountID string, request models.SealRequest) (models.SealResponse, error)
	Unseal(ctx context.Context, accountID string, request models.UnsealRequest) (models.UnsealResponse, error)
	Status(ctx context.Context, accountID string) (models.LockoutStatusResponse, error)
}

// SessionService establishes and tears down authenticated sessions. Login
// consumes an externally issued ID token, derives the opaque account ID, and
// applies any freeze handoff carried over from a previous session.
type SessionService interface {
	Login(ctx context.Context, request models.LoginRequest) (models.LoginResponse, models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	Logout(ctx context.Context, accountID string) (models.LockoutStatus, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
