package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/dshemin/lockbox/internal/config"
	"github.com/dshemin/lockbox/internal/lockout"
	"github.com/dshemin/lockbox/internal/logger"
	"github.com/dshemin/lockbox/internal/store"
	"github.com/dshemin/lockbox/internal/utils"
	"github.com/dshemin/lockbox/models"
)

// sessionService is the concrete implementation of SessionService.
//
// It does not verify the inbound ID token against the identity provider:
// the sign-in handshake happens between the client and the provider, and
// this core only extracts the claims it needs to derive the opaque account
// ID. The session token it issues in exchange is signed locally and is what
// gates every subsequent request.
type sessionService struct {
	guard   *lockout.Guard
	journal store.AttemptJournal

	// hashKey is the HMAC secret used to derive opaque account IDs from
	// e-mail addresses. Must stay stable for a deployment.
	hashKey string

	// tokenSignKey is the HMAC secret used to sign and verify session JWTs.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued session JWT.
	tokenIssuer string

	// tokenDuration controls how long a newly issued session JWT remains
	// valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewSessionService constructs a SessionService wired to the lockout guard
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewSessionService(guard *lockout.Guard, journal store.AttemptJournal, cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		guard:         guard,
		journal:       journal,
		hashKey:       cfg.HashKey,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// Login establishes a session from an externally issued ID token.
//
// The token's claims provide the user identity; the account ID is derived
// from the e-mail claim with the deployment's hash key. When the request
// carries a freeze handoff from a previous session, the handoff is applied
// to the guard before the lockout state is read, so a frozen account logs
// in frozen. The handoff is untrusted: only future deadlines are imported,
// and a tampered or absent handoff simply leaves the guard as it was.
//
// Returns the session identity together with the signed session token, or:
//   - ErrInvalidDataProvided if the ID token is missing or unreadable.
//   - ErrTokenCreationFailed if the session token cannot be signed.
func (s *sessionService) Login(ctx context.Context, request models.LoginRequest) (models.LoginResponse, models.Token, error) {
	log := logger.FromContext(ctx)

	if request.IDToken == "" {
		log.Error().Msg("no ID token provided")
		return models.LoginResponse{}, models.Token{}, ErrInvalidDataProvided
	}

	user, err := utils.ParseIDTokenClaims(request.IDToken)
	if err != nil {
		log.Err(err).Msg("error extracting identity from ID token")
		return models.LoginResponse{}, models.Token{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	accountID := utils.DeriveAccountID(user.Email, s.hashKey)

	s.restoreHandoff(ctx, request)

	status := s.guard.CanAttempt(accountID)

	token, err := utils.GenerateJWTToken(s.tokenIssuer, accountID, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		log.Err(err).Str("account_id", accountID).Msg("error issuing session token")
		return models.LoginResponse{}, models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	response := models.LoginResponse{
		User:            user,
		AccountID:       accountID,
		Frozen:          !status.Allowed,
		RemainingMillis: status.RemainingMillis,
	}

	return response, token, nil
}

// restoreHandoff applies a freeze handoff carried in the login request, if
// any. The account ID is re-derived from the handoff's own e-mail: a
// handoff naming a different account than the one logging in still freezes
// the account it names, nothing else.
func (s *sessionService) restoreHandoff(ctx context.Context, request models.LoginRequest) {
	log := logger.FromContext(ctx)

	handoff, err := models.ParseFreezeHandoff(url.Values{
		"freeze": []string{request.Freeze},
		"email":  []string{request.Email},
	})
	if err != nil {
		if err != models.ErrNoHandoff {
			log.Warn().Err(err).Msg("discarding malformed freeze handoff")
		}
		return
	}

	handoffAccountID := utils.DeriveAccountID(handoff.Email, s.hashKey)
	if s.guard.Restore(handoffAccountID, handoff.FrozenUntil) {
		log.Info().Str("account_id", handoffAccountID).Msg("freeze handoff applied at login")
	}
}

// ParseToken validates and parses a raw session JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature
// and the issuer claim. Any validation failure (expired, wrong issuer,
// malformed) is normalised to ErrTokenIsExpiredOrInvalid so that callers do
// not need to inspect low-level JWT errors.
func (s *sessionService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// Logout tears down the account's server-side lockout record and returns
// the lockout snapshot taken just before the reset. A frozen account's
// freeze survives the logout only through the handoff the client carries,
// which is exactly how much trust the deadline deserves across a session
// boundary.
func (s *sessionService) Logout(ctx context.Context, accountID string) (models.LockoutStatus, error) {
	log := logger.FromContext(ctx)

	if accountID == "" {
		return models.LockoutStatus{}, ErrInvalidDataProvided
	}

	status := s.guard.CanAttempt(accountID)
	s.guard.Reset(accountID)

	traceID, _ := utils.GetTraceIDFromContext(ctx)
	err := s.journal.RecordAttempt(ctx, models.AttemptRecord{
		AccountID: accountID,
		Outcome:   models.AttemptOutcomeReset,
		TraceID:   traceID,
	})
	if err != nil {
		log.Err(err).Str("account_id", accountID).Msg("error journaling logout reset")
	}

	return status, nil
}
