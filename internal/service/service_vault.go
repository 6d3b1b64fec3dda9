// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Shemin

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshemin/lockbox/internal/crypto"
	"github.com/dshemin/lockbox/internal/lockout"
	"github.com/dshemin/lockbox/internal/logger"
	"github.com/dshemin/lockbox/internal/store"
	"github.com/dshemin/lockbox/internal/utils"
	"github.com/dshemin/lockbox/models"
)

// vaultService is the concrete implementation of VaultService. It composes
// the cipher engine with the lockout guard: every unseal is gated by the
// account's lockout state before the cipher runs, and every outcome that
// reached the cipher is reported back to the guard and appended to the
// attempt journal.
//
// The journal is observability only. A journal write failure is logged and
// swallowed; it never changes the outcome of a vault operation.
type vaultService struct {
	engine  crypto.CipherEngine
	guard   *lockout.Guard
	journal store.AttemptJournal

	logger *logger.Logger
}

// NewVaultService constructs a VaultService wired to the given cipher
// engine, lockout guard, and attempt journal.
func NewVaultService(engine crypto.CipherEngine, guard *lockout.Guard, journal store.AttemptJournal, logger *logger.Logger) VaultService {
	return &vaultService{
		engine:  engine,
		guard:   guard,
		journal: journal,
		logger:  logger,
	}
}

// Seal encrypts request content under the request password and returns the
// opaque envelope. Binary content arrives base64-encoded with the Binary
// flag set and is marker-framed before encryption, so the kind survives the
// round trip inside the ciphertext.
//
// Sealing is never rate limited: only failed decryptions count against an
// account.
//
// Returns ErrInvalidDataProvided if the account ID, content, or password is
// empty.
func (v *vaultService) Seal(ctx context.Context, accountID string, request models.SealRequest) (models.SealResponse, error) {
	log := logger.FromContext(ctx)

	if accountID == "" || request.Content == "" || request.Password == "" {
		log.Error().Msg("invalid seal request data provided")
		return models.SealResponse{}, ErrInvalidDataProvided
	}

	content := request.Content
	if request.Binary {
		content = models.ContentFrame{Kind: models.FrameEncodedBinary, Payload: request.Content}.Serialize()
	}

	envelope, err := v.engine.Encrypt(content, request.Password)
	if err != nil {
		log.Err(err).Str("func", "*vaultService.Seal").Msg("error sealing content")
		if errors.Is(err, crypto.ErrInvalidInput) {
			return models.SealResponse{}, ErrInvalidDataProvided
		}
		return models.SealResponse{}, fmt.Errorf("error sealing content: %w", err)
	}

	return models.SealResponse{Envelope: envelope}, nil
}

// Unseal decrypts an envelope under the request password, gated by the
// account's lockout state.
//
// The flow is fixed: check the guard first, and only if the account is
// allowed run the cipher. A cipher rejection is counted as exactly one
// failed attempt; a malformed envelope never reaches the cipher and is
// never counted.
//
// Returns:
//   - [*FreezeError] if the account is frozen (the cipher is not invoked).
//   - ErrInvalidDataProvided for empty inputs or a malformed envelope.
//   - [*AuthFailureError] if decryption failed; its Outcome reports whether
//     this failure froze the account.
func (v *vaultService) Unseal(ctx context.Context, accountID string, request models.UnsealRequest) (models.UnsealResponse, error) {
	log := logger.FromContext(ctx)

	if accountID == "" || request.Envelope == "" || request.Password == "" {
		log.Error().Msg("invalid unseal request data provided")
		return models.UnsealResponse{}, ErrInvalidDataProvided
	}

	status := v.guard.CanAttempt(accountID)
	if !status.Allowed {
		log.Warn().
			Str("account_id", accountID).
			Int64("remaining_millis", status.RemainingMillis).
			Msg("unseal rejected, account is frozen")
		return models.UnsealResponse{}, &FreezeError{RemainingMillis: status.RemainingMillis}
	}

	plaintext, err := v.engine.Decrypt(request.Envelope, request.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidEnvelope) {
			// Rejected before the cipher ran: not a failed attempt.
			log.Error().Str("account_id", accountID).Msg("malformed envelope provided")
			return models.UnsealResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}

		outcome := v.guard.RecordFailure(accountID)
		v.journalAttempt(ctx, accountID, failureOutcomeKind(outcome))

		log.Warn().
			Str("account_id", accountID).
			Bool("frozen", outcome.Frozen).
			Int("attempts_remaining", outcome.AttemptsRemaining).
			Msg("unseal failed")

		return models.UnsealResponse{}, &AuthFailureError{Outcome: outcome}
	}

	v.guard.RecordSuccess(accountID)
	v.journalAttempt(ctx, accountID, models.AttemptOutcomeSuccess)

	frame := models.ParseFrame(plaintext)

	return models.UnsealResponse{Kind: frame.Kind, Content: frame.Payload}, nil
}

// Status returns the live lockout snapshot for accountID, combined with the
// journal's aggregate history when the journal can serve it.
func (v *vaultService) Status(ctx context.Context, accountID string) (models.LockoutStatusResponse, error) {
	log := logger.FromContext(ctx)

	if accountID == "" {
		return models.LockoutStatusResponse{}, ErrInvalidDataProvided
	}

	response := models.LockoutStatusResponse{
		Status: v.guard.CanAttempt(accountID),
	}

	stats, err := v.journal.Stats(ctx, accountID)
	if err != nil {
		// Degrade to live state only; history is best effort.
		log.Err(err).Str("account_id", accountID).Msg("error reading journal stats")
		return response, nil
	}
	response.Stats = &stats

	return response, nil
}

// journalAttempt appends one outcome row, tagged with the request trace ID
// when one is present.
func (v *vaultService) journalAttempt(ctx context.Context, accountID, outcome string) {
	traceID, _ := utils.GetTraceIDFromContext(ctx)

	err := v.journal.RecordAttempt(ctx, models.AttemptRecord{
		AccountID: accountID,
		Outcome:   outcome,
		TraceID:   traceID,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("account_id", accountID).
			Str("outcome", outcome).
			Msg("error journaling attempt")
	}
}

func failureOutcomeKind(outcome models.FailureOutcome) string {
	if outcome.Frozen {
		return models.AttemptOutcomeFrozen
	}

	return models.AttemptOutcomeFailure
}
