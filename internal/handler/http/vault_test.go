package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshemin/lockbox/internal/service"
	"github.com/dshemin/lockbox/models"
)

func postJSON(t *testing.T, target string, body any, accountID string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(jsonBody(t, body)))
	if accountID != "" {
		req = req.WithContext(withAccountID(req.Context(), accountID))
	}
	return req
}

func TestSeal_Success(t *testing.T) {
	vault := &mockVaultService{
		sealFn: func(_ context.Context, accountID string, request models.SealRequest) (models.SealResponse, error) {
			require.Equal(t, "acc-1", accountID)
			require.Equal(t, "secret", request.Content)
			return models.SealResponse{Envelope: "envelope-1"}, nil
		},
	}

	h := newTestHandler(t, &mockSessionService{}, vault)
	rec := httptest.NewRecorder()

	h.seal(rec, postJSON(t, "/api/vault/seal", models.SealRequest{Content: "secret", Password: "pw"}, "acc-1"))

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.SealResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "envelope-1", response.Envelope)
}

func TestSeal_NoAccountInContext(t *testing.T) {
	h := newTestHandler(t, &mockSessionService{}, &mockVaultService{})
	rec := httptest.NewRecorder()

	h.seal(rec, postJSON(t, "/api/vault/seal", models.SealRequest{Content: "secret", Password: "pw"}, ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnseal_Success(t *testing.T) {
	vault := &mockVaultService{
		unsealFn: func(_ context.Context, _ string, request models.UnsealRequest) (models.UnsealResponse, error) {
			require.Equal(t, "envelope-1", request.Envelope)
			return models.UnsealResponse{Kind: models.FramePlainText, Content: "secret"}, nil
		},
	}

	h := newTestHandler(t, &mockSessionService{}, vault)
	rec := httptest.NewRecorder()

	h.unseal(rec, postJSON(t, "/api/vault/unseal", models.UnsealRequest{Envelope: "envelope-1", Password: "pw"}, "acc-1"))

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.UnsealResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, models.FramePlainText, response.Kind)
	assert.Equal(t, "secret", response.Content)
}

func TestUnseal_WrongPassword(t *testing.T) {
	vault := &mockVaultService{
		unsealFn: func(_ context.Context, _ string, _ models.UnsealRequest) (models.UnsealResponse, error) {
			return models.UnsealResponse{}, &service.AuthFailureError{
				Outcome: models.FailureOutcome{AttemptsRemaining: 2},
			}
		},
	}

	h := newTestHandler(t, &mockSessionService{}, vault)
	rec := httptest.NewRecorder()

	h.unseal(rec, postJSON(t, "/api/vault/unseal", models.UnsealRequest{Envelope: "e", Password: "wrong"}, "acc-1"))

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.AttemptsRemaining)
	assert.Equal(t, 2, *body.AttemptsRemaining)
}

func TestUnseal_TrippingFailureReportsFrozen(t *testing.T) {
	vault := &mockVaultService{
		unsealFn: func(_ context.Context, _ string, _ models.UnsealRequest) (models.UnsealResponse, error) {
			return models.UnsealResponse{}, &service.AuthFailureError{
				Outcome: models.FailureOutcome{Frozen: true, FrozenUntil: time.Now().Add(time.Hour)},
			}
		},
	}

	h := newTestHandler(t, &mockSessionService{}, vault)
	rec := httptest.NewRecorder()

	h.unseal(rec, postJSON(t, "/api/vault/unseal", models.UnsealRequest{Envelope: "e", Password: "wrong"}, "acc-1"))

	require.Equal(t, http.StatusLocked, rec.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.AttemptsRemaining)
	assert.Greater(t, body.RemainingMillis, int64(0))
}

func TestUnseal_FrozenAccount(t *testing.T) {
	vault := &mockVaultService{
		unsealFn: func(_ context.Context, _ string, _ models.UnsealRequest) (models.UnsealResponse, error) {
			return models.UnsealResponse{}, &service.FreezeError{RemainingMillis: 90000}
		},
	}

	h := newTestHandler(t, &mockSessionService{}, vault)
	rec := httptest.NewRecorder()

	h.unseal(rec, postJSON(t, "/api/vault/unseal", models.UnsealRequest{Envelope: "e", Password: "pw"}, "acc-1"))

	require.Equal(t, http.StatusLocked, rec.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 90000, body.RemainingMillis)
}

func TestUnseal_MalformedEnvelope(t *testing.T) {
	vault := &mockVaultService{
		unsealFn: func(_ context.Context, _ string, _ models.UnsealRequest) (models.UnsealResponse, error) {
			return models.UnsealResponse{}, service.ErrInvalidDataProvided
		},
	}

	h := newTestHandler(t, &mockSessionService{}, vault)
	rec := httptest.NewRecorder()

	h.unseal(rec, postJSON(t, "/api/vault/unseal", models.UnsealRequest{Envelope: "garbage", Password: "pw"}, "acc-1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLockoutStatus_Success(t *testing.T) {
	vault := &mockVaultService{
		statusFn: func(_ context.Context, accountID string) (models.LockoutStatusResponse, error) {
			require.Equal(t, "acc-1", accountID)
			return models.LockoutStatusResponse{
				Status: models.LockoutStatus{Allowed: true, FailedAttempts: 1},
				Stats:  &models.AttemptStats{AccountID: accountID, TotalFailed: 5},
			}, nil
		},
	}

	h := newTestHandler(t, &mockSessionService{}, vault)
	req := httptest.NewRequest(http.MethodGet, "/api/lockout/status", nil)
	req = req.WithContext(withAccountID(req.Context(), "acc-1"))
	rec := httptest.NewRecorder()

	h.lockoutStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.LockoutStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Status.Allowed)
	assert.Equal(t, 1, response.Status.FailedAttempts)
	require.NotNil(t, response.Stats)
	assert.Equal(t, 5, response.Stats.TotalFailed)
}
