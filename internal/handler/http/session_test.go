package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshemin/lockbox/internal/service"
	"github.com/dshemin/lockbox/models"
)

func TestLogin_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	session := &mockSessionService{
		loginFn: func(_ context.Context, request models.LoginRequest) (models.LoginResponse, models.Token, error) {
			require.Equal(t, "id-token", request.IDToken)
			response := models.LoginResponse{
				User:      models.User{Subject: "sub-1", Email: "user@example.com"},
				AccountID: "acc-1",
			}
			return response, models.Token{SignedString: signedToken, AccountID: "acc-1"}, nil
		},
	}

	h := newTestHandler(t, session, &mockVaultService{})
	req := httptest.NewRequest(http.MethodPost, "/api/session/login",
		strings.NewReader(jsonBody(t, models.LoginRequest{IDToken: "id-token"})))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer "+signedToken, rec.Header().Get("Authorization"))

	var response models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "acc-1", response.AccountID)
	assert.False(t, response.Frozen)
}

func TestLogin_HandoffFromQueryParams(t *testing.T) {
	session := &mockSessionService{
		loginFn: func(_ context.Context, request models.LoginRequest) (models.LoginResponse, models.Token, error) {
			// The redirect-style query parameters must reach the service.
			require.Equal(t, "1767225600000", request.Freeze)
			require.Equal(t, "user@example.com", request.Email)
			return models.LoginResponse{AccountID: "acc-1", Frozen: true, RemainingMillis: 60000}, models.Token{}, nil
		},
	}

	h := newTestHandler(t, session, &mockVaultService{})
	req := httptest.NewRequest(http.MethodPost,
		"/api/session/login?freeze=1767225600000&email=user%40example.com",
		strings.NewReader(jsonBody(t, models.LoginRequest{IDToken: "id-token"})))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Frozen)
	assert.EqualValues(t, 60000, response.RemainingMillis)
}

func TestLogin_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &mockSessionService{}, &mockVaultService{})
	req := httptest.NewRequest(http.MethodPost, "/api/session/login", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_InvalidData(t *testing.T) {
	session := &mockSessionService{
		loginFn: func(_ context.Context, _ models.LoginRequest) (models.LoginResponse, models.Token, error) {
			return models.LoginResponse{}, models.Token{}, service.ErrInvalidDataProvided
		},
	}

	h := newTestHandler(t, session, &mockVaultService{})
	req := httptest.NewRequest(http.MethodPost, "/api/session/login",
		strings.NewReader(jsonBody(t, models.LoginRequest{})))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_Success(t *testing.T) {
	session := &mockSessionService{
		logoutFn: func(_ context.Context, accountID string) (models.LockoutStatus, error) {
			require.Equal(t, "acc-1", accountID)
			return models.LockoutStatus{Allowed: false, RemainingMillis: 120000}, nil
		},
	}

	h := newTestHandler(t, session, &mockVaultService{})
	req := httptest.NewRequest(http.MethodPost, "/api/session/logout", nil)
	req = req.WithContext(withAccountID(req.Context(), "acc-1"))
	rec := httptest.NewRecorder()

	h.logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status models.LockoutStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.Allowed)
	assert.EqualValues(t, 120000, status.RemainingMillis)
}

func TestLogout_NoAccountInContext(t *testing.T) {
	h := newTestHandler(t, &mockSessionService{}, &mockVaultService{})
	req := httptest.NewRequest(http.MethodPost, "/api/session/logout", nil)
	rec := httptest.NewRecorder()

	h.logout(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
