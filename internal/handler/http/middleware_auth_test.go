package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshemin/lockbox/internal/service"
	"github.com/dshemin/lockbox/internal/utils"
	"github.com/dshemin/lockbox/models"
)

func TestAuthMiddleware_Success(t *testing.T) {
	session := &mockSessionService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			require.Equal(t, "valid.token", tokenString)
			return models.Token{AccountID: "acc-1"}, nil
		},
	}
	h := newTestHandler(t, session, &mockVaultService{})

	var gotAccountID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccountID, _ = utils.GetAccountIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/lockout/status", nil)
	req.Header.Set("Authorization", "Bearer valid.token")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acc-1", gotAccountID)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	h := newTestHandler(t, &mockSessionService{}, &mockVaultService{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/lockout/status", nil)
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	h := newTestHandler(t, &mockSessionService{}, &mockVaultService{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called")
	})

	cases := []struct {
		name   string
		header string
	}{
		{"no token part", "Bearer"},
		{"empty token", "Bearer "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/lockout/status", nil)
			req.Header.Set("Authorization", tc.header)
			rec := httptest.NewRecorder()

			h.auth(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	session := &mockSessionService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		},
	}
	h := newTestHandler(t, session, &mockVaultService{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/lockout/status", nil)
	req.Header.Set("Authorization", "Bearer expired.token")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
