// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Shemin

package http

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshemin/lockbox/internal/logger"
	"github.com/dshemin/lockbox/internal/service"
	"github.com/dshemin/lockbox/internal/utils"
	"github.com/dshemin/lockbox/models"
)

// mockSessionService implements service.SessionService for unit tests.
// Each method field can be overridden per test case.
type mockSessionService struct {
	loginFn      func(ctx context.Context, request models.LoginRequest) (models.LoginResponse, models.Token, error)
	parseTokenFn func(ctx context.Context, tokenString string) (models.Token, error)
	logoutFn     func(ctx context.Context, accountID string) (models.LockoutStatus, error)
}

func (m *mockSessionService) Login(ctx context.Context, request models.LoginRequest) (models.LoginResponse, models.Token, error) {
	return m.loginFn(ctx, request)
}

func (m *mockSessionService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockSessionService) Logout(ctx context.Context, accountID string) (models.LockoutStatus, error) {
	return m.logoutFn(ctx, accountID)
}

// mockVaultService implements service.VaultService for unit tests.
type mockVaultService struct {
	sealFn   func(ctx context.Context, accountID string, request models.SealRequest) (models.SealResponse, error)
	unsealFn func(ctx context.Context, accountID string, request models.UnsealRequest) (models.UnsealResponse, error)
	statusFn func(ctx context.Context, accountID string) (models.LockoutStatusResponse, error)
}

func (m *mockVaultService) Seal(ctx context.Context, accountID string, request models.SealRequest) (models.SealResponse, error) {
	return m.sealFn(ctx, accountID, request)
}

func (m *mockVaultService) Unseal(ctx context.Context, accountID string, request models.UnsealRequest) (models.UnsealResponse, error) {
	return m.unsealFn(ctx, accountID, request)
}

func (m *mockVaultService) Status(ctx context.Context, accountID string) (models.LockoutStatusResponse, error) {
	return m.statusFn(ctx, accountID)
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func newTestHandler(t *testing.T, session service.SessionService, vault service.VaultService) *Handler {
	t.Helper()
	svcs := &service.Services{
		SessionService: session,
		VaultService:   vault,
		AppInfoService: &mockAppInfoService{version: "test"},
	}
	return NewHandler(svcs, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// withAccountID simulates the auth middleware having run.
func withAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, utils.AccountIDCtxKey, accountID)
}
