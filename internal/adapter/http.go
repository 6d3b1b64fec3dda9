package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/dshemin/lockbox/internal/config"
	"github.com/dshemin/lockbox/internal/logger"
	"github.com/dshemin/lockbox/internal/utils"
	"github.com/dshemin/lockbox/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login implements [ServerAdapter]. It POSTs the login request to
// POST /api/session/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken. Returns an error if
// the request fails, the server returns a non-2xx status, or the token
// cannot be parsed.
func (h *httpServerAdapter) Login(ctx context.Context, request models.LoginRequest) (models.LoginResponse, error) {
	var response models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&response).
		Post("/api/session/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return response, nil
}

// Logout implements [ServerAdapter]. The returned snapshot is the lockout
// state just before the server dropped its record; a frozen client uses it
// to build the freeze handoff for its next login.
func (h *httpServerAdapter) Logout(ctx context.Context) (models.LockoutStatus, error) {
	var status models.LockoutStatus

	resp, err := h.authedRequest(ctx).
		SetResult(&status).
		Post("/api/session/logout")
	if err != nil {
		return models.LockoutStatus{}, fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LockoutStatus{}, err
	}

	h.SetToken("")
	return status, nil
}

// Seal implements [ServerAdapter].
func (h *httpServerAdapter) Seal(ctx context.Context, request models.SealRequest) (models.SealResponse, error) {
	var response models.SealResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&response).
		Post("/api/vault/seal")
	if err != nil {
		return models.SealResponse{}, fmt.Errorf("seal request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SealResponse{}, err
	}

	return response, nil
}

// Unseal implements [ServerAdapter].
func (h *httpServerAdapter) Unseal(ctx context.Context, request models.UnsealRequest) (models.UnsealResponse, error) {
	var response models.UnsealResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&response).
		Post("/api/vault/unseal")
	if err != nil {
		return models.UnsealResponse{}, fmt.Errorf("unseal request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UnsealResponse{}, err
	}

	return response, nil
}

// Status implements [ServerAdapter].
func (h *httpServerAdapter) Status(ctx context.Context) (models.LockoutStatusResponse, error) {
	var response models.LockoutStatusResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&response).
		Get("/api/lockout/status")
	if err != nil {
		return models.LockoutStatusResponse{}, fmt.Errorf("status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LockoutStatusResponse{}, err
	}

	return response, nil
}

// ServerVersion implements [ServerAdapter].
func (h *httpServerAdapter) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body())), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
