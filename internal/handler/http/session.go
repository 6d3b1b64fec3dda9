package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dshemin/lockbox/internal/logger"
	"github.com/dshemin/lockbox/internal/service"
	"github.com/dshemin/lockbox/internal/utils"
	"github.com/dshemin/lockbox/internal/validators"
	"github.com/dshemin/lockbox/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// A freeze handoff may also arrive as query parameters, the way a
	// redirecting client carries it. The body wins when both are present.
	if request.Freeze == "" {
		request.Freeze = r.URL.Query().Get("freeze")
		if request.Email == "" {
			request.Email = r.URL.Query().Get("email")
		}
	}

	// Only the ID token is validated here. The handoff is untrusted input
	// that the lockout guard inspects and silently discards when malformed.
	if err := h.validator.Validate(ctx, request, validators.FieldIDToken); err != nil {
		log.Err(err).Msg("login request failed validation")
		writeError(w, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	response, token, err := h.services.SessionService.Login(ctx, request)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid login data provided")
			writeError(w, err)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().
		Str("account_id", response.AccountID).
		Bool("frozen", response.Frozen).
		Msg("session established")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no account ID in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	status, err := h.services.SessionService.Logout(ctx, accountID)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during logout")
		writeError(w, err)
		return
	}

	// The pre-reset snapshot lets a frozen client build its freeze handoff
	// before the server-side record disappears.
	utils.WriteJSON(w, status, http.StatusOK)
}
