package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dshemin/lockbox/internal/logger"
	"github.com/dshemin/lockbox/internal/service"
	"github.com/dshemin/lockbox/internal/utils"
	"github.com/dshemin/lockbox/models"
)

func (h *Handler) seal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no account ID in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.SealRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(ctx, request); err != nil {
		log.Err(err).Msg("seal request failed validation")
		writeError(w, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	response, err := h.services.VaultService.Seal(ctx, accountID, request)
	if err != nil {
		log.Err(err).Msg("error sealing content")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) unseal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no account ID in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.UnsealRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(ctx, request); err != nil {
		log.Err(err).Msg("unseal request failed validation")
		writeError(w, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	response, err := h.services.VaultService.Unseal(ctx, accountID, request)
	if err != nil {
		log.Err(err).Str("account_id", accountID).Msg("unseal rejected")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
