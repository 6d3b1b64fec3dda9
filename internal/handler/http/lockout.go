package http

import (
	"net/http"

	"github.com/dshemin/lockbox/internal/logger"
	"github.com/dshemin/lockbox/internal/utils"
)

func (h *Handler) lockoutStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no account ID in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	response, err := h.services.VaultService.Status(ctx, accountID)
	if err != nil {
		log.Err(err).Msg("error reading lockout status")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
