package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/dshemin/lockbox/internal/service"
	"github.com/dshemin/lockbox/internal/store"
	"github.com/dshemin/lockbox/internal/utils"
	"github.com/dshemin/lockbox/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrAuthenticationFailed:    http.StatusUnauthorized,
	service.ErrAccountFrozen:           http.StatusLocked,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrVersionIsNotSpecified:   http.StatusBadRequest,

	store.ErrAttemptNotRecorded: http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	// The freeze takes precedence over the generic auth-failure mapping, so
	// a failure that tripped the threshold answers 423, not 401.
	if errors.Is(err, service.ErrAccountFrozen) {
		return http.StatusLocked
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError renders err as the JSON error body, enriching it with the
// lockout details carried by the service error types: attempts remaining on
// a counted failure, milliseconds left on a frozen rejection.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	body := models.ErrorResponse{Error: err.Error()}
	if status == http.StatusInternalServerError {
		// Internal detail stays in the logs.
		body.Error = http.StatusText(http.StatusInternalServerError)
	}

	var freezeErr *service.FreezeError
	if errors.As(err, &freezeErr) {
		body.RemainingMillis = freezeErr.RemainingMillis
	}

	var authErr *service.AuthFailureError
	if errors.As(err, &authErr) {
		if authErr.Outcome.Frozen {
			body.RemainingMillis = time.Until(authErr.Outcome.FrozenUntil).Milliseconds()
		} else {
			remaining := authErr.Outcome.AttemptsRemaining
			body.AttemptsRemaining = &remaining
		}
	}

	utils.WriteJSON(w, body, status)
}
