package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/dshemin/lockbox/models"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	// The API answers errors with a JSON body; prefer its message over the
	// raw bytes when it decodes.
	var errorBody models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errorBody); err == nil && errorBody.Error != "" {
		body = errorBody.Error
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		if errorBody.AttemptsRemaining != nil {
			return fmt.Errorf("%w: %s (%d attempts remaining)", ErrUnauthorized, body, *errorBody.AttemptsRemaining)
		}
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusLocked:
		return fmt.Errorf("%w: %s (%dms remaining)", ErrAccountFrozen, body, errorBody.RemainingMillis)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}
