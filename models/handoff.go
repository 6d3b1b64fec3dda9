package models

import (
	"errors"
	"net/url"
	"strconv"
	"time"
)

// Query parameter names used to carry a freeze across a session boundary.
// The names are part of the handoff format and must not change.
const (
	handoffFreezeParam = "freeze"
	handoffEmailParam  = "email"
)

// ErrNoHandoff is returned by ParseFreezeHandoff when the supplied query
// values carry no freeze parameters at all.
var ErrNoHandoff = errors.New("no freeze handoff present")

// FreezeHandoff is the caller-carried copy of a lockout freeze, used when a
// frozen account must stay frozen across a logout/login boundary within one
// deployment. It travels through an untrusted channel (query parameters), so
// it must be treated as attacker-visible and tamperable: the guard only ever
// applies a handoff deadline that lies in the future, and never imports
// attempt counts from it.
type FreezeHandoff struct {
	// Email identifies the frozen account. The receiving side re-derives
	// the opaque account ID from it.
	Email string

	// FrozenUntil is the instant the freeze expires.
	FrozenUntil time.Time
}

// Values encodes the handoff as query parameters: the freeze deadline in Unix
// milliseconds plus the account e-mail.
func (h FreezeHandoff) Values() url.Values {
	return url.Values{
		handoffFreezeParam: []string{strconv.FormatInt(h.FrozenUntil.UnixMilli(), 10)},
		handoffEmailParam:  []string{h.Email},
	}
}

// ParseFreezeHandoff decodes a handoff from query parameters.
//
// Returns [ErrNoHandoff] if neither parameter is present, or a descriptive
// error if the parameters are present but malformed.
func ParseFreezeHandoff(values url.Values) (FreezeHandoff, error) {
	freeze := values.Get(handoffFreezeParam)
	email := values.Get(handoffEmailParam)

	if freeze == "" && email == "" {
		return FreezeHandoff{}, ErrNoHandoff
	}
	if freeze == "" || email == "" {
		return FreezeHandoff{}, errors.New("incomplete freeze handoff")
	}

	millis, err := strconv.ParseInt(freeze, 10, 64)
	if err != nil {
		return FreezeHandoff{}, errors.New("malformed freeze timestamp in handoff")
	}

	return FreezeHandoff{
		Email:       email,
		FrozenUntil: time.UnixMilli(millis),
	}, nil
}
