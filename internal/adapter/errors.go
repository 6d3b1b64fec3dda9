package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrAccountFrozen       = errors.New("account is frozen")
	ErrInternalServerError = errors.New("internal server error")
)
