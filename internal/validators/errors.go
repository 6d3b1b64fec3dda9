package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyIDToken       = errors.New("ID token is required")
	ErrEmptyPassword      = errors.New("password is required")
	ErrEmptyContent       = errors.New("content is required")
	ErrEmptyEnvelope      = errors.New("envelope is required")
	ErrInvalidBinaryBody  = errors.New("binary content must be valid base64")
	ErrIncompleteHandoff  = errors.New("freeze handoff requires both freeze and email")
	ErrInvalidFreezeValue = errors.New("freeze must be a Unix millisecond timestamp")
)
