// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Shemin

package validators

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/dshemin/lockbox/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldIDToken targets the externally issued ID token of a login request.
	FieldIDToken = "id_token"

	// FieldHandoff targets the optional freeze handoff pair of a login
	// request. The pair is valid when both parts are absent or both are
	// present and the deadline parses as Unix milliseconds.
	FieldHandoff = "handoff"

	// FieldPassword targets the passphrase of a seal or unseal request.
	FieldPassword = "password"

	// FieldContent targets the payload of a seal request, including the
	// base64 shape check for binary uploads.
	FieldContent = "content"

	// FieldEnvelope targets the encrypted artifact of an unseal request.
	FieldEnvelope = "envelope"
)

// RequestValidator implements the Validator interface for the API request
// models: LoginRequest, SealRequest, and UnsealRequest.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
type RequestValidator struct {
}

// NewRequestValidator constructs a new RequestValidator
// and returns it as the Validator interface.
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.LoginRequest / *models.LoginRequest
//   - models.SealRequest / *models.SealRequest
//   - models.UnsealRequest / *models.UnsealRequest
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// every field of the request is validated.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	case models.SealRequest:
		return v.validateSealRequest(ctx, value, fields...)
	case *models.SealRequest:
		return v.validateSealRequest(ctx, *value, fields...)

	case models.UnsealRequest:
		return v.validateUnsealRequest(ctx, value, fields...)
	case *models.UnsealRequest:
		return v.validateUnsealRequest(ctx, *value, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *RequestValidator) validateLoginRequest(_ context.Context, request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIDToken, FieldHandoff}
	}

	for _, field := range fields {
		switch field {
		case FieldIDToken:
			if request.IDToken == "" {
				return ErrEmptyIDToken
			}
		case FieldHandoff:
			if err := validateHandoff(request.Freeze, request.Email); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *RequestValidator) validateSealRequest(_ context.Context, request models.SealRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPassword, FieldContent}
	}

	for _, field := range fields {
		switch field {
		case FieldPassword:
			if request.Password == "" {
				return ErrEmptyPassword
			}
		case FieldContent:
			if request.Content == "" {
				return ErrEmptyContent
			}
			if request.Binary {
				if _, err := base64.StdEncoding.DecodeString(request.Content); err != nil {
					return fmt.Errorf("%w: %w", ErrInvalidBinaryBody, err)
				}
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *RequestValidator) validateUnsealRequest(_ context.Context, request models.UnsealRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPassword, FieldEnvelope}
	}

	for _, field := range fields {
		switch field {
		case FieldPassword:
			if request.Password == "" {
				return ErrEmptyPassword
			}
		case FieldEnvelope:
			if request.Envelope == "" {
				return ErrEmptyEnvelope
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

// validateHandoff checks the shape of the freeze handoff pair only. Whether
// the deadline is honoured is the lockout guard's decision; an expired or
// tampered handoff is still a well-formed request.
func validateHandoff(freeze, email string) error {
	if freeze == "" && email == "" {
		return nil
	}

	if freeze == "" || email == "" {
		return ErrIncompleteHandoff
	}

	if _, err := strconv.ParseInt(freeze, 10, 64); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFreezeValue, err)
	}

	return nil
}
