// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Shemin

// Package app contains shared application-layer constants used across the
// lockbox server handlers and client.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies, client output, or log entries to describe the outcome
// of an operation. Keeping them in one place ensures consistent wording
// throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgWrongPassword is shown when a decryption attempt was rejected by
	// the cipher, matching the single failure channel the engine exposes.
	MsgWrongPassword = "wrong password or corrupted data"

	// MsgAccountFrozen is shown when an operation is rejected because the
	// account's lockout freeze is still active.
	MsgAccountFrozen = "too many failed attempts, account is temporarily frozen"

	// MsgMalformedEnvelope is shown when the supplied envelope is not
	// something the cipher could ever have produced.
	MsgMalformedEnvelope = "malformed envelope"

	// MsgLoginFailed is returned when the login handler encounters an
	// unexpected error that prevents issuing a session token.
	MsgLoginFailed = "login failed"
)
