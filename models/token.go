package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a session JWT with convenience accessors for authentication
// flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers or held
// by the client for the session.
//
// AccountID is a cached copy of the "sub" (subject) claim — the opaque
// account identifier derived from the user's e-mail. It is populated during
// token construction or after a successful parse.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	// Excluded from JSON serialization; use [Token.String] to retrieve it.
	SignedString string `json:"-"`

	// AccountID is the opaque account identifier extracted from the "sub"
	// claim. Excluded from JSON serialization; it is a server-side cache.
	AccountID string `json:"-"`
}

// GetAccountID extracts the account identifier from the token's "sub"
// (subject) claim and returns it.
//
// Returns an error if the subject claim is missing or empty.
func (t *Token) GetAccountID() (string, error) {
	accountID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting account ID from token: %w", err)
	}
	if accountID == "" {
		return "", fmt.Errorf("empty subject in token")
	}

	return accountID, nil
}

// String returns the compact JWS serialization of the token
// (the signed, base64url-encoded header.payload.signature string).
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
