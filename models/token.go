package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [Claims] for claim access.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
//
// UserID, Role and SessionID are parsed copies of the corresponding claims,
// populated during token construction or validation so that callers do not
// repeatedly decode claim strings.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// Claims provides access to the standard JWT claim set plus the
	// application's role claim.
	Claims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID int64 `json:"-"`

	// UserRole is the authorization role extracted from the "role" claim.
	UserRole Role `json:"-"`

	// SessionID is the server-side session identifier extracted from the
	// "jti" claim. The session registry is keyed by this value.
	SessionID string `json:"-"`
}

// Claims is the JWT claim set issued by the auth service: the RFC 7519
// registered claims plus the account role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// GetUserID extracts the user identifier from the token's "sub" claim,
// parses it as a base-10 int64, and returns the result.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
