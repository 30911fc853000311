package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/opsboard/models"
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token.
//
// The token carries the standard claims plus the application claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - ID        (jti): the session identifier; the server-side session
//     registry is keyed by this value, so dropping the session invalidates
//     the token before its expiry
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - role:            the account role used for authorization checks
//
// All parameters are required. Returns an error if any of them are empty
// or zero.
func GenerateJWTToken(issuer string, userID int64, role models.Role, sessionID string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || sessionID == "" || tokenDuration == 0 || signKey == "" || !role.Valid() {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		Token:        token,
		Claims:       claims,
		SignedString: tokenString,
		UserID:       userID,
		UserRole:     role,
		SessionID:    sessionID,
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes signature verification against the sign key, issuer
// and expiration checks, and presence of the subject, role and jti claims.
// The role claim must belong to the closed role set; a token carrying an
// unknown role is rejected rather than treated as unprivileged.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	userIDStr, err := claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if userIDStr == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during converting subject to user id: %w", err)
	}

	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating role claim: %w", err)
	}

	if claims.ID == "" {
		return models.Token{}, errors.New("empty session id (jti) claim")
	}

	return models.Token{
		Token:        token,
		Claims:       *claims,
		SignedString: tokenString,
		UserID:       userID,
		UserRole:     role,
		SessionID:    claims.ID,
	}, nil
}

// ParseBearerToken extracts the token part of an "Authorization: Bearer ..."
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
