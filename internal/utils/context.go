// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys, HTTP response
// writing, HTTP client initialization, JWT token generation and validation,
// and UUID generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the user identifier in the context.
// Used together with GetUserIDFromContext for type-safe retrieval.
var UserIDCtxKey = contextKey("userID")

// SessionCtxKey is the key under which the auth middleware stores the
// resolved session object. The session service provides the typed getter so
// this package stays free of service imports.
var SessionCtxKey = contextKey("session")

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true  — value is found and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
