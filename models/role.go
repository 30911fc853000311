package models

import "fmt"

// Role is the closed set of authorization roles known to the application.
// Every authorization decision switches exhaustively over this type; a value
// outside the set never grants access.
type Role string

const (
	// RoleUser is the default role assigned on self-registration. It grants
	// access to the dashboards and the AI assistant, but not to user
	// administration.
	RoleUser Role = "user"

	// RoleAdmin grants everything RoleUser grants plus the admin controller
	// operations (create, delete, reset password, list).
	RoleAdmin Role = "admin"
)

// ParseRole converts a raw string into a Role.
// Returns an error for anything outside the closed set, so that unchecked
// strings from the wire or the database never become a valid role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Meets reports whether the receiver satisfies the minimal required role.
// It fails closed: an unknown receiver or an unknown requirement both
// return false.
func (r Role) Meets(min Role) bool {
	switch min {
	case RoleUser:
		return r == RoleUser || r == RoleAdmin
	case RoleAdmin:
		return r == RoleAdmin
	default:
		return false
	}
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}
