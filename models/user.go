package models

import "time"

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Username is the unique login identifier chosen at registration.
	Username string `json:"username"`

	// Password carries the plaintext password on inbound requests only
	// (register, login, reset). It is never persisted and never serialized
	// back to clients.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored in the database. Excluded from
	// JSON so it can never leak through an API projection.
	PasswordHash string `json:"-"`

	// Role is the authorization role of the account.
	Role Role `json:"role"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Summary is the read-only projection of a user account exposed by the
// admin controller. It deliberately carries no credential material.
type Summary struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Summary returns the exportable projection of the account.
func (u User) Summary() Summary {
	return Summary{Username: u.Username, Role: u.Role}
}
