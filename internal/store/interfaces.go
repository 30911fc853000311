package store

import (
	"context"

	"github.com/MKhiriev/opsboard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the persistence contract of the credential store.
// All mutations persist immediately; uniqueness of usernames is enforced by
// the backing database, never by in-memory locking.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields populated. Returns [ErrUsernameAlreadyExists] when the username
	// is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername retrieves the account with the given username.
	// Returns [ErrNoUserWasFound] when no such account exists.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// UpdatePassword replaces the stored password hash of the given account.
	// Returns [ErrNoUserWasFound] when no such account exists.
	UpdatePassword(ctx context.Context, username string, passwordHash string) error

	// DeleteUser removes the account. Returns [ErrNoUserWasFound] when the
	// account does not exist and [ErrLastAdminProtected] when the account is
	// the last remaining admin.
	DeleteUser(ctx context.Context, username string) error

	// ListUsers returns all accounts ordered by username.
	ListUsers(ctx context.Context) ([]models.User, error)

	// CountByRole returns the number of accounts holding the given role.
	CountByRole(ctx context.Context, role models.Role) (int64, error)
}

// IncidentRepository stores the rows of the cybersecurity dashboard.
type IncidentRepository interface {
	// ReplaceAll atomically swaps the table contents for the given rows.
	ReplaceAll(ctx context.Context, incidents []models.SecurityIncident) error

	// TopOpenBySeverity returns up to limit open incidents ordered from the
	// highest severity down.
	TopOpenBySeverity(ctx context.Context, limit uint64) ([]models.SecurityIncident, error)
}

// TicketRepository stores the rows of the IT monitoring dashboard.
type TicketRepository interface {
	// ReplaceAll atomically swaps the table contents for the given rows.
	ReplaceAll(ctx context.Context, tickets []models.ITTicket) error

	// OpenStatsByPriority aggregates open ticket counts and mean resolution
	// hours per priority.
	OpenStatsByPriority(ctx context.Context) ([]models.TicketPriorityStat, error)
}

// DatasetRepository stores the rows of the data science dashboard.
type DatasetRepository interface {
	// ReplaceAll atomically swaps the table contents for the given rows.
	ReplaceAll(ctx context.Context, datasets []models.Dataset) error

	// LargestBySize returns up to limit datasets ordered by size descending.
	LargestBySize(ctx context.Context, limit uint64) ([]models.Dataset, error)
}

// ErrorClassificator inspects driver-level errors so repositories can stay
// backend-agnostic. One implementation exists per supported driver.
type ErrorClassificator interface {
	// Classify reports whether a failed operation may be retried.
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err was caused by a unique
	// constraint (e.g. a duplicate username).
	IsUniqueViolation(err error) bool
}
