// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles account creation, lookup and administration against the
// "users" table and works with either supported database backend: queries
// are produced by the connection's squirrel builder so placeholders match
// the active driver.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The INSERT carries a RETURNING clause, so the caller receives the
// canonical database representation of the newly created account.
//
// Error handling:
//   - unique constraint violation on username → [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.db.Builder(), user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: building insert query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.User
	var role string
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&created.UserID, &created.Username, &created.PasswordHash, &role, &created.CreatedAt); err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.User{}, ErrUsernameAlreadyExists
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: inserting user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	created.Role, err = models.ParseRole(role)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidRoleStored, err)
	}

	return created, nil
}

// FindUserByUsername retrieves the user record with the given username.
//
// Error handling:
//   - no matching row → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserByUsernameQuery(r.db.Builder(), username)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("error: building select query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	found, err := r.scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("error: scanning user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// UpdatePassword replaces the stored password hash of the given user.
// Returns [ErrNoUserWasFound] when the username does not exist.
func (r *userRepository) UpdatePassword(ctx context.Context, username string, passwordHash string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserPasswordQuery(r.db.Builder(), username, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error: building update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error: executing update")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// DeleteUser removes the user with the given username.
//
// The delete runs in a transaction: when the target holds the admin role,
// the remaining admin count is checked first and the delete is refused with
// [ErrLastAdminProtected] if it would remove the last administrator. Every
// deployment must keep at least one account able to manage the others.
func (r *userRepository) DeleteUser(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	selectQuery, selectArgs, err := buildSelectUserByUsernameQuery(r.db.Builder(), username)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	target, err := r.scanUser(tx.QueryRowContext(ctx, selectQuery, selectArgs...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: loading target user")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	if target.Role == models.RoleAdmin {
		countQuery, countArgs, err := buildCountUsersByRoleQuery(r.db.Builder(), models.RoleAdmin)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		var admins int64
		if err := tx.QueryRowContext(ctx, countQuery, countArgs...).Scan(&admins); err != nil {
			log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: counting admins")
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if admins <= 1 {
			return ErrLastAdminProtected
		}
	}

	deleteQuery, deleteArgs, err := buildDeleteUserQuery(r.db.Builder(), username)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: executing delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// ListUsers returns every user record ordered by username.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAllUsersQuery(r.db.Builder())
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		var role string
		if err := rows.Scan(&user.UserID, &user.Username, &user.PasswordHash, &role, &user.CreatedAt); err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		user.Role, err = models.ParseRole(role)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRoleStored, err)
		}

		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// CountByRole returns the number of users holding the given role.
func (r *userRepository) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountUsersByRoleQuery(r.db.Builder(), role)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CountByRole").Msg("error: building count query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*userRepository.CountByRole").Msg("error: scanning count")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *userRepository) scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var role string
	if err := row.Scan(&user.UserID, &user.Username, &user.PasswordHash, &role, &user.CreatedAt); err != nil {
		return models.User{}, err
	}

	parsed, err := models.ParseRole(role)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidRoleStored, err)
	}
	user.Role = parsed

	return user, nil
}
