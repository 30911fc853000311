package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/opsboard/internal/crypto"
	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/store"
	"github.com/MKhiriev/opsboard/internal/validators"
	"github.com/MKhiriev/opsboard/models"
)

// adminService implements AdminService. Every operation requires an admin
// session from the context before touching the credential store, so a
// denied attempt leaves the store unchanged.
type adminService struct {
	userRepository store.UserRepository
	sessions       SessionService
	hasher         crypto.PasswordHasher
	validator      validators.Validator

	logger *logger.Logger
}

// NewAdminService constructs an AdminService over the given repository and
// session registry.
func NewAdminService(userRepository store.UserRepository, sessions SessionService, hasher crypto.PasswordHasher, validator validators.Validator, logger *logger.Logger) AdminService {
	return &adminService{
		userRepository: userRepository,
		sessions:       sessions,
		hasher:         hasher,
		validator:      validator,
		logger:         logger,
	}
}

// ListUsers returns the read-only projection of every account: username and
// role, never credential material.
func (a *adminService) ListUsers(ctx context.Context) ([]models.Summary, error) {
	if _, err := a.sessions.RequireRole(ctx, models.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := a.userRepository.ListUsers(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing users failed")
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	summaries := make([]models.Summary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, user.Summary())
	}

	return summaries, nil
}

// CreateUser creates an account with an explicit role. Unlike
// self-registration, admins may create further admin accounts.
func (a *adminService) CreateUser(ctx context.Context, user models.User) (models.Summary, error) {
	if _, err := a.sessions.RequireRole(ctx, models.RoleAdmin); err != nil {
		return models.Summary{}, err
	}

	log := logger.FromContext(ctx)

	if user.Role == "" {
		user.Role = models.RoleUser
	}

	if err := a.validator.Validate(ctx, user); err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("invalid user data provided")
		return models.Summary{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := a.hasher.Hash(user.Password)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("password hashing failed")
		return models.Summary{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.Password = ""
	user.PasswordHash = hash

	created, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.Summary{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created.Summary(), nil
}

// DeleteUser removes an account. The repository refuses to delete the last
// remaining admin (store.ErrLastAdminProtected) and reports an unknown
// username as store.ErrNoUserWasFound.
func (a *adminService) DeleteUser(ctx context.Context, username string) error {
	if _, err := a.sessions.RequireRole(ctx, models.RoleAdmin); err != nil {
		return err
	}

	if err := a.userRepository.DeleteUser(ctx, username); err != nil {
		logger.FromContext(ctx).Err(err).Str("username", username).Msg("user deletion ended with error")
		return fmt.Errorf("user deletion ended with error: %w", err)
	}

	return nil
}

// ResetPassword replaces the stored hash of the given account with the hash
// of newPassword.
func (a *adminService) ResetPassword(ctx context.Context, username, newPassword string) error {
	if _, err := a.sessions.RequireRole(ctx, models.RoleAdmin); err != nil {
		return err
	}

	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, models.ResetPasswordRequest{Password: newPassword}); err != nil {
		log.Error().Err(err).Str("username", username).Msg("invalid new password provided")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		log.Err(err).Str("username", username).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, username, hash); err != nil {
		log.Err(err).Str("username", username).Msg("password reset ended with error")
		return fmt.Errorf("password reset ended with error: %w", err)
	}

	return nil
}
