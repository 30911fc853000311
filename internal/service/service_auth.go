package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/opsboard/internal/config"
	"github.com/MKhiriev/opsboard/internal/crypto"
	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/store"
	"github.com/MKhiriev/opsboard/internal/utils"
	"github.com/MKhiriev/opsboard/internal/validators"
	"github.com/MKhiriev/opsboard/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hasher computes and verifies salted password hashes. Verification uses
	// the hash scheme's own comparison, never raw string equality.
	hasher crypto.PasswordHasher

	// validator enforces the credential policy on inbound usernames and
	// passwords before they reach the store.
	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, hasher crypto.PasswordHasher, validator validators.Validator, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		validator:      validator,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// The plaintext password is validated against the credential policy, hashed
// with bcrypt, and never persisted. Self-registration always produces the
// user role; admin accounts are created through the admin controller or the
// bootstrap config.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided (wrapping the policy violation) on bad input.
//   - A wrapped storage error if the repository call fails (e.g. username
//     already taken — see store.ErrUsernameAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Role == "" {
		user.Role = models.RoleUser
	}

	if err := a.validator.Validate(ctx, user); err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("invalid user data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := a.hasher.Hash(user.Password)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.Password = ""
	user.PasswordHash = hash

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It looks up the account by username and verifies the supplied password
// against the stored hash using the hash scheme's own comparison routine.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if username or password violates the policy.
//   - A wrapped storage error if the lookup fails (e.g. user not found —
//     see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the password does not match. Stored state is
//     never altered by a failed attempt.
func (a *authService) Login(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	candidate := models.User{Username: username, Password: password}
	if err := a.validator.Validate(ctx, candidate, validators.FieldUsername, validators.FieldPassword); err != nil {
		log.Error().Err(err).Str("username", username).Msg("invalid credentials provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err := a.hasher.Compare(foundUser.PasswordHash, password); err != nil {
		if errors.Is(err, crypto.ErrHashMismatch) {
			log.Error().Int64("id", foundUser.UserID).Str("username", username).Msg("wrong password")
			return models.User{}, ErrWrongPassword
		}
		return models.User{}, fmt.Errorf("password comparison failed: %w", err)
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user bound to sessionID.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, the account role as the "role"
// claim and sessionID as "jti", and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User, sessionID string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, user.Role, sessionID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature,
// the issuer claim, and the role claim. Any validation failure (expired,
// wrong issuer, malformed, unknown role) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
