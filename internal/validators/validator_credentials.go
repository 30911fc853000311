package validators

import (
	"context"

	"github.com/MKhiriev/opsboard/models"
)

const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldRole     = "role"
	FieldQuestion = "question"
)

// Bounds for inbound credentials and assistant questions. Passwords only
// need to be non-empty and within the bcrypt input limit of 72 bytes.
const (
	minUsernameLength = 3
	maxUsernameLength = 64
	maxPasswordLength = 72
	maxQuestionLength = 4000
)

type CredentialsValidator struct {
}

func NewCredentialsValidator() Validator {
	return &CredentialsValidator{}
}

func (v *CredentialsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)

	case models.ResetPasswordRequest:
		return v.validatePassword(value.Password)
	case *models.ResetPasswordRequest:
		return v.validatePassword(value.Password)

	case models.AskRequest:
		return v.validateQuestion(value.Question)
	case *models.AskRequest:
		return v.validateQuestion(value.Question)

	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialsValidator) validateUser(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if err := v.validateUsername(user.Username); err != nil {
				return err
			}
		case FieldPassword:
			if err := v.validatePassword(user.Password); err != nil {
				return err
			}
		case FieldRole:
			if !user.Role.Valid() {
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CredentialsValidator) validateUsername(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if len(username) < minUsernameLength {
		return ErrUsernameTooShort
	}
	if len(username) > maxUsernameLength {
		return ErrUsernameTooLong
	}
	for _, r := range username {
		if !isUsernameRune(r) {
			return ErrInvalidUsername
		}
	}
	return nil
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	default:
		return false
	}
}

func (v *CredentialsValidator) validatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func (v *CredentialsValidator) validateQuestion(question string) error {
	if question == "" {
		return ErrEmptyQuestion
	}
	if len(question) > maxQuestionLength {
		return ErrQuestionTooLong
	}
	return nil
}
