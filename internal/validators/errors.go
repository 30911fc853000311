package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUsername    = errors.New("username is required")
	ErrUsernameTooShort = errors.New("username is too short")
	ErrUsernameTooLong  = errors.New("username is too long")
	ErrInvalidUsername  = errors.New("username contains forbidden characters")
	ErrEmptyPassword    = errors.New("password is required")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrInvalidRole      = errors.New("invalid role")
	ErrEmptyQuestion    = errors.New("question is required")
	ErrQuestionTooLong  = errors.New("question is too long")
)
