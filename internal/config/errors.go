package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAuthConfigs indicates invalid auth settings
	// (for example, a missing token sign key).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an unsupported database driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAssistantConfigs indicates invalid assistant settings
	// (for example, a missing primary provider URL).
	ErrInvalidAssistantConfigs = errors.New("invalid assistant configuration")
	// ErrInvalidAdapterConfigs indicates invalid console adapter settings
	// (for example, missing server address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
)
