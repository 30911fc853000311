package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrUnauthorized is returned by every protected operation when the
	// calling session is missing or its role does not meet the required
	// minimum. Authorization fails closed: no session means no access.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionNotFound is returned when a token references a session that
	// has been dropped (logout) or never existed.
	ErrSessionNotFound = errors.New("session not found")

	// ErrProviderUnavailable is returned when both the primary and the
	// fallback completion providers failed for one ask.
	ErrProviderUnavailable = errors.New("completion provider unavailable")

	// ErrUsageLimitReached is returned when a session exhausted its ask
	// budget for the assistant.
	ErrUsageLimitReached = errors.New("assistant usage limit reached for this session")

	// ErrUnknownDomain is returned when an ask or history request names a
	// domain page that does not exist.
	ErrUnknownDomain = errors.New("unknown domain")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)
