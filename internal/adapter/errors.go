package adapter

import "errors"

var (
	ErrMissingAPIKey   = errors.New("provider api key is not configured")
	ErrRequestFailed   = errors.New("provider request failed")
	ErrBadStatus       = errors.New("provider returned non-2xx status")
	ErrEmptyCompletion = errors.New("provider returned no completion choices")
)
