package client

import "errors"

// ErrUserQuit is returned by the terminal UI when the operator quits the
// console instead of logging out. The App treats it as a clean exit.
var ErrUserQuit = errors.New("user quit the console")

var (
	ErrUnauthorized    = errors.New("client unauthorized")
	ErrBadRequest      = errors.New("bad request")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrTooManyRequests = errors.New("usage limit reached")
	ErrBadGateway      = errors.New("assistant provider unavailable")
)
