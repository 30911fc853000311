// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Auth middleware sentinels for "Authorization" header parsing; match with
// [errors.Is].
var (
	// ErrEmptyAuthorizationHeader: the request carries no "Authorization"
	// header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader: the header cannot be split into a
	// scheme and a token.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken: the scheme prefix is present but the token value is
	// an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
