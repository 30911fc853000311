// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks inbound values against business rules before
// they reach the service layer, behind an interface so tests can swap in
// a permissive stub.
package validators

import "context"

// Validator validates an arbitrary input value. The optional field names
// restrict the check to those fields; with none given the whole value is
// validated.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
