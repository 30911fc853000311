// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashMismatch is returned by Compare when the supplied password does not
// match the stored hash.
var ErrHashMismatch = errors.New("password does not match stored hash")

// bcryptHasher is the bcrypt-backed implementation of [PasswordHasher].
// bcrypt embeds a per-hash random salt in its output, so identical
// plaintexts registered separately never produce byte-equal hashes.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a [PasswordHasher] with the given bcrypt cost.
// A cost outside the valid bcrypt range falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

// Hash implements [PasswordHasher].
func (b *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// Compare implements [PasswordHasher]. bcrypt's own comparison routine is
// used so the check runs in constant time relative to the password bytes.
func (b *bcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrHashMismatch
		}
		return fmt.Errorf("error comparing password hash: %w", err)
	}

	return nil
}
