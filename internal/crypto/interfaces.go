// Package crypto provides the password hashing primitives used by the
// credential store. Hashing is one-way and salted; verification relies on
// the scheme's own constant-time comparison, never on raw string equality.
package crypto

// PasswordHasher defines the contract for hashing and verifying user
// passwords.
type PasswordHasher interface {
	// Hash derives a salted, one-way hash from the plaintext password.
	// Two calls with the same plaintext produce different hashes because
	// each invocation generates a fresh salt.
	Hash(password string) (string, error)

	// Compare verifies plaintext password against a stored hash using the
	// scheme's constant-time check. Returns ErrHashMismatch when the
	// password does not match, or another error if the stored hash is
	// malformed.
	Compare(hash, password string) error
}
