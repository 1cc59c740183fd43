// Package service declares the ports usecases call out through: hashing,
// tokens, OAuth, storage, messaging and notifications.
package service

// PasswordHasher hashes and verifies local account passwords.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check reports whether password matches hash. A mismatch, or a hash that
	// cannot be parsed, is simply false.
	Check(password, hash string) bool
}
