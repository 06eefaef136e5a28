// Package service defines interfaces for core, stateless domain logic
// and for the external collaborators the use cases talk to.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash. A mismatch or a
	// malformed hash yields false, never an error.
	Check(password, hash string) bool
}
