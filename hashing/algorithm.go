package hashing

import "go.uber.org/zap"

// Variant keys of the built-in algorithms.
const (
	VariantArgon2 = "argon2"
	VariantBcrypt = "bcrypt"
)

// Algorithm is the raw backend contract implemented by every hashing
// variant.  Implementations receive already-peppered input; the pepper
// transformation is applied once by the [Hasher] façade above this layer.
//
// All implementations must be safe for concurrent use by multiple
// goroutines.
type Algorithm interface {
	// Variant returns the lower-cased variant key.
	Variant() string

	// HashRaw hashes an already-peppered password and returns the encoded
	// hash string.  A fresh cryptographic salt is generated per call where
	// the algorithm uses salts, so two calls with the same input produce
	// different outputs.
	HashRaw(peppered string) (string, error)

	// VerifyRaw checks an already-peppered password against a stored hash.
	// Returns (true, nil) on match, (false, nil) on a plain mismatch, and
	// (false, err) when the stored hash is structurally invalid or the
	// backend fails.
	VerifyRaw(storedHash, peppered string) (bool, error)

	// NeedsRehash reports whether the parameters embedded in storedHash
	// differ from the algorithm's current policy in a way that warrants
	// re-hashing on next successful login.
	NeedsRehash(storedHash string) (bool, error)
}

// Constructor builds an [Algorithm] from a policy.  A nil policy selects
// the variant's recommended defaults; a policy of the wrong concrete type
// is an error.
type Constructor func(policy Policy, log *zap.Logger) (Algorithm, error)
