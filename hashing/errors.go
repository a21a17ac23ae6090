package hashing

import "errors"

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	_, err := reg.Algorithm("scrypt")
//	if errors.Is(err, hashing.ErrUnknownAlgorithm) {
//	    // variant not registered
//	}
var (
	// ErrUnknownAlgorithm is returned when looking up an algorithm variant
	// that has not been registered.
	ErrUnknownAlgorithm = errors.New("hashing: unknown algorithm variant")

	// ErrUnknownPolicy is returned when looking up a policy type that has
	// not been registered.
	ErrUnknownPolicy = errors.New("hashing: unknown policy variant")

	// ErrRegistryConflict is returned when a different implementation is
	// registered under an already-bound variant key.  Re-registering the
	// identical implementation is a no-op, not a conflict.
	ErrRegistryConflict = errors.New("hashing: variant already registered")

	// ErrEmptyVariant is returned when registering under an empty key.
	ErrEmptyVariant = errors.New("hashing: variant key must not be empty")

	// ErrInvalidPolicy is returned when a policy parameter violates a hard
	// technical minimum.  Values that are merely below recommendation are
	// logged, not errors.
	ErrInvalidPolicy = errors.New("hashing: invalid policy value")

	// ErrInvalidHash is returned when a stored hash string cannot be parsed:
	// unrecognised format, missing fields, or broken encoding.
	ErrInvalidHash = errors.New("hashing: invalid or unrecognised hash string")

	// ErrHashing is the stable kind wrapping every failure of a hash
	// operation, including an empty input password.  The underlying cause
	// remains reachable via errors.Is / errors.As.
	ErrHashing = errors.New("hashing: hash operation failed")

	// ErrVerification is the stable kind wrapping backend failures during
	// verification.  A plain mismatch is (false, nil), never an error.
	ErrVerification = errors.New("hashing: verify operation failed")
)
