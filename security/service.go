// Package security composes complexity validation and hashing into the
// single entry point applications use for password management.
package security

import (
	"go.uber.org/zap"

	"github.com/hasbyte1/securitykit/hashing"
	"github.com/hasbyte1/securitykit/password"
)

// PasswordSecurity validates, hashes, verifies, and transparently rehashes
// passwords.  Validation always runs before hashing; verification returns
// false for missing input or backend failure rather than propagating
// errors to login flows.
type PasswordSecurity struct {
	validator *password.Validator
	hasher    *hashing.Hasher
	log       *zap.Logger
}

// New returns a PasswordSecurity service.  A nil logger discards.
func New(validator *password.Validator, hasher *hashing.Hasher, log *zap.Logger) *PasswordSecurity {
	if log == nil {
		log = zap.NewNop()
	}
	return &PasswordSecurity{validator: validator, hasher: hasher, log: log}
}

// Validate checks plaintext against the complexity policy.
func (s *PasswordSecurity) Validate(plaintext string) error {
	return s.validator.Validate(plaintext)
}

// Hash validates and hashes plaintext in one step.
func (s *PasswordSecurity) Hash(plaintext string) (string, error) {
	if err := s.validator.Validate(plaintext); err != nil {
		return "", err
	}
	return s.hasher.Hash(plaintext)
}

// HashUnchecked hashes plaintext without applying the complexity policy,
// for inputs validated elsewhere (imports, migrations).
func (s *PasswordSecurity) HashUnchecked(plaintext string) (string, error) {
	return s.hasher.Hash(plaintext)
}

// Verify checks plaintext against storedHash.  Missing input and backend
// verification failures both yield false; failures are logged, never
// surfaced, so a storage glitch reads as "wrong password" rather than a
// 500 on the login path.
func (s *PasswordSecurity) Verify(plaintext, storedHash string) bool {
	if plaintext == "" || storedHash == "" {
		return false
	}
	ok, err := s.hasher.Verify(storedHash, plaintext)
	if err != nil {
		s.log.Error("password verification error", zap.Error(err))
		return false
	}
	return ok
}

// NeedsRehash reports whether storedHash was produced under parameters
// that differ from the current policy.
func (s *PasswordSecurity) NeedsRehash(storedHash string) bool {
	return s.hasher.NeedsRehash(storedHash)
}

// Rehash returns a fresh hash of plaintext when oldHash is stale, and
// oldHash unchanged otherwise.
func (s *PasswordSecurity) Rehash(plaintext, oldHash string) (string, error) {
	if s.NeedsRehash(oldHash) {
		return s.Hash(plaintext)
	}
	return oldHash, nil
}

// RehashListener observes transparent rehashes, typically to persist the
// replacement hash.
type RehashListener func(oldHash, newHash string)

// VerifyResult reports the outcome of [PasswordSecurity.VerifyAndRehash].
type VerifyResult struct {
	// Valid is true when the password matched.
	Valid bool

	// Rehashed is true when a replacement hash was generated.
	Rehashed bool

	// NewHash holds the replacement hash when Rehashed is true.
	NewHash string
}

// VerifyAndRehash verifies plaintext and, on success, regenerates the hash
// if the stored one is stale.  The listener (optional) is notified with
// both hashes when a rehash happens.
func (s *PasswordSecurity) VerifyAndRehash(storedHash, plaintext string, listener RehashListener) (VerifyResult, error) {
	if !s.Verify(plaintext, storedHash) {
		return VerifyResult{}, nil
	}
	if !s.NeedsRehash(storedHash) {
		return VerifyResult{Valid: true}, nil
	}
	newHash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return VerifyResult{Valid: true}, err
	}
	if listener != nil {
		listener(storedHash, newHash)
	}
	return VerifyResult{Valid: true, Rehashed: true, NewHash: newHash}, nil
}
