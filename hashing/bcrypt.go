package hashing

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Bcrypt hashes passwords with bcrypt, parameterised by a [BcryptPolicy].
// The 128-bit random salt is generated and embedded by the bcrypt library
// itself.
//
// Bcrypt is immutable after construction and safe for concurrent use.
type Bcrypt struct {
	policy BcryptPolicy
}

// NewBcrypt is the registered [Constructor] for the bcrypt variant.
// A nil policy selects [DefaultBcryptPolicy].
func NewBcrypt(policy Policy, log *zap.Logger) (Algorithm, error) {
	p := DefaultBcryptPolicy()
	if policy != nil {
		typed, ok := policy.(BcryptPolicy)
		if !ok {
			return nil, fmt.Errorf("%w: bcrypt requires BcryptPolicy, got %T", ErrInvalidPolicy, policy)
		}
		p = typed
	}
	if err := p.Validate(log); err != nil {
		return nil, err
	}
	return &Bcrypt{policy: p}, nil
}

// Variant implements [Algorithm].
func (b *Bcrypt) Variant() string { return VariantBcrypt }

// Policy returns the parameter set in use.
func (b *Bcrypt) Policy() BcryptPolicy { return b.policy }

// HashRaw implements [Algorithm].
//
// Note: bcrypt truncates input longer than 72 bytes; HMAC pepper mode keeps
// the effective input a fixed-length hex digest, which also sidesteps the
// truncation for long passwords.
func (b *Bcrypt) HashRaw(peppered string) (string, error) {
	if peppered == "" {
		return "", fmt.Errorf("%w: password must not be empty", ErrHashing)
	}
	out, err := bcrypt.GenerateFromPassword([]byte(peppered), b.policy.Rounds)
	if err != nil {
		return "", fmt.Errorf("%w: bcrypt: %w", ErrHashing, err)
	}
	return string(out), nil
}

// VerifyRaw implements [Algorithm].  A plain mismatch maps to (false, nil);
// a structurally invalid hash is an error.
func (b *Bcrypt) VerifyRaw(storedHash, peppered string) (bool, error) {
	if storedHash == "" || peppered == "" {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(peppered))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: bcrypt: %v", ErrInvalidHash, err)
	}
	return true, nil
}

// NeedsRehash implements [Algorithm].  It reports true only when the cost
// stored in the hash is lower than the policy's rounds: a stronger stored
// hash is left alone.
func (b *Bcrypt) NeedsRehash(storedHash string) (bool, error) {
	if !looksLikeBcrypt(storedHash) {
		return false, fmt.Errorf("%w: not a bcrypt hash", ErrInvalidHash)
	}
	cost, err := bcrypt.Cost([]byte(storedHash))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return cost < b.policy.Rounds, nil
}

// looksLikeBcrypt reports whether hash carries a recognised bcrypt prefix
// ($2a$, $2b$, $2y$).
func looksLikeBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") ||
		strings.HasPrefix(hash, "$2b$") ||
		strings.HasPrefix(hash, "$2y$")
}
