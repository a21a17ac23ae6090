package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is the stable kind matched by [errors.Is] for every
// configuration failure reported by [Builder.Build].
var ErrValidation = errors.New("config: validation failed")

// ValidationError aggregates every problem discovered while building a
// single policy: missing required keys, unconvertible values, and invariant
// violations raised by the policy itself.  Callers therefore see all
// misconfiguration at once instead of fixing it one key at a time.
type ValidationError struct {
	// Label names the object being built, e.g. "policy 'argon2'".
	Label string

	// Issues holds one human-readable message per problem.
	Issues []string

	// Cause is the underlying error when construction-level validation
	// failed after all keys resolved cleanly; nil otherwise.
	Cause error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: errors building %s: %s", e.Label, strings.Join(e.Issues, "; "))
}

// Is reports true for [ErrValidation], so callers can match the kind
// without knowing the concrete type.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Unwrap exposes the construction-level cause, if any.
func (e *ValidationError) Unwrap() error { return e.Cause }
