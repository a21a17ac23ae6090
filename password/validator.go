package password

import (
	"errors"
	"fmt"
)

// Sentinel errors for the password subsystem.
var (
	// ErrInvalidPolicy is returned when policy parameters violate their
	// hard bounds.
	ErrInvalidPolicy = errors.New("password: invalid policy value")

	// ErrPolicyViolation wraps every rule failure reported by
	// [Validator.Validate].  The message names the specific rule and
	// threshold and is suitable for direct display to end users.
	ErrPolicyViolation = errors.New("password: policy violation")
)

// Validator applies a [Policy]'s complexity rules to candidate passwords.
type Validator struct {
	policy Policy
}

// NewValidator returns a Validator enforcing policy.
func NewValidator(policy Policy) *Validator {
	return &Validator{policy: policy}
}

// Policy returns the rules being enforced.
func (v *Validator) Policy() Policy { return v.policy }

// Validate checks password against the policy and returns the first
// violation found, in fixed rule order: length, uppercase, lowercase,
// digit, special character.  A nil return means the password satisfies
// every enabled rule.
func (v *Validator) Validate(password string) error {
	if len(password) < v.policy.MinLength {
		return fmt.Errorf("%w: password must be at least %d characters long",
			ErrPolicyViolation, v.policy.MinLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: password too long (max %d characters)",
			ErrPolicyViolation, MaxPasswordLength)
	}

	if v.policy.RequireUpper && !containsClass(password, isUpper) {
		return fmt.Errorf("%w: password must contain at least one uppercase letter", ErrPolicyViolation)
	}
	if v.policy.RequireLower && !containsClass(password, isLower) {
		return fmt.Errorf("%w: password must contain at least one lowercase letter", ErrPolicyViolation)
	}
	if v.policy.RequireDigit && !containsClass(password, isDigit) {
		return fmt.Errorf("%w: password must contain at least one digit", ErrPolicyViolation)
	}
	if v.policy.RequireSpecial && !containsClass(password, isSpecial) {
		return fmt.Errorf("%w: password must contain at least one special character", ErrPolicyViolation)
	}
	return nil
}

// Character classes are ASCII: "special" means anything outside
// [A-Za-z0-9], which keeps the rules unambiguous across locales.
func isUpper(r rune) bool   { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool   { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool   { return r >= '0' && r <= '9' }
func isSpecial(r rune) bool { return !isUpper(r) && !isLower(r) && !isDigit(r) }

func containsClass(s string, is func(rune) bool) bool {
	for _, r := range s {
		if is(r) {
			return true
		}
	}
	return false
}
