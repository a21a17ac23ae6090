// Package password enforces plaintext complexity rules, decoupled from
// hashing.  A [Policy] declares the rules; a [Validator] applies them to
// candidate passwords with messages specific enough to show to end users.
package password

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hasbyte1/securitykit/config"
)

// Hard bounds and advisory thresholds for the minimum-length rule.
const (
	// MinConfigurableLength is the hard floor for Policy.MinLength.
	MinConfigurableLength = 1

	// MaxPasswordLength caps accepted passwords and Policy.MinLength.
	MaxPasswordLength = 4096

	// RecommendedMinLength is the advisory baseline; lower settings are
	// accepted with a warning.
	RecommendedMinLength = 12

	// UnusuallyHighMinLength triggers a warning when exceeded, since such
	// a requirement usually indicates a configuration mistake.
	UnusuallyHighMinLength = 128
)

// Prefix is the configuration key prefix for password policy fields.
const Prefix = "PASSWORD_"

// Policy holds password complexity configuration.  It validates its own
// parameters; validating actual passwords is the [Validator]'s job.
// The policy carries no benchmark schema: complexity rules are not
// cost-tunable.
type Policy struct {
	MinLength      int  `config:"min_length" default:"8"`
	RequireUpper   bool `config:"require_upper" default:"true"`
	RequireLower   bool `config:"require_lower" default:"true"`
	RequireDigit   bool `config:"require_digit" default:"true"`
	RequireSpecial bool `config:"require_special" default:"true"`
}

// Validate enforces the hard length bounds and logs advisory warnings.
func (p *Policy) Validate(log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if p.MinLength < MinConfigurableLength {
		return fmt.Errorf("%w: min_length must be at least %d, got %d",
			ErrInvalidPolicy, MinConfigurableLength, p.MinLength)
	}
	if p.MinLength > MaxPasswordLength {
		return fmt.Errorf("%w: min_length must be <= %d, got %d",
			ErrInvalidPolicy, MaxPasswordLength, p.MinLength)
	}
	if p.MinLength < RecommendedMinLength {
		log.Warn("password min_length below recommended",
			zap.Int("min_length", p.MinLength), zap.Int("recommended", RecommendedMinLength))
	}
	if p.MinLength > UnusuallyHighMinLength {
		log.Warn("password min_length unusually high",
			zap.Int("min_length", p.MinLength), zap.Int("threshold", UnusuallyHighMinLength))
	}
	return nil
}

// DefaultPolicy returns the default rule set: minimum 8 characters, all
// four character classes required.
func DefaultPolicy() Policy {
	return Policy{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireDigit:   true,
		RequireSpecial: true,
	}
}

// NewPolicy validates p and returns it as an immutable policy value.
func NewPolicy(p Policy, log *zap.Logger) (Policy, error) {
	if err := p.Validate(log); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// FromSource builds and validates a Policy from PASSWORD_* keys in src,
// falling back to field defaults for absent keys.
func FromSource(src config.Source, log *zap.Logger) (Policy, error) {
	var p Policy
	b := config.NewBuilder(src, nil, log)
	if err := b.Build(&p, Prefix, "password policy"); err != nil {
		return Policy{}, err
	}
	return p, nil
}
