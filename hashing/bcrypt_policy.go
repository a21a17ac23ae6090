package hashing

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hasbyte1/securitykit/config"
)

const (
	// BcryptMinRounds is the hard technical minimum accepted by the
	// underlying bcrypt implementation.
	BcryptMinRounds = 4

	// BcryptRecommendedRounds is the production baseline; lower values
	// succeed with a warning.
	BcryptRecommendedRounds = 12

	// BcryptMaxSaneRounds is the upper sanity threshold; higher values
	// succeed with a warning.
	BcryptMaxSaneRounds = 18
)

// BcryptPolicy holds the cost parameter for the bcrypt variant.
type BcryptPolicy struct {
	Rounds int `config:"rounds" default:"12"`
}

// Variant implements [Policy].
func (p BcryptPolicy) Variant() string { return VariantBcrypt }

// Params implements [Policy].
func (p BcryptPolicy) Params() map[string]any {
	return map[string]any{"rounds": p.Rounds}
}

// Validate enforces the hard minimum and logs advisory warnings.
func (p *BcryptPolicy) Validate(log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if p.Rounds < BcryptMinRounds {
		return fmt.Errorf("%w: rounds must be >= %d, got %d", ErrInvalidPolicy, BcryptMinRounds, p.Rounds)
	}
	if p.Rounds > BcryptMaxSaneRounds {
		log.Warn("bcrypt rounds unusually high",
			zap.Int("rounds", p.Rounds), zap.Int("max_sane", BcryptMaxSaneRounds))
	}
	if p.Rounds < BcryptRecommendedRounds {
		log.Warn("bcrypt rounds below recommended",
			zap.Int("rounds", p.Rounds), zap.Int("recommended", BcryptRecommendedRounds))
	}
	return nil
}

// DefaultBcryptPolicy returns the recommended default parameter set.
func DefaultBcryptPolicy() BcryptPolicy {
	return BcryptPolicy{Rounds: BcryptRecommendedRounds}
}

// NewBcryptPolicy validates p and returns it as an immutable policy.
func NewBcryptPolicy(p BcryptPolicy, log *zap.Logger) (BcryptPolicy, error) {
	if err := p.Validate(log); err != nil {
		return BcryptPolicy{}, err
	}
	return p, nil
}

// BcryptPolicyType describes the bcrypt policy for registry registration.
var BcryptPolicyType = &PolicyType{
	Variant:   VariantBcrypt,
	EnvPrefix: "BCRYPT_",
	Schema: BenchSchema{
		{Name: "rounds", Values: []int{4, 6, 8, 10, 12, 14, 16, 18}},
	},
	Build: func(b *config.Builder) (Policy, error) {
		var p BcryptPolicy
		if err := b.Build(&p, "BCRYPT_", "policy 'bcrypt'"); err != nil {
			return nil, err
		}
		return p, nil
	},
	FromParams: func(params map[string]int, log *zap.Logger) (Policy, error) {
		p := DefaultBcryptPolicy()
		if v, ok := params["rounds"]; ok {
			p.Rounds = v
		}
		return NewBcryptPolicy(p, log)
	},
}
