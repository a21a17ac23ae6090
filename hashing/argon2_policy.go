package hashing

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hasbyte1/securitykit/config"
)

// Hard technical minima for Argon2.  Violations are errors.
const (
	Argon2MinTimeCost   = 1
	Argon2MinMemory     = 8 * 1024 // KiB
	Argon2MinParallel   = 1
	Argon2MinHashLength = 16
	Argon2MinSaltLength = 16
)

// Recommended baselines.  Values below these succeed with a warning.
const (
	Argon2RecommendedTimeCost   = 2
	Argon2RecommendedMemory     = 64 * 1024 // KiB
	Argon2RecommendedParallel   = 1
	Argon2RecommendedHashLength = 32
)

// Upper sanity thresholds.  Values above these succeed with a warning.
const (
	Argon2MaxTimeCost = 6
	Argon2MaxMemory   = 256 * 1024 // KiB
	Argon2MaxParallel = 4
)

// Argon2Policy holds the cost parameters for the argon2 variant.
// Immutable once constructed; treat instances as values.
type Argon2Policy struct {
	TimeCost    int `config:"time_cost" default:"2"`
	MemoryCost  int `config:"memory_cost" default:"65536"`
	Parallelism int `config:"parallelism" default:"1"`
	HashLength  int `config:"hash_length" default:"32"`
	SaltLength  int `config:"salt_length" default:"16"`
}

// Variant implements [Policy].
func (p Argon2Policy) Variant() string { return VariantArgon2 }

// Params implements [Policy].
func (p Argon2Policy) Params() map[string]any {
	return map[string]any{
		"time_cost":   p.TimeCost,
		"memory_cost": p.MemoryCost,
		"parallelism": p.Parallelism,
		"hash_length": p.HashLength,
		"salt_length": p.SaltLength,
	}
}

// Validate enforces hard minima and logs advisory warnings for values that
// are legal but outside the recommended envelope.
func (p *Argon2Policy) Validate(log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	if p.TimeCost < Argon2MinTimeCost {
		return fmt.Errorf("%w: time_cost must be >= %d, got %d", ErrInvalidPolicy, Argon2MinTimeCost, p.TimeCost)
	}
	if p.MemoryCost < Argon2MinMemory {
		return fmt.Errorf("%w: memory_cost must be >= %d KiB, got %d", ErrInvalidPolicy, Argon2MinMemory, p.MemoryCost)
	}
	if p.Parallelism < Argon2MinParallel {
		return fmt.Errorf("%w: parallelism must be >= %d, got %d", ErrInvalidPolicy, Argon2MinParallel, p.Parallelism)
	}
	if p.HashLength < Argon2MinHashLength {
		return fmt.Errorf("%w: hash_length must be >= %d, got %d", ErrInvalidPolicy, Argon2MinHashLength, p.HashLength)
	}
	if p.SaltLength < Argon2MinSaltLength {
		return fmt.Errorf("%w: salt_length must be >= %d, got %d", ErrInvalidPolicy, Argon2MinSaltLength, p.SaltLength)
	}

	if p.TimeCost < Argon2RecommendedTimeCost {
		log.Warn("argon2 time_cost below recommended",
			zap.Int("time_cost", p.TimeCost), zap.Int("recommended", Argon2RecommendedTimeCost))
	}
	if p.MemoryCost < Argon2RecommendedMemory {
		log.Warn("argon2 memory_cost below recommended",
			zap.Int("memory_cost", p.MemoryCost), zap.Int("recommended", Argon2RecommendedMemory))
	}
	if p.Parallelism <= Argon2RecommendedParallel {
		log.Warn("argon2 parallelism at or below recommended",
			zap.Int("parallelism", p.Parallelism), zap.Int("recommended", Argon2RecommendedParallel))
	}
	if p.HashLength < Argon2RecommendedHashLength {
		log.Warn("argon2 hash_length below recommended",
			zap.Int("hash_length", p.HashLength), zap.Int("recommended", Argon2RecommendedHashLength))
	}

	if p.TimeCost > Argon2MaxTimeCost {
		log.Warn("argon2 time_cost unusually high",
			zap.Int("time_cost", p.TimeCost), zap.Int("max_sane", Argon2MaxTimeCost))
	}
	if p.MemoryCost > Argon2MaxMemory {
		log.Warn("argon2 memory_cost unusually high",
			zap.Int("memory_cost", p.MemoryCost), zap.Int("max_sane", Argon2MaxMemory))
	}
	if p.Parallelism > Argon2MaxParallel {
		log.Warn("argon2 parallelism unusually high",
			zap.Int("parallelism", p.Parallelism), zap.Int("max_sane", Argon2MaxParallel))
	}
	return nil
}

// DefaultArgon2Policy returns the recommended default parameter set.
func DefaultArgon2Policy() Argon2Policy {
	return Argon2Policy{
		TimeCost:    Argon2RecommendedTimeCost,
		MemoryCost:  Argon2RecommendedMemory,
		Parallelism: Argon2RecommendedParallel,
		HashLength:  Argon2RecommendedHashLength,
		SaltLength:  Argon2MinSaltLength,
	}
}

// NewArgon2Policy validates params and returns them as an immutable policy.
func NewArgon2Policy(p Argon2Policy, log *zap.Logger) (Argon2Policy, error) {
	if err := p.Validate(log); err != nil {
		return Argon2Policy{}, err
	}
	return p, nil
}

// Argon2PolicyType describes the argon2 policy for registry registration.
var Argon2PolicyType = &PolicyType{
	Variant:   VariantArgon2,
	EnvPrefix: "ARGON2_",
	Schema: BenchSchema{
		{Name: "time_cost", Values: []int{1, 2, 3, 4, 5, 6}},
		{Name: "memory_cost", Values: []int{8 * 1024, 16 * 1024, 32 * 1024, 64 * 1024, 128 * 1024, 256 * 1024}},
		{Name: "parallelism", Values: []int{1, 2, 3, 4}},
	},
	Build: func(b *config.Builder) (Policy, error) {
		var p Argon2Policy
		if err := b.Build(&p, "ARGON2_", "policy 'argon2'"); err != nil {
			return nil, err
		}
		return p, nil
	},
	FromParams: func(params map[string]int, log *zap.Logger) (Policy, error) {
		p := DefaultArgon2Policy()
		if v, ok := params["time_cost"]; ok {
			p.TimeCost = v
		}
		if v, ok := params["memory_cost"]; ok {
			p.MemoryCost = v
		}
		if v, ok := params["parallelism"]; ok {
			p.Parallelism = v
		}
		return NewArgon2Policy(p, log)
	},
}
