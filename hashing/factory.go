package hashing

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/hasbyte1/securitykit/config"
	"github.com/hasbyte1/securitykit/pepper"
)

// VariantKey is the configuration key selecting the active variant.
const VariantKey = "HASH_VARIANT"

// DefaultVariant is used when HASH_VARIANT is absent.
const DefaultVariant = VariantArgon2

// Factory turns a configuration source into policies and hasher façades.
//
//   - Policies are built from prefixed keys (ARGON2_TIME_COST → time_cost)
//     through [config.Builder] and cached per variant.
//   - Hashers share one pepper pipeline, so equivalent PEPPER_*
//     configuration is parsed and built exactly once.
//
// Factory is safe for concurrent use.
type Factory struct {
	source   config.Source
	registry *Registry
	builder  *config.Builder
	pipeline *pepper.Pipeline
	log      *zap.Logger

	mu       sync.Mutex
	policies map[string]Policy
}

// NewFactory returns a Factory reading from src and resolving variants
// against reg.  A nil logger discards.
func NewFactory(src config.Source, reg *Registry, log *zap.Logger) *Factory {
	if log == nil {
		log = zap.NewNop()
	}
	return &Factory{
		source:   src,
		registry: reg,
		builder:  config.NewBuilder(src, nil, log),
		pipeline: pepper.NewPipeline(log),
		log:      log,
		policies: make(map[string]Policy),
	}
}

// Variant resolves the active variant from HASH_VARIANT, defaulting to
// argon2.
func (f *Factory) Variant() string {
	if raw, ok := f.source.Lookup(VariantKey); ok {
		if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
			return strings.ToLower(strings.TrimSpace(s))
		}
	}
	return DefaultVariant
}

// Policy builds (or returns the cached) policy for variant from prefixed
// configuration keys.
func (f *Factory) Policy(variant string) (Policy, error) {
	key := strings.ToLower(variant)

	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.policies[key]; ok {
		return p, nil
	}

	pt, err := f.registry.Policy(key)
	if err != nil {
		return nil, err
	}
	policy, err := pt.Build(f.builder)
	if err != nil {
		return nil, err
	}
	f.policies[key] = policy
	return policy, nil
}

// Hasher builds the façade for the active variant with its configured
// policy.  The full configuration source is forwarded so the pepper
// pipeline sees the PEPPER_* keys.
func (f *Factory) Hasher() (*Hasher, error) {
	variant := f.Variant()
	policy, err := f.Policy(variant)
	if err != nil {
		return nil, err
	}
	return NewHasher(variant, policy, f.source, f.registry,
		WithLogger(f.log), WithPepperPipeline(f.pipeline))
}
