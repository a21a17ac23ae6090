package hashing

import (
	"go.uber.org/zap"

	"github.com/hasbyte1/securitykit/config"
)

// Policy is an immutable set of cost parameters for one hashing variant.
//
// Concrete policies are plain value structs; Params exposes them generically
// for benchmarking, export, and diagnostics.
type Policy interface {
	// Variant returns the lower-cased variant key the policy belongs to.
	Variant() string

	// Params returns the policy's parameter values keyed by their
	// configuration names (e.g. "time_cost").
	Params() map[string]any
}

// BenchDimension is one tunable parameter and its ordered candidate values.
type BenchDimension struct {
	Name   string
	Values []int
}

// BenchSchema declares which parameters of a policy the benchmark engine may
// explore and with which candidate values.  Order is significant: the grid
// enumerator preserves it.  An empty schema marks a policy as
// non-benchmarkable.
type BenchSchema []BenchDimension

// Keys returns the dimension names in schema order.
func (s BenchSchema) Keys() []string {
	keys := make([]string, len(s))
	for i, d := range s {
		keys[i] = d.Name
	}
	return keys
}

// Lookup returns the candidate values for a dimension name.
func (s BenchSchema) Lookup(name string) ([]int, bool) {
	for _, d := range s {
		if d.Name == name {
			return d.Values, true
		}
	}
	return nil, false
}

// PolicyType describes one registrable policy variant: how to build it from
// configuration, how to build it from explicit benchmark parameters, and
// which parameter space it exposes for tuning.
type PolicyType struct {
	// Variant is the lower-cased key the type registers under.
	Variant string

	// EnvPrefix is the configuration key prefix, e.g. "ARGON2_".
	EnvPrefix string

	// Schema is the benchmarkable parameter space; empty when the policy
	// cannot be tuned.
	Schema BenchSchema

	// Build constructs a validated policy from prefixed configuration keys.
	Build func(b *config.Builder) (Policy, error)

	// FromParams constructs a validated policy from explicit parameter
	// values, as produced by the benchmark enumerator.
	FromParams func(params map[string]int, log *zap.Logger) (Policy, error)
}
