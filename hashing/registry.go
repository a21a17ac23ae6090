package hashing

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Registry binds variant keys to algorithm constructors and policy types.
//
// It is an explicit object constructed once at the application's
// composition root and passed to factories by reference; there is no
// package-level registry and no import-time self-registration.  Keys are
// case-insensitive and stored lower-cased.
//
// Registration is idempotent for the identical constructor or policy type;
// binding a different one under an existing key returns
// [ErrRegistryConflict].  [Registry.Snapshot] captures the current
// bindings and [Registry.RestoreSnapshot] reinstates them — a facility for
// test harnesses that need isolation without re-creating (and thereby
// changing the identity of) the concrete implementations.
// [NewDefaultRegistry] snapshots right after binding the built-ins.
//
// All methods are safe for concurrent use.  Concurrent registration of
// conflicting keys is an error by design, not a race to resolve.
type Registry struct {
	mu         sync.RWMutex
	algorithms map[string]Constructor
	policies   map[string]*PolicyType
	algoSnap   map[string]Constructor
	policySnap map[string]*PolicyType
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		algorithms: make(map[string]Constructor),
		policies:   make(map[string]*PolicyType),
		algoSnap:   make(map[string]Constructor),
		policySnap: make(map[string]*PolicyType),
	}
}

// NewDefaultRegistry returns a Registry with the built-in variants bound in
// deterministic order: argon2 first, then bcrypt.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	// The built-ins cannot conflict in a fresh registry.
	_ = r.RegisterAlgorithm(VariantArgon2, NewArgon2)
	_ = r.RegisterPolicy(Argon2PolicyType)
	_ = r.RegisterAlgorithm(VariantBcrypt, NewBcrypt)
	_ = r.RegisterPolicy(BcryptPolicyType)
	r.Snapshot()
	return r
}

// RegisterAlgorithm binds ctor under variant.  Re-registering the identical
// constructor is a no-op; a different constructor under a bound key returns
// [ErrRegistryConflict].
func (r *Registry) RegisterAlgorithm(variant string, ctor Constructor) error {
	if strings.TrimSpace(variant) == "" {
		return ErrEmptyVariant
	}
	if ctor == nil {
		return fmt.Errorf("%w: nil constructor for %q", ErrRegistryConflict, variant)
	}
	key := strings.ToLower(variant)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.algorithms[key]; ok {
		if reflect.ValueOf(existing).Pointer() != reflect.ValueOf(ctor).Pointer() {
			return fmt.Errorf("%w: algorithm %q", ErrRegistryConflict, variant)
		}
		return nil
	}
	r.algorithms[key] = ctor
	return nil
}

// Algorithm returns the constructor bound to variant, or
// [ErrUnknownAlgorithm].
func (r *Registry) Algorithm(variant string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.algorithms[strings.ToLower(variant)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, variant)
	}
	return ctor, nil
}

// Algorithms returns the bound algorithm keys in sorted order.
func (r *Registry) Algorithms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.algorithms)
}

// RegisterPolicy binds pt under its variant key.  Re-registering the
// identical PolicyType is a no-op; a different one under a bound key
// returns [ErrRegistryConflict].
func (r *Registry) RegisterPolicy(pt *PolicyType) error {
	if pt == nil {
		return fmt.Errorf("%w: nil policy type", ErrRegistryConflict)
	}
	if strings.TrimSpace(pt.Variant) == "" {
		return ErrEmptyVariant
	}
	key := strings.ToLower(pt.Variant)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.policies[key]; ok {
		if existing != pt {
			return fmt.Errorf("%w: policy %q", ErrRegistryConflict, pt.Variant)
		}
		return nil
	}
	r.policies[key] = pt
	return nil
}

// Policy returns the policy type bound to variant, or [ErrUnknownPolicy].
func (r *Registry) Policy(variant string) (*PolicyType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pt, ok := r.policies[strings.ToLower(variant)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, variant)
	}
	return pt, nil
}

// Policies returns the bound policy keys in sorted order.
func (r *Registry) Policies() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.policies)
}

// Snapshot captures the current bindings for a later
// [Registry.RestoreSnapshot].
func (r *Registry) Snapshot() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.algoSnap = make(map[string]Constructor, len(r.algorithms))
	for k, v := range r.algorithms {
		r.algoSnap[k] = v
	}
	r.policySnap = make(map[string]*PolicyType, len(r.policies))
	for k, v := range r.policies {
		r.policySnap[k] = v
	}
}

// RestoreSnapshot discards all current bindings and reinstates the ones
// captured by the last [Registry.Snapshot].
func (r *Registry) RestoreSnapshot() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.algorithms = make(map[string]Constructor, len(r.algoSnap))
	for k, v := range r.algoSnap {
		r.algorithms[k] = v
	}
	r.policies = make(map[string]*PolicyType, len(r.policySnap))
	for k, v := range r.policySnap {
		r.policies[k] = v
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
