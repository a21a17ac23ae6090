package hashing

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hasbyte1/securitykit/config"
	"github.com/hasbyte1/securitykit/pepper"
)

// Hasher is the façade callers use for all day-to-day hashing work.  It
// resolves an [Algorithm] from a [Registry], applies the configured pepper
// transformation exactly once per operation, and presents the uniform
// error contract described in the package documentation.
//
// Hasher is immutable after construction and safe for concurrent use.
type Hasher struct {
	variant  string
	impl     Algorithm
	policy   Policy
	source   config.Source
	pipeline *pepper.Pipeline
	log      *zap.Logger
}

// Option customises a [Hasher] under construction.
type Option func(*Hasher)

// WithPepperPipeline shares an existing pepper pipeline (and therefore its
// strategy cache) with the new hasher.  Without it each hasher owns a
// private pipeline, which is correct but caches separately.
func WithPepperPipeline(p *pepper.Pipeline) Option {
	return func(h *Hasher) { h.pipeline = p }
}

// WithLogger sets the logger; nil (the default) discards.
func WithLogger(log *zap.Logger) Option {
	return func(h *Hasher) { h.log = log }
}

// NewHasher builds a façade for variant.  A nil policy selects the
// variant's defaults.  src supplies the PEPPER_* configuration; a nil src
// disables peppering.
func NewHasher(variant string, policy Policy, src config.Source, reg *Registry, opts ...Option) (*Hasher, error) {
	h := &Hasher{
		variant: variant,
		policy:  policy,
		source:  src,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.pipeline == nil {
		h.pipeline = pepper.NewPipeline(h.log)
	}

	ctor, err := reg.Algorithm(variant)
	if err != nil {
		return nil, err
	}
	impl, err := ctor(policy, h.log)
	if err != nil {
		return nil, err
	}
	h.impl = impl
	return h, nil
}

// Variant returns the lower-cased variant key.
func (h *Hasher) Variant() string { return h.impl.Variant() }

// Policy returns the policy the façade was built with; nil means the
// variant's defaults.
func (h *Hasher) Policy() Policy { return h.policy }

// Hash peppers and hashes password.  An empty password and every backend
// failure wrap [ErrHashing]; the original cause stays reachable through
// errors.Is / errors.As.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password must not be empty", ErrHashing)
	}
	out, err := h.impl.HashRaw(h.pepper(password))
	if err != nil {
		return "", h.wrapHash(err)
	}
	return out, nil
}

// Verify checks password against storedHash.  Empty input on either side is
// (false, nil), as is a plain mismatch.  Any other backend failure —
// including a syntactically corrupted stored hash — wraps
// [ErrVerification] and is never silently swallowed.
func (h *Hasher) Verify(storedHash, password string) (bool, error) {
	if storedHash == "" || password == "" {
		return false, nil
	}
	ok, err := h.impl.VerifyRaw(storedHash, h.pepper(password))
	if err != nil {
		return false, fmt.Errorf("%w: variant %s: %w", ErrVerification, h.variant, err)
	}
	return ok, nil
}

// NeedsRehash reports whether storedHash should be regenerated on next
// successful login.  It never fails: an empty hash, a missing capability,
// or a backend error all yield false, with the failure logged.  A wrong
// "stale" verdict is not a safety issue, and a hard failure here would
// needlessly block authentication.
func (h *Hasher) NeedsRehash(storedHash string) bool {
	if storedHash == "" {
		return false
	}
	stale, err := h.impl.NeedsRehash(storedHash)
	if err != nil {
		h.log.Error("needs-rehash check failed",
			zap.String("variant", h.variant), zap.Error(err))
		return false
	}
	return stale
}

func (h *Hasher) pepper(password string) string {
	return h.pipeline.Apply(password, h.source)
}

func (h *Hasher) wrapHash(err error) error {
	// HashRaw may already report the stable kind (e.g. empty input).
	return fmt.Errorf("%w: variant %s: %w", ErrHashing, h.variant, err)
}
