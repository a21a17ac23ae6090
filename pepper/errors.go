package pepper

import "errors"

// Sentinel errors for pepper strategy resolution.  All of them are
// recoverable by design: the [Pipeline] logs and substitutes the noop
// strategy instead of propagating.
var (
	// ErrUnknownStrategy is returned when PEPPER_MODE names no known
	// strategy.
	ErrUnknownStrategy = errors.New("pepper: unknown strategy")

	// ErrConfig is returned when pepper configuration is semantically
	// invalid, e.g. hmac mode without PEPPER_HMAC_KEY.
	ErrConfig = errors.New("pepper: invalid configuration")

	// ErrConstruction is returned when a strategy cannot be built from an
	// otherwise well-formed configuration, e.g. an unsupported HMAC digest.
	ErrConstruction = errors.New("pepper: strategy construction failed")
)
