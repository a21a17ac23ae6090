// Package pepper transforms passwords with a secret or semi-secret
// augmentation before they reach the hashing backend.
//
// A pepper is orthogonal to the per-hash random salt: the same configured
// transformation applies to every password, so hashes produced under
// different pepper configurations never cross-verify.
//
// # Strategies
//
//   - noop: identity (the safe fallback).
//   - prefix / suffix / prefix_suffix: literal concatenation; explicit
//     PEPPER_PREFIX / PEPPER_SUFFIX values fall back to the generic
//     PEPPER_SECRET.
//   - interleave: inserts a cyclic token every N characters.  Obfuscation
//     only, not cryptographic; a frequency <= 0 degrades to noop with a
//     logged warning.
//   - hmac: hex digest of HMAC(key, password) under a configurable digest
//     (default sha256).  A missing key is a hard configuration error; an
//     unsupported digest is a hard construction error.
//
// # Failure containment
//
// Pepper is defence in depth, not the primary security mechanism.  Any
// error while building a strategy is logged by the [Pipeline] and replaced
// with the noop strategy: hashing never aborts because pepper configuration
// is broken, it only forfeits the augmentation.
//
// # Caching
//
// Built strategies are memoized per normalized snapshot of the PEPPER_*
// configuration entries.  A Pipeline may be shared by any number of hashers;
// racing rebuilds are idempotent and at worst redundant.
package pepper
