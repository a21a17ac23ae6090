// Package hashing provides configurable, policy-driven password hashing
// behind a uniform façade.
//
// # Architecture
//
// Three layers cooperate:
//
//   - [Algorithm] is the raw backend contract (HashRaw / VerifyRaw /
//     NeedsRehash).  Two implementations ship with this package: Argon2id
//     and bcrypt.  Both are registered under lower-cased variant keys in an
//     explicit [Registry] owned by the application's composition root — no
//     import-time side effects, no package-level mutable state.
//   - A policy is an immutable value object holding the cost parameters for
//     one variant ([Argon2Policy], [BcryptPolicy]).  Policies validate their
//     own invariants: values below a hard technical minimum are errors,
//     values that are merely inadvisable are logged warnings.  Each variant's
//     [PolicyType] also declares a [BenchSchema], the candidate values the
//     benchmark engine may explore.
//   - [Hasher] is the façade callers use day to day.  It resolves the
//     implementation from the registry, applies the configured pepper
//     transformation exactly once, and exposes Hash / Verify / NeedsRehash
//     with one stable error kind per operation.
//
// # Quick start
//
//	reg := hashing.NewDefaultRegistry()
//	factory := hashing.NewFactory(cfg, reg, logger)
//	hasher, err := factory.Hasher()
//	if err != nil { ... }
//
//	hash, err := hasher.Hash("my-secret-password")
//	ok, err := hasher.Verify(hash, "my-secret-password")
//
// # Error contract
//
//   - Hash failures wrap [ErrHashing]; the underlying cause stays reachable
//     through errors.Is / errors.As.
//   - Verify returns (false, nil) for a plain mismatch and for empty input;
//     any other backend failure wraps [ErrVerification].  A syntactically
//     corrupted stored hash is a verification failure, not a rehash trigger.
//   - NeedsRehash never fails: backend errors are logged and reported as
//     "no rehash needed", since a wrong "stale" verdict must not block an
//     authentication flow.
package hashing
