// Package config resolves raw key-value configuration into typed policy
// objects.
//
// # Architecture
//
// Two layers cooperate:
//
//   - [Chain] converts a single raw value through an ordered list of
//     [Converter] functions.  The default chain consists of one heuristic
//     parser (booleans, size-suffixed integers, integers, decimals, lists);
//     callers may insert custom converters in front of or behind it.
//   - [Builder] fills a policy struct field by field, deriving each
//     configuration key from a prefix plus the upper-cased field name
//     (e.g. ARGON2_TIME_COST → TimeCost).  Every problem found while
//     resolving — missing required keys, unconvertible values, type
//     mismatches — is collected and reported in one [ValidationError]
//     rather than failing on the first.
//
// Configuration enters through the [Source] interface so that core logic
// never reads the process environment implicitly.  [MapSource] adapts an
// in-memory map; [Environ] adapts os.Environ for composition roots.
//
// # Value heuristics
//
// String values are parsed with the following priority:
//
//  1. Boolean tokens: true/on/yes and false/off/no (case-insensitive).
//     The numeric literals "1" and "0" are deliberately NOT booleans so
//     they cannot collide with numeric cost parameters.
//  2. Size-suffixed integers: "64k", "32M", "1G" multiply by powers of
//     1024.  A bare trailing "b" or no suffix is a literal integer.
//  3. Plain integers, then plain decimals (fractional part required).
//  4. Comma- or semicolon-delimited lists of trimmed, non-empty tokens.
//  5. Anything else passes through unchanged.
package config
