// Package bench measures hashing cost and selects policy parameters that
// meet a target latency.
//
// [Engine] times one policy (one discarded warmup, then N timed hashes)
// and produces an immutable [Result] with median, min, max, population
// standard deviation, and percent delta from the target.
//
// [Analyzer] selects among results: FilterNear keeps medians inside the
// tolerance window, Closest minimizes distance to the target, and Balanced
// prefers the combination whose parameter values sit most evenly inside
// their candidate ranges, so no single cost lever is maxed while the
// others idle.
//
// [Runner] ties it together for full-grid benchmarking: enumerate the
// policy's BenchSchema as a Cartesian product in schema order, time every
// combination, pick Balanced over near-target results (falling back to
// Closest), and emit the winner as upper-cased, variant-prefixed
// configuration keys.  [Export] renders that mapping as key=value lines
// with a generator identifier and an advisory SHA-256 integrity digest.
//
// Grid benchmarking explores everything; see the calibrate package for the
// adaptive alternative that converges without enumerating.
package bench
