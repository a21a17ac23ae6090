// Package calibrate finds Argon2 cost parameters whose single-hash
// duration lands inside a target window, without enumerating the full
// parameter grid.
//
// # Search
//
// Starting from a conservative baseline (time cost 2, 64 MiB memory,
// parallelism min(2, CPU count)), each iteration measures one hash:
//
//   - too fast → escalate in priority order: raise time cost to its
//     ceiling, then memory multiplicatively to its cap, then parallelism
//     up to min(cap, CPU count) — advancing to the next lever only once
//     the current one is exhausted;
//   - too slow → de-escalate in the reverse priority: halve memory first,
//     then lower time cost, then parallelism, each bounded at a floor.
//
// The escalation and de-escalation orders are deliberately asymmetric;
// they are preserved exactly because they affect which tuned parameters a
// given host reproduces.
//
// When every lever is exhausted before the window is reached the result is
// marked limited (best effort).  Hard stops: a maximum iteration count,
// and a wall-clock fast-fail budget once at least one acceptable candidate
// exists.
//
// # Caching
//
// Successful calibrations persist to a JSON file keyed by algorithm name,
// recording parameters, measured duration, CPU count, hostname, creation
// time, and a schema version.  A cached entry is reused only while the
// current CPU count stays within 50% of the recorded one — a cheap signal
// that the process moved to a different host or container.  The cache is
// best effort: read or write failures degrade to "no cache", never to a
// calibration error.
package calibrate
