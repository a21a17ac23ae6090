package bench

import "errors"

var (
	// ErrMissingBenchSchema is returned when a policy declares no
	// benchmarkable parameter space and therefore cannot be tuned.
	ErrMissingBenchSchema = errors.New("bench: policy has no benchmark schema")

	// ErrNoResults is returned by analyzer selections over an empty input.
	ErrNoResults = errors.New("bench: no results to select from")
)
