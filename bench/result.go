package bench

import (
	"fmt"
	"math"
	"sort"

	"github.com/hasbyte1/securitykit/hashing"
)

// Result is the immutable outcome of timing one policy configuration.
// Construct with [NewResult]; the aggregate fields are derived once from
// the raw samples and never change afterwards.
type Result struct {
	// Policy is the configuration that was timed.
	Policy hashing.Policy

	// Times holds the raw per-hash samples in milliseconds.
	Times []float64

	// TargetMS is the latency the benchmark aims for.
	TargetMS float64

	// Median, Min, Max, and Stddev (population standard deviation)
	// aggregate the samples.
	Median float64
	Min    float64
	Max    float64
	Stddev float64

	// Delta is the percent deviation of the median from the target.
	Delta float64
}

// NewResult derives the aggregate statistics for samples against targetMS.
func NewResult(policy hashing.Policy, times []float64, targetMS float64) Result {
	r := Result{
		Policy:   policy,
		Times:    append([]float64(nil), times...),
		TargetMS: targetMS,
		Median:   median(times),
		Min:      minOf(times),
		Max:      maxOf(times),
		Stddev:   pstdev(times),
	}
	if targetMS != 0 {
		r.Delta = (r.Median - targetMS) / targetMS * 100
	}
	return r
}

// String renders a compact one-line summary for logs.
func (r Result) String() string {
	return fmt.Sprintf("<Result %v median=%.2fms delta=%+.1f%%>", r.Policy.Params(), r.Median, r.Delta)
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func minOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// pstdev is the population standard deviation; zero for fewer than two
// samples.
func pstdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)))
}
