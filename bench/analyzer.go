package bench

import (
	"math"

	"github.com/hasbyte1/securitykit/hashing"
)

// Scorer rates one result; lower is better.  The default scorer measures
// how unevenly the result's parameters sit inside their candidate ranges.
type Scorer func(Result) float64

// Analyzer selects among benchmark results for one policy schema.
type Analyzer struct {
	schema hashing.BenchSchema
	scorer Scorer
}

// NewAnalyzer returns an Analyzer for schema using the default balance
// scorer.
func NewAnalyzer(schema hashing.BenchSchema) *Analyzer {
	a := &Analyzer{schema: schema}
	a.scorer = a.balanceScore
	return a
}

// WithScorer replaces the scoring strategy used by [Analyzer.Balanced].
func (a *Analyzer) WithScorer(s Scorer) *Analyzer {
	a.scorer = s
	return a
}

// FilterNear keeps results whose median lies within
// targetMS × (1 ± tolerance).  Input order is preserved.
func (a *Analyzer) FilterNear(results []Result, targetMS, tolerance float64) []Result {
	lower := targetMS * (1 - tolerance)
	upper := targetMS * (1 + tolerance)
	var near []Result
	for _, r := range results {
		if r.Median >= lower && r.Median <= upper {
			near = append(near, r)
		}
	}
	return near
}

// Closest returns the result whose median is nearest to targetMS.  Ties
// resolve to the first-seen result.
func (a *Analyzer) Closest(results []Result, targetMS float64) (Result, error) {
	if len(results) == 0 {
		return Result{}, ErrNoResults
	}
	best := results[0]
	bestDist := math.Abs(best.Median - targetMS)
	for _, r := range results[1:] {
		if d := math.Abs(r.Median - targetMS); d < bestDist {
			best, bestDist = r, d
		}
	}
	return best, nil
}

// Balanced returns the result whose policy parameters are most evenly
// distributed across their candidate ranges.  Ties resolve to the
// first-seen result.
func (a *Analyzer) Balanced(results []Result) (Result, error) {
	if len(results) == 0 {
		return Result{}, ErrNoResults
	}
	best := results[0]
	bestScore := a.scorer(best)
	for _, r := range results[1:] {
		if s := a.scorer(r); s < bestScore {
			best, bestScore = r, s
		}
	}
	return best, nil
}

// balanceScore is the default [Scorer]: for every schema dimension with
// more than one distinct candidate value, compute the parameter's
// normalized position in [0,1] (clamped when outside the candidate range),
// then return the population variance of those positions.  Lower variance
// means the parameters sit at comparable relative strengths instead of one
// lever being maxed while the others idle.  Dimensions with a single
// distinct candidate or a non-numeric parameter are excluded so they can
// neither divide by zero nor skew the score.
func (a *Analyzer) balanceScore(r Result) float64 {
	params := r.Policy.Params()

	var positions []float64
	for _, dim := range a.schema {
		lo, hi, ok := spread(dim.Values)
		if !ok {
			continue
		}
		val, ok := numeric(params[dim.Name])
		if !ok {
			continue
		}
		pos := (val - lo) / (hi - lo)
		positions = append(positions, clamp01(pos))
	}
	if len(positions) == 0 {
		return 0
	}

	var sum float64
	for _, p := range positions {
		sum += p
	}
	mean := sum / float64(len(positions))
	var variance float64
	for _, p := range positions {
		d := p - mean
		variance += d * d
	}
	return variance
}

// spread returns the candidate range, reporting false when fewer than two
// distinct values exist.
func spread(values []int) (lo, hi float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if minV == maxV {
		return 0, 0, false
	}
	return float64(minV), float64(maxV), true
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
