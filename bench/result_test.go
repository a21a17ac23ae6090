package bench_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hasbyte1/securitykit/bench"
	"github.com/hasbyte1/securitykit/hashing"
)

// stubPolicy is a minimal hashing.Policy for analyzer and result tests.
type stubPolicy map[string]any

func (stubPolicy) Variant() string          { return "stub" }
func (p stubPolicy) Params() map[string]any { return p }

func TestNewResultStatistics(t *testing.T) {
	p := stubPolicy{"cost": 1}

	r := bench.NewResult(p, []float64{120, 80, 100, 90, 110}, 100)
	assert.Equal(t, 100.0, r.Median)
	assert.Equal(t, 80.0, r.Min)
	assert.Equal(t, 120.0, r.Max)
	assert.InDelta(t, 14.14, r.Stddev, 0.01)
	assert.Equal(t, 0.0, r.Delta)

	// Even sample count averages the middle pair.
	r = bench.NewResult(p, []float64{80, 120}, 80)
	assert.Equal(t, 100.0, r.Median)
	assert.InDelta(t, 25.0, r.Delta, 1e-9)
}

func TestNewResultEdgeCases(t *testing.T) {
	p := stubPolicy{"cost": 1}

	// No samples: all aggregates zero.
	r := bench.NewResult(p, nil, 100)
	assert.Zero(t, r.Median)
	assert.Zero(t, r.Min)
	assert.Zero(t, r.Max)
	assert.Zero(t, r.Stddev)

	// One sample: stddev zero by definition.
	r = bench.NewResult(p, []float64{42}, 0)
	assert.Equal(t, 42.0, r.Median)
	assert.Zero(t, r.Stddev)
	// Zero target: delta left at zero rather than dividing by zero.
	assert.Zero(t, r.Delta)
}

func TestResultCopiesSamples(t *testing.T) {
	times := []float64{10, 20}
	r := bench.NewResult(stubPolicy{}, times, 15)
	times[0] = 999
	assert.Equal(t, 10.0, r.Times[0])
}

func TestResultString(t *testing.T) {
	r := bench.NewResult(stubPolicy{"cost": 2}, []float64{110}, 100)
	s := r.String()
	assert.Contains(t, s, "median=110.00ms")
	assert.Contains(t, s, "+10.0%")
}

var _ hashing.Policy = stubPolicy{}
