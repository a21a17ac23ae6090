package bench

import (
	"time"

	"go.uber.org/zap"

	"github.com/hasbyte1/securitykit/hashing"
)

// benchPassword is the fixed input hashed by every trial so samples are
// comparable across combinations.
const benchPassword = "benchmark-password"

// DefaultRepeats is the number of timed samples per combination.
const DefaultRepeats = 5

// Engine times hash operations for one algorithm variant.  Timing goes
// through the raw algorithm without pepper, so results reflect pure
// hashing cost.
type Engine struct {
	variant  string
	registry *hashing.Registry
	repeats  int
	log      *zap.Logger
}

// NewEngine returns an Engine for variant.  repeats <= 0 selects
// [DefaultRepeats].
func NewEngine(variant string, reg *hashing.Registry, repeats int, log *zap.Logger) *Engine {
	if repeats <= 0 {
		repeats = DefaultRepeats
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{variant: variant, registry: reg, repeats: repeats, log: log}
}

// Run times policy against targetMS: one discarded warmup hash, then the
// configured number of timed hashes.
func (e *Engine) Run(policy hashing.Policy, targetMS float64) (Result, error) {
	ctor, err := e.registry.Algorithm(e.variant)
	if err != nil {
		return Result{}, err
	}
	algo, err := ctor(policy, e.log)
	if err != nil {
		return Result{}, err
	}

	if _, err := e.timeOnce(algo); err != nil {
		return Result{}, err
	}
	times := make([]float64, 0, e.repeats)
	for i := 0; i < e.repeats; i++ {
		ms, err := e.timeOnce(algo)
		if err != nil {
			return Result{}, err
		}
		times = append(times, ms)
	}
	return NewResult(policy, times, targetMS), nil
}

func (e *Engine) timeOnce(algo hashing.Algorithm) (float64, error) {
	start := time.Now()
	if _, err := algo.HashRaw(benchPassword); err != nil {
		return 0, err
	}
	return float64(time.Since(start)) / float64(time.Millisecond), nil
}
