package bench

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hasbyte1/securitykit/hashing"
)

// Defaults for a benchmark run.
const (
	DefaultTargetMS  = 250.0
	DefaultTolerance = 0.15
)

// RunConfig parameterises one full-grid benchmark run.
type RunConfig struct {
	// Variant selects the algorithm/policy pair to tune.
	Variant string `yaml:"variant"`

	// TargetMS is the hashing latency to aim for.
	TargetMS float64 `yaml:"target_ms"`

	// Tolerance is the relative half-width of the acceptance window
	// around TargetMS (0.15 keeps medians within ±15%).
	Tolerance float64 `yaml:"tolerance"`

	// Rounds is the number of timed samples per combination.
	Rounds int `yaml:"rounds"`
}

// DefaultRunConfig returns the standard run parameters for variant.
func DefaultRunConfig(variant string) RunConfig {
	return RunConfig{
		Variant:   variant,
		TargetMS:  DefaultTargetMS,
		Tolerance: DefaultTolerance,
		Rounds:    DefaultRepeats,
	}
}

// Report is the outcome of a [Runner] run.
type Report struct {
	// Best maps upper-cased configuration keys (HASH_VARIANT plus
	// VARIANT_PARAM entries) to the winning values, ready for export.
	Best map[string]string

	// BestResult is the timing behind Best.
	BestResult Result

	// Near holds the other results inside the tolerance window.
	Near []Result

	// SchemaKeys lists the tuned parameter names in schema order.
	SchemaKeys []string

	// RunID identifies this run in logs and export provenance.
	RunID string
}

// Runner executes the full parameter grid of one policy and selects the
// best combination: Balanced over the near-target results, falling back to
// Closest when nothing lands inside the window.
type Runner struct {
	cfg      RunConfig
	registry *hashing.Registry
	log      *zap.Logger
}

// NewRunner returns a Runner for cfg.  Zero cfg fields fall back to the
// package defaults.
func NewRunner(cfg RunConfig, reg *hashing.Registry, log *zap.Logger) *Runner {
	if cfg.Variant == "" {
		cfg.Variant = hashing.DefaultVariant
	}
	if cfg.TargetMS <= 0 {
		cfg.TargetMS = DefaultTargetMS
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.Rounds <= 0 {
		cfg.Rounds = DefaultRepeats
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, registry: reg, log: log}
}

// Run benchmarks every schema combination and returns the report.
// A policy without a benchmark schema yields [ErrMissingBenchSchema].
func (r *Runner) Run() (Report, error) {
	pt, err := r.registry.Policy(r.cfg.Variant)
	if err != nil {
		return Report{}, err
	}
	if len(pt.Schema) == 0 {
		return Report{}, fmt.Errorf("%w: variant %q", ErrMissingBenchSchema, r.cfg.Variant)
	}

	runID := uuid.NewString()
	log := r.log.With(zap.String("run_id", runID), zap.String("variant", r.cfg.Variant))
	log.Info("benchmark run starting",
		zap.Int("combinations", GridSize(pt.Schema)),
		zap.Float64("target_ms", r.cfg.TargetMS),
		zap.Float64("tolerance", r.cfg.Tolerance))

	// Policy construction warnings are expected noise while sweeping the
	// grid; keep them out of the run log.
	engine := NewEngine(r.cfg.Variant, r.registry, r.cfg.Rounds, zap.NewNop())

	var results []Result
	for _, combo := range Enumerate(pt.Schema) {
		policy, err := pt.FromParams(combo, zap.NewNop())
		if err != nil {
			return Report{}, err
		}
		result, err := engine.Run(policy, r.cfg.TargetMS)
		if err != nil {
			return Report{}, err
		}
		results = append(results, result)
	}

	analyzer := NewAnalyzer(pt.Schema)
	near := analyzer.FilterNear(results, r.cfg.TargetMS, r.cfg.Tolerance)

	var best Result
	if len(near) > 0 {
		best, err = analyzer.Balanced(near)
	} else {
		best, err = analyzer.Closest(results, r.cfg.TargetMS)
	}
	if err != nil {
		return Report{}, err
	}

	others := make([]Result, 0, len(near))
	for _, n := range near {
		if !sameParams(n, best) {
			others = append(others, n)
		}
	}

	log.Info("benchmark run complete",
		zap.Any("best", best.Policy.Params()),
		zap.Float64("median_ms", best.Median),
		zap.Int("near_target", len(near)))

	return Report{
		Best:       r.exportKeys(best, pt.Schema),
		BestResult: best,
		Near:       others,
		SchemaKeys: pt.Schema.Keys(),
		RunID:      runID,
	}, nil
}

// exportKeys renders the winning combination as variant-prefixed
// upper-cased configuration keys.
func (r *Runner) exportKeys(best Result, schema hashing.BenchSchema) map[string]string {
	params := best.Policy.Params()
	out := map[string]string{hashing.VariantKey: r.cfg.Variant}
	prefix := strings.ToUpper(r.cfg.Variant) + "_"
	for _, key := range schema.Keys() {
		out[prefix+strings.ToUpper(key)] = fmt.Sprintf("%v", params[key])
	}
	return out
}

func sameParams(a, b Result) bool {
	ap, bp := a.Policy.Params(), b.Policy.Params()
	if len(ap) != len(bp) {
		return false
	}
	for k, v := range ap {
		if bp[k] != v {
			return false
		}
	}
	return true
}
