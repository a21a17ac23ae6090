package calibrate

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
)

// calibratePassword is the fixed input measured on every iteration.
const calibratePassword = "CalibratePassw0rd!"

// Search baseline and bounds.
const (
	baseTimeCost   = 2
	baseMemoryKiB  = 64 * 1024
	maxParallelism = 4

	// DefaultMaxTimeCost is the time-cost ceiling during escalation.
	DefaultMaxTimeCost = 12

	// DefaultMaxMemoryKiB caps memory escalation (512 MiB).
	DefaultMaxMemoryKiB = 512 * 1024

	// DefaultMaxIters bounds the search length.
	DefaultMaxIters = 15

	// DefaultFastFail is the wall-clock budget after which the search
	// settles for an already-found acceptable candidate.
	DefaultFastFail = 5 * time.Second
)

// cpuDriftTolerance is the relative CPU-count change beyond which a cached
// calibration is considered to belong to different hardware.
const cpuDriftTolerance = 0.5

// Measurer times one hash with the given Argon2 parameters and returns the
// duration in milliseconds.  The default measurer hashes for real; tests
// inject deterministic stand-ins.
type Measurer func(timeCost, memoryKiB, parallelism int) float64

// Options configures [Run].
type Options struct {
	// TargetLowerMS / TargetUpperMS bound the acceptance window.
	TargetLowerMS float64
	TargetUpperMS float64

	// MaxIters, MaxTimeCost, MaxMemoryKiB, and FastFail bound the search;
	// zero values select the package defaults.
	MaxIters     int
	MaxTimeCost  int
	MaxMemoryKiB int
	FastFail     time.Duration

	// CachePath locates the calibration cache; empty selects
	// [DefaultCachePath].
	CachePath string

	// AllowCache enables cache reads and writes; Force skips the read
	// while still recording the outcome.
	AllowCache bool
	Force      bool

	// EnableParallelism permits the parallelism lever; when false the
	// search pins parallelism to 1.
	EnableParallelism bool

	// Measure overrides the hashing measurer (tests only).
	Measure Measurer
}

// DefaultOptions returns the standard calibration window of 180–320 ms
// with caching enabled.
func DefaultOptions() Options {
	return Options{
		TargetLowerMS:     180,
		TargetUpperMS:     320,
		AllowCache:        true,
		EnableParallelism: true,
	}
}

// Result is the outcome of a calibration run.
type Result struct {
	TimeCost    int
	MemoryCost  int
	Parallelism int

	// MeasuredMS is the duration of the final measured hash.
	MeasuredMS float64

	// Iterations counts measurement rounds (0 on a cache hit).
	Iterations int

	// Limited is true when the search exhausted its levers without
	// reaching the target window.
	Limited bool

	// FromCache is true when the result was served from the cache.
	FromCache bool

	// Reason summarises provenance ("cache hit" or "calibrated").
	Reason string
}

// Params returns the resolved cost parameters keyed by configuration name.
func (r Result) Params() map[string]int {
	return map[string]int{
		"time_cost":   r.TimeCost,
		"memory_cost": r.MemoryCost,
		"parallelism": r.Parallelism,
	}
}

// Run performs the adaptive calibration described in the package
// documentation.  A nil logger discards.
func Run(opts Options, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	applyDefaults(&opts)

	if opts.TargetLowerMS <= 0 || opts.TargetUpperMS <= opts.TargetLowerMS {
		return Result{}, fmt.Errorf("calibrate: invalid target window [%v, %v]",
			opts.TargetLowerMS, opts.TargetUpperMS)
	}

	cpuCount := runtime.NumCPU()
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	if opts.AllowCache && !opts.Force {
		if cached, ok := LoadEntry("argon2", opts.CachePath); ok {
			if cacheUsable(cached, cpuCount) {
				log.Info("calibration served from cache",
					zap.Any("params", cached.Params),
					zap.String("hostname", cached.Hostname))
				return Result{
					TimeCost:    cached.Params["time_cost"],
					MemoryCost:  cached.Params["memory_cost"],
					Parallelism: cached.Params["parallelism"],
					MeasuredMS:  cached.MeasuredMS,
					FromCache:   true,
					Reason:      "cache hit",
				}, nil
			}
			log.Warn("calibration cache ignored: CPU count drifted",
				zap.Int("cached_cpus", cached.CPUCount),
				zap.Int("current_cpus", cpuCount))
		}
	}

	result := search(opts, cpuCount, log)

	if opts.AllowCache {
		entry := Entry{
			Params:     result.Params(),
			MeasuredMS: result.MeasuredMS,
			CPUCount:   cpuCount,
			Hostname:   hostname,
			CreatedAt:  float64(time.Now().UnixNano()) / float64(time.Second),
			Version:    CacheVersion,
		}
		if err := SaveEntry("argon2", entry, opts.CachePath); err != nil {
			log.Warn("calibration cache write failed", zap.Error(err))
		}
	}
	return result, nil
}

// search runs the hill-climbing loop.  Lever priority is asymmetric on
// purpose: escalation raises time cost, then memory, then parallelism;
// de-escalation lowers memory, then time cost, then parallelism.
func search(opts Options, cpuCount int, log *zap.Logger) Result {
	timeCost := baseTimeCost
	memoryKiB := baseMemoryKiB
	parallelism := 1
	if opts.EnableParallelism {
		parallelism = min(2, cpuCount)
	}

	startWall := time.Now()
	var (
		best      *Result
		elapsed   float64
		iteration int
	)

	for iteration < opts.MaxIters {
		iteration++
		elapsed = opts.Measure(timeCost, memoryKiB, parallelism)
		log.Debug("calibration iteration",
			zap.Int("iteration", iteration),
			zap.Int("time_cost", timeCost),
			zap.Int("memory_kib", memoryKiB),
			zap.Int("parallelism", parallelism),
			zap.Float64("measured_ms", elapsed))

		if elapsed >= opts.TargetLowerMS && elapsed <= opts.TargetUpperMS {
			best = &Result{
				TimeCost: timeCost, MemoryCost: memoryKiB, Parallelism: parallelism,
				MeasuredMS: elapsed, Iterations: iteration,
			}
			break
		}

		if time.Since(startWall) > opts.FastFail {
			// Budget exhausted: settle for the combination just measured.
			best = &Result{
				TimeCost: timeCost, MemoryCost: memoryKiB, Parallelism: parallelism,
				MeasuredMS: elapsed, Iterations: iteration, Limited: true,
			}
			break
		}

		if elapsed < opts.TargetLowerMS {
			// Too fast: raise cost.
			switch {
			case timeCost < opts.MaxTimeCost:
				timeCost++
			case memoryKiB < opts.MaxMemoryKiB:
				memoryKiB = min(int(float64(memoryKiB)*1.5), opts.MaxMemoryKiB)
			case opts.EnableParallelism && parallelism < cpuCount && parallelism < maxParallelism:
				parallelism++
			default:
				best = &Result{
					TimeCost: timeCost, MemoryCost: memoryKiB, Parallelism: parallelism,
					MeasuredMS: elapsed, Iterations: iteration, Limited: true,
				}
			}
		} else {
			// Too slow: lower cost.
			switch {
			case memoryKiB > baseMemoryKiB*2:
				memoryKiB = max(baseMemoryKiB, memoryKiB/2)
			case timeCost > baseTimeCost:
				timeCost = max(baseTimeCost, timeCost-1)
			case opts.EnableParallelism && parallelism > 1:
				parallelism--
			default:
				best = &Result{
					TimeCost: timeCost, MemoryCost: memoryKiB, Parallelism: parallelism,
					MeasuredMS: elapsed, Iterations: iteration, Limited: true,
				}
			}
		}

		if best != nil && best.Limited {
			break
		}
	}

	if best == nil {
		// Iteration budget ran out: report the last combination tried.
		best = &Result{
			TimeCost: timeCost, MemoryCost: memoryKiB, Parallelism: parallelism,
			MeasuredMS: elapsed, Iterations: iteration,
		}
	}
	best.Reason = "calibrated"

	log.Info("calibration finished",
		zap.Int("time_cost", best.TimeCost),
		zap.Int("memory_kib", best.MemoryCost),
		zap.Int("parallelism", best.Parallelism),
		zap.Float64("measured_ms", best.MeasuredMS),
		zap.Int("iterations", best.Iterations),
		zap.Bool("limited", best.Limited))
	return *best
}

// cacheUsable applies the CPU-drift heuristic to a cached entry.
func cacheUsable(e Entry, cpuCount int) bool {
	if e.CPUCount <= 0 {
		return false
	}
	drift := math.Abs(float64(e.CPUCount-cpuCount)) / float64(e.CPUCount)
	return drift <= cpuDriftTolerance
}

func applyDefaults(opts *Options) {
	if opts.MaxIters <= 0 {
		opts.MaxIters = DefaultMaxIters
	}
	if opts.MaxTimeCost <= 0 {
		opts.MaxTimeCost = DefaultMaxTimeCost
	}
	if opts.MaxMemoryKiB <= 0 {
		opts.MaxMemoryKiB = DefaultMaxMemoryKiB
	}
	if opts.FastFail <= 0 {
		opts.FastFail = DefaultFastFail
	}
	if opts.CachePath == "" {
		opts.CachePath = DefaultCachePath()
	}
	if opts.Measure == nil {
		opts.Measure = measureHash
	}
}

// measureHash is the production [Measurer]: one warmup, one timed
// Argon2id hash.
func measureHash(timeCost, memoryKiB, parallelism int) float64 {
	salt := []byte("calibration-salt")
	hashOnce := func() {
		argon2.IDKey([]byte(calibratePassword), salt,
			uint32(timeCost), uint32(memoryKiB), uint8(parallelism), 32)
	}
	hashOnce()
	start := time.Now()
	hashOnce()
	return float64(time.Since(start)) / float64(time.Millisecond)
}
