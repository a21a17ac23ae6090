package calibrate_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/securitykit/calibrate"
)

type call struct {
	timeCost, memoryKiB, parallelism int
}

// scriptedMeasurer replays canned durations and records every call.
type scriptedMeasurer struct {
	responses []float64
	calls     []call
}

func (m *scriptedMeasurer) measure(timeCost, memoryKiB, parallelism int) float64 {
	m.calls = append(m.calls, call{timeCost, memoryKiB, parallelism})
	if len(m.calls) <= len(m.responses) {
		return m.responses[len(m.calls)-1]
	}
	return m.responses[len(m.responses)-1]
}

func testOptions(m *scriptedMeasurer) calibrate.Options {
	opts := calibrate.DefaultOptions()
	opts.AllowCache = false
	opts.EnableParallelism = false
	opts.Measure = m.measure
	return opts
}

func TestRunConvergesViaTimeCost(t *testing.T) {
	// 50ms per unit of time cost: 2→100, 3→150, 4→200 lands in [180,320].
	m := &scriptedMeasurer{responses: []float64{100, 150, 200}}

	res, err := calibrate.Run(testOptions(m), nil)
	require.NoError(t, err)

	assert.Equal(t, 4, res.TimeCost)
	assert.Equal(t, 64*1024, res.MemoryCost)
	assert.Equal(t, 1, res.Parallelism)
	assert.Equal(t, 200.0, res.MeasuredMS)
	assert.Equal(t, 3, res.Iterations)
	assert.False(t, res.Limited)
	assert.False(t, res.FromCache)
	assert.Equal(t, "calibrated", res.Reason)

	want := []call{
		{2, 64 * 1024, 1},
		{3, 64 * 1024, 1},
		{4, 64 * 1024, 1},
	}
	assert.Equal(t, want, m.calls)
}

func TestRunEscalationLeverOrder(t *testing.T) {
	// Always too fast: time cost climbs to its ceiling before memory moves.
	m := &scriptedMeasurer{responses: []float64{10}}
	opts := testOptions(m)
	opts.MaxTimeCost = 3
	opts.MaxMemoryKiB = 128 * 1024

	res, err := calibrate.Run(opts, nil)
	require.NoError(t, err)

	assert.True(t, res.Limited)
	assert.Equal(t, 3, res.TimeCost)
	assert.Equal(t, 128*1024, res.MemoryCost)
	assert.Equal(t, 1, res.Parallelism)

	want := []call{
		{2, 64 * 1024, 1},
		{3, 64 * 1024, 1},
		{3, 96 * 1024, 1},
		{3, 128 * 1024, 1},
	}
	assert.Equal(t, want, m.calls)
}

func TestRunMemoryBacksOffFirst(t *testing.T) {
	// With the time lever pinned, memory escalates, overshoots, and halves
	// back before time cost would ever drop.
	m := &scriptedMeasurer{responses: []float64{50, 60, 1000, 250}}
	opts := testOptions(m)
	opts.MaxTimeCost = 2

	res, err := calibrate.Run(opts, nil)
	require.NoError(t, err)

	assert.False(t, res.Limited)
	assert.Equal(t, 72*1024, res.MemoryCost)
	assert.Equal(t, 250.0, res.MeasuredMS)
	assert.Equal(t, 4, res.Iterations)

	want := []call{
		{2, 64 * 1024, 1},
		{2, 96 * 1024, 1},
		{2, 144 * 1024, 1},
		{2, 72 * 1024, 1},
	}
	assert.Equal(t, want, m.calls)
}

func TestRunTimeCostBacksOffAtBaseMemory(t *testing.T) {
	// Memory sits at its floor, so overshooting lowers time cost instead.
	m := &scriptedMeasurer{responses: []float64{50, 40, 1000, 250}}

	res, err := calibrate.Run(testOptions(m), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, res.TimeCost)
	assert.Equal(t, 64*1024, res.MemoryCost)
	assert.Equal(t, 250.0, res.MeasuredMS)

	want := []call{
		{2, 64 * 1024, 1},
		{3, 64 * 1024, 1},
		{4, 64 * 1024, 1},
		{3, 64 * 1024, 1},
	}
	assert.Equal(t, want, m.calls)
}

func TestRunIterationBudget(t *testing.T) {
	// Oscillates forever; the iteration cap ends the search with the last
	// combination tried.
	m := &scriptedMeasurer{responses: []float64{10}}
	opts := testOptions(m)
	opts.MaxIters = 3
	opts.MaxTimeCost = 100

	res, err := calibrate.Run(opts, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Iterations)
	assert.Len(t, m.calls, 3)
}

func TestRunInvalidWindow(t *testing.T) {
	m := &scriptedMeasurer{responses: []float64{200}}
	opts := testOptions(m)
	opts.TargetLowerMS = 300
	opts.TargetUpperMS = 200

	_, err := calibrate.Run(opts, nil)
	assert.Error(t, err)
	assert.Empty(t, m.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Caching
// ──────────────────────────────────────────────────────────────────────────────

func cachedOptions(m *scriptedMeasurer, path string) calibrate.Options {
	opts := testOptions(m)
	opts.AllowCache = true
	opts.CachePath = path
	return opts
}

func TestRunWritesAndReusesCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.json")

	m := &scriptedMeasurer{responses: []float64{200}}
	first, err := calibrate.Run(cachedOptions(m, path), nil)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	require.Len(t, m.calls, 1)

	// Second run on the same host: served from cache, no measurements.
	m2 := &scriptedMeasurer{responses: []float64{999}}
	second, err := calibrate.Run(cachedOptions(m2, path), nil)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, "cache hit", second.Reason)
	assert.Equal(t, first.TimeCost, second.TimeCost)
	assert.Equal(t, first.MemoryCost, second.MemoryCost)
	assert.Equal(t, first.MeasuredMS, second.MeasuredMS)
	assert.Zero(t, second.Iterations)
	assert.Empty(t, m2.calls)
}

func TestRunForceSkipsCacheRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.json")

	m := &scriptedMeasurer{responses: []float64{200}}
	_, err := calibrate.Run(cachedOptions(m, path), nil)
	require.NoError(t, err)

	m2 := &scriptedMeasurer{responses: []float64{250}}
	opts := cachedOptions(m2, path)
	opts.Force = true
	res, err := calibrate.Run(opts, nil)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.NotEmpty(t, m2.calls)
}

func TestRunIgnoresCacheAfterCPUDrift(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.json")

	// An entry recorded on a machine with four times the cores.
	entry := calibrate.Entry{
		Params:     map[string]int{"time_cost": 9, "memory_cost": 1024 * 1024, "parallelism": 4},
		MeasuredMS: 240,
		CPUCount:   runtime.NumCPU() * 4,
		Hostname:   "big-box",
		Version:    calibrate.CacheVersion,
	}
	require.NoError(t, calibrate.SaveEntry("argon2", entry, path))

	m := &scriptedMeasurer{responses: []float64{200}}
	res, err := calibrate.Run(cachedOptions(m, path), nil)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.NotEmpty(t, m.calls)
}

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "calibration.json")

	entry := calibrate.Entry{
		Params:     map[string]int{"time_cost": 3, "memory_cost": 64 * 1024, "parallelism": 2},
		MeasuredMS: 212.5,
		CPUCount:   8,
		Hostname:   "host-a",
		CreatedAt:  1724700000,
		Version:    calibrate.CacheVersion,
	}
	require.NoError(t, calibrate.SaveEntry("argon2", entry, path))

	got, ok := calibrate.LoadEntry("argon2", path)
	require.True(t, ok)
	assert.Equal(t, entry, got)

	// Entries for other algorithms coexist in the same file.
	other := entry
	other.Params = map[string]int{"rounds": 12}
	require.NoError(t, calibrate.SaveEntry("bcrypt", other, path))

	got, ok = calibrate.LoadEntry("argon2", path)
	require.True(t, ok)
	assert.Equal(t, entry, got)
	_, ok = calibrate.LoadEntry("bcrypt", path)
	assert.True(t, ok)
}

func TestCacheMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()

	_, ok := calibrate.LoadEntry("argon2", filepath.Join(dir, "absent.json"))
	assert.False(t, ok)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0o644))
	_, ok = calibrate.LoadEntry("argon2", corrupt)
	assert.False(t, ok)
}
