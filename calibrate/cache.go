package calibrate

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// CacheVersion is the schema version written into new cache entries.
const CacheVersion = "1"

// Entry is one cached calibration, keyed by algorithm name in the cache
// file.
type Entry struct {
	Params     map[string]int `json:"params"`
	MeasuredMS float64        `json:"measured_ms"`
	CPUCount   int            `json:"cpu_count"`
	Hostname   string         `json:"hostname"`
	CreatedAt  float64        `json:"created_at"`
	Version    string         `json:"version"`
}

// DefaultCachePath returns the per-user calibration cache location
// (~/.cache/securitykit/calibration.json).
func DefaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".cache", "securitykit", "calibration.json")
}

// loadCache reads the whole cache file; any failure reads as an empty
// cache.
func loadCache(path string) map[string]Entry {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var cache map[string]Entry
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil
	}
	return cache
}

// LoadEntry returns the cached entry for algo, if any.
func LoadEntry(algo, path string) (Entry, bool) {
	cache := loadCache(path)
	e, ok := cache[algo]
	return e, ok
}

// SaveEntry merges entry into the cache file under algo.  The write is
// atomic (temp file + rename) and best effort: an error is returned for
// logging, but callers treat it as non-fatal.
func SaveEntry(algo string, entry Entry, path string) error {
	cache := loadCache(path)
	if cache == nil {
		cache = make(map[string]Entry)
	}
	cache[algo] = entry

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".calibration-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
