package config

import (
	"os"
	"sort"
	"strings"
)

// Source is a read-only view over a key-value configuration mapping.
//
// All securitykit components receive their configuration through a Source;
// none of them consult the process environment on their own.
type Source interface {
	// Lookup returns the raw value stored under key and whether it exists.
	Lookup(key string) (any, bool)

	// Keys returns every key present in the source.  Order is unspecified.
	Keys() []string
}

// MapSource adapts an in-memory map to the [Source] interface.
type MapSource map[string]any

// Lookup implements [Source].
func (m MapSource) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// Keys implements [Source].
func (m MapSource) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// Environ returns a Source backed by a snapshot of the current process
// environment.  Intended for composition roots (CLI, bootstrap); core
// packages should be handed the resulting Source explicitly.
func Environ() Source {
	m := make(MapSource)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}

// Snapshot returns the entries of src whose keys start with prefix as a
// deterministic, order-independent string of sorted "KEY=value" lines.
// Two sources with identical prefixed entries produce identical snapshots,
// which makes the result usable as a cache key.
func Snapshot(src Source, prefix string) string {
	var lines []string
	for _, k := range src.Keys() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if v, ok := src.Lookup(k); ok {
			lines = append(lines, k+"="+toString(v))
		}
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}
