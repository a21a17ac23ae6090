package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Converter transforms a raw configuration value into a (possibly) more
// specific representation.  Converters run in sequence; each receives the
// output of the previous one.
type Converter func(any) any

// Chain is an ordered list of [Converter] functions.  The zero value is not
// usable; construct with [NewChain], which seeds the chain with the default
// heuristic parser.
type Chain struct {
	converters []Converter
}

// NewChain returns a Chain containing only the default heuristic parser.
func NewChain() *Chain {
	return &Chain{converters: []Converter{Parse}}
}

// RegisterFront inserts fn with highest priority (runs before everything
// already in the chain, including the default parser).
func (c *Chain) RegisterFront(fn Converter) {
	c.converters = append([]Converter{fn}, c.converters...)
}

// RegisterBack appends fn with lowest priority (runs last).
func (c *Chain) RegisterBack(fn Converter) {
	c.converters = append(c.converters, fn)
}

// Convert runs raw through every converter in order.
func (c *Chain) Convert(raw any) any {
	out := raw
	for _, fn := range c.converters {
		out = fn(out)
	}
	return out
}

// Boolean tokens.  "1"/"0" are deliberately excluded so numeric cost
// parameters are never misread as booleans.
var (
	boolTrue  = map[string]bool{"true": true, "on": true, "yes": true}
	boolFalse = map[string]bool{"false": true, "off": true, "no": true}
)

var (
	sizeRe  = regexp.MustCompile(`^([0-9]+)([kKmMgGbB]{0,2})$`)
	intRe   = regexp.MustCompile(`^-?[0-9]+$`)
	floatRe = regexp.MustCompile(`^-?[0-9]+\.[0-9]+$`)
)

var sizeSuffixes = map[string]int64{
	"k":  1024,
	"kb": 1024,
	"m":  1024 * 1024,
	"mb": 1024 * 1024,
	"g":  1024 * 1024 * 1024,
	"gb": 1024 * 1024 * 1024,
}

// Parse is the default heuristic converter.  Non-string input passes
// through unchanged; see the package documentation for the string grammar.
func Parse(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}

	raw := strings.TrimSpace(s)
	low := strings.ToLower(raw)

	if boolTrue[low] {
		return true
	}
	if boolFalse[low] {
		return false
	}

	if n, ok := parseSize(raw); ok {
		return n
	}

	if intRe.MatchString(raw) {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	}

	if floatRe.MatchString(raw) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}

	if strings.ContainsAny(raw, ",;") {
		parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' })
		var list []string
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				list = append(list, t)
			}
		}
		return list
	}

	return s
}

// parseSize parses size-like strings: "8k", "64M", "1G", "1024", "512b".
func parseSize(s string) (int64, bool) {
	m := sizeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	suffix := strings.ToLower(m[2])
	if mult, ok := sizeSuffixes[suffix]; ok {
		return n * mult, true
	}
	if suffix == "" || suffix == "b" {
		return n, true
	}
	return 0, false
}

// toString renders a raw configuration value the way it would appear in an
// environment file.
func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		return strings.Join(t, ",")
	default:
		return fmt.Sprintf("%v", t)
	}
}
