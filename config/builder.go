package config

import (
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"
)

// Validator is implemented by policy structs that enforce their own
// invariants after all fields have been resolved.  Hard violations are
// returned as an error; "legal but inadvisable" values should only be
// logged through the supplied logger.
type Validator interface {
	Validate(log *zap.Logger) error
}

// Builder resolves prefixed configuration keys into policy structs.
//
// Target structs declare their configurable fields with struct tags:
//
//	type Argon2Policy struct {
//		TimeCost   int `config:"time_cost" default:"2"`
//		MemoryCost int `config:"memory_cost" default:"65536"`
//	}
//
// A field without a default tag is required.  The configuration key for a
// field is the prefix plus the upper-cased tag name (ARGON2_TIME_COST).
type Builder struct {
	source Source
	chain  *Chain
	log    *zap.Logger
}

// NewBuilder returns a Builder reading from src.  A nil chain uses the
// default heuristic chain; a nil logger discards warnings.
func NewBuilder(src Source, chain *Chain, log *zap.Logger) *Builder {
	if chain == nil {
		chain = NewChain()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{source: src, chain: chain, log: log}
}

// Source returns the Source the builder reads from.
func (b *Builder) Source() Source { return b.source }

// Build fills dst (a pointer to a tagged struct) from the builder's source
// and validates it.  Every problem found — missing required keys, values
// that cannot be converted to the field type — is collected; if any exist,
// Build returns a single [*ValidationError] listing all of them.  When dst
// implements [Validator], a hard invariant failure is likewise wrapped into
// a [*ValidationError] so callers only ever handle one error kind.
func (b *Builder) Build(dst any, prefix, label string) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: Build target for %s must be a pointer to struct, got %T", label, dst)
	}
	elem := rv.Elem()
	rt := elem.Type()

	var issues []string
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		name, ok := field.Tag.Lookup("config")
		if !ok || !field.IsExported() {
			continue
		}
		key := prefix + strings.ToUpper(name)

		raw, present := b.source.Lookup(key)
		if !present {
			def, hasDefault := field.Tag.Lookup("default")
			if !hasDefault {
				issues = append(issues, fmt.Sprintf("missing required '%s'", key))
				continue
			}
			b.log.Warn("optional config missing, using default",
				zap.String("key", key),
				zap.String("target", label),
				zap.String("default", def))
			raw = def
		}

		converted := b.chain.Convert(raw)
		if err := assign(elem.Field(i), converted); err != nil {
			issues = append(issues, fmt.Sprintf("invalid value for '%s': %v", key, err))
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Label: label, Issues: issues}
	}

	if v, ok := dst.(Validator); ok {
		if err := v.Validate(b.log); err != nil {
			return &ValidationError{
				Label:  label,
				Issues: []string{err.Error()},
				Cause:  err,
			}
		}
	}
	return nil
}

// assign coerces a converted value onto a struct field.  Booleans are
// strict: only a recognised boolean token is accepted, never a number.
func assign(field reflect.Value, v any) error {
	switch field.Kind() {
	case reflect.Int, reflect.Int64:
		switch n := v.(type) {
		case int64:
			field.SetInt(n)
		case int:
			field.SetInt(int64(n))
		case bool:
			return fmt.Errorf("expected integer, got boolean")
		default:
			return fmt.Errorf("expected integer, got %T (%v)", v, v)
		}
	case reflect.Float64:
		switch n := v.(type) {
		case float64:
			field.SetFloat(n)
		case int64:
			field.SetFloat(float64(n))
		case int:
			field.SetFloat(float64(n))
		default:
			return fmt.Errorf("expected number, got %T (%v)", v, v)
		}
	case reflect.Bool:
		n, ok := v.(bool)
		if !ok {
			return fmt.Errorf("expected boolean literal, got %T (%v)", v, v)
		}
		field.SetBool(n)
	case reflect.String:
		// Values the heuristics narrowed (e.g. "8" → int) are rendered
		// back; a string field accepts any scalar.
		field.SetString(toString(v))
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice field type %s", field.Type())
		}
		switch list := v.(type) {
		case []string:
			field.Set(reflect.ValueOf(list))
		case string:
			if list == "" {
				field.Set(reflect.ValueOf([]string(nil)))
			} else {
				field.Set(reflect.ValueOf([]string{list}))
			}
		default:
			return fmt.Errorf("expected list, got %T (%v)", v, v)
		}
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}
