package cachemgr

import (
	"maps"
	"math"
	"strconv"
	"time"
)

// Parameters is a string-keyed bag of tunable values used to configure strategies
// and modules at runtime.
type Parameters map[string]any

// Param returns the value stored under key converted to T, or def when the key is
// missing or cannot be converted. Numeric kinds convert between each other and
// durations accept both duration strings ("5m") and nanosecond counts.
func Param[T any](p Parameters, key string, def T) T {
	v, ok := p[key]
	if !ok || v == nil {
		return def
	}
	if out, ok := convertParam[T](v); ok {
		return out
	}
	return def
}

// Lookup is like Param but reports whether a usable value was present.
func Lookup[T any](p Parameters, key string) (T, bool) {
	var zero T
	v, ok := p[key]
	if !ok || v == nil {
		return zero, false
	}
	return convertParam[T](v)
}

// Set stores value under key.
func (p Parameters) Set(key string, value any) {
	p[key] = value
}

// Clone returns a shallow copy of the parameters.
func (p Parameters) Clone() Parameters {
	if p == nil {
		return Parameters{}
	}
	return maps.Clone(p)
}

// Merge returns a copy of p overlaid with the values of other.
func (p Parameters) Merge(other Parameters) Parameters {
	out := p.Clone()
	maps.Copy(out, other)
	return out
}

func convertParam[T any](v any) (T, bool) {
	var zero T
	if out, ok := v.(T); ok {
		return out, true
	}

	var out any
	switch any(zero).(type) {
	case float64:
		f, ok := toFloat(v)
		if !ok {
			return zero, false
		}
		out = f
	case int:
		f, ok := toFloat(v)
		if !ok || f != math.Trunc(f) {
			return zero, false
		}
		out = int(f)
	case int64:
		f, ok := toFloat(v)
		if !ok || f != math.Trunc(f) {
			return zero, false
		}
		out = int64(f)
	case time.Duration:
		d, ok := toDuration(v)
		if !ok {
			return zero, false
		}
		out = d
	case bool:
		switch b := v.(type) {
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return zero, false
			}
			out = parsed
		default:
			return zero, false
		}
	default:
		return zero, false
	}

	return out.(T), true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case time.Duration:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toDuration(v any) (time.Duration, bool) {
	switch d := v.(type) {
	case time.Duration:
		return d, true
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		f, ok := toFloat(v)
		if !ok {
			return 0, false
		}
		return time.Duration(f), true
	}
}

// paramKind identifies the expected type of a strategy parameter.
type paramKind int

const (
	kindFloat paramKind = iota
	kindInt
	kindDuration
)

// paramSpec declares a parameter a strategy accepts and its valid range.
type paramSpec struct {
	key  string
	kind paramKind
	min  float64
	max  float64
}

// validateParams checks every known key present in p against specs. Unknown keys
// are accepted so callers can stash extra data alongside the parameters.
func validateParams(p Parameters, specs []paramSpec) error {
	for _, spec := range specs {
		v, ok := p[spec.key]
		if !ok {
			continue
		}

		var value float64
		switch spec.kind {
		case kindFloat:
			f, ok := convertParam[float64](v)
			if !ok {
				return configError(spec.key, "parameter %s must be a number, got %T", spec.key, v)
			}
			value = f
		case kindInt:
			n, ok := convertParam[int64](v)
			if !ok {
				return configError(spec.key, "parameter %s must be an integer, got %T", spec.key, v)
			}
			value = float64(n)
		case kindDuration:
			d, ok := convertParam[time.Duration](v)
			if !ok {
				return configError(spec.key, "parameter %s must be a duration, got %v", spec.key, v)
			}
			value = float64(d)
		}

		if math.IsNaN(value) || value < spec.min || value > spec.max {
			return configError(spec.key, "parameter %s out of range: %v", spec.key, v)
		}
	}
	return nil
}
