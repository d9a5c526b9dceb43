package hconf

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// CastFunc converts a resolved raw value into its final form.
// It is never called with a nil value.
type CastFunc func(value any) (any, error)

// As returns a CastFunc converting values to T using weakly typed decoding:
// numeric strings become numbers, "a,b" becomes a slice, "5s" a duration,
// and maps decode into structs by their `hconf` tags.
func As[T any]() CastFunc {
	return castTo(reflect.TypeOf((*T)(nil)).Elem())
}

// Known casts.
var (
	CastString      = As[string]()
	CastInt         = As[int]()
	CastInt64       = As[int64]()
	CastFloat64     = As[float64]()
	CastBool        = As[bool]()
	CastDuration    = As[time.Duration]()
	CastStringSlice = As[[]string]()
	CastList        = As[[]any]()
)

var namedCasts = map[string]CastFunc{
	"string":   CastString,
	"str":      CastString,
	"int":      CastInt,
	"int64":    CastInt64,
	"float":    CastFloat64,
	"float64":  CastFloat64,
	"bool":     CastBool,
	"duration": CastDuration,
	"strings":  CastStringSlice,
	"list":     CastList,
}

// CastByName returns a known cast by name, e.g. "int" or "duration".
// An empty name yields a nil cast.
func CastByName(name string) (CastFunc, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, nil
	}
	fn, ok := namedCasts[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown cast %q", ErrInvalidConfiguration, name)
	}
	return fn, nil
}

// castTo builds a CastFunc targeting type t.
func castTo(t reflect.Type) CastFunc {
	return func(value any) (any, error) {
		if reflect.TypeOf(value) == t {
			return value, nil
		}
		// Lists and maps decode weakly only from matching shapes; a plain
		// string is split on commas first.
		if s, ok := value.(string); ok && t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Interface {
			parts := strings.Split(s, ",")
			list := make([]any, len(parts))
			for i, p := range parts {
				list[i] = p
			}
			value = list
		}

		ptr := reflect.New(t)
		if err := decodeValue(value, ptr.Interface()); err != nil {
			return nil, err
		}
		return ptr.Elem().Interface(), nil
	}
}

// applyCast runs fn and turns both returned errors and panics into a failure.
func applyCast(fn CastFunc, value any) (result any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			result, ok = nil, false
		}
	}()

	out, err := fn(value)
	if err != nil {
		return nil, false
	}
	return out, true
}
