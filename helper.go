// File: lixenwraith/hconf/helper.go
package hconf

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
)

// sanitizeName maps an option name to its canonical registry key.
// Hyphens and underscores are interchangeable; the canonical form uses underscores.
func sanitizeName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// flagName renders a sanitized name as a command-line flag name.
func flagName(name string) string {
	return strings.ReplaceAll(sanitizeName(name), "_", "-")
}

// isValidName checks a name against ^[A-Za-z][A-Za-z0-9_-]*$.
func isValidName(s string) bool {
	if len(s) == 0 {
		return false
	}

	for i, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if i == 0 {
			if !isLetter {
				return false
			}
			continue
		}
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

// stringKeyed converts any map with string-kind keys into map[string]any.
// The second result is false if v is not such a map.
func stringKeyed(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// normalizeNumbers replaces json.Number values with int64 when integral,
// float64 otherwise. Nested maps and slices are walked in place.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeNumbers(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalizeNumbers(val)
		}
		return t
	default:
		return v
	}
}

// joinPath builds a directory path from a string or a sequence of path segments.
func joinPath(v any) (string, error) {
	switch p := v.(type) {
	case string:
		return p, nil
	case []string:
		return filepath.Join(p...), nil
	case []any:
		parts := make([]string, 0, len(p))
		for _, seg := range p {
			s, ok := seg.(string)
			if !ok {
				return "", fmt.Errorf("path segment %#v is %T, not a string", seg, seg)
			}
			parts = append(parts, s)
		}
		return filepath.Join(parts...), nil
	default:
		return "", fmt.Errorf("path value %#v is %T, not a string or list of strings", v, v)
	}
}

// isNil reports whether v is nil or a nil pointer, map, slice, func, chan or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// cloneValue deep-copies slices and maps, recursing into their elements.
// Other values, including pointers and structs, are returned unchanged.
func cloneValue(v any) any {
	if isNil(v) {
		return v
	}
	return cloneReflect(reflect.ValueOf(v)).Interface()
}

func cloneReflect(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		return cloneReflect(rv.Elem())
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneElem(rv.Index(i)))
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneElem(iter.Value()))
		}
		return out
	default:
		return rv
	}
}

// cloneElem clones a container element, keeping it assignable to the
// element type (interface elements stay wrapped).
func cloneElem(rv reflect.Value) reflect.Value {
	if rv.Kind() != reflect.Interface {
		return cloneReflect(rv)
	}
	if rv.IsNil() {
		return rv
	}
	out := reflect.New(rv.Type()).Elem()
	out.Set(cloneReflect(rv.Elem()))
	return out
}
