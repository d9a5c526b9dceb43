package hconf

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// Dictionary supplies values from an in-memory map. Values may be any map
// with string keys; anything else fails with ErrAdapter at resolve time.
type Dictionary struct {
	Values any
}

// NewDictionary wraps a mapping.
func NewDictionary(values any) *Dictionary {
	return &Dictionary{Values: values}
}

// Resolve returns the wrapped mapping.
func (d *Dictionary) Resolve(_ *Registry, _ State) (map[string]any, error) {
	m, ok := stringKeyed(d.Values)
	if !ok {
		return nil, adapterErrorf("dictionary source is %T, not a map with string keys", d.Values)
	}
	return m, nil
}

// JSON supplies values from a JSON object literal.
type JSON struct {
	Text string
}

// NewJSON wraps a JSON document.
func NewJSON(text string) *JSON {
	return &JSON{Text: text}
}

// Resolve parses the document. The top level must be an object; integral
// numbers decode as int64 and others as float64.
func (j *JSON) Resolve(_ *Registry, _ State) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader([]byte(j.Text)))
	decoder.UseNumber()

	var parsed any
	if err := decoder.Decode(&parsed); err != nil {
		return nil, adapterErrorf("failed to parse JSON source: %v", err)
	}
	if err := decoder.Decode(new(any)); !errors.Is(err, io.EOF) {
		return nil, adapterErrorf("JSON source has trailing data after the top-level value")
	}

	m, ok := parsed.(map[string]any)
	if !ok {
		return nil, adapterErrorf("JSON source did not parse to an object but to %s", jsonKind(parsed))
	}
	normalizeNumbers(m)
	return m, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return "an unexpected value"
	}
}
