package hconf

import (
	"fmt"
	"sort"
	"strings"
)

// Config is the finalized result of a resolution pass. It is immutable:
// Get, Lookup, MustGet and Map return deep copies of slice and map values,
// so changes made by the caller never reach the Config.
type Config struct {
	values map[string]any
	names  []string
}

func newConfig(values map[string]any) *Config {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return &Config{values: values, names: names}
}

// Get returns the value of a declared option, in either hyphen or underscore
// spelling. Undeclared names fail with ErrNotFound; declared options may hold nil.
func (c *Config) Get(name string) (any, error) {
	v, ok := c.values[sanitizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return cloneValue(v), nil
}

// Lookup returns the value of an option and whether it is declared.
func (c *Config) Lookup(name string) (any, bool) {
	v, ok := c.values[sanitizeName(name)]
	return cloneValue(v), ok
}

// MustGet is like Get but panics for undeclared names.
func (c *Config) MustGet(name string) any {
	v, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Has reports whether name is a declared option.
func (c *Config) Has(name string) bool {
	_, ok := c.values[sanitizeName(name)]
	return ok
}

// Names returns the sanitized option names, sorted.
func (c *Config) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of options.
func (c *Config) Len() int {
	return len(c.values)
}

// Map returns a copy of all values keyed by sanitized name.
func (c *Config) Map() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = cloneValue(v)
	}
	return out
}

// Debug returns a formatted listing of all values.
func (c *Config) Debug() string {
	var b strings.Builder
	b.WriteString("Configuration:\n")
	for _, name := range c.names {
		b.WriteString(fmt.Sprintf("  %s = %#v\n", name, c.values[name]))
	}
	return b.String()
}
