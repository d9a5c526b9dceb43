// FILE: lixenwraith/hconf/manager.go
package hconf

import (
	"reflect"
	"sort"

	"github.com/rs/zerolog"
)

// Manager resolves registered options against an ordered list of adapters.
//
// A Manager is not safe for concurrent Resolve calls when its adapters hold
// mutable state; use one Manager per goroutine or synchronize externally.
type Manager struct {
	registry *Registry
	adapters []Adapter
	logger   zerolog.Logger
	pending  []Option
	initErr  error // first WithOptions registration failure, returned by every Resolve
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for debug tracing of resolution passes.
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger.With().Str("component", "hconf").Logger()
	}
}

// WithRegistry shares an existing registry instead of creating a new one.
func WithRegistry(reg *Registry) ManagerOption {
	return func(m *Manager) {
		if reg != nil {
			m.registry = reg
		}
	}
}

// WithOptions registers the given options at construction, after every
// other ManagerOption has been applied. If any option is invalid, every
// Resolve on the Manager fails with that error.
func WithOptions(opts ...Option) ManagerOption {
	return func(m *Manager) {
		m.pending = append(m.pending, opts...)
	}
}

// NewManager creates a Manager with an empty registry and no adapters.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		registry: NewRegistry(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.registerPending()
	return m
}

// registerPending registers options supplied through WithOptions, keeping
// the first failure.
func (m *Manager) registerPending() {
	for _, opt := range m.pending {
		if err := m.registry.RegisterOption(opt); err != nil && m.initErr == nil {
			m.initErr = err
		}
	}
	m.pending = nil
}

// Registry returns the manager's option registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Register declares an option on the manager's registry.
func (m *Manager) Register(name string, opts ...OptionFunc) error {
	return m.registry.Register(name, opts...)
}

// RegisterOption declares a fully described option on the manager's registry.
func (m *Manager) RegisterOption(opt Option) error {
	return m.registry.RegisterOption(opt)
}

// RegisterStruct declares one option per exported struct field.
func (m *Manager) RegisterStruct(structWithDefaults any) error {
	return m.registry.RegisterStruct(structWithDefaults)
}

// RegisterAdapter appends an adapter. Adapters run in registration order and
// later adapters override earlier ones.
func (m *Manager) RegisterAdapter(a Adapter) error {
	if a == nil {
		return ErrInvalidAdapter
	}
	if rv := reflect.ValueOf(a); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return ErrInvalidAdapter
	}
	m.adapters = append(m.adapters, a)
	return nil
}

// Adapters returns the registered adapters in order.
func (m *Manager) Adapters() []Adapter {
	out := make([]Adapter, len(m.adapters))
	copy(out, m.adapters)
	return out
}

// Resolve runs one resolution pass: defaults, then every adapter in order,
// then required checks, then casts. Nothing is cached between calls and no
// Config is returned on failure.
func (m *Manager) Resolve() (*Config, error) {
	if m.initErr != nil {
		return nil, m.initErr
	}

	schema := m.registry.snapshot()
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	// 1-2. Seed defaults
	values := make(map[string]any, len(schema))
	for _, name := range names {
		values[name] = schema[name].Default
	}
	state := State{values: values}

	// 3. Merge adapters in order; each adapter's output applies atomically
	for i, adapter := range m.adapters {
		raw, err := adapter.Resolve(m.registry, state)
		if err != nil {
			return nil, err
		}

		updates := make(map[string]any, len(raw))
		sources := make(map[string]string, len(raw))
		for _, key := range sortedKeys(raw) {
			value := raw[key]
			name := sanitizeName(key)
			if _, declared := schema[name]; !declared {
				return nil, unknownOption(key)
			}
			if isNil(value) {
				continue
			}
			if prev, dup := sources[name]; dup {
				return nil, adapterErrorf("adapter %d supplied option %s as both '%s' and '%s'", i, name, prev, key)
			}
			sources[name] = key
			updates[name] = value
		}
		for name, value := range updates {
			values[name] = value
		}

		m.logger.Debug().
			Int("adapter", i).
			Str("type", reflect.TypeOf(adapter).String()).
			Int("keys", len(raw)).
			Int("applied", len(updates)).
			Msg("adapter resolved")
	}

	// 4. Required options must be non-nil
	for _, name := range names {
		if schema[name].Required && isNil(values[name]) {
			return nil, missingOption(name)
		}
	}

	// 5. Casts
	for _, name := range names {
		opt := schema[name]
		if opt.Cast == nil || isNil(values[name]) {
			continue
		}
		cast, ok := applyCast(opt.Cast, values[name])
		if !ok {
			return nil, castFailed(name, values[name])
		}
		values[name] = cast
	}

	m.logger.Debug().
		Int("options", len(names)).
		Int("adapters", len(m.adapters)).
		Msg("resolution complete")

	// 6. Finalize
	return newConfig(values), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
