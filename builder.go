// File: lixenwraith/hconf/builder.go
package hconf

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ValidatorFunc validates a resolved Config. It runs after casting.
type ValidatorFunc func(c *Config) error

// Builder provides a fluent interface for assembling a Manager and resolving it.
// Adapters are registered in the order the With* calls are made. The first
// error encountered is reported by Build.
type Builder struct {
	mgr        *Manager
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a new configuration builder
func NewBuilder(opts ...ManagerOption) *Builder {
	return &Builder{
		mgr:        NewManager(opts...),
		validators: make([]ValidatorFunc, 0),
	}
}

func (b *Builder) setErr(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

// WithLogger sets the logger used for resolution tracing.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	WithLogger(logger)(b.mgr)
	return b
}

// WithOption declares one option.
func (b *Builder) WithOption(name string, opts ...OptionFunc) *Builder {
	b.setErr(b.mgr.Register(name, opts...))
	return b
}

// WithOptions declares fully described options.
func (b *Builder) WithOptions(opts ...Option) *Builder {
	for _, opt := range opts {
		b.setErr(b.mgr.RegisterOption(opt))
	}
	return b
}

// WithStruct declares one option per exported field of a struct.
func (b *Builder) WithStruct(structWithDefaults any) *Builder {
	if err := b.mgr.RegisterStruct(structWithDefaults); err != nil {
		b.setErr(fmt.Errorf("failed to register defaults: %w", err))
	}
	return b
}

// WithAdapter appends an adapter.
func (b *Builder) WithAdapter(a Adapter) *Builder {
	b.setErr(b.mgr.RegisterAdapter(a))
	return b
}

// WithDictionary appends a Dictionary adapter.
func (b *Builder) WithDictionary(values any) *Builder {
	return b.WithAdapter(NewDictionary(values))
}

// WithJSON appends a JSON adapter.
func (b *Builder) WithJSON(text string) *Builder {
	return b.WithAdapter(NewJSON(text))
}

// WithEnvPrefix appends an Env adapter.
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	return b.WithAdapter(NewEnv(prefix))
}

// WithArgs appends a Cmdline adapter over args.
func (b *Builder) WithArgs(args []string) *Builder {
	return b.WithAdapter(NewCmdline(args))
}

// WithYAMLFile appends a YAML adapter.
func (b *Builder) WithYAMLFile(src FileSource) *Builder {
	a, err := NewYAML(src)
	if err != nil {
		b.setErr(err)
		return b
	}
	return b.WithAdapter(a)
}

// WithINIFile appends an INI adapter.
func (b *Builder) WithINIFile(src FileSource, sections ...string) *Builder {
	a, err := NewINI(src, sections...)
	if err != nil {
		b.setErr(err)
		return b
	}
	return b.WithAdapter(a)
}

// WithTOMLFile appends a TOML adapter.
func (b *Builder) WithTOMLFile(src FileSource, tables ...string) *Builder {
	a, err := NewTOML(src, tables...)
	if err != nil {
		b.setErr(err)
		return b
	}
	return b.WithAdapter(a)
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Manager returns the underlying manager.
func (b *Builder) Manager() *Manager {
	return b.mgr
}

// Build resolves the configuration and runs validators.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}

	cfg, err := b.mgr.Resolve()
	if err != nil {
		return nil, err
	}

	for _, validator := range b.validators {
		if err := validator(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return cfg, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return cfg
}

// BuildAndScan builds and decodes the resolved configuration into target.
func (b *Builder) BuildAndScan(target any) error {
	cfg, err := b.Build()
	if err != nil {
		return err
	}

	if err := cfg.Scan(target); err != nil {
		return fmt.Errorf("failed to scan final config into target: %w", err)
	}
	return nil
}
