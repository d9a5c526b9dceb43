package hconf

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Option describes one configuration option.
type Option struct {
	Name        string   // name as registered, before sanitization
	Default     any      // value used when no adapter supplies one
	Cast        CastFunc // optional conversion applied after required checks
	Required    bool     // resolution fails if the value is nil after all adapters
	Description string   // shown as command-line usage text
}

// OptionFunc configures an Option during registration.
type OptionFunc func(*Option)

// WithDefault sets the default value.
func WithDefault(v any) OptionFunc {
	return func(o *Option) { o.Default = v }
}

// WithCast sets the cast function.
func WithCast(fn CastFunc) OptionFunc {
	return func(o *Option) { o.Cast = fn }
}

// Required marks the option as required.
func Required() OptionFunc {
	return func(o *Option) { o.Required = true }
}

// WithDescription sets the human readable description.
func WithDescription(desc string) OptionFunc {
	return func(o *Option) { o.Description = desc }
}

// Registry holds the declared option schema keyed by sanitized name.
type Registry struct {
	options map[string]Option
	mutex   sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		options: make(map[string]Option),
	}
}

// Register declares an option. Registering a name again, in either hyphen or
// underscore spelling, replaces the previous descriptor entirely.
func (r *Registry) Register(name string, opts ...OptionFunc) error {
	opt := Option{Name: name}
	for _, fn := range opts {
		if fn != nil {
			fn(&opt)
		}
	}
	return r.RegisterOption(opt)
}

// RegisterOption declares a fully described option.
func (r *Registry) RegisterOption(opt Option) error {
	if !isValidName(opt.Name) {
		return invalidName(opt.Name)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.options[sanitizeName(opt.Name)] = opt
	return nil
}

// Unregister removes an option.
func (r *Registry) Unregister(name string) error {
	key := sanitizeName(name)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.options[key]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(r.options, key)
	return nil
}

// Lookup returns the option registered under name, in either spelling.
func (r *Registry) Lookup(name string) (Option, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	opt, ok := r.options[sanitizeName(name)]
	return opt, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the sanitized names of all options, sorted.
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.options))
	for name := range r.options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every option, sorted by sanitized name.
func (r *Registry) All() []Option {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.options))
	for name := range r.options {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Option, 0, len(names))
	for _, name := range names {
		out = append(out, r.options[name])
	}
	return out
}

// Len returns the number of registered options.
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.options)
}

// snapshot copies the schema for a single resolution pass.
func (r *Registry) snapshot() map[string]Option {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make(map[string]Option, len(r.options))
	for k, v := range r.options {
		out[k] = v
	}
	return out
}

// RegisterStruct registers one option per exported field of a struct.
// The `hconf` tag sets the option name and flags ("name,required"); "-" skips
// the field. The `desc` tag sets the description. Field values become defaults,
// except zero values of required fields, and each option gets a cast to the
// field's type so the resolved Config scans back into the same struct.
func (r *Registry) RegisterStruct(structWithDefaults any) error {
	v := reflect.ValueOf(structWithDefaults)

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Errorf("RegisterStruct requires a non-nil struct pointer or value")
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return fmt.Errorf("RegisterStruct requires a struct or struct pointer, got %T", structWithDefaults)
	}

	t := v.Type()
	var errs []string

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get(tagName)
		if tag == "-" {
			continue
		}

		name := field.Name
		required := false
		if tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] != "" {
				name = parts[0]
			}
			for _, flag := range parts[1:] {
				if strings.TrimSpace(flag) == "required" {
					required = true
				}
			}
		}

		var def any
		if !(required && fieldValue.IsZero()) && !(fieldValue.Kind() == reflect.Ptr && fieldValue.IsNil()) {
			def = fieldValue.Interface()
		}

		opt := Option{
			Name:        name,
			Default:     def,
			Cast:        castTo(field.Type),
			Required:    required,
			Description: field.Tag.Get("desc"),
		}
		if err := r.RegisterOption(opt); err != nil {
			errs = append(errs, fmt.Sprintf("field %s: %v", field.Name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to register %d field(s): %s", len(errs), strings.Join(errs, "; "))
	}

	return nil
}
