// FILE: lixenwraith/hconf/errors.go
package hconf

import (
	"errors"
	"fmt"
)

// Error kinds returned by registration and resolution. Compare with errors.Is.
var (
	// ErrInvalidConfiguration reports a malformed option name at registration,
	// or a cast that failed during finalization.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrUnknownConfiguration reports an adapter key with no registered option.
	ErrUnknownConfiguration = errors.New("unknown configuration")

	// ErrMissingConfiguration reports a required option left nil after all adapters ran.
	ErrMissingConfiguration = errors.New("missing configuration")

	// ErrAdapter reports an adapter precondition failure (wrong source type,
	// incomplete constructor arguments, unparseable top-level structure).
	ErrAdapter = errors.New("adapter error")

	// ErrInvalidAdapter is returned when registering a nil adapter.
	ErrInvalidAdapter = errors.New("value is not a usable adapter")

	// ErrNotFound is returned when reading an undeclared option from a Config.
	ErrNotFound = errors.New("option not found")
)

// OptionError ties an error kind to the option that caused it.
type OptionError struct {
	Kind  error  // one of the Err* sentinels
	Name  string // option name or adapter key as supplied
	Value any    // offending value, set for cast failures
}

func (e *OptionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Kind == ErrInvalidConfiguration && e.Value != nil {
		return fmt.Sprintf("%v: %s: %#v", e.Kind, e.Name, e.Value)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Name)
}

func (e *OptionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

func invalidName(name string) error {
	return &OptionError{Kind: ErrInvalidConfiguration, Name: name}
}

func unknownOption(key string) error {
	return &OptionError{Kind: ErrUnknownConfiguration, Name: key}
}

func missingOption(name string) error {
	return &OptionError{Kind: ErrMissingConfiguration, Name: name}
}

func castFailed(name string, value any) error {
	return &OptionError{Kind: ErrInvalidConfiguration, Name: name, Value: value}
}

func adapterErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAdapter, fmt.Sprintf(format, args...))
}
