// FILE: lixenwraith/hconf/adapter.go
package hconf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Adapter produces raw option values from one configuration origin.
//
// Resolve receives the registry and a read-only view of the values resolved
// so far, and returns a mapping of option name to raw value. Names may use
// either hyphen or underscore spelling, but one mapping supplying both
// spellings of an option with non-nil values fails with ErrAdapter. Nil values
// are ignored by the engine.
type Adapter interface {
	Resolve(reg *Registry, state State) (map[string]any, error)
}

// AdapterFunc adapts an ordinary function to the Adapter interface.
type AdapterFunc func(reg *Registry, state State) (map[string]any, error)

// Resolve calls f(reg, state).
func (f AdapterFunc) Resolve(reg *Registry, state State) (map[string]any, error) {
	return f(reg, state)
}

// State is a read-only view of the configuration state during a resolution pass.
type State struct {
	values map[string]any
}

// Lookup returns the current value of an option, in either spelling.
// The boolean reports whether the option is declared.
func (s State) Lookup(name string) (any, bool) {
	v, ok := s.values[sanitizeName(name)]
	return v, ok
}

// Value returns the current value of an option, or nil.
func (s State) Value(name string) any {
	return s.values[sanitizeName(name)]
}

// FileSource locates the file read by a file-backed adapter.
//
// Either the literal pair (Dir, Name) or the option pair (DirOption,
// NameOption) must be complete. When both are, the option pair is tried
// first and the literal pair is the fallback.
type FileSource struct {
	Dir  []string // directory, as one path or a sequence of segments
	Name string   // file name

	DirOption  string // option holding the directory
	NameOption string // option holding the file name
}

// File is a convenience constructor for a literal FileSource.
func File(dir, name string) FileSource {
	return FileSource{Dir: []string{dir}, Name: name}
}

// FileFromOptions is a convenience constructor for an option-driven FileSource.
func FileFromOptions(dirOption, nameOption string) FileSource {
	return FileSource{DirOption: dirOption, NameOption: nameOption}
}

func (f FileSource) hasLiteral() bool {
	return len(f.Dir) > 0 && f.Name != ""
}

func (f FileSource) hasOptions() bool {
	return f.DirOption != "" && f.NameOption != ""
}

// validate fails unless at least one complete pair was supplied.
func (f FileSource) validate() error {
	if !f.hasLiteral() && !f.hasOptions() {
		return adapterErrorf("a file adapter needs either a directory and file name, or the names of the options holding them")
	}
	return nil
}

// Locate returns the first candidate path naming an existing regular file.
// A missing file is not an error: ok is false and the adapter has nothing to read.
func (f FileSource) Locate(state State) (path string, ok bool, err error) {
	if f.hasOptions() {
		dirVal := state.Value(f.DirOption)
		nameVal := state.Value(f.NameOption)
		if !isNil(dirVal) && !isNil(nameVal) {
			dir, err := joinPath(dirVal)
			if err != nil {
				return "", false, adapterErrorf("option %s: %v", f.DirOption, err)
			}
			name, isStr := nameVal.(string)
			if !isStr {
				return "", false, adapterErrorf("option %s: file name is %T, not a string", f.NameOption, nameVal)
			}
			candidate := filepath.Join(dir, name)
			if isRegularFile(candidate) {
				return candidate, true, nil
			}
		}
	}

	if f.hasLiteral() {
		candidate := filepath.Join(filepath.Join(f.Dir...), f.Name)
		if isRegularFile(candidate) {
			return candidate, true, nil
		}
	}

	return "", false, nil
}

// read locates and reads the file. The handle is released before returning.
func (f FileSource) read(state State) (data []byte, path string, found bool, err error) {
	path, found, err = f.Locate(state)
	if err != nil || !found {
		return nil, "", false, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, path, false, adapterErrorf("failed to open config file '%s': %v", path, err)
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, path, false, adapterErrorf("failed to read config file '%s': %v", path, err)
	}
	return data, path, true, nil
}

func (f FileSource) String() string {
	switch {
	case f.hasOptions() && f.hasLiteral():
		return fmt.Sprintf("%s/%s or %s", f.DirOption, f.NameOption, filepath.Join(filepath.Join(f.Dir...), f.Name))
	case f.hasOptions():
		return fmt.Sprintf("%s/%s", f.DirOption, f.NameOption)
	default:
		return filepath.Join(filepath.Join(f.Dir...), f.Name)
	}
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
