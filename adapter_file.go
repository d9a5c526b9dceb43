// FILE: lixenwraith/hconf/adapter_file.go
package hconf

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// INI supplies values from the sections of an INI file.
//
// Keys are case-insensitive and reported in lower case. Every selected
// section contributes its keys on top of the DEFAULT section's keys;
// sections are applied in file order, so a later section overwrites keys
// from an earlier one, including keys it only inherits from DEFAULT. A file
// holding nothing but DEFAULT contributes no values.
type INI struct {
	FileSource
	Sections []string // sections to read; all when empty
}

// NewINI creates an INI adapter reading the named sections, or all of them.
func NewINI(src FileSource, sections ...string) (*INI, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}
	return &INI{FileSource: src, Sections: sections}, nil
}

// Resolve reads the located file; no file yields an empty mapping.
func (a *INI) Resolve(_ *Registry, state State) (map[string]any, error) {
	data, path, found, err := a.read(state)
	if err != nil {
		return nil, err
	}
	result := make(map[string]any)
	if !found {
		return result, nil
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:            true,
		AllowPythonMultilineValues: true,
	}, data)
	if err != nil {
		return nil, adapterErrorf("failed to parse INI config file '%s': %v", path, err)
	}

	selected := make(map[string]bool, len(a.Sections))
	for _, name := range a.Sections {
		selected[name] = true
	}

	defaults := file.Section(ini.DefaultSection)
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		if len(selected) > 0 && !selected[section.Name()] {
			continue
		}
		for _, key := range defaults.Keys() {
			result[key.Name()] = key.Value()
		}
		for _, key := range section.Keys() {
			result[key.Name()] = key.Value()
		}
	}

	return result, nil
}

// YAML supplies values from a YAML file whose top level is a mapping.
type YAML struct {
	FileSource
}

// NewYAML creates a YAML adapter.
func NewYAML(src FileSource) (*YAML, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}
	return &YAML{FileSource: src}, nil
}

// Resolve reads the located file. No file or an empty document yields an
// empty mapping; any other non-mapping top level fails with ErrAdapter.
func (a *YAML) Resolve(_ *Registry, state State) (map[string]any, error) {
	data, path, found, err := a.read(state)
	if err != nil {
		return nil, err
	}
	if !found {
		return make(map[string]any), nil
	}

	var parsed any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, adapterErrorf("failed to parse YAML config file '%s': %v", path, err)
	}
	if parsed == nil {
		return make(map[string]any), nil
	}

	m, ok := stringKeyed(parsed)
	if !ok {
		return nil, adapterErrorf("YAML config file '%s' did not parse to a mapping but to %T", path, parsed)
	}
	return m, nil
}

// TOML supplies values from a TOML file: top-level keys first, then the keys
// of each top-level table in document order, later tables overwriting
// earlier ones. Nested tables below a selected table are kept as maps.
type TOML struct {
	FileSource
	Tables []string // tables to read; all when empty
}

// NewTOML creates a TOML adapter reading the named tables, or all of them.
func NewTOML(src FileSource, tables ...string) (*TOML, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}
	return &TOML{FileSource: src, Tables: tables}, nil
}

// Resolve reads the located file; no file yields an empty mapping.
func (a *TOML) Resolve(_ *Registry, state State) (map[string]any, error) {
	data, path, found, err := a.read(state)
	if err != nil {
		return nil, err
	}
	result := make(map[string]any)
	if !found {
		return result, nil
	}

	doc := make(map[string]any)
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc)
	if err != nil {
		return nil, adapterErrorf("failed to parse TOML config file '%s': %v", path, err)
	}

	var tables []string
	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		if _, isTable := doc[key[0]].(map[string]any); isTable {
			tables = append(tables, key[0])
			continue
		}
		result[key[0]] = doc[key[0]]
	}

	selected := make(map[string]bool, len(a.Tables))
	for _, name := range a.Tables {
		selected[name] = true
	}

	for _, name := range tables {
		if len(selected) > 0 && !selected[name] {
			continue
		}
		for k, v := range doc[name].(map[string]any) {
			result[k] = v
		}
	}

	return result, nil
}

func (a *TOML) String() string {
	return fmt.Sprintf("toml(%s)", a.FileSource)
}

func (a *YAML) String() string {
	return fmt.Sprintf("yaml(%s)", a.FileSource)
}

func (a *INI) String() string {
	return fmt.Sprintf("ini(%s)", a.FileSource)
}
