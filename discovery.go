// FILE: lixenwraith/hconf/discovery.go
package hconf

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoveryOptions configures automatic config file discovery
type DiscoveryOptions struct {
	// Base name of config file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths, searched first
	Paths []string

	// Whether to search in current directory
	UseCurrentDir bool

	// Whether to search in XDG config directories
	UseXDG bool
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appName string) DiscoveryOptions {
	return DiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".yaml", ".yml", ".toml", ".ini", ".json"},
		UseCurrentDir: true,
		UseXDG:        true,
	}
}

// DiscoverFile returns the directory and file name of the first existing
// candidate, searching custom paths, then the current directory, then XDG
// directories, trying each extension in order within a directory.
func DiscoverFile(opts DiscoveryOptions) (dir, name string, ok bool) {
	var searchPaths []string

	searchPaths = append(searchPaths, opts.Paths...)

	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}

	if opts.UseXDG {
		searchPaths = append(searchPaths, xdgConfigPaths(opts.Name)...)
	}

	for _, d := range searchPaths {
		for _, ext := range opts.Extensions {
			candidate := opts.Name + ext
			if isRegularFile(filepath.Join(d, candidate)) {
				return d, candidate, true
			}
		}
	}

	return "", "", false
}

// WithFileDiscovery appends a file adapter for the first discovered file,
// chosen by extension. No file found is not an error.
func (b *Builder) WithFileDiscovery(opts DiscoveryOptions) *Builder {
	dir, name, ok := DiscoverFile(opts)
	if !ok {
		return b
	}

	src := File(dir, name)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return b.WithYAMLFile(src)
	case ".toml", ".tml":
		return b.WithTOMLFile(src)
	case ".ini", ".cfg", ".conf":
		return b.WithINIFile(src)
	case ".json":
		return b.WithAdapter(&jsonFile{FileSource: src})
	default:
		b.setErr(adapterErrorf("no adapter for config file extension of '%s'", name))
		return b
	}
}

// jsonFile reads a JSON object from a located file.
type jsonFile struct {
	FileSource
}

func (a *jsonFile) Resolve(reg *Registry, state State) (map[string]any, error) {
	data, _, found, err := a.read(state)
	if err != nil {
		return nil, err
	}
	if !found {
		return make(map[string]any), nil
	}
	return NewJSON(string(data)).Resolve(reg, state)
}

// xdgConfigPaths returns XDG-compliant config search paths
func xdgConfigPaths(appName string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}
