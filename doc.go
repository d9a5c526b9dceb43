// File: lixenwraith/hconf/doc.go

// Package hconf resolves configuration options from an ordered list of
// sources into a single finalized configuration, applying defaults,
// required-option checks and type casts.
//
// Features:
//   - Option registry with defaults, casts, required flags and descriptions
//   - Ordered adapters: later adapters override earlier ones, nil never overrides
//   - Adapters for maps, JSON text, command-line flags, environment
//     variables, and INI, YAML and TOML files
//   - File adapters locate their file from literal paths or from options
//     resolved by earlier adapters
//   - Hyphen and underscore spellings of a name refer to the same option
//   - Environment variables are named <PREFIX><NAME>, both upper-cased
//   - Struct registration and scanning via `hconf` tags
//   - Builder pattern for easy initialization
//
// Quick Start:
//
//	m := hconf.NewManager()
//	m.Register("config-dir", hconf.WithDefault("/etc/myapp"))
//	m.Register("config-file", hconf.WithDefault("myapp.yaml"))
//	m.Register("port", hconf.WithDefault(8080), hconf.WithCast(hconf.CastInt))
//	m.Register("token", hconf.Required(), hconf.WithDescription("API token"))
//
//	yamlFile, _ := hconf.NewYAML(hconf.FileFromOptions("config-dir", "config-file"))
//	m.RegisterAdapter(hconf.NewEnv("MYAPP_")) // may set MYAPP_CONFIG_DIR
//	m.RegisterAdapter(yamlFile)
//	m.RegisterAdapter(hconf.NewCmdline(os.Args[1:]))
//
//	cfg, err := m.Resolve()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	port, _ := cfg.Int64("port")
//
// Resolution order:
//  1. Every option starts at its default (nil when none)
//  2. Each adapter runs in registration order; its non-nil values overwrite
//     the state, and a key naming no registered option aborts with
//     ErrUnknownConfiguration
//  3. Required options still nil fail with ErrMissingConfiguration
//  4. Casts run on non-nil values; a failing cast yields ErrInvalidConfiguration
//
// Adapters see the state resolved so far, so a file adapter registered after
// the environment adapter can read its location from a variable.
//
// Resolve is synchronous and performs no caching: every call re-runs all
// adapters. A Manager whose adapters hold mutable state must not be resolved
// concurrently.
package hconf
