// FILE: lixenwraith/hconf/adapter_cmdline.go
package hconf

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// FlagSetFunc builds the flag set used by Cmdline.
type FlagSetFunc func(reg *Registry, state State) *pflag.FlagSet

// Cmdline supplies values from command-line arguments of the form
// --<option-name> <value> or --<option-name>=<value>.
//
// The default flag set declares one string flag per registered option, named
// after the option with underscores rendered as hyphens. Set FlagSetFunc to
// supply a custom flag set; every flag it declares must map to a registered
// option or resolution fails with ErrUnknownConfiguration.
type Cmdline struct {
	Args        []string    // arguments to parse, typically os.Args[1:]
	Description string      // printed above the flag list on --help
	Output      io.Writer   // usage and error output; nil means the pflag default
	FlagSetFunc FlagSetFunc // optional flag set construction hook
}

// NewCmdline creates a command-line adapter over args.
func NewCmdline(args []string) *Cmdline {
	return &Cmdline{Args: args}
}

// FlagSet returns the flag set to parse, from FlagSetFunc when set.
func (c *Cmdline) FlagSet(reg *Registry, state State) *pflag.FlagSet {
	if c.FlagSetFunc != nil {
		return c.FlagSetFunc(reg, state)
	}
	return c.DefaultFlagSet(reg)
}

// DefaultFlagSet builds one string flag per registered option, with no default
// and the option's description as usage text.
func (c *Cmdline) DefaultFlagSet(reg *Registry) *pflag.FlagSet {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.Usage = func() {
		if c.Description != "" {
			fmt.Fprintln(fs.Output(), c.Description)
		}
		fs.PrintDefaults()
	}

	for _, opt := range reg.All() {
		fs.String(flagName(opt.Name), "", opt.Description)
	}
	return fs
}

// Resolve parses Args and returns one entry per declared flag: the parsed
// value for flags present on the command line, the flag default when it is
// non-empty, and nil otherwise. --help fails with an error wrapping both
// ErrAdapter and pflag.ErrHelp.
func (c *Cmdline) Resolve(reg *Registry, state State) (map[string]any, error) {
	fs := c.FlagSet(reg, state)
	if fs == nil {
		return nil, adapterErrorf("command-line flag set constructor returned nil")
	}
	if c.Output != nil {
		fs.SetOutput(c.Output)
	}

	if err := fs.Parse(c.Args); err != nil {
		return nil, fmt.Errorf("%w: command line: %w", ErrAdapter, err)
	}

	result := make(map[string]any)
	fs.VisitAll(func(f *pflag.Flag) {
		if !f.Changed && f.DefValue == "" {
			result[f.Name] = nil
			return
		}
		result[f.Name] = flagValue(f)
	})
	return result, nil
}

// flagValue returns a slice for slice-valued flags and the string form otherwise.
func flagValue(f *pflag.Flag) any {
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		items := sv.GetSlice()
		if len(items) == 0 && !f.Changed {
			return nil
		}
		return items
	}
	return f.Value.String()
}
