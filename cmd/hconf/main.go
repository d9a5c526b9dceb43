// FILE: lixenwraith/hconf/cmd/hconf/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/hconf"
)

// schemaFile is the on-disk option declaration read by --schema.
type schemaFile struct {
	Options []schemaOption `yaml:"options"`
}

type schemaOption struct {
	Name        string `yaml:"name"`
	Default     any    `yaml:"default"`
	Required    bool   `yaml:"required"`
	Cast        string `yaml:"cast"`
	Description string `yaml:"description"`
}

type resolveFlags struct {
	schema    string
	yamlFile  string
	iniFile   string
	sections  []string
	tomlFile  string
	jsonText  string
	envPrefix string
	format    string
	verbose   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "hconf",
		Short:        "Resolve layered configuration",
		SilenceUsage: true,
	}
	root.AddCommand(newResolveCmd())
	return root
}

func newResolveCmd() *cobra.Command {
	var f resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve --schema <file> [sources] [-- option flags]",
		Short: "Resolve options from the given sources and print the result",
		Long: `Declares the options listed in the schema file, then resolves them from,
in order of increasing precedence:
- a JSON object (--json)
- YAML, INI and TOML files (--yaml, --ini, --toml)
- environment variables (--env-prefix)
- option flags given after "--", e.g. -- --log-level debug
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var optionArgs []string
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				optionArgs = args[dash:]
			}
			return runResolve(cmd, f, optionArgs)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.schema, "schema", "", "YAML file declaring the options")
	flags.StringVar(&f.yamlFile, "yaml", "", "YAML config file")
	flags.StringVar(&f.iniFile, "ini", "", "INI config file")
	flags.StringSliceVar(&f.sections, "section", nil, "INI sections to read (default all)")
	flags.StringVar(&f.tomlFile, "toml", "", "TOML config file")
	flags.StringVar(&f.jsonText, "json", "", "JSON object literal")
	flags.StringVar(&f.envPrefix, "env-prefix", "", "environment variable prefix")
	flags.StringVar(&f.format, "format", "toml", "output format: toml, yaml or json")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "trace resolution on stderr")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runResolve(cmd *cobra.Command, f resolveFlags, optionArgs []string) error {
	level := zerolog.InfoLevel
	if f.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(level).
		With().
		Timestamp().
		Logger()

	options, err := loadSchema(f.schema)
	if err != nil {
		return err
	}
	logger.Debug().Str("schema", f.schema).Int("options", len(options)).Msg("schema loaded")

	b := hconf.NewBuilder(hconf.WithLogger(logger)).WithOptions(options...)
	if f.jsonText != "" {
		b.WithJSON(f.jsonText)
	}
	if f.yamlFile != "" {
		b.WithYAMLFile(fileSource(f.yamlFile))
	}
	if f.iniFile != "" {
		b.WithINIFile(fileSource(f.iniFile), f.sections...)
	}
	if f.tomlFile != "" {
		b.WithTOMLFile(fileSource(f.tomlFile))
	}
	if f.envPrefix != "" {
		b.WithEnvPrefix(f.envPrefix)
	}

	cmdline := hconf.NewCmdline(optionArgs)
	cmdline.Description = "Option flags:"
	cmdline.Output = cmd.ErrOrStderr()
	b.WithAdapter(cmdline)

	cfg, err := b.Build()
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}

	return cfg.Encode(cmd.OutOrStdout(), f.format)
}

// loadSchema reads option declarations; casts are referenced by name.
func loadSchema(path string) ([]hconf.Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file '%s': %w", path, err)
	}

	var schema schemaFile
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse schema file '%s': %w", path, err)
	}

	options := make([]hconf.Option, 0, len(schema.Options))
	for _, so := range schema.Options {
		cast, err := hconf.CastByName(so.Cast)
		if err != nil {
			return nil, fmt.Errorf("option %s: %w", so.Name, err)
		}
		options = append(options, hconf.Option{
			Name:        so.Name,
			Default:     so.Default,
			Cast:        cast,
			Required:    so.Required,
			Description: so.Description,
		})
	}
	return options, nil
}

func fileSource(path string) hconf.FileSource {
	return hconf.File(filepath.Dir(path), filepath.Base(path))
}
