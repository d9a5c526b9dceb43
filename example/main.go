// FILE: lixenwraith/hconf/example/main.go
package main

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/hconf"
)

// AppConfig is scanned from the resolved options.
type AppConfig struct {
	Host      string        `hconf:"host" desc:"listen address"`
	Port      int           `hconf:"port" desc:"listen port"`
	LogLevel  string        `hconf:"log-level" desc:"log verbosity"`
	Timeout   time.Duration `hconf:"timeout" desc:"request timeout"`
	Token     string        `hconf:"token,required" desc:"API token"`
	ConfigDir string        `hconf:"config-dir" desc:"directory holding app.yaml"`
}

func main() {
	// Write a config file for the YAML adapter to find through --config-dir
	dir, err := os.MkdirTemp("", "hconf-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	yamlBody := "host: 0.0.0.0\nlog-level: warn\ntimeout: 30s\n"
	if err := os.WriteFile(filepath.Join(dir, "app.yaml"), []byte(yamlBody), 0644); err != nil {
		log.Fatal(err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)

	defaults := &AppConfig{
		Host:     "localhost",
		Port:     8080,
		LogLevel: "info",
		Timeout:  5 * time.Second,
	}

	// Precedence, lowest first: struct defaults, environment, app.yaml, flags.
	// The YAML adapter reads its location from the config-dir option, which
	// the environment or an earlier flag pass can supply.
	os.Setenv("EXAMPLE_CONFIG_DIR", dir)
	os.Setenv("EXAMPLE_TOKEN", "from-env")

	yamlFile := hconf.FileSource{DirOption: "config-dir", NameOption: "config-file"}
	var cfg AppConfig
	err = hconf.NewBuilder().
		WithLogger(logger).
		WithStruct(defaults).
		WithOption("config-file", hconf.WithDefault("app.yaml")).
		WithEnvPrefix("EXAMPLE_").
		WithYAMLFile(yamlFile).
		WithArgs([]string{"--port", "9090"}).
		WithValidator(func(c *hconf.Config) error {
			port, err := c.Int64("port")
			if err != nil {
				return err
			}
			if port < 1024 {
				return errors.New("port must be unprivileged")
			}
			return nil
		}).
		BuildAndScan(&cfg)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("resolved: %+v", cfg)

	// Save writes the resolved values in the format of the file extension
	b := hconf.NewBuilder().WithStruct(&cfg)
	resolved, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	out := filepath.Join(dir, "resolved.toml")
	if err := resolved.Save(out); err != nil {
		log.Fatal(err)
	}
	log.Printf("saved to %s", out)

	if err := resolved.Encode(os.Stdout, "yaml"); err != nil {
		log.Fatal(err)
	}
}
