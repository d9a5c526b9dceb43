package hconf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuilder tests the builder pattern
func TestBuilder(t *testing.T) {
	t.Run("BasicBuilder", func(t *testing.T) {
		cfg, err := NewBuilder().
			WithOption("host", WithDefault("localhost")).
			WithOption("port", WithDefault(8080), WithCast(CastInt)).
			Build()

		require.NoError(t, err)
		assert.Equal(t, "localhost", cfg.MustGet("host"))
		assert.Equal(t, 8080, cfg.MustGet("port"))
	})

	t.Run("LayeredSources", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "app.yaml", "host: filehost\nport: 7000\n")
		writeFile(t, dir, "app.ini", "[main]\nport = 7100\n")
		writeFile(t, dir, "app.toml", "[net]\nport = 7200\n")
		t.Setenv("BLDTEST_HOST", "envhost")

		b := NewBuilder().
			WithOption("host").
			WithOption("port", WithCast(CastInt)).
			WithOption("debug", WithDefault("false"), WithCast(CastBool)).
			WithJSON(`{"host": "jsonhost", "port": 6000}`).
			WithYAMLFile(File(dir, "app.yaml"))

		cfg, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, "filehost", cfg.MustGet("host"))
		assert.Equal(t, 7000, cfg.MustGet("port"))
		assert.Equal(t, false, cfg.MustGet("debug"))

		cfg, err = b.WithINIFile(File(dir, "app.ini")).Build()
		require.NoError(t, err)
		assert.Equal(t, 7100, cfg.MustGet("port"))

		cfg, err = b.WithTOMLFile(File(dir, "app.toml"), "net").
			WithEnvPrefix("BLDTEST_").
			WithArgs([]string{"--debug", "true"}).
			Build()
		require.NoError(t, err)
		assert.Equal(t, "envhost", cfg.MustGet("host"))
		assert.Equal(t, 7200, cfg.MustGet("port"))
		assert.Equal(t, true, cfg.MustGet("debug"))
		assert.Len(t, b.Manager().Adapters(), 6)
	})

	t.Run("WithStructAndScan", func(t *testing.T) {
		type AppConfig struct {
			Name    string        `hconf:"name"`
			Workers int           `hconf:"workers"`
			Timeout time.Duration `hconf:"timeout"`
		}

		var out AppConfig
		err := NewBuilder().
			WithStruct(&AppConfig{Name: "app", Workers: 4, Timeout: time.Second}).
			WithDictionary(map[string]any{"workers": "8"}).
			BuildAndScan(&out)

		require.NoError(t, err)
		assert.Equal(t, AppConfig{Name: "app", Workers: 8, Timeout: time.Second}, out)
	})

	t.Run("DeferredErrors", func(t *testing.T) {
		_, err := NewBuilder().
			WithOption("1bad").
			WithOption("good").
			Build()
		assert.ErrorIs(t, err, ErrInvalidConfiguration)

		_, err = NewBuilder().WithYAMLFile(FileSource{}).Build()
		assert.ErrorIs(t, err, ErrAdapter)

		_, err = NewBuilder().WithAdapter(nil).Build()
		assert.ErrorIs(t, err, ErrInvalidAdapter)

		_, err = NewBuilder().WithStruct("nope").Build()
		assert.Error(t, err)
	})

	t.Run("ResolutionErrors", func(t *testing.T) {
		_, err := NewBuilder().
			WithOption("a").
			WithDictionary(map[string]any{"b": 1}).
			Build()
		assert.ErrorIs(t, err, ErrUnknownConfiguration)

		assert.Panics(t, func() {
			NewBuilder().WithOption("a", Required()).MustBuild()
		})
	})
}

func TestBuilderValidators(t *testing.T) {
	errPortRange := errors.New("port out of range")

	portInRange := func(c *Config) error {
		port, err := c.Int64("port")
		if err != nil {
			return err
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("%w: %d", errPortRange, port)
		}
		return nil
	}

	var order []string
	first := func(*Config) error { order = append(order, "first"); return nil }
	second := func(*Config) error { order = append(order, "second"); return nil }

	cfg, err := NewBuilder().
		WithOption("port", WithDefault(8080), WithCast(CastInt)).
		WithValidator(first).
		WithValidator(nil).
		WithValidator(second).
		WithValidator(portInRange).
		Build()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, []string{"first", "second"}, order)

	_, err = NewBuilder().
		WithOption("port", WithCast(CastInt)).
		WithDictionary(map[string]any{"port": "70000"}).
		WithValidator(portInRange).
		Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, errPortRange)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestFileDiscovery(t *testing.T) {
	t.Run("CustomPathsFirst", func(t *testing.T) {
		first := t.TempDir()
		second := t.TempDir()
		writeFile(t, second, "svc.toml", "port = 2\n")
		writeFile(t, first, "svc.yaml", "port: 1\n")

		opts := DiscoveryOptions{Name: "svc", Extensions: []string{".toml", ".yaml"}, Paths: []string{first, second}}
		dir, name, ok := DiscoverFile(opts)
		require.True(t, ok)
		assert.Equal(t, first, dir)
		assert.Equal(t, "svc.yaml", name)
	})

	t.Run("ExtensionOrderWithinDirectory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "svc.ini", "[main]\nport = 3\n")
		writeFile(t, dir, "svc.json", `{"port": 4}`)

		opts := DiscoveryOptions{Name: "svc", Extensions: []string{".json", ".ini"}, Paths: []string{dir}}
		_, name, ok := DiscoverFile(opts)
		require.True(t, ok)
		assert.Equal(t, "svc.json", name)
	})

	t.Run("XDGConfigHome", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		appDir := filepath.Join(home, "xdgapp")
		require.NoError(t, os.MkdirAll(appDir, 0755))
		writeFile(t, appDir, "xdgapp.yaml", "port: 5\n")

		opts := DefaultDiscoveryOptions("xdgapp")
		opts.UseCurrentDir = false
		dir, name, ok := DiscoverFile(opts)
		require.True(t, ok)
		assert.Equal(t, appDir, dir)
		assert.Equal(t, "xdgapp.yaml", name)
	})

	t.Run("NotFound", func(t *testing.T) {
		opts := DiscoveryOptions{Name: "nothing-here", Extensions: []string{".yaml"}, Paths: []string{t.TempDir()}}
		_, _, ok := DiscoverFile(opts)
		assert.False(t, ok)
	})

	t.Run("BuilderPicksAdapterByExtension", func(t *testing.T) {
		for ext, content := range map[string]string{
			".yaml": "port: 11\n",
			".toml": "port = 11\n",
			".ini":  "[main]\nport = 11\n",
			".json": `{"port": 11}`,
		} {
			dir := t.TempDir()
			writeFile(t, dir, "svc"+ext, content)

			cfg, err := NewBuilder().
				WithOption("port", WithCast(CastInt)).
				WithFileDiscovery(DiscoveryOptions{Name: "svc", Extensions: []string{ext}, Paths: []string{dir}}).
				Build()
			require.NoError(t, err, ext)
			assert.Equal(t, 11, cfg.MustGet("port"), ext)
		}
	})

	t.Run("NoFileIsNotAnError", func(t *testing.T) {
		cfg, err := NewBuilder().
			WithOption("port", WithDefault(1)).
			WithFileDiscovery(DiscoveryOptions{Name: "absent", Extensions: []string{".yaml"}, Paths: []string{t.TempDir()}}).
			Build()
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.MustGet("port"))
	})

	t.Run("UnsupportedExtension", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "svc.xml", "<port>1</port>")

		_, err := NewBuilder().
			WithFileDiscovery(DiscoveryOptions{Name: "svc", Extensions: []string{".xml"}, Paths: []string{dir}}).
			Build()
		assert.ErrorIs(t, err, ErrAdapter)
	})
}
