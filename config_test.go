package hconf

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func resolveValues(t *testing.T, values map[string]any, names ...string) *Config {
	t.Helper()
	m := NewManager()
	for _, name := range names {
		require.NoError(t, m.Register(name))
	}
	require.NoError(t, m.RegisterAdapter(NewDictionary(values)))
	cfg, err := m.Resolve()
	require.NoError(t, err)
	return cfg
}

func TestConfigAccess(t *testing.T) {
	cfg := resolveValues(t, map[string]any{"log-level": "info"}, "log_level", "unset")

	v, err := cfg.Get("log-level")
	require.NoError(t, err)
	assert.Equal(t, "info", v)

	v, err = cfg.Get("unset")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = cfg.Get("undeclared")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Panics(t, func() { cfg.MustGet("undeclared") })

	_, ok := cfg.Lookup("undeclared")
	assert.False(t, ok)
	assert.True(t, cfg.Has("log_level"))
	assert.Equal(t, 2, cfg.Len())
	assert.Equal(t, []string{"log_level", "unset"}, cfg.Names())

	m := cfg.Map()
	m["log_level"] = "mutated"
	assert.Equal(t, "info", cfg.MustGet("log_level"), "Map must return a copy")

	assert.Contains(t, cfg.Debug(), `log_level = "info"`)
}

func TestConfigReturnsCopies(t *testing.T) {
	cfg := resolveValues(t, map[string]any{
		"list":   []any{1, []any{2}},
		"nested": map[string]any{"inner": map[string]any{"k": "v"}},
		"hosts":  []string{"a", "b"},
	}, "list", "nested", "hosts")

	list := cfg.MustGet("list").([]any)
	list[0] = 99
	list[1].([]any)[0] = 99

	nested, _ := cfg.Lookup("nested")
	nested.(map[string]any)["inner"].(map[string]any)["k"] = "changed"
	nested.(map[string]any)["added"] = true

	hosts, err := cfg.Get("hosts")
	require.NoError(t, err)
	hosts.([]string)[0] = "z"

	cfg.Map()["list"].([]any)[0] = 77

	assert.Equal(t, []any{1, []any{2}}, cfg.MustGet("list"))
	assert.Equal(t, map[string]any{"inner": map[string]any{"k": "v"}}, cfg.MustGet("nested"))
	assert.Equal(t, []string{"a", "b"}, cfg.MustGet("hosts"))
}

func TestTypedAccessors(t *testing.T) {
	cfg := resolveValues(t, map[string]any{
		"s":   "text",
		"i":   "0x10",
		"f":   "2.5",
		"b":   "true",
		"n":   int64(3),
		"d":   "90s",
		"dn":  int64(time.Second),
		"bad": []int{1},
	}, "s", "i", "f", "b", "n", "d", "dn", "bad", "none")

	s, err := cfg.String("n")
	require.NoError(t, err)
	assert.Equal(t, "3", s)

	s, err = cfg.String("none")
	require.NoError(t, err)
	assert.Equal(t, "", s)

	i, err := cfg.Int64("i")
	require.NoError(t, err)
	assert.Equal(t, int64(16), i)

	f, err := cfg.Float64("f")
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	b, err := cfg.Bool("b")
	require.NoError(t, err)
	assert.True(t, b)

	b, err = cfg.Bool("n")
	require.NoError(t, err)
	assert.True(t, b)

	d, err := cfg.Duration("d")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	d, err = cfg.Duration("dn")
	require.NoError(t, err)
	assert.Equal(t, time.Second, d)

	_, err = cfg.Int64("s")
	assert.Error(t, err)
	_, err = cfg.Int64("none")
	assert.Error(t, err)
	_, err = cfg.String("bad")
	assert.Error(t, err)
	_, err = cfg.Bool("undeclared")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfigScan(t *testing.T) {
	type target struct {
		LogLevel string        `hconf:"log-level"`
		Port     int           `hconf:"port"`
		Timeout  time.Duration `hconf:"timeout"`
		Hosts    []string      `hconf:"hosts"`
		Missing  string        `hconf:"missing"`
	}

	cfg := resolveValues(t, map[string]any{
		"log_level": "warn",
		"port":      "8080",
		"timeout":   "3s",
		"hosts":     "a,b",
	}, "log-level", "port", "timeout", "hosts", "missing")

	out := target{Missing: "kept"}
	require.NoError(t, cfg.Scan(&out))
	assert.Equal(t, "warn", out.LogLevel)
	assert.Equal(t, 8080, out.Port)
	assert.Equal(t, 3*time.Second, out.Timeout)
	assert.Equal(t, []string{"a", "b"}, out.Hosts)
	assert.Equal(t, "kept", out.Missing, "nil values leave fields untouched")

	var asMap map[string]any
	require.NoError(t, cfg.Scan(&asMap))
	assert.Equal(t, "warn", asMap["log_level"])

	assert.Error(t, cfg.Scan(out))
	var nilPtr *target
	assert.Error(t, cfg.Scan(nilPtr))
}

func TestConfigEncode(t *testing.T) {
	cfg := resolveValues(t, map[string]any{"host": "h", "port": int64(80)}, "host", "port", "empty")

	t.Run("TOML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, cfg.Encode(&buf, "toml"))

		var decoded map[string]any
		_, err := toml.Decode(buf.String(), &decoded)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"host": "h", "port": int64(80)}, decoded)
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, cfg.Encode(&buf, "yaml"))

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, map[string]any{"host": "h", "port": 80, "empty": nil}, decoded)
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, cfg.Encode(&buf, "json"))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, map[string]any{"host": "h", "port": float64(80), "empty": nil}, decoded)
	})

	t.Run("Unsupported", func(t *testing.T) {
		assert.Error(t, cfg.Encode(&bytes.Buffer{}, "xml"))
	})
}

func TestConfigSave(t *testing.T) {
	dir := t.TempDir()
	cfg := resolveValues(t, map[string]any{"host": "h", "port": int64(80)}, "host", "port")

	t.Run("RoundTripThroughAdapters", func(t *testing.T) {
		for _, name := range []string{"out.toml", "out.yaml"} {
			path := filepath.Join(dir, "nested", name)
			require.NoError(t, cfg.Save(path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

			m := NewManager()
			require.NoError(t, m.Register("host"))
			require.NoError(t, m.Register("port", WithCast(CastInt64)))
			b := NewBuilder().WithOptions(m.Registry().All()...)
			if filepath.Ext(name) == ".toml" {
				b.WithTOMLFile(File(filepath.Dir(path), name))
			} else {
				b.WithYAMLFile(File(filepath.Dir(path), name))
			}
			loaded, err := b.Build()
			require.NoError(t, err)
			assert.Equal(t, "h", loaded.MustGet("host"))
			assert.Equal(t, int64(80), loaded.MustGet("port"))
		}
	})

	t.Run("NoTempFilesLeft", func(t *testing.T) {
		path := filepath.Join(dir, "clean.json")
		require.NoError(t, cfg.Save(path))
		require.NoError(t, cfg.Save(path))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".tmp")
		}
	})
}
