package hconf

import (
	"strings"

	"github.com/knadh/koanf/providers/env"
)

// Env supplies values from environment variables named by the upper-cased
// Prefix followed by the upper-cased option name, e.g. APP_LOG_LEVEL for
// option "log-level" with prefix "app_" or "APP_". Variable names are
// matched exactly against that form, so APP_log_level is ignored. Variables
// that match no option are ignored.
type Env struct {
	Prefix string
}

// NewEnv creates an environment adapter.
func NewEnv(prefix string) *Env {
	return &Env{Prefix: prefix}
}

// VarName returns the environment variable read for an option.
func (e *Env) VarName(option string) string {
	return strings.ToUpper(e.Prefix + sanitizeName(option))
}

// Resolve returns the string values of matching variables.
func (e *Env) Resolve(reg *Registry, _ State) (map[string]any, error) {
	byVar := make(map[string]string)
	for _, name := range reg.Names() {
		byVar[e.VarName(name)] = name
	}

	provider := env.Provider(strings.ToUpper(e.Prefix), "", func(s string) string {
		return byVar[s]
	})

	values, err := provider.Read()
	if err != nil {
		return nil, adapterErrorf("failed to read environment: %v", err)
	}
	return values, nil
}
