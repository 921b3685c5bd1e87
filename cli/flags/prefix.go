// Package flags provides helpers shared by the command line flags of every command.
package flags

import (
	"strings"
)

const AssetselPrefix = "ASSETSEL"

type Prefix []string

func (prefix Prefix) Prepend(val string) Prefix {
	return append([]string{val}, prefix...)
}

func (prefix Prefix) Append(val string) Prefix {
	return append(prefix, val)
}

// EnvVar returns the environment variable for the flag name, e.g. `log-level` becomes `ASSETSEL_LOG_LEVEL`.
func (prefix Prefix) EnvVar(name string) string {
	name = strings.Join(append(prefix, name), "_")

	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func (prefix Prefix) EnvVars(names ...string) []string {
	var envVars = make([]string, len(names))

	for i := range names {
		envVars[i] = prefix.EnvVar(names[i])
	}

	return envVars
}

// EnvVarsWithPrefix returns the `ASSETSEL_` environment variables for the given flag names.
func EnvVarsWithPrefix(names ...string) []string {
	return Prefix{AssetselPrefix}.EnvVars(names...)
}
