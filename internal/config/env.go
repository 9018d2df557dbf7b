package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
)

// DefaultEnvPrefix is the prefix of environment variables read into config.
const DefaultEnvPrefix = "GOFLUFF_"

// envVarPattern matches ${VAR} references.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// envKey maps GOFLUFF_RULES__MAX_LINE_LENGTH to rules.max_line_length and
// GOFLUFF_DIALECT to core.dialect. Rule sections keep their upper-case
// code: GOFLUFF_RULES__L010__X is rules.L010.x.
func envKey(prefix, name string) string {
	name = strings.ToLower(strings.TrimPrefix(name, prefix))
	parts := strings.Split(name, "__")
	if len(parts) == 1 {
		return CoreSection + "." + parts[0]
	}
	if parts[0] == "rules" && len(parts) > 2 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, ".")
}

// readDotEnv reads the .env file in dir. A missing file is not an error.
func readDotEnv(dir string) (map[string]string, error) {
	if dir == "" {
		return nil, nil
	}
	path := filepath.Join(dir, ".env")
	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return vars, nil
}

// dotEnvLayer converts the prefixed entries of a .env file to a config layer.
func dotEnvLayer(prefix string, vars map[string]string) (map[string]any, error) {
	out := make(map[string]any)
	for name, val := range vars {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if err := setNested(out, strings.Split(envKey(prefix, name), "."), Coerce(val)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// envProvider reads prefixed process environment variables.
func envProvider(prefix string) *env.Env {
	return env.ProviderWithValue(prefix, ".", func(key, value string) (string, any) {
		return envKey(prefix, key), Coerce(value)
	})
}

// expandEnvVars replaces ${VAR} in every string value. Variables from
// dotenv are consulted when the process environment lacks them.
func expandEnvVars(m map[string]any, dotenv map[string]string) {
	for k, v := range m {
		switch val := v.(type) {
		case map[string]any:
			expandEnvVars(val, dotenv)
		case string:
			if strings.Contains(val, "${") {
				m[k] = Coerce(expandString(val, dotenv))
			}
		}
	}
}

func expandString(s string, dotenv map[string]string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		if v, ok := dotenv[name]; ok {
			return v
		}
		return match
	})
}
