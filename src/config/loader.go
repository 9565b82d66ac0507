package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// envRefRe matches ${VAR} and ${VAR:-default} references in config files
var envRefRe = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

// Load reads configuration from path, layered over the builtin defaults.
// An empty path searches the default locations; when none exists the
// defaults are returned as-is. File values may reference environment
// variables as ${VAR} or ${VAR:-default}.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	resolved := findConfig(path)
	if resolved == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal([]byte(expandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// findConfig resolves the effective config file. An explicit path wins even
// when it does not exist, so a typo surfaces as a read error instead of a
// silent fallback to defaults.
func findConfig(path string) string {
	if path != "" {
		return path
	}
	candidates := []string{
		"config.yaml",
		"config/config.yaml",
		filepath.Join(os.Getenv("HOME"), ".webguard", "config.yaml"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// expandEnv substitutes environment references. An unset variable resolves
// to its ${VAR:-default} default, or to the empty string without one.
func expandEnv(in string) string {
	return envRefRe.ReplaceAllStringFunc(in, func(ref string) string {
		groups := envRefRe.FindStringSubmatch(ref)
		if val, ok := os.LookupEnv(groups[1]); ok {
			return val
		}
		return groups[2]
	})
}
