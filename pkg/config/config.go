// Package config loads and validates analyzer configuration from TOML, YAML,
// or JSON files.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/stephengroombbc/unusedapi/pkg/models"
)

// Config holds all configuration options for unusedapi.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis"`

	// Baseline settings
	Baseline BaselineConfig `koanf:"baseline"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// AnalysisConfig controls how the reachability analysis runs and reports.
type AnalysisConfig struct {
	// Severity assigned to violations: "warning" or "error".
	Severity string `koanf:"severity"`

	// ExcludedModules are module names whose declarations are never reported.
	ExcludedModules []string `koanf:"excluded_modules"`

	// Workers caps the analysis worker count. Zero means 2x NumCPU.
	Workers int `koanf:"workers"`
}

// BaselineConfig controls suppression of previously recorded violations.
type BaselineConfig struct {
	Path string `koanf:"path"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Severity: string(models.SeverityWarning),
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Severity returns the parsed violation severity.
func (c *Config) Severity() (models.Severity, error) {
	return models.ParseSeverity(c.Analysis.Severity)
}

// ModuleExcluded reports whether a module's declarations are suppressed.
func (c *Config) ModuleExcluded(module string) bool {
	for _, m := range c.Analysis.ExcludedModules {
		if m == module {
			return true
		}
	}
	return false
}

// configSchema rejects unknown keys and malformed values. A misspelled option
// silently reverting to defaults is worse than a hard failure.
const configSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"analysis": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"severity": {"type": "string", "enum": ["warning", "error"]},
				"excluded_modules": {"type": "array", "items": {"type": "string"}},
				"workers": {"type": "integer", "minimum": 0}
			}
		},
		"baseline": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"path": {"type": "string"}
			}
		},
		"output": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"format": {"type": "string", "enum": ["text", "json", "markdown"]},
				"color": {"type": "boolean"},
				"verbose": {"type": "boolean"}
			}
		}
	}
}`

func validate(k *koanf.Koanf) error {
	compiler := jsonschema.NewCompiler()
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(configSchema))
	if err != nil {
		return err
	}
	if err := compiler.AddResource("config.schema.json", doc); err != nil {
		return err
	}
	schema, err := compiler.Compile("config.schema.json")
	if err != nil {
		return err
	}

	// Round-trip through JSON so every parser's raw tree is normalized to the
	// value types the validator expects.
	raw, err := json.Marshal(k.Raw())
	if err != nil {
		return err
	}
	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	return schema.Validate(value)
}

// Load loads configuration from a file. Unknown keys or invalid values are
// fatal.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = kjson.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := validate(k); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if _, err := cfg.Severity(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns
// defaults. An absent file is fine; a present but invalid one is not.
func LoadOrDefault() (*Config, error) {
	configNames := []string{
		"unusedapi.toml",
		"unusedapi.yaml",
		"unusedapi.yml",
		"unusedapi.json",
		".unusedapi.toml",
		".unusedapi.yaml",
		".unusedapi.yml",
		".unusedapi.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			return Load(name)
		}
	}

	return DefaultConfig(), nil
}
