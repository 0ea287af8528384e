// Package analysis composes the lexer, parser, and semantic analyzer
// into a single driver, and exposes host-tunable configuration for the
// knobs the base pipeline leaves to an embedder: which builtins seed
// the global scope, how unknown characters are reported, and how deep
// expression/statement nesting is allowed to go.
package analysis

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arenco/langfront/parser"
	"github.com/arenco/langfront/semantic"
)

// BuiltinConfig is the YAML-friendly mirror of semantic.Builtin; Arity
// -1 means variadic (scope.AnyArity), matching semantic.Builtin.Arity.
type BuiltinConfig struct {
	Name   string `yaml:"name"`
	Arity  int    `yaml:"arity"`
	Return string `yaml:"returns"` // "number" | "string" | "boolean" | "void"
}

// Config tunes the non-semantic knobs of the pipeline. The zero value
// is not directly usable; call DefaultConfig() for a ready instance.
type Config struct {
	Builtins             []BuiltinConfig `yaml:"builtins"`
	CoalesceUnknownChars bool            `yaml:"coalesce_unknown_chars"`
	MaxNestingDepth      int             `yaml:"max_nesting_depth"`
	SkipParse            bool            `yaml:"-"` // diagnostic/benchmarking escape hatch, not config-file visible
}

// DefaultConfig reproduces the base pipeline's behavior exactly: the
// three standard builtins, per-character unknown reporting, and the
// parser's default nesting cap.
func DefaultConfig() *Config {
	return &Config{
		Builtins: []BuiltinConfig{
			{Name: "print", Arity: -1, Return: "void"},
			{Name: "input", Arity: 0, Return: "string"},
			{Name: "parseInt", Arity: 1, Return: "number"},
		},
		CoalesceUnknownChars: false,
		MaxNestingDepth:      parser.DefaultMaxNestingDepth,
	}
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfigBytes(data)
}

// LoadConfigBytes parses YAML configuration from an in-memory buffer,
// filling in defaults for any field the document omits.
func LoadConfigBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.MaxNestingDepth <= 0 {
		cfg.MaxNestingDepth = parser.DefaultMaxNestingDepth
	}
	if len(cfg.Builtins) == 0 {
		cfg.Builtins = DefaultConfig().Builtins
	}
	return cfg, nil
}

func (c *Config) toSemanticBuiltins() []semantic.Builtin {
	result := make([]semantic.Builtin, 0, len(c.Builtins))
	for _, b := range c.Builtins {
		result = append(result, semantic.Builtin{
			Name:   b.Name,
			Arity:  b.Arity,
			Return: returnTypeFromName(b.Return),
		})
	}
	return result
}

func returnTypeFromName(name string) semantic.Type {
	switch name {
	case "number":
		return semantic.TNumber
	case "string":
		return semantic.TString
	case "boolean":
		return semantic.TBoolean
	case "void":
		return semantic.TVoid
	default:
		return semantic.TUnknown
	}
}
