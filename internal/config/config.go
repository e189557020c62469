package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default file names, both resolved against the base directory
const (
	DefaultInput  = "data.json"
	DefaultOutput = "fixture.json"
	DefaultIndent = 2

	minIndent = 1
	maxIndent = 8
)

// Config represents the complete configuration for fixturegen
type Config struct {
	Input           string    `yaml:"input"`
	Output          string    `yaml:"output"`
	Indent          int       `yaml:"indent"`
	TrailingNewline bool      `yaml:"trailing_newline"`
	Dev             DevConfig `yaml:"dev"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// Overrides holds values given on the command line. Zero values mean "not set".
type Overrides struct {
	Input  string
	Output string
	Indent int
	Debug  bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Input:           DefaultInput,
		Output:          DefaultOutput,
		Indent:          DefaultIndent,
		TrailingNewline: false,
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	// Unknown keys are errors so a misspelled option is not silently ignored.
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile looks for a config file directly inside dir
func FindConfigFile(dir string) string {
	configNames := []string{".fixturegen.yml", ".fixturegen.yaml", "fixturegen.yml", "fixturegen.yaml"}

	for _, name := range configNames {
		configPath := filepath.Join(dir, name)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath
		}
	}

	return ""
}

// Apply overlays non-zero command line values onto the config
func (c *Config) Apply(o Overrides) {
	if o.Input != "" {
		c.Input = o.Input
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Indent != 0 {
		c.Indent = o.Indent
	}
	if o.Debug {
		c.Dev.Debug = true
	}
}

// Validate checks the config for values the exporter cannot work with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return fmt.Errorf("input file name is empty")
	}
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output file name is empty")
	}
	if c.Indent < minIndent || c.Indent > maxIndent {
		return fmt.Errorf("indent must be between %d and %d, got %d", minIndent, maxIndent, c.Indent)
	}
	if filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		return fmt.Errorf("input and output both point to '%s'", c.Input)
	}
	return nil
}

// Load builds the effective config: defaults, then the config file, then overrides.
// An explicit path must exist; otherwise a config file in baseDir is used if present.
func Load(explicitPath, baseDir string, o Overrides) (*Config, string, error) {
	path := explicitPath
	if path == "" {
		path = FindConfigFile(baseDir)
	}

	cfg := NewConfig()
	if path != "" {
		fileConfig, err := LoadConfig(path)
		if err != nil {
			return nil, path, err
		}
		cfg = fileConfig
	}

	cfg.Apply(o)
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
