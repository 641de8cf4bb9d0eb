// Package config provides loading and validation of filter pipeline configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/fuzzymatch/pkg/fuzzy"
)

// EnvPrefix is the prefix for environment variables read by the CLI
const EnvPrefix = "FUZZY"

const (
	// ActionInclude keeps the elements matching a step's patterns
	ActionInclude = "include"

	// ActionExclude drops the elements matching a step's patterns
	ActionExclude = "exclude"
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	// MinVersion is the oldest fuzzy release able to run this pipeline (semver, optional)
	MinVersion string `yaml:"minVersion,omitempty"`

	// MatchTypes is the default fallback chain for every step, e.g. [EXACT, PREFIX].
	// When empty the matcher's built-in default chain is used.
	MatchTypes []string `yaml:"matchTypes,omitempty"`

	// Steps run in order, each one filtering the output of the previous one
	Steps []StepConfig `yaml:"steps"`
}

// StepConfig defines a single include or exclude step
type StepConfig struct {
	// Name is an optional label used in log and error messages
	Name string `yaml:"name,omitempty"`

	// Include and Exclude are mutually exclusive; exactly one must be set.
	// An explicitly empty list is allowed.
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`

	// MatchTypes overrides the configuration-wide chain for this step
	MatchTypes []string `yaml:"matchTypes,omitempty"`
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	// Read the entire file into memory
	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML content
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// FromFlags builds a configuration from command line patterns: an include step
// when include is non-empty, followed by an exclude step when exclude is non-empty.
// The steps carry matchTypes themselves so they keep it when appended to a file configuration.
func FromFlags(include, exclude, matchTypes []string) *Config {
	cfg := &Config{MatchTypes: matchTypes}
	if len(include) > 0 {
		cfg.Steps = append(cfg.Steps, StepConfig{Name: "flags", Include: include, MatchTypes: matchTypes})
	}
	if len(exclude) > 0 {
		cfg.Steps = append(cfg.Steps, StepConfig{Name: "flags", Exclude: exclude, MatchTypes: matchTypes})
	}
	return cfg
}

// Append returns a configuration running the steps of c followed by the steps
// of other. The default chain of c is kept, so steps of other that rely on
// their own default chain should carry it in StepConfig.MatchTypes.
func (c *Config) Append(other *Config) *Config {
	if c == nil {
		return other
	}
	if other == nil {
		return c
	}

	merged := &Config{
		MinVersion: c.MinVersion,
		MatchTypes: c.MatchTypes,
		Steps:      append(append([]StepConfig{}, c.Steps...), other.Steps...),
	}
	if merged.MinVersion == "" {
		merged.MinVersion = other.MinVersion
	}
	return merged
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if c.MinVersion != "" {
		if _, err := semver.NewVersion(c.MinVersion); err != nil {
			return fmt.Errorf("minVersion must be a semantic version: %w", err)
		}
	}

	if _, err := fuzzy.ParseMatchTypes(c.MatchTypes); err != nil {
		return fmt.Errorf("matchTypes: %w", err)
	}

	if len(c.Steps) == 0 {
		return fmt.Errorf("at least one step must be configured")
	}

	for i := range c.Steps {
		if err := c.Steps[i].validate(i); err != nil {
			return err
		}
	}

	return nil
}

// validate validates a single step configuration
func (s *StepConfig) validate(index int) error {
	prefix := s.Label(index)

	if s.Include != nil && s.Exclude != nil {
		return fmt.Errorf("%s: only one of include or exclude may be specified", prefix)
	}
	if s.Include == nil && s.Exclude == nil {
		return fmt.Errorf("%s: one of include or exclude must be specified", prefix)
	}

	if _, err := fuzzy.ParseMatchTypes(s.MatchTypes); err != nil {
		return fmt.Errorf("%s: matchTypes: %w", prefix, err)
	}

	return nil
}

// Label identifies the step in messages, e.g. "step[1] (drop-tests)"
func (s *StepConfig) Label(index int) string {
	if s.Name == "" {
		return fmt.Sprintf("step[%d]", index)
	}
	return fmt.Sprintf("step[%d] (%s)", index, s.Name)
}

// Action returns ActionInclude or ActionExclude
func (s *StepConfig) Action() string {
	if s.Include != nil {
		return ActionInclude
	}
	return ActionExclude
}

// Patterns returns the patterns of the step's action
func (s *StepConfig) Patterns() []string {
	if s.Include != nil {
		return s.Include
	}
	return s.Exclude
}

// ChainFor resolves the match type chain for a step: the step's own chain,
// then the configuration default. A nil result selects the container default.
func (c *Config) ChainFor(step *StepConfig) ([]fuzzy.MatchType, error) {
	names := step.MatchTypes
	if len(names) == 0 {
		names = c.MatchTypes
	}
	if len(names) == 0 {
		return nil, nil
	}
	return fuzzy.ParseMatchTypes(names)
}
