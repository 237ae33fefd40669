package config

import (
	"fmt"
	"strings"

	"github.com/nibzard/agenda/internal/agenda"
	"github.com/nibzard/agenda/internal/utils"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource

	// Files lists the config files that were read, in load order.
	Files []string
	// Warnings holds non-fatal problems such as unknown keys.
	Warnings []string
}

// Default values.
const (
	DefaultLogDir    = "~/.agenda"
	DefaultLabels    = "es"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for agenda.
type Config struct {
	// Paths
	SeedFile   string `toml:"seed_file"`
	SchemaFile string `toml:"schema_file"`
	LogDir     string `toml:"log_dir"`

	// Display
	Labels string `toml:"labels"`

	// Now overrides the reference time used for grouping
	// (YYYY-MM-DD or RFC 3339). Empty means the system clock.
	Now string `toml:"now"`

	// Demo starts the session with the built-in sample tasks.
	Demo bool `toml:"demo"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"seed_file",
		"schema_file",
		"log_dir",
		"labels",
		"now",
		"demo",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Fields returns the configurable keys in display order.
func Fields() []string {
	return configFields()
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.SeedFile = ""
	cfg.SchemaFile = ""
	cfg.LogDir = DefaultLogDir
	cfg.Labels = DefaultLabels
	cfg.Now = ""
	cfg.Demo = false
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// Value returns the effective value of key formatted for display.
func (c *Config) Value(key string) string {
	switch key {
	case "seed_file":
		return c.SeedFile
	case "schema_file":
		return c.SchemaFile
	case "log_dir":
		return c.LogDir
	case "labels":
		return c.Labels
	case "now":
		return c.Now
	case "demo":
		return fmt.Sprint(c.Demo)
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return fmt.Sprint(c.LogTimestamps)
	case "log_caller":
		return fmt.Sprint(c.LogCaller)
	default:
		return ""
	}
}

// LabelSet returns the configured display labels.
func (c *Config) LabelSet() (agenda.Labels, error) {
	return agenda.LabelsFor(c.Labels)
}

// Clock returns the reference clock: a fixed clock when Now is set,
// otherwise the system clock.
func (c *Config) Clock() (agenda.Clock, error) {
	return agenda.ClockFor(c.Now)
}

// Validate checks values that can only be judged after all layers are merged.
func (c *Config) Validate() error {
	var problems []string
	if _, err := c.LabelSet(); err != nil {
		problems = append(problems, fmt.Sprintf("labels: %v", err))
	}
	if _, err := c.Clock(); err != nil {
		problems = append(problems, fmt.Sprintf("now: %v", err))
	}
	switch utils.NormalizeName(c.LogFormat) {
	case "", "text", "json", "logfmt":
	default:
		problems = append(problems, fmt.Sprintf("log_format: unknown format %q (valid: text, json, logfmt)", c.LogFormat))
	}
	if c.Demo && c.SeedFile != "" {
		problems = append(problems, "demo and seed_file are mutually exclusive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
