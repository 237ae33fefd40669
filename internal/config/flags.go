package config

import (
	"flag"
)

// flagToSource maps flag names to config field names.
var flagToSource = map[string]string{
	"seed":           "seed_file",
	"schema":         "schema_file",
	"log-dir":        "log_dir",
	"labels":         "labels",
	"now":            "now",
	"demo":           "demo",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the config flags on fs and parses args.
// Values are staged and only copied into cfg for flags that were set, so an
// unset flag never overwrites a value from a file or the environment.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("agenda", flag.ContinueOnError)
	}

	staged := *cfg

	// Paths
	fs.StringVar(&staged.SeedFile, "seed", cfg.SeedFile, "Seed file with initial tasks (read-only)")
	fs.StringVar(&staged.SchemaFile, "schema", cfg.SchemaFile, "JSON Schema for the seed file (default: built-in)")
	fs.StringVar(&staged.LogDir, "log-dir", cfg.LogDir, "Session log directory")

	// Display
	fs.StringVar(&staged.Labels, "labels", cfg.Labels, "Label set (es, en)")
	fs.StringVar(&staged.Now, "now", cfg.Now, "Reference date for grouping (YYYY-MM-DD or RFC 3339)")
	fs.BoolVar(&staged.Demo, "demo", cfg.Demo, "Start with the sample tasks")

	// Logging
	fs.StringVar(&staged.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&staged.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&staged.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&staged.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		field, ok := flagToSource[f.Name]
		if !ok {
			return
		}
		applyField(cfg, &staged, field)
		if sources != nil {
			sources[field] = SourceFlag
		}
	})

	return nil
}

// applyField copies one field from src to dst.
func applyField(dst, src *Config, field string) {
	switch field {
	case "seed_file":
		dst.SeedFile = src.SeedFile
	case "schema_file":
		dst.SchemaFile = src.SchemaFile
	case "log_dir":
		dst.LogDir = src.LogDir
	case "labels":
		dst.Labels = src.Labels
	case "now":
		dst.Now = src.Now
	case "demo":
		dst.Demo = src.Demo
	case "log_level":
		dst.LogLevel = src.LogLevel
	case "log_format":
		dst.LogFormat = src.LogFormat
	case "log_timestamps":
		dst.LogTimestamps = src.LogTimestamps
	case "log_caller":
		dst.LogCaller = src.LogCaller
	}
}
