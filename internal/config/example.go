package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# agenda configuration file
# Values can be overridden by AGENDA_* environment variables or CLI flags

# Seed file with the initial tasks (relative to the current directory).
# It is only read, never written; changes live for the session.
# seed_file = "tasks.json"

# JSON Schema for the seed file (default: built-in)
# schema_file = "tasks.schema.json"

# Session log directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.agenda"

# Heading language: es or en
labels = "es"

# Pin the reference date used for grouping (YYYY-MM-DD or RFC 3339)
# now = "2024-12-06"

# Start with the built-in sample tasks
demo = false

# Logging
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
