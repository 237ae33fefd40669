// Package cmd implements the CLI command structure for agenda.
package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/agenda/internal/agenda"
	"github.com/nibzard/agenda/internal/config"
	"github.com/nibzard/agenda/internal/logging"
	"github.com/nibzard/agenda/internal/todo"
	"github.com/nibzard/agenda/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the agenda CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, os.Stdout, os.Stderr, args)
}

func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("agenda", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	logger := logging.NewFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	for _, w := range cws.Warnings {
		logger.Warn(w)
	}

	// Determine the subcommand
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, logger, cfg, remainingArgs)
	case "ls":
		return lsCommand(stdout, logger, cfg, remainingArgs)
	case "doctor":
		return doctorCommand(stdout, cfg, remainingArgs)
	case "config":
		return configCommand(stdout, cws, remainingArgs)
	case "schema":
		_, err := io.WriteString(stdout, todo.SeedSchema)
		return err
	case "tail":
		return tailCommand(ctx, stdout, cfg, remainingArgs)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// tuiCommand launches the terminal UI.
func tuiCommand(ctx context.Context, logger *log.Logger, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("agenda tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := applySeedArg(cfg, fs.Args()); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := openStore(logger, cfg)
	if err != nil {
		return err
	}
	classifier, err := newClassifier(cfg)
	if err != nil {
		return err
	}

	// The UI owns the terminal, so records go to the session file instead.
	sessionLogger := logging.Discard()
	session, err := logging.NewSessionLog(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		logger.Warn("session log disabled", "error", err)
	} else {
		defer session.Close()
		sessionLogger = session.Logger(logging.ParseLevel(cfg.LogLevel))
	}
	sessionLogger.Info("session started",
		"session_id", sessionID(session),
		"seed", seedLabel(cfg),
		"tasks", store.Len(),
		"labels", classifier.Labels.Name,
	)

	err = ui.Run(ctx, store, classifier, ui.WithLogger(sessionLogger))
	sessionLogger.Info("session ended", "tasks", store.Len())
	return err
}

// lsCommand prints the classified groups.
func lsCommand(w io.Writer, logger *log.Logger, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("agenda ls", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Print the groups as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := applySeedArg(cfg, fs.Args()); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := openStore(logger, cfg)
	if err != nil {
		return err
	}
	classifier, err := newClassifier(cfg)
	if err != nil {
		return err
	}
	groups := classifier.Group(store.List())

	if *asJSON {
		if groups == nil {
			groups = []agenda.Group{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	}

	if len(groups) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return nil
	}
	for _, g := range groups {
		printGroup(w, g, classifier.Labels)
	}
	return nil
}

// doctorCommand checks config, seed file and schema validity.
func doctorCommand(w io.Writer, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("agenda doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := applySeedArg(cfg, fs.Args()); err != nil {
		return err
	}

	fmt.Fprintln(w, "Agenda Doctor")
	fmt.Fprintln(w, "=============")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintln(w, "Config:")
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		allOK = false
	} else {
		fmt.Fprintf(w, "  ✅ Labels: %s\n", cfg.Labels)
		if cfg.Now != "" {
			fmt.Fprintf(w, "  ✅ Reference time: %s\n", cfg.Now)
		} else {
			fmt.Fprintln(w, "  ✅ Reference time: system clock")
		}
	}
	fmt.Fprintln(w)

	if cfg.SchemaFile != "" {
		fmt.Fprintf(w, "Schema file: %s\n", cfg.SchemaFile)
		if ok := checkFile(w, cfg.SchemaFile); !ok {
			allOK = false
		}
		fmt.Fprintln(w)
	}

	switch {
	case cfg.Demo:
		fmt.Fprintln(w, "Seed: built-in sample tasks")
		fmt.Fprintln(w, "  ✅ OK")
	case cfg.SeedFile == "":
		fmt.Fprintln(w, "Seed: none (session starts empty)")
	default:
		fmt.Fprintf(w, "Seed file: %s\n", cfg.SeedFile)
		if !checkFile(w, cfg.SeedFile) || !checkSeed(w, cfg, *verbose) {
			allOK = false
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Log directory: %s\n", cfg.LogDir)
	if _, err := os.Stat(cfg.LogDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created on first session)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}

// configCommand prints the effective configuration and where each value came from.
func configCommand(w io.Writer, cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("agenda config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *example {
		_, err := io.WriteString(w, config.ExampleConfig())
		return err
	}

	width := 0
	for _, key := range config.Fields() {
		width = max(width, len(key))
	}
	for _, key := range config.Fields() {
		value := cws.Config.Value(key)
		if value == "" {
			value = "(unset)"
		}
		fmt.Fprintf(w, "%-*s = %s  [%s]\n", width, key, value, cws.Sources[key])
	}

	fmt.Fprintln(w)
	if len(cws.Files) == 0 {
		fmt.Fprintln(w, "Config files: none")
	} else {
		fmt.Fprintln(w, "Config files:")
		for _, f := range cws.Files {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	for _, warning := range cws.Warnings {
		fmt.Fprintf(w, "⚠️  %s\n", warning)
	}
	return nil
}

// tailCommand tails the latest session log.
func tailCommand(ctx context.Context, w io.Writer, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("agenda tail", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	list := fs.Bool("list", false, "List session logs instead of tailing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}

	if *list {
		logs, err := logging.ListLogs(logDir)
		if err != nil {
			return fmt.Errorf("listing logs: %w", err)
		}
		if len(logs) == 0 {
			fmt.Fprintln(w, "No log files found.")
		}
		for _, lf := range logs {
			fmt.Fprintf(w, "%s  %s  %d bytes\n", lf.SessionID, lf.ModTime.Format("2006-01-02 15:04:05"), lf.Size)
		}
		return nil
	}

	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(w, "No log files found.")
		return nil
	}

	fmt.Fprintf(w, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(w, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(w)

	return logging.TailLog(ctx, w, logPath, *n, *follow)
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "agenda version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Agenda - tasks grouped by when they are due")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  agenda [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui [file]     Launch terminal UI (default command)")
	fmt.Fprintln(w, "  ls [file]      Print tasks grouped by due date")
	fmt.Fprintln(w, "  doctor [file]  Check config, seed file and schema")
	fmt.Fprintln(w, "  config         Show effective configuration and sources")
	fmt.Fprintln(w, "  schema         Print the seed file JSON Schema")
	fmt.Fprintln(w, "  tail           Tail the latest session log")
	fmt.Fprintln(w, "  version        Show version information")
	fmt.Fprintln(w, "  help           Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "        Print the groups as JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w, "  -list")
	fmt.Fprintln(w, "        List session logs instead of tailing")
}

// applySeedArg lets a positional argument name the seed file.
func applySeedArg(cfg *config.Config, remaining []string) error {
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		path := remaining[0]
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.ProjectRoot, path)
		}
		cfg.SeedFile = path
	}
	return nil
}

// openStore builds the session store from the demo tasks, the seed file,
// or nothing. Seed validation warnings go to logger.
func openStore(logger *log.Logger, cfg *config.Config) (*todo.Store, error) {
	vopts := todo.ValidationOptions{SchemaPath: cfg.SchemaFile}
	var seed *todo.Seed
	switch {
	case cfg.Demo:
		seed = todo.SampleSeed()
	case cfg.SeedFile != "":
		var err error
		seed, err = todo.LoadSeed(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
	default:
		return todo.NewStore(nil)
	}

	store, warnings, err := seed.Store(vopts)
	for _, w := range warnings {
		logger.Warn(w, "seed", seedLabel(cfg))
	}
	if err != nil && !cfg.Demo {
		return nil, fmt.Errorf("%s: %w", cfg.SeedFile, err)
	}
	return store, err
}

func newClassifier(cfg *config.Config) (*agenda.Classifier, error) {
	labels, err := cfg.LabelSet()
	if err != nil {
		return nil, err
	}
	clock, err := cfg.Clock()
	if err != nil {
		return nil, err
	}
	return &agenda.Classifier{Clock: clock, Labels: labels}, nil
}

func checkFile(w io.Writer, path string) bool {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		return false
	}
	fmt.Fprintln(w, "  ✅ OK")
	return true
}

func checkSeed(w io.Writer, cfg *config.Config, verbose bool) bool {
	seed, err := todo.LoadSeed(cfg.SeedFile)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Load error: %v\n", err)
		return false
	}
	result := seed.Validate(todo.ValidationOptions{SchemaPath: cfg.SchemaFile})
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	if !result.Valid {
		fmt.Fprintln(w, "  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		return false
	}
	if result.UsedSchema {
		fmt.Fprintln(w, "  ✅ Valid (JSON Schema)")
	} else {
		fmt.Fprintln(w, "  ✅ Valid")
	}
	if verbose {
		fmt.Fprintf(w, "  Tasks: %d\n", len(seed.Tasks))
		for _, t := range seed.Tasks {
			fmt.Fprintf(w, "    - [%s] %s: %s\n", checkMark(t.Completed), t.ID, t.Name)
		}
	}
	return true
}

// printGroup prints one bucket and its tasks.
func printGroup(w io.Writer, g agenda.Group, labels agenda.Labels) {
	fmt.Fprintf(w, "%s (%d):\n", g.Label, len(g.Tasks))
	for _, t := range g.Tasks {
		fmt.Fprintf(w, "  %s %s  %s\n", checkMark(t.Completed), t.Name, agenda.TaskSubtitle(t, labels))
		if t.Description != "" {
			fmt.Fprintf(w, "      %s\n", t.Description)
		}
	}
	fmt.Fprintln(w)
}

func checkMark(done bool) string {
	if done {
		return "✓"
	}
	return "✗"
}

func seedLabel(cfg *config.Config) string {
	switch {
	case cfg.Demo:
		return "demo"
	case cfg.SeedFile != "":
		return cfg.SeedFile
	default:
		return "none"
	}
}

func sessionID(s *logging.SessionLog) string {
	if s == nil {
		return ""
	}
	return s.SessionID
}
