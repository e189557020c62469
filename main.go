package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/mcncl/fixturegen/internal/config"
	"github.com/mcncl/fixturegen/internal/errors"
	"github.com/mcncl/fixturegen/internal/exporter"
	"github.com/mcncl/fixturegen/internal/formatter"
	"github.com/mcncl/fixturegen/internal/locate"
)

// CLI defines the command-line interface. Every flag is optional: with no
// arguments data.json next to the program is exported to fixture.json.
var CLI struct {
	Dir     string `help:"Directory holding the source and fixture. Defaults to the directory of this program." short:"C" type:"path"`
	Input   string `help:"Source JSON file name, relative to the directory (default data.json)." short:"i"`
	Output  string `help:"Fixture file name, relative to the directory (default fixture.json)." short:"o"`
	Indent  int    `help:"Spaces per indentation level (default 2)."`
	Config  string `help:"Path to a YAML config file. Defaults to .fixturegen.yml in the directory, if present." short:"c" type:"path"`
	Check   bool   `help:"Verify the fixture is up to date without writing it."`
	Print   bool   `help:"Also print the fixture to stderr." short:"p"`
	Debug   bool   `help:"Enable debug logging." short:"d"`
	Version bool   `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	BaseDir string
	Config  *config.Config
	Logger  *logrus.Logger
	Stdout  io.Writer
	Stderr  io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("fixturegen"),
		kong.Description("Regenerate a pretty-printed JSON test fixture from the source document next to it"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("fixturegen version %s\n", Version)
		return
	}

	ctx, err := newContext()
	if err == nil {
		err = run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// newContext resolves the base directory and effective configuration
func newContext() (*Context, error) {
	logger := newLogger(os.Stderr, CLI.Debug)

	baseDir, err := resolveBaseDir(CLI.Dir)
	if err != nil {
		return nil, errors.NewInputError("failed to resolve base directory", err)
	}

	cfg, cfgPath, err := config.Load(CLI.Config, baseDir, config.Overrides{
		Input:  CLI.Input,
		Output: CLI.Output,
		Indent: CLI.Indent,
		Debug:  CLI.Debug,
	})
	if err != nil {
		if cfgPath == "" {
			return nil, errors.NewConfigError("invalid configuration", err)
		}
		return nil, errors.NewConfigError(fmt.Sprintf("failed to load configuration '%s'", cfgPath), err)
	}
	if cfg.Dev.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.WithFields(logrus.Fields{
		"dir":    baseDir,
		"config": cfgPath,
		"input":  cfg.Input,
		"output": cfg.Output,
		"indent": cfg.Indent,
	}).Debug("resolved configuration")

	return &Context{
		BaseDir: baseDir,
		Config:  cfg,
		Logger:  logger,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}, nil
}

// resolveBaseDir returns the --dir override or the directory of this program
func resolveBaseDir(override string) (string, error) {
	if override != "" {
		return locate.Override(override)
	}
	_, file, _, _ := runtime.Caller(0)
	return locate.BaseDir(file)
}

// newLogger creates the stderr logger used for diagnostics
func newLogger(w io.Writer, debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// run executes the main program logic
func run(ctx *Context) error {
	exp := exporter.New(ctx.BaseDir, ctx.Config, logrus.NewEntry(ctx.Logger))

	if CLI.Check {
		return runCheck(ctx, exp)
	}

	result, err := exp.Export()
	if err != nil {
		return err
	}

	if CLI.Print {
		if err := printFixture(ctx, result.OutputPath); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(ctx.Stdout, "Fixture written to %s\n", result.OutputPath)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// runCheck reports drift between the fixture on disk and a fresh export
func runCheck(ctx *Context, exp *exporter.Exporter) error {
	drift, err := exp.Check()
	if err != nil {
		return err
	}
	if !drift.UpToDate {
		for _, line := range drift.Lines() {
			fmt.Fprintln(ctx.Stderr, line)
		}
		return errors.NewCheckError(
			fmt.Sprintf("%s is out of date", drift.OutputPath),
			errors.ErrFixtureStale,
		)
	}
	fmt.Fprintf(ctx.Stdout, "Fixture %s is up to date\n", drift.OutputPath)
	return nil
}

// printFixture echoes the written fixture to stderr, colored when stderr is a terminal
func printFixture(ctx *Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to read back '%s'", path), err)
	}
	if isTerminal(ctx.Stderr) {
		data = formatter.Colorize(data)
	}
	fmt.Fprintf(ctx.Stderr, "%s\n", data)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
