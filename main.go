package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/mcncl/jsonfizz/internal/app"
	"github.com/mcncl/jsonfizz/internal/completion"
	"github.com/mcncl/jsonfizz/internal/config"
	"github.com/mcncl/jsonfizz/internal/errors"
	"github.com/mcncl/jsonfizz/internal/logging"
	"github.com/mcncl/jsonfizz/internal/theme"
)

// CLI defines the command-line interface
var CLI struct {
	Files []string `arg:"" optional:"" name:"file" help:"Files to format. Reads stdin when omitted or given as -." predictor:"file"`

	Indent          int    `help:"Spaces per indentation level." short:"i" default:"2"`
	SortKeys        bool   `help:"Sort object keys." negatable:""`
	Compact         bool   `help:"Print minimal single-line JSON." short:"c"`
	MaxDepth        int    `help:"Collapse containers nested deeper than this (-1 for unlimited)." default:"-1"`
	MaxStringLength int    `help:"Shorten longer strings to this many characters (-1 for unlimited)." default:"-1"`
	Get             string `help:"Print only the value at this path, e.g. data.items[0].id." short:"g"`
	Raw             bool   `help:"Disable colours."`
	Format          string `help:"Output format: json, yaml, toml or csv." short:"f" default:"json" predictor:"format"`
	InputFormat     string `help:"Input format: json, yaml or toml. Detected from the file extension when empty." predictor:"input-format"`
	Theme           string `help:"Colour theme: ${themes}." short:"t" default:"default" predictor:"theme"`
	Color           string `help:"When to colour output." enum:"auto,always,never" default:"auto"`
	Watch           bool   `help:"Re-render the file every time it changes." short:"w"`
	Config          string `help:"Config file to use instead of the discovered one." type:"path" predictor:"file"`
	Benchmark       bool   `help:"Time parsing and formatting of a sample document."`
	Completion      string `help:"Print the tab completion script for bash, zsh or fish." placeholder:"SHELL"`
	Debug           bool   `help:"Enable debug logging." short:"d"`
	Version         bool   `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Logger *zap.Logger
	// Explicit names the flags given on the command line. Only those
	// override the config file.
	Explicit map[string]bool
	Stdin    io.Reader
	Stdout   io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func newParser() *kong.Kong {
	return kong.Must(&CLI,
		kong.Name("jsonfizz"),
		kong.Description("Pretty-print and convert JSON, YAML and TOML with colours."),
		kong.UsageOnError(),
		kong.Vars{"themes": strings.Join(theme.Names(), ", ")},
	)
}

func main() {
	parser := newParser()
	completion.Register(parser)

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "jsonfizz: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonfizz --help\n")
		os.Exit(2)
	}

	if CLI.Version {
		fmt.Printf("jsonfizz version %s\n", Version)
		return
	}

	if CLI.Completion != "" {
		if err := printCompletion(os.Stdout, CLI.Completion); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
			os.Exit(errors.ExitCode(err))
		}
		return
	}

	logger, err := logging.New(CLI.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jsonfizz: %v\n", err)
		os.Exit(2)
	}
	defer func() {
		_ = logger.Sync()
	}()

	err = run(&Context{
		Debug:    CLI.Debug,
		Logger:   logger,
		Explicit: explicitFlags(kctx),
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
	})
	if err != nil {
		logger.Debug("run failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		_ = logger.Sync()
		os.Exit(errors.ExitCode(err))
	}
}

// printCompletion writes the completion script for shell. The script calls
// back the running executable.
func printCompletion(w io.Writer, shell string) error {
	bin, err := os.Executable()
	if err != nil {
		bin = "jsonfizz"
	}
	script, err := completion.Script(shell, "jsonfizz", bin)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, script)
	return err
}

// explicitFlags collects the names of the flags present on the command line.
func explicitFlags(kctx *kong.Context) map[string]bool {
	set := map[string]bool{}
	for _, p := range kctx.Path {
		if p.Flag != nil {
			set[p.Flag.Name] = true
		}
	}
	return set
}

// cliOverrides turns the explicitly given flags into config overrides.
func cliOverrides(explicit map[string]bool) *config.Partial {
	p := &config.Partial{}
	if explicit["indent"] {
		p.Indent = &CLI.Indent
	}
	if explicit["sort-keys"] {
		p.SortKeys = &CLI.SortKeys
	}
	if explicit["compact"] {
		p.Compact = &CLI.Compact
	}
	if explicit["max-depth"] {
		p.MaxDepth = &CLI.MaxDepth
	}
	if explicit["max-string-length"] {
		p.MaxStringLength = &CLI.MaxStringLength
	}
	if explicit["get"] {
		p.Get = &CLI.Get
	}
	if explicit["raw"] {
		p.Raw = &CLI.Raw
	}
	if explicit["format"] {
		p.Format = &CLI.Format
	}
	if explicit["input-format"] {
		p.InputFormat = &CLI.InputFormat
	}
	if explicit["theme"] {
		p.Theme = &CLI.Theme
	}
	if explicit["color"] {
		choice := config.ColorChoice(CLI.Color)
		p.Color = &choice
	}
	return p
}

// run executes the main program logic
func run(ctx *Context) error {
	log := ctx.Logger
	if log == nil {
		log = zap.NewNop()
	}
	stdout := ctx.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stdin := ctx.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	cfg, err := config.LoadConfigWithCLI(CLI.Config, cliOverrides(ctx.Explicit), log)
	if err != nil {
		return err
	}

	a, err := app.New(cfg,
		app.WithLogger(log),
		app.WithStdin(stdin),
		app.WithColor(app.ColorEnabled(cfg.Color, stdout)),
	)
	if err != nil {
		return err
	}

	if CLI.Benchmark {
		return a.Benchmark(stdout)
	}

	if CLI.Watch {
		if len(CLI.Files) != 1 || CLI.Files[0] == app.StdinName {
			return errors.NewInputError("watch mode needs exactly one file", errors.ErrInvalidFilePath)
		}
		sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return a.Watch(sigCtx, stdout, CLI.Files[0])
	}

	if len(CLI.Files) == 0 && isInteractive(stdin) {
		return errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	return a.Run(stdout, CLI.Files)
}

// isInteractive reports whether r is a terminal rather than a pipe or file.
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
