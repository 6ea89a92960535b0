// Package app drives a run: read each input, parse it, extract the
// requested subtree, render it and write the result.
package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/mcncl/jsonfizz/internal/config"
	"github.com/mcncl/jsonfizz/internal/errors"
	"github.com/mcncl/jsonfizz/internal/export"
	"github.com/mcncl/jsonfizz/internal/format"
	"github.com/mcncl/jsonfizz/internal/formatter"
	"github.com/mcncl/jsonfizz/internal/keypath"
	"github.com/mcncl/jsonfizz/internal/models"
	"github.com/mcncl/jsonfizz/internal/parser"
	"github.com/mcncl/jsonfizz/internal/theme"
	"github.com/mcncl/jsonfizz/internal/watch"
)

// StdinName is the file argument that stands for standard input.
const StdinName = "-"

const (
	mib = 1 << 20

	// DefaultProgressThreshold is the stdin size after which progress is
	// logged.
	DefaultProgressThreshold = 5 * mib
	// DefaultLargeInputThreshold is the input size that triggers a warning.
	DefaultLargeInputThreshold = 50 * mib
)

// App renders documents according to a validated Config.
type App struct {
	cfg       *config.Config
	log       *zap.Logger
	stdin     io.Reader
	color     *bool
	theme     *theme.Theme
	formatter *formatter.Formatter
	path      keypath.Path
	output    format.Format

	progressThreshold int64
	largeThreshold    int64
}

// Option customises an App.
type Option func(*App)

// WithLogger sets the logger used for progress, warnings and watch events.
func WithLogger(log *zap.Logger) Option {
	return func(a *App) { a.log = log }
}

// WithStdin replaces os.Stdin as the source for "-".
func WithStdin(r io.Reader) Option {
	return func(a *App) { a.stdin = r }
}

// WithColor decides colouring up front instead of inspecting os.Stdout.
func WithColor(enabled bool) Option {
	return func(a *App) { a.color = &enabled }
}

// New checks the theme, path and formats of cfg and prepares the renderer.
// A bad theme or path fails here, before any input is read.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{
		cfg:               cfg,
		log:               zap.NewNop(),
		stdin:             os.Stdin,
		progressThreshold: DefaultProgressThreshold,
		largeThreshold:    DefaultLargeInputThreshold,
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	color := ColorEnabled(cfg.Color, os.Stdout)
	if a.color != nil {
		color = *a.color
	}
	th, err := theme.New(cfg.Theme, cfg.Raw || !color)
	if err != nil {
		return nil, err
	}
	a.theme = th

	path, err := keypath.Parse(cfg.Get)
	if err != nil {
		return nil, err
	}
	a.path = path
	a.output = cfg.OutputFormat()

	a.formatter = formatter.NewFormatter(formatter.Options{
		Indent:          cfg.Indent,
		SortKeys:        cfg.SortKeys,
		Compact:         cfg.Compact,
		MaxDepth:        cfg.MaxDepth,
		MaxStringLength: cfg.MaxStringLength,
	}, th)

	a.log.Debug("renderer ready",
		zap.String("theme", th.Name()),
		zap.Bool("color", !th.IsPlain()),
		zap.String("format", a.output.String()),
		zap.String("get", path.String()),
	)
	return a, nil
}

// ColorEnabled resolves choice for the destination w. Auto colours only
// terminals and honours NO_COLOR.
func ColorEnabled(choice config.ColorChoice, w io.Writer) bool {
	_, noColor := os.LookupEnv("NO_COLOR")
	return choice.Enabled(isTerminal(w), noColor)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Theme returns the theme in use, unstyled when colour is off.
func (a *App) Theme() *theme.Theme { return a.theme }

// Run renders every file in turn to w; no files means standard input. The
// first failure stops the run.
func (a *App) Run(w io.Writer, files []string) error {
	if len(files) == 0 {
		files = []string{StdinName}
	}
	for _, name := range files {
		if err := a.renderSource(w, name); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) renderSource(w io.Writer, name string) error {
	v, err := a.Load(name)
	if err != nil {
		return err
	}
	out, err := a.Process(v)
	if err != nil {
		return err
	}
	return a.write(w, out)
}

// Load reads and parses one input. The format comes from the configuration,
// then the file extension, then defaults to JSON.
func (a *App) Load(name string) (models.Value, error) {
	f := a.inputFormat(name)
	if name == StdinName {
		data, err := a.readStdin()
		if err != nil {
			return models.Value{}, err
		}
		v, err := parser.ParseBytes(data, f)
		if err != nil {
			return models.Value{}, err
		}
		a.log.Debug("parsed input", zap.String("source", "stdin"), zap.Stringer("format", f), zap.Int("bytes", len(data)))
		return v, nil
	}

	if info, err := os.Stat(name); err == nil && info.Size() > a.largeThreshold {
		a.log.Warn("large input file, rendering may be slow",
			zap.String("path", name),
			zap.Int64("bytes", info.Size()),
		)
	}
	v, err := parser.ParseFile(name, f)
	if err != nil {
		return models.Value{}, err
	}
	a.log.Debug("parsed input", zap.String("source", name), zap.Stringer("format", f))
	return v, nil
}

func (a *App) inputFormat(name string) format.Format {
	if f, ok := a.cfg.ReadFormat(); ok {
		return f
	}
	if name == StdinName {
		return format.JSONFormat
	}
	return format.Detect(name)
}

const readChunk = 64 * 1024

func (a *App) readStdin() ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, readChunk)
	nextProgress := a.progressThreshold
	warned := false
	for {
		n, err := a.stdin.Read(chunk)
		buf.Write(chunk[:n])
		size := int64(buf.Len())

		if size > nextProgress {
			a.log.Info("reading large input from stdin", zap.Int64("mib", size/mib), zap.Int64("bytes", size))
			nextProgress += a.progressThreshold
		}
		if !warned && size > a.largeThreshold {
			a.log.Warn("stdin input is very large, rendering may be slow", zap.Int64("bytes", size))
			warned = true
		}

		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, errors.NewInputError("failed to read stdin", err)
		}
	}
}

// Process extracts the configured path from v and renders the result.
func (a *App) Process(v models.Value) (string, error) {
	if len(a.path) > 0 {
		sub, err := keypath.Resolve(v, a.path)
		if err != nil {
			return "", err
		}
		v = sub
	}
	return a.Render(v)
}

// Render serialises v in the configured output format.
func (a *App) Render(v models.Value) (string, error) {
	if a.output.IsJSON() {
		return a.formatter.Format(v)
	}
	return export.Encode(v, a.output, a.cfg.Indent)
}

func (a *App) write(w io.Writer, out string) error {
	if _, err := fmt.Fprintln(w, out); err != nil {
		return errors.NewOutputError("failed to write output", err)
	}
	return nil
}

// Watch renders path to w now and after every change until the file goes
// away or ctx is cancelled.
func (a *App) Watch(ctx context.Context, w io.Writer, path string) error {
	if path == StdinName {
		return errors.NewWatchError("cannot watch standard input", errors.ErrInvalidFilePath)
	}
	return watch.Run(ctx, path, a.log, func() error {
		return a.renderSource(w, path)
	})
}
