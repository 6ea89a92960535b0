package app

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/mcncl/jsonfizz/internal/errors"
	"github.com/mcncl/jsonfizz/internal/export"
	"github.com/mcncl/jsonfizz/internal/format"
	"github.com/mcncl/jsonfizz/internal/parser"
)

// BenchmarkIterations is how many times Benchmark repeats each measurement.
const BenchmarkIterations = 1000

const benchmarkDocument = `{
  "name": "jsonfizz",
  "version": "1.0.0",
  "tags": ["cli", "json", "yaml", "toml"],
  "settings": {"indent": 2, "sort_keys": false, "theme": "default"},
  "users": [
    {"id": 1, "name": "Alice", "active": true, "score": 98.5},
    {"id": 2, "name": "Bob", "active": false, "score": null}
  ]
}`

// BenchmarkResult is the timing of one measured step.
type BenchmarkResult struct {
	Name       string
	Iterations int
	Total      time.Duration
}

// PerIteration returns the mean duration of one iteration.
func (r BenchmarkResult) PerIteration() time.Duration {
	if r.Iterations == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Iterations)
}

// Benchmark times parsing and rendering of a small built-in document with the
// current settings, then compares JSON with YAML output, and reports to w.
func (a *App) Benchmark(w io.Writer) error {
	results, err := a.runBenchmark(BenchmarkIterations)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Benchmark: %d iterations, %d byte document\n", BenchmarkIterations, len(benchmarkDocument)); err != nil {
		return errors.NewOutputError("failed to write benchmark report", err)
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "  %-14s total %-12s per iteration %s\n", r.Name, r.Total, r.PerIteration()); err != nil {
			return errors.NewOutputError("failed to write benchmark report", err)
		}
	}
	return nil
}

func (a *App) runBenchmark(iterations int) ([]BenchmarkResult, error) {
	data := []byte(benchmarkDocument)

	parse := BenchmarkResult{Name: "parse", Iterations: iterations}
	start := time.Now()
	for i := 0; i < iterations; i++ {
		if _, err := parser.ParseBytes(data, format.JSONFormat); err != nil {
			return nil, err
		}
	}
	parse.Total = time.Since(start)

	doc, err := parser.ParseBytes(data, format.JSONFormat)
	if err != nil {
		return nil, err
	}

	render := BenchmarkResult{Name: "format", Iterations: iterations}
	start = time.Now()
	for i := 0; i < iterations; i++ {
		if _, err := a.formatter.Format(doc); err != nil {
			return nil, err
		}
	}
	render.Total = time.Since(start)

	yamlOut := BenchmarkResult{Name: "yaml export", Iterations: iterations}
	start = time.Now()
	for i := 0; i < iterations; i++ {
		if _, err := export.YAML(doc, a.cfg.Indent); err != nil {
			return nil, err
		}
	}
	yamlOut.Total = time.Since(start)

	a.log.Debug("benchmark finished",
		zap.Duration("parse", parse.Total),
		zap.Duration("format", render.Total),
		zap.Duration("yaml", yamlOut.Total),
	)
	return []BenchmarkResult{parse, render, yamlOut}, nil
}
