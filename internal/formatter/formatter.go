package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mcncl/jsonfizz/internal/errors"
	"github.com/mcncl/jsonfizz/internal/models"
	"github.com/mcncl/jsonfizz/internal/theme"
)

// DefaultMaxNesting bounds recursion when Options.MaxNesting is zero.
const DefaultMaxNesting = 10000

const ellipsis = "…"

// Options controls how a value is rendered.
type Options struct {
	// Indent is the number of spaces per nesting level.
	Indent int
	// SortKeys orders object entries by key instead of insertion order.
	SortKeys bool
	// Compact emits minimal JSON and ignores every other option.
	Compact bool
	// MaxDepth replaces containers nested deeper than this with a
	// placeholder. Nil means unlimited.
	MaxDepth *int
	// MaxStringLength shortens longer strings to this many characters,
	// ellipsis included. Nil means unlimited.
	MaxStringLength *int
	// MaxNesting fails rendering of documents nested deeper than this.
	MaxNesting int
}

// Formatter renders values as indented, optionally coloured JSON text. It
// holds no mutable state and is safe for concurrent use.
type Formatter struct {
	opts  Options
	theme *theme.Theme
}

// NewFormatter creates a new Formatter instance. A nil theme renders plain
// text.
func NewFormatter(opts Options, th *theme.Theme) *Formatter {
	if th == nil {
		th = theme.Plain()
	}
	if opts.Indent < 0 {
		opts.Indent = 0
	}
	if opts.MaxNesting <= 0 {
		opts.MaxNesting = DefaultMaxNesting
	}
	return &Formatter{opts: opts, theme: th}
}

// Options returns the options the formatter was built with.
func (f *Formatter) Options() Options { return f.opts }

// Format renders v from the root.
func (f *Formatter) Format(v models.Value) (string, error) {
	return f.Render(v, 0)
}

// Render renders v as if it sat depth levels below the root. Output has no
// trailing newline.
func (f *Formatter) Render(v models.Value, depth int) (string, error) {
	if f.opts.Compact {
		return Compact(v)
	}
	var sb strings.Builder
	if err := f.render(&sb, v, depth, 0); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (f *Formatter) render(sb *strings.Builder, v models.Value, depth, nesting int) error {
	if nesting > f.opts.MaxNesting {
		return errors.NewFormatError(
			fmt.Sprintf("value nests deeper than %d levels", f.opts.MaxNesting),
			errors.ErrMaxNesting,
		)
	}

	if f.opts.MaxDepth != nil && depth > *f.opts.MaxDepth {
		switch v.Kind() {
		case models.ObjectKind:
			sb.WriteString(f.theme.Paint(theme.TokenPunctuation, "{"+ellipsis+"}"))
		case models.ArrayKind:
			sb.WriteString(f.theme.Paint(theme.TokenPunctuation, "["+ellipsis+"]"))
		default:
			sb.WriteString(f.theme.Paint(theme.TokenString, ellipsis))
		}
		return nil
	}

	switch v.Kind() {
	case models.NullKind:
		sb.WriteString(f.theme.Paint(theme.TokenNull, "null"))
	case models.BoolKind:
		text := "false"
		if v.AsBool() {
			text = "true"
		}
		sb.WriteString(f.theme.Paint(theme.TokenBool, text))
	case models.NumberKind:
		sb.WriteString(f.theme.Paint(theme.TokenNumber, string(v.AsNumber())))
	case models.StringKind:
		s := truncate(v.AsString(), f.opts.MaxStringLength)
		sb.WriteString(f.theme.Paint(theme.TokenString, models.Quote(s)))
	case models.ArrayKind:
		return f.renderArray(sb, v.Items(), depth, nesting)
	case models.ObjectKind:
		return f.renderObject(sb, v.Fields(), depth, nesting)
	}
	return nil
}

func (f *Formatter) renderArray(sb *strings.Builder, items []models.Value, depth, nesting int) error {
	if len(items) == 0 {
		sb.WriteString(f.punct("["))
		sb.WriteString(f.punct("]"))
		return nil
	}

	sb.WriteString(f.punct("["))
	sb.WriteByte('\n')
	inner := f.pad(depth + 1)
	for i, item := range items {
		sb.WriteString(inner)
		if err := f.render(sb, item, depth+1, nesting+1); err != nil {
			return err
		}
		if i < len(items)-1 {
			sb.WriteString(f.punct(","))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(f.pad(depth))
	sb.WriteString(f.punct("]"))
	return nil
}

func (f *Formatter) renderObject(sb *strings.Builder, fields []models.Field, depth, nesting int) error {
	if len(fields) == 0 {
		sb.WriteString(f.punct("{"))
		sb.WriteString(f.punct("}"))
		return nil
	}

	if f.opts.SortKeys {
		sorted := make([]models.Field, len(fields))
		copy(sorted, fields)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
		fields = sorted
	}

	sb.WriteString(f.punct("{"))
	sb.WriteByte('\n')
	inner := f.pad(depth + 1)
	for i, field := range fields {
		sb.WriteString(inner)
		sb.WriteString(f.theme.Paint(theme.TokenKey, models.Quote(field.Key)))
		sb.WriteString(f.punct(":"))
		sb.WriteByte(' ')
		if err := f.render(sb, field.Value, depth+1, nesting+1); err != nil {
			return err
		}
		if i < len(fields)-1 {
			sb.WriteString(f.punct(","))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(f.pad(depth))
	sb.WriteString(f.punct("}"))
	return nil
}

func (f *Formatter) punct(s string) string {
	return f.theme.Paint(theme.TokenPunctuation, s)
}

func (f *Formatter) pad(depth int) string {
	return strings.Repeat(" ", f.opts.Indent*depth)
}

// truncate shortens s to limit runes, the last of which is an ellipsis.
func truncate(s string, limit *int) string {
	if limit == nil || utf8.RuneCountInString(s) <= *limit {
		return s
	}
	keep := *limit - 1
	if keep < 0 {
		keep = 0
	}
	runes := []rune(s)
	return string(runes[:keep]) + ellipsis
}

// Compact returns the minimal JSON encoding of v with object order kept and
// HTML characters left unescaped.
func Compact(v models.Value) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", errors.NewFormatError("failed to encode JSON", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
