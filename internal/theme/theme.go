// Package theme maps the six kinds of JSON tokens to terminal styles.
package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/mcncl/jsonfizz/internal/errors"
)

// TokenKind is the semantic category of a rendered token.
type TokenKind int

const (
	TokenKey TokenKind = iota
	TokenString
	TokenNumber
	TokenBool
	TokenNull
	TokenPunctuation

	tokenKindCount
)

// TokenKinds lists every token kind in declaration order.
func TokenKinds() []TokenKind {
	return []TokenKind{TokenKey, TokenString, TokenNumber, TokenBool, TokenNull, TokenPunctuation}
}

func (k TokenKind) String() string {
	switch k {
	case TokenKey:
		return "key"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenBool:
		return "bool"
	case TokenNull:
		return "null"
	case TokenPunctuation:
		return "punctuation"
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}

// Style is the list of SGR attributes applied to a token. An empty Style
// leaves text untouched.
type Style []color.Attribute

// Palette assigns a Style to every token kind.
type Palette [tokenKindCount]Style

// Theme is an immutable, named palette ready to paint text. It is safe for
// concurrent use.
type Theme struct {
	name    string
	palette Palette
	colors  [tokenKindCount]*color.Color
}

const DefaultName = "default"

// New returns the theme called name (case-insensitive, empty means
// "default"). Unknown names fail even when raw is set. With raw every token
// is left unstyled.
func New(name string, raw bool) (*Theme, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultName
	}
	p, ok := palettes[key]
	if !ok {
		return nil, errors.NewThemeError(
			fmt.Sprintf("unknown theme %q (use one of: %s)", name, strings.Join(Names(), ", ")),
			errors.ErrUnknownTheme,
		)
	}
	if raw {
		p = Palette{}
	}
	return fromPalette(key, p), nil
}

// Plain returns a theme that styles nothing.
func Plain() *Theme {
	return fromPalette("plain", Palette{})
}

func fromPalette(name string, p Palette) *Theme {
	t := &Theme{name: name, palette: p}
	for i, style := range p {
		if len(style) == 0 {
			continue
		}
		c := color.New(style...)
		// whether to colour at all is decided before a theme is built
		c.EnableColor()
		t.colors[i] = c
	}
	return t
}

// Name returns the canonical theme name.
func (t *Theme) Name() string { return t.name }

// Style returns the style used for kind.
func (t *Theme) Style(kind TokenKind) Style {
	if kind < 0 || kind >= tokenKindCount {
		return nil
	}
	return t.palette[kind]
}

// Styles returns the full token-kind table.
func (t *Theme) Styles() Palette { return t.palette }

// IsPlain reports whether no token kind carries a style.
func (t *Theme) IsPlain() bool {
	for _, s := range t.palette {
		if len(s) > 0 {
			return false
		}
	}
	return true
}

// Paint wraps text in the escape sequences for kind.
func (t *Theme) Paint(kind TokenKind, text string) string {
	if kind < 0 || kind >= tokenKindCount {
		return text
	}
	c := t.colors[kind]
	if c == nil {
		return text
	}
	return c.Sprint(text)
}

// Names returns the sorted list of theme names.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
