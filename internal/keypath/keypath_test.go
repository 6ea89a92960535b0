package keypath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonfizz/internal/errors"
	"github.com/mcncl/jsonfizz/internal/models"
	"github.com/mcncl/jsonfizz/internal/parser"
)

func mustJSON(t *testing.T, src string) models.Value {
	t.Helper()
	v, err := parser.ParseJSON(strings.NewReader(src))
	require.NoError(t, err)
	return v
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Path
	}{
		{"dotted with index", "data.items[0].id", Path{Key("data"), Key("items"), Index(0), Key("id")}},
		{"single key", "name", Path{Key("name")}},
		{"empty", "", Path{}},
		{"index after empty key", "[2]", Path{Key(""), Index(2)}},
		{"empty key index then key", "[0].id", Path{Key(""), Index(0), Key("id")}},
		{"chained indices", "grid[1][2]", Path{Key("grid"), Index(1), Index(2)}},
		{"empty key between dots", "a..b", Path{Key("a"), Key(""), Key("b")}},
		{"large index", "a[12345]", Path{Key("a"), Index(12345)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		mention string
	}{
		{"non numeric index", "a[x]", `"x"`},
		{"negative index", "a[-1]", `"-1"`},
		{"signed index", "a[+1]", `"+1"`},
		{"empty brackets", "a[]", `""`},
		{"missing close", "a[0", "missing ']'"},
		{"trailing text", "a[0]b", `"b"`},
		{"overflow", "a[99999999999999999999999]", "99999999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.Error(t, err)
			assert.Equal(t, errors.ErrorTypePathSyntax, errors.TypeOf(err))
			assert.ErrorIs(t, err, errors.ErrInvalidIndex)
			assert.Contains(t, err.Error(), tt.mention)
		})
	}
}

func TestPath_String(t *testing.T) {
	p, err := Parse("data.items[0].id")
	require.NoError(t, err)
	assert.Equal(t, "data.items[0].id", p.String())
	assert.Equal(t, "[1].x", Path{Index(1), Key("x")}.String())
}

func TestResolve_MatchesManualNavigation(t *testing.T) {
	doc := mustJSON(t, `{"a":{"b":[{"c":"deep","d":1},{"c":"other"}]},"x":null}`)

	got, err := Get(doc, "a.b[0].c")
	require.NoError(t, err)

	a, _ := doc.Get("a")
	b, _ := a.Get("b")
	first, _ := b.Index(0)
	c, _ := first.Get("c")
	assert.True(t, models.Equal(c, got))
	assert.Equal(t, "deep", got.AsString())
}

func TestResolve_BracketWithoutKeyUsesEmptyKey(t *testing.T) {
	got, err := Get(mustJSON(t, `{"": [7]}`), "[0]")
	require.NoError(t, err)
	assert.Equal(t, "7", got.AsNumber().String())

	_, err = Get(mustJSON(t, `[7]`), "[0]")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrExpectedObject)
}

func TestResolve_EmptyPathReturnsRoot(t *testing.T) {
	doc := mustJSON(t, `{"k":[1,2,3]}`)
	got, err := Resolve(doc, nil)
	require.NoError(t, err)
	assert.True(t, models.Equal(doc, got))
}

func TestResolve_ReturnsIndependentCopy(t *testing.T) {
	doc := mustJSON(t, `{"list":[1,2]}`)
	got, err := Get(doc, "list")
	require.NoError(t, err)

	got.Items()[0] = models.String("mutated")

	list, _ := doc.Get("list")
	first, _ := list.Index(0)
	assert.Equal(t, "1", first.AsNumber().String())
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		path     string
		sentinel error
		mentions []string
	}{
		{
			name:     "key not found",
			doc:      `{"a":1}`,
			path:     "b",
			sentinel: errors.ErrKeyNotFound,
			mentions: []string{`"b"`, "not found"},
		},
		{
			name:     "index out of bounds",
			doc:      `{"a":[1,2]}`,
			path:     "a[5]",
			sentinel: errors.ErrIndexOutOfBounds,
			mentions: []string{"index 5", "len 2"},
		},
		{
			name:     "expected array",
			doc:      `{"a":1}`,
			path:     "a[0]",
			sentinel: errors.ErrExpectedArray,
			mentions: []string{"expected array", "index 0", "found 1"},
		},
		{
			name:     "expected object",
			doc:      `{"a":[true]}`,
			path:     "a.b",
			sentinel: errors.ErrExpectedObject,
			mentions: []string{"expected object", `"b"`, "found [true]"},
		},
		{
			name:     "key on scalar string",
			doc:      `{"a":"text"}`,
			path:     "a.b",
			sentinel: errors.ErrExpectedObject,
			mentions: []string{`found "text"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Get(mustJSON(t, tt.doc), tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, errors.ErrorTypePath, errors.TypeOf(err))
			for _, m := range tt.mentions {
				assert.Contains(t, err.Error(), m)
			}
		})
	}
}

func TestResolve_LongFoundValueIsShortened(t *testing.T) {
	doc := mustJSON(t, `{"a":"`+strings.Repeat("x", 200)+`"}`)
	_, err := Get(doc, "a.b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "…")
	assert.Less(t, len(err.Error()), 200)
}

func TestGet_SyntaxErrorBeforeResolve(t *testing.T) {
	_, err := Get(models.Null(), "a[z]")
	assert.Equal(t, errors.ErrorTypePathSyntax, errors.TypeOf(err))
}
