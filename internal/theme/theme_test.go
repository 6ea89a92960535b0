package theme

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonfizz/internal/errors"
)

var allNames = []string{
	"default", "solarized", "mono", "rainbow", "ocean", "forest",
	"pastel", "sakura", "cyberpunk", "ghibli", "evangelion",
}

func TestNew_AllNamesSucceed(t *testing.T) {
	for _, name := range allNames {
		t.Run(name, func(t *testing.T) {
			th, err := New(name, false)
			require.NoError(t, err)
			assert.Equal(t, name, th.Name())
			assert.Len(t, th.Styles(), 6)
		})
	}
	assert.ElementsMatch(t, allNames, Names())
}

func TestNew_PalettesAreDistinct(t *testing.T) {
	seen := map[string]Palette{}
	for _, name := range allNames {
		th, err := New(name, false)
		require.NoError(t, err)
		for other, p := range seen {
			assert.False(t, reflect.DeepEqual(p, th.Styles()), "%s and %s share a palette", name, other)
		}
		seen[name] = th.Styles()
	}
}

func TestNew_CaseInsensitive(t *testing.T) {
	th, err := New("  CyberPunk ", false)
	require.NoError(t, err)
	assert.Equal(t, "cyberpunk", th.Name())

	th, err = New("", false)
	require.NoError(t, err)
	assert.Equal(t, DefaultName, th.Name())
}

func TestNew_UnknownTheme(t *testing.T) {
	_, err := New("nonexistent", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownTheme)
	assert.Equal(t, errors.ErrorTypeTheme, errors.TypeOf(err))
	assert.Contains(t, err.Error(), `"nonexistent"`)
	assert.Contains(t, err.Error(), "evangelion")

	// the name is validated even when styling is off
	_, err = New("nonexistent", true)
	assert.ErrorIs(t, err, errors.ErrUnknownTheme)
}

func TestNew_RawIsUnstyled(t *testing.T) {
	th, err := New("rainbow", true)
	require.NoError(t, err)
	assert.True(t, th.IsPlain())
	for _, kind := range TokenKinds() {
		assert.Empty(t, th.Style(kind))
		assert.Equal(t, "text", th.Paint(kind, "text"))
	}
}

func TestPaint_Styled(t *testing.T) {
	th, err := New("default", false)
	require.NoError(t, err)

	for _, kind := range TokenKinds() {
		painted := th.Paint(kind, "x")
		assert.True(t, strings.HasPrefix(painted, "\x1b["), "%s not styled: %q", kind, painted)
		assert.Contains(t, painted, "x")
	}

	ext, err := New("cyberpunk", false)
	require.NoError(t, err)
	assert.Contains(t, ext.Paint(TokenKey, "k"), "38;5;201")
}

func TestPaint_MonoLeavesSomeTokensPlain(t *testing.T) {
	th, err := New("mono", false)
	require.NoError(t, err)
	assert.Equal(t, `"s"`, th.Paint(TokenString, `"s"`))
	assert.NotEqual(t, `"k"`, th.Paint(TokenKey, `"k"`))
	assert.False(t, th.IsPlain())
}

func TestPlain(t *testing.T) {
	th := Plain()
	assert.True(t, th.IsPlain())
	assert.Equal(t, "{", th.Paint(TokenPunctuation, "{"))
	assert.Equal(t, "x", th.Paint(TokenKind(99), "x"))
	assert.Nil(t, th.Style(TokenKind(-1)))
}

func TestTokenKind_String(t *testing.T) {
	assert.Equal(t, "punctuation", TokenPunctuation.String())
	assert.Equal(t, "token(42)", TokenKind(42).String())
}
