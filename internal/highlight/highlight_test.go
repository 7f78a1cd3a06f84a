package highlight

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rowedit/internal/config"
)

func TestParseTag_RoundTrip(t *testing.T) {
	for _, tag := range Tags {
		got, ok := ParseTag(tag.String())
		require.True(t, ok, tag.String())
		assert.Equal(t, tag, got)
	}

	got, ok := ParseTag("SearchMatch")
	require.True(t, ok)
	assert.Equal(t, Selection, got)

	_, ok = ParseTag("bogus")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Tag(99).String())
}

func TestPlain_ReturnsNoTags(t *testing.T) {
	assert.Nil(t, Plain.Classify([]rune("func main() {}")))
}

func TestDefaultTheme_DistinctSequences(t *testing.T) {
	p := DefaultTheme().Compile(termenv.TrueColor)

	seen := map[string]Tag{}
	for _, tag := range Tags {
		seq := p.Sequence(tag)
		require.NotEmpty(t, seq)
		if prev, dup := seen[seq]; dup {
			t.Fatalf("tags %s and %s share style %q", prev, tag, seq)
		}
		seen[seq] = tag
	}

	assert.Contains(t, p.Sequence(Normal), "37", "normal text is white")
	assert.Contains(t, p.Sequence(Comment), "36", "comments are cyan")
	assert.Contains(t, p.Sequence(Selection), "100", "selection has a bright black background")
}

func TestCompile_AsciiDropsColors(t *testing.T) {
	theme := Theme{
		Normal:  {Fg: ansi.Red, Bg: ansi.Blue},
		Keyword: {Fg: ansi.Magenta, Bold: true, Reverse: true},
	}

	p := theme.Compile(termenv.Ascii)

	assert.Equal(t, ansi.Style{}.Normal().Reverse(false).String(), p.Sequence(Normal))
	assert.Equal(t, ansi.Style{}.Bold().Reverse(true).String(), p.Sequence(Keyword))
}

func TestCompile_MissingTagFallsBackToNormal(t *testing.T) {
	theme := Theme{Normal: {Fg: ansi.Green}}

	p := theme.Compile(termenv.ANSI)

	assert.Equal(t, p.Sequence(Normal), p.Sequence(Number))
	assert.Equal(t, p.Sequence(Normal), Palette{Normal: p[Normal]}.Sequence(String))
}

func TestCompile_DownsamplesTrueColor(t *testing.T) {
	fg, err := config.ParseColor("#ff0000")
	require.NoError(t, err)
	theme := Theme{Normal: {Fg: fg}}

	ansi16 := theme.Compile(termenv.ANSI).Sequence(Normal)
	ansi256 := theme.Compile(termenv.ANSI256).Sequence(Normal)
	trueColor := theme.Compile(termenv.TrueColor).Sequence(Normal)

	assert.NotContains(t, ansi16, "38;")
	assert.Contains(t, ansi256, "38;5;")
	assert.Contains(t, trueColor, "38;2;")
}

func TestThemeFromConfig_RejectsBadColor(t *testing.T) {
	tc := config.DefaultTheme()
	tc.Number.Bg = "nope"

	_, err := ThemeFromConfig(tc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme.number.bg")
}
