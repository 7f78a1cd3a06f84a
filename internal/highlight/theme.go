package highlight

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/zjrosen/rowedit/internal/config"
)

// Style describes how one tag is drawn. Nil colors mean the terminal default.
type Style struct {
	Fg      ansi.Color
	Bg      ansi.Color
	Bold    bool
	Reverse bool
}

// Theme maps tags to styles. Tags without an entry fall back to Normal.
type Theme map[Tag]Style

// ThemeFromConfig builds a Theme from the theme section of the config.
func ThemeFromConfig(tc config.ThemeConfig) (Theme, error) {
	theme := make(Theme, len(Tags))
	for _, e := range tc.Entries() {
		tag, ok := ParseTag(e.Key)
		if !ok {
			return nil, fmt.Errorf("unknown theme key %q", e.Key)
		}
		fg, err := config.ParseColor(e.Style.Fg)
		if err != nil {
			return nil, fmt.Errorf("theme.%s.fg: %w", e.Key, err)
		}
		bg, err := config.ParseColor(e.Style.Bg)
		if err != nil {
			return nil, fmt.Errorf("theme.%s.bg: %w", e.Key, err)
		}
		theme[tag] = Style{Fg: fg, Bg: bg, Bold: e.Style.Bold, Reverse: e.Style.Reverse}
	}
	return theme, nil
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	theme, err := ThemeFromConfig(config.DefaultTheme())
	if err != nil {
		panic(fmt.Sprintf("default theme is invalid: %v", err))
	}
	return theme
}

// Palette is a compiled theme: one SGR sequence per tag.
type Palette map[Tag]string

// Compile renders every style to an SGR sequence for the given color profile.
// Colors are down-sampled to what the profile supports; the Ascii profile
// drops colors and keeps only bold and reverse.
func (t Theme) Compile(profile termenv.Profile) Palette {
	p := make(Palette, len(Tags))
	for _, tag := range Tags {
		s, ok := t[tag]
		if !ok {
			s = t[Normal]
		}
		p[tag] = s.sequence(profile)
	}
	return p
}

// Sequence returns the SGR sequence for tag, falling back to Normal.
func (p Palette) Sequence(tag Tag) string {
	if seq, ok := p[tag]; ok {
		return seq
	}
	return p[Normal]
}

func (s Style) sequence(profile termenv.Profile) string {
	st := ansi.Style{}
	if profile != termenv.Ascii {
		st = st.ForegroundColor(downsample(s.Fg, profile)).
			BackgroundColor(downsample(s.Bg, profile))
	}
	if s.Bold {
		st = st.Bold()
	} else {
		st = st.Normal()
	}
	st = st.Reverse(s.Reverse)
	return st.String()
}

func downsample(c ansi.Color, profile termenv.Profile) ansi.Color {
	if c == nil {
		return nil
	}
	switch profile {
	case termenv.ANSI:
		return ansi.Convert16(c)
	case termenv.ANSI256:
		if _, ok := c.(ansi.BasicColor); ok {
			return c
		}
		return ansi.Convert256(c)
	default:
		return c
	}
}
