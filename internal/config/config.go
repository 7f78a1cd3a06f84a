// Package config provides configuration types and defaults for rowedit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/rowedit/internal/log"
)

// Config holds all configuration options for rowedit.
type Config struct {
	Editor    EditorConfig    `mapstructure:"editor"`
	Clipboard ClipboardConfig `mapstructure:"clipboard"`
	Watch     WatchConfig     `mapstructure:"watch"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Flags     map[string]bool `mapstructure:"flags"`
}

// EditorConfig holds the editing and main loop settings.
type EditorConfig struct {
	TabWidth     int           `mapstructure:"tab_width"`     // Display cells per tab character
	PollInterval time.Duration `mapstructure:"poll_interval"` // Delay between input polls
	StatusTTL    time.Duration `mapstructure:"status_ttl"`    // How long a status message stays visible
	ReservedRows int           `mapstructure:"reserved_rows"` // Terminal lines kept for the status and message bars
}

// ClipboardConfig controls the clipboard backends.
type ClipboardConfig struct {
	System bool `mapstructure:"system"` // Use the OS clipboard (xclip, pbcopy, ...)
	OSC52  bool `mapstructure:"osc52"`  // Also emit OSC 52 so remote terminals receive copies
}

// WatchConfig controls the external modification watcher.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// TagStyleConfig is the style for one highlight tag.
// Colors accept ANSI names ("red", "bright-black"), 256-color indexes ("238"),
// hex ("#10B981") or "default".
type TagStyleConfig struct {
	Fg      string `mapstructure:"fg"`
	Bg      string `mapstructure:"bg"`
	Bold    bool   `mapstructure:"bold"`
	Reverse bool   `mapstructure:"reverse"`
}

// ThemeConfig maps every highlight tag to a style.
type ThemeConfig struct {
	Normal    TagStyleConfig `mapstructure:"normal"`
	NonPrint  TagStyleConfig `mapstructure:"nonprint"`
	Comment   TagStyleConfig `mapstructure:"comment"`
	Keyword   TagStyleConfig `mapstructure:"keyword"`
	String    TagStyleConfig `mapstructure:"string"`
	Number    TagStyleConfig `mapstructure:"number"`
	Selection TagStyleConfig `mapstructure:"selection"`
}

// Entries returns the theme as (key, style) pairs in a stable order.
func (t ThemeConfig) Entries() []ThemeEntry {
	return []ThemeEntry{
		{"normal", t.Normal},
		{"nonprint", t.NonPrint},
		{"comment", t.Comment},
		{"keyword", t.Keyword},
		{"string", t.String},
		{"number", t.Number},
		{"selection", t.Selection},
	}
}

// ThemeEntry pairs a theme key with its style.
type ThemeEntry struct {
	Key   string
	Style TagStyleConfig
}

var namedColors = map[string]ansi.BasicColor{
	"black":          ansi.Black,
	"red":            ansi.Red,
	"green":          ansi.Green,
	"yellow":         ansi.Yellow,
	"blue":           ansi.Blue,
	"magenta":        ansi.Magenta,
	"cyan":           ansi.Cyan,
	"white":          ansi.White,
	"bright-black":   ansi.BrightBlack,
	"gray":           ansi.BrightBlack,
	"bright-red":     ansi.BrightRed,
	"bright-green":   ansi.BrightGreen,
	"bright-yellow":  ansi.BrightYellow,
	"bright-blue":    ansi.BrightBlue,
	"bright-magenta": ansi.BrightMagenta,
	"bright-cyan":    ansi.BrightCyan,
	"bright-white":   ansi.BrightWhite,
}

// ParseColor converts a configured color string to a terminal color.
// Empty and "default" return a nil color, meaning the terminal default.
func ParseColor(s string) (ansi.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "default" {
		return nil, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		c := ansi.XParseColor(s)
		if c == nil {
			return nil, fmt.Errorf("invalid hex color %q", s)
		}
		return c, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("unknown color %q", s)
	}
	if n < 0 || n > 255 {
		return nil, fmt.Errorf("color index %d out of range 0-255", n)
	}
	if n < 16 {
		return ansi.BasicColor(n), nil
	}
	return ansi.IndexedColor(n), nil
}

// Validate checks the configuration for values the editor cannot run with.
func Validate(c Config) error {
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width must be between 1 and 16, got %d", c.Editor.TabWidth)
	}
	if c.Editor.PollInterval <= 0 {
		return fmt.Errorf("editor.poll_interval must be positive, got %s", c.Editor.PollInterval)
	}
	if c.Editor.StatusTTL <= 0 {
		return fmt.Errorf("editor.status_ttl must be positive, got %s", c.Editor.StatusTTL)
	}
	if c.Editor.ReservedRows < 2 {
		return fmt.Errorf("editor.reserved_rows must be at least 2, got %d", c.Editor.ReservedRows)
	}
	if c.Watch.Enabled && c.Watch.Debounce <= 0 {
		return fmt.Errorf("watch.debounce must be positive when watching, got %s", c.Watch.Debounce)
	}
	return ValidateTheme(c.Theme)
}

// ValidateTheme checks that every configured color parses.
func ValidateTheme(t ThemeConfig) error {
	for _, e := range t.Entries() {
		if _, err := ParseColor(e.Style.Fg); err != nil {
			return fmt.Errorf("theme.%s.fg: %w", e.Key, err)
		}
		if _, err := ParseColor(e.Style.Bg); err != nil {
			return fmt.Errorf("theme.%s.bg: %w", e.Key, err)
		}
	}
	return nil
}

// DefaultTheme mirrors the classic palette: white text, cyan comments,
// magenta keywords, green strings, blue numbers and a gray selection.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		Normal:    TagStyleConfig{Fg: "white"},
		NonPrint:  TagStyleConfig{Fg: "default", Bg: "default"},
		Comment:   TagStyleConfig{Fg: "cyan"},
		Keyword:   TagStyleConfig{Fg: "magenta"},
		String:    TagStyleConfig{Fg: "green"},
		Number:    TagStyleConfig{Fg: "blue"},
		Selection: TagStyleConfig{Fg: "white", Bg: "bright-black"},
	}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			TabWidth:     4,
			PollInterval: 30 * time.Millisecond,
			StatusTTL:    10 * time.Second,
			ReservedRows: 3,
		},
		Clipboard: ClipboardConfig{
			System: true,
			OSC52:  false,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 250 * time.Millisecond,
		},
		Theme: DefaultTheme(),
		Flags: map[string]bool{
			"render-cache":   true,
			"welcome-banner": true,
		},
	}
}

// DefaultConfigTemplate returns the commented YAML written on first run.
func DefaultConfigTemplate() string {
	return `# rowedit configuration
#
# Lookup order: --config flag, .rowedit/config.yaml, ~/.config/rowedit/config.yaml

editor:
  # Display cells per tab character
  tab_width: 4
  # Delay between input polls
  poll_interval: 30ms
  # How long status messages stay on screen
  status_ttl: 10s
  # Terminal lines reserved below the text (status bar + message line)
  reserved_rows: 3

clipboard:
  # Use the system clipboard when available
  system: true
  # Emit OSC 52 on copy (useful over ssh)
  osc52: false

watch:
  # Report when the open file changes on disk
  enabled: true
  debounce: 250ms

# Colors: ANSI names (red, bright-black), 0-255 indexes or #rrggbb
theme:
  normal:
    fg: white
  nonprint:
    fg: default
    bg: default
  comment:
    fg: cyan
  keyword:
    fg: magenta
  string:
    fg: green
  number:
    fg: blue
  selection:
    fg: white
    bg: bright-black

flags:
  render-cache: true
  welcome-banner: true
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
