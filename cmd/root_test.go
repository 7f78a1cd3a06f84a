package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rowedit/internal/config"
	"github.com/zjrosen/rowedit/internal/highlight"
	"github.com/zjrosen/rowedit/internal/paths"
	"github.com/zjrosen/rowedit/internal/terminal"
	"github.com/zjrosen/rowedit/internal/testutil"
)

// freshConfig resets the global viper and config state for one test.
func freshConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	cfgFile = ""
	cfg = config.Config{}
	t.Cleanup(func() {
		viper.Reset()
		cfgFile = ""
		cfg = config.Config{}
	})
}

func testConfig() config.Config {
	c := config.Defaults()
	c.Clipboard.System = false
	c.Editor.PollInterval = time.Millisecond
	return c
}

func TestInitConfig_WritesDefaultWhenMissing(t *testing.T) {
	freshConfig(t)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	initConfig()

	_, err := os.Stat(paths.ProjectConfig)
	require.NoError(t, err, "default config written")
	assert.Equal(t, config.Defaults(), cfg)
}

func TestInitConfig_ReadsExplicitFile(t *testing.T) {
	freshConfig(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor:\n  tab_width: 8\nwatch:\n  enabled: false\nflags:\n  welcome-banner: false\n"), 0o600))
	cfgFile = path

	initConfig()

	assert.Equal(t, 8, cfg.Editor.TabWidth)
	assert.False(t, cfg.Watch.Enabled)
	assert.False(t, cfg.Flags["welcome-banner"])
	assert.Equal(t, config.Defaults().Editor.PollInterval, cfg.Editor.PollInterval, "unset keys keep defaults")
	assert.Equal(t, "cyan", cfg.Theme.Comment.Fg)
}

func TestNewSession_OpensFileAndRuns(t *testing.T) {
	path := testutil.NewFile(t, "notes.txt").WithLines("hello").Build()
	ft := testutil.NewFakeTerminal(testutil.Size(10, 40), testutil.Keys("!\x13\x11"))

	s, err := newSession(ft, &terminal.Flag{}, path, testConfig(), nil)
	require.NoError(t, err)
	defer s.Close()
	require.NotNil(t, s.watcher)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.app.Run(ctx))

	assert.Equal(t, "!hello\n", testutil.ReadFile(t, path))
	assert.Contains(t, ft.Output(), "notes.txt")
}

func TestNewSession_ScratchBufferShowsBanner(t *testing.T) {
	ft := testutil.NewFakeTerminal(testutil.Size(12, 60), testutil.Keys("\x11"))
	c := testConfig()

	s, err := newSession(ft, nil, "", c, nil)
	require.NoError(t, err)
	defer s.Close()
	assert.Nil(t, s.watcher, "nothing to watch without a file")

	require.NoError(t, s.app.Run(context.Background()))
	assert.Contains(t, ansi.Strip(ft.Output()), "rowedit version "+version)
}

func TestNewSession_BannerFlagOff(t *testing.T) {
	ft := testutil.NewFakeTerminal(testutil.Size(12, 60), testutil.Keys("\x11"))
	c := testConfig()
	c.Flags = map[string]bool{"welcome-banner": false}

	s, err := newSession(ft, nil, "", c, nil)
	require.NoError(t, err)
	require.NoError(t, s.app.Run(context.Background()))

	assert.NotContains(t, ansi.Strip(ft.Output()), "rowedit version")
}

func TestNewSession_FlagOverride(t *testing.T) {
	ft := testutil.NewFakeTerminal(testutil.Size(12, 60), testutil.Keys("\x11"))

	s, err := newSession(ft, nil, "", testConfig(), []string{"welcome-banner=false"})
	require.NoError(t, err)
	require.NoError(t, s.app.Run(context.Background()))

	assert.NotContains(t, ansi.Strip(ft.Output()), "rowedit version")

	_, err = newSession(ft, nil, "", testConfig(), []string{"no-such-flag"})
	assert.ErrorContains(t, err, "unknown feature flag")
}

func TestNewSession_WatchDisabled(t *testing.T) {
	path := testutil.NewFile(t, "a.txt").WithLines("x").Build()
	c := testConfig()
	c.Watch.Enabled = false

	s, err := newSession(testutil.NewFakeTerminal(), nil, path, c, nil)
	require.NoError(t, err)

	assert.Nil(t, s.watcher)
}

func TestNewSession_OpenFailureIsFatal(t *testing.T) {
	dir := t.TempDir()

	_, err := newSession(testutil.NewFakeTerminal(), nil, dir, testConfig(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not open the file provided")
}

func TestNewSession_InvalidThemeColor(t *testing.T) {
	c := testConfig()
	c.Theme.Keyword.Fg = "chartreuse-ish"

	_, err := newSession(testutil.NewFakeTerminal(), nil, "", c, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme.keyword.fg")
}

func TestPreviewTheme(t *testing.T) {
	var buf bytes.Buffer
	p := highlight.Palette{highlight.Normal: "<n>", highlight.Comment: "<c>"}

	require.NoError(t, previewTheme(&buf, p))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(highlight.Tags))
	assert.True(t, strings.HasPrefix(lines[0], "normal     <n>"))
	assert.Contains(t, lines[2], "<c>The quick brown fox")
	assert.Contains(t, lines[3], "<n>", "unstyled tags fall back to normal")
}

func TestThemeReset(t *testing.T) {
	freshConfig(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor:\n  tab_width: 2\ntheme:\n  normal:\n    fg: red\n"), 0o600))
	cfgFile = path
	initConfig()
	require.Equal(t, "red", cfg.Theme.Normal.Fg)

	var out bytes.Buffer
	themeResetCmd.SetOut(&out)
	require.NoError(t, themeResetCmd.RunE(themeResetCmd, nil))

	assert.Equal(t, "theme reset in "+path+"\n", out.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tab_width: 2")
	assert.Contains(t, string(data), "fg: white")
	assert.NotContains(t, string(data), "fg: red")
}
