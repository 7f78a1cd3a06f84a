package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTheme_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	theme := DefaultTheme()
	theme.Keyword = TagStyleConfig{Fg: "#FF0000", Bold: true}

	require.NoError(t, SaveTheme(configPath, theme))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "theme:")
	assert.Contains(t, string(data), "fg: '#FF0000'")
	assert.Contains(t, string(data), "bold: true")
}

func TestSaveTheme_PreservesOtherConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	initial := `# my settings
editor:
  tab_width: 8
theme:
  normal:
    fg: red
`
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0644))

	theme := DefaultTheme()
	theme.Normal.Fg = "green"
	require.NoError(t, SaveTheme(configPath, theme))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# my settings")
	assert.Contains(t, string(data), "tab_width: 8")
	assert.NotContains(t, string(data), "fg: red")

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())
	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.Equal(t, 8, cfg.Editor.TabWidth)
	assert.Equal(t, theme, cfg.Theme)
}

func TestSaveTheme_AppendsMissingSection(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("watch:\n  enabled: false\n"), 0644))

	require.NoError(t, SaveTheme(configPath, DefaultTheme()))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "enabled: false")
	assert.Contains(t, string(data), "selection:")
}

func TestSaveTheme_RejectsInvalidTheme(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	theme := DefaultTheme()
	theme.Comment.Fg = "not-a-color"

	err := SaveTheme(configPath, theme)
	require.Error(t, err)
	_, statErr := os.Stat(configPath)
	assert.True(t, os.IsNotExist(statErr), "invalid theme must not create a file")
}
