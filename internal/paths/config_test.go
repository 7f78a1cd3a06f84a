package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("editor: {}\n"), 0o600))
}

func TestResolveConfig_ExplicitWins(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, ProjectConfig)

	path, ok := ResolveConfig("/etc/rowedit.yaml")

	assert.True(t, ok)
	assert.Equal(t, "/etc/rowedit.yaml", path)
}

func TestResolveConfig_ProjectBeforeUser(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	user, err := UserConfig()
	require.NoError(t, err)
	writeFile(t, user)

	path, ok := ResolveConfig("")
	assert.True(t, ok)
	assert.Equal(t, user, path)

	writeFile(t, ProjectConfig)
	path, ok = ResolveConfig("")
	assert.True(t, ok)
	assert.Equal(t, ProjectConfig, path)
}

func TestResolveConfig_NothingFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	path, ok := ResolveConfig("")

	assert.False(t, ok)
	assert.Empty(t, path)
}

func TestResolveConfig_IgnoresDirectories(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(ProjectConfig, 0o750))

	_, ok := ResolveConfig("")

	assert.False(t, ok)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "x.yaml"), ExpandHome("~/x.yaml"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "~other/x", ExpandHome("~other/x"))
	assert.Equal(t, "rel/x", ExpandHome("rel/x"))
}
