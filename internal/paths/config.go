// Package paths resolves the locations rowedit reads configuration from.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// ProjectConfig is the per-directory config file, relative to the working
// directory. It is also where a default config is written on first run.
const ProjectConfig = ".rowedit/config.yaml"

// UserConfig returns ~/.config/rowedit/config.yaml.
func UserConfig() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rowedit", "config.yaml"), nil
}

// ResolveConfig picks the config file to read.
//
// Lookup order:
//   - explicit, when not empty ("~/" is expanded)
//   - .rowedit/config.yaml in the working directory
//   - ~/.config/rowedit/config.yaml
//
// ok is false when no file exists and no explicit path was given.
func ResolveConfig(explicit string) (path string, ok bool) {
	if explicit != "" {
		return ExpandHome(explicit), true
	}
	if exists(ProjectConfig) {
		return ProjectConfig, true
	}
	if user, err := UserConfig(); err == nil && exists(user) {
		return user, true
	}
	return "", false
}

// ExpandHome replaces a leading "~/" with the home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
