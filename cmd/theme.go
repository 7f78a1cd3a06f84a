package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/rowedit/internal/config"
	"github.com/zjrosen/rowedit/internal/highlight"
	"github.com/zjrosen/rowedit/internal/paths"
)

var themePreviewCmd = &cobra.Command{
	Use:   "theme:preview",
	Short: "Show every highlight style of the configured theme",
	Long: `Print one sample line per highlight tag using the configured theme.

Colors are reduced to what the terminal supports; NO_COLOR disables them.

Examples:
  rowedit theme:preview
  rowedit theme:preview --config ./other.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := highlight.ThemeFromConfig(cfg.Theme)
		if err != nil {
			return fmt.Errorf("building theme: %w", err)
		}
		return previewTheme(cmd.OutOrStdout(), theme.Compile(termenv.EnvColorProfile()))
	},
}

var themeResetCmd = &cobra.Command{
	Use:   "theme:reset",
	Short: "Restore the default theme in the config file",
	Long: `Replace the theme section of the config file with the built-in theme.

Other sections and their comments are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.ConfigFileUsed()
		if path == "" {
			path = paths.ProjectConfig
		}
		if err := config.SaveTheme(path, config.DefaultTheme()); err != nil {
			return fmt.Errorf("resetting theme: %w", err)
		}
		cfg.Theme = config.DefaultTheme()
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "theme reset in %s\n", path)
		return err
	},
}

func init() {
	rootCmd.AddCommand(themePreviewCmd)
	rootCmd.AddCommand(themeResetCmd)
}

func previewTheme(w io.Writer, p highlight.Palette) error {
	for _, tag := range highlight.Tags {
		if _, err := fmt.Fprintf(w, "%-10s %s%s%s\n", tag, p.Sequence(tag), "The quick brown fox 0123", ansi.ResetStyle); err != nil {
			return err
		}
	}
	return nil
}
