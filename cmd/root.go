package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/rowedit/internal/config"
	"github.com/zjrosen/rowedit/internal/log"
	"github.com/zjrosen/rowedit/internal/paths"
	"github.com/zjrosen/rowedit/internal/terminal"
)

var (
	version   = "dev"
	cfgFile       string
	debugFlag     bool
	flagOverrides []string
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "rowedit [file]",
	Short: "A small screen-oriented text editor",
	Long: `rowedit edits plain text files inside the terminal.

The file is created when it does not exist. Without a file a scratch
buffer is opened; it cannot be saved.`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runEditor,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/rowedit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (path from ROWEDIT_LOG)")
	rootCmd.Flags().StringSliceVar(&flagOverrides, "flag", nil,
		"override a feature flag, e.g. --flag welcome-banner=false (repeatable)")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("editor.tab_width", defaults.Editor.TabWidth)
	viper.SetDefault("editor.poll_interval", defaults.Editor.PollInterval)
	viper.SetDefault("editor.status_ttl", defaults.Editor.StatusTTL)
	viper.SetDefault("editor.reserved_rows", defaults.Editor.ReservedRows)
	viper.SetDefault("clipboard.system", defaults.Clipboard.System)
	viper.SetDefault("clipboard.osc52", defaults.Clipboard.OSC52)
	viper.SetDefault("watch.enabled", defaults.Watch.Enabled)
	viper.SetDefault("watch.debounce", defaults.Watch.Debounce)
	for _, e := range defaults.Theme.Entries() {
		viper.SetDefault("theme."+e.Key+".fg", e.Style.Fg)
		viper.SetDefault("theme."+e.Key+".bg", e.Style.Bg)
		viper.SetDefault("theme."+e.Key+".bold", e.Style.Bold)
		viper.SetDefault("theme."+e.Key+".reverse", e.Style.Reverse)
	}
	viper.SetDefault("flags", defaults.Flags)

	if path, ok := paths.ResolveConfig(cfgFile); ok {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			log.Warn(log.CatConfig, "reading config failed", "path", path, "error", err)
		}
	} else if err := config.WriteDefaultConfig(paths.ProjectConfig); err == nil {
		// No config file found anywhere - create default at .rowedit/config.yaml
		viper.SetConfigFile(paths.ProjectConfig)
		_ = viper.ReadInConfig()
	}
	// If the default could not be written, just continue with defaults

	_ = viper.Unmarshal(&cfg)
}

// setupLogging enables the debug log when asked for by flag or env var.
func setupLogging() (func(), error) {
	if !debugFlag && os.Getenv("ROWEDIT_DEBUG") == "" {
		return func() {}, nil
	}
	logPath := os.Getenv("ROWEDIT_LOG")
	if logPath == "" {
		logPath = "rowedit-debug.log"
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return nil, fmt.Errorf("initializing log: %w", err)
	}
	if name := os.Getenv("ROWEDIT_LOG_LEVEL"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("ROWEDIT_LOG_LEVEL: %w", err)
		}
		log.SetMinLevel(level)
	}
	log.Info(log.CatConfig, "rowedit starting", "version", version, "config", viper.ConfigFileUsed())
	return cleanup, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	cleanupLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer cleanupLog()

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	}

	term, err := terminal.Open(os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer func() {
		if cerr := term.Close(); cerr != nil {
			log.ErrorErr(log.CatTerm, "restoring terminal failed", cerr)
		}
	}()

	s, err := newSession(term, term.Resized, path, cfg, flagOverrides)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.app.Run(ctx); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version shown in the welcome banner (called from
// main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// SetBuildInfo sets the text printed by --version.
func SetBuildInfo(info string) {
	rootCmd.Version = info
}
