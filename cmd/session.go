package cmd

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/zjrosen/rowedit/internal/app"
	"github.com/zjrosen/rowedit/internal/cachemanager"
	"github.com/zjrosen/rowedit/internal/clipboard"
	"github.com/zjrosen/rowedit/internal/config"
	"github.com/zjrosen/rowedit/internal/document"
	"github.com/zjrosen/rowedit/internal/editor"
	"github.com/zjrosen/rowedit/internal/flags"
	"github.com/zjrosen/rowedit/internal/highlight"
	"github.com/zjrosen/rowedit/internal/keys"
	"github.com/zjrosen/rowedit/internal/log"
	"github.com/zjrosen/rowedit/internal/render"
	"github.com/zjrosen/rowedit/internal/terminal"
	"github.com/zjrosen/rowedit/internal/textfile"
	"github.com/zjrosen/rowedit/internal/watcher"
)

// session is one editing run and the resources it holds.
type session struct {
	app     *app.App
	editor  *editor.Editor
	watcher *watcher.Watcher
}

// newSession builds the editor stack for term from c and opens path.
// An empty path edits a scratch buffer. overrides are "name=value" feature
// flag assignments applied over the config.
func newSession(term app.Terminal, resized *terminal.Flag, path string, c config.Config, overrides []string) (*session, error) {
	registry := flags.New(c.Flags)
	if err := registry.Override(overrides); err != nil {
		return nil, err
	}

	theme, err := highlight.ThemeFromConfig(c.Theme)
	if err != nil {
		return nil, fmt.Errorf("building theme: %w", err)
	}

	var rowCache cachemanager.Manager[[]document.Cell]
	if registry.Enabled(flags.FlagRenderCache) {
		rowCache = cachemanager.NewInMemory[[]document.Cell]("rendered-rows",
			cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	}
	renderer := render.New(render.Options{
		TabWidth: c.Editor.TabWidth,
		Palette:  theme.Compile(termenv.EnvColorProfile()),
		Version:  version,
		Banner:   registry.Enabled(flags.FlagWelcomeBanner),
		Cache:    rowCache,
	})

	rows, cols, err := term.Size()
	if err != nil {
		return nil, fmt.Errorf("querying terminal size: %w", err)
	}
	ed := editor.New(rows, cols, editor.Options{
		ReservedRows: c.Editor.ReservedRows,
		StatusTTL:    c.Editor.StatusTTL,
		Store:        textfile.Store{},
	})
	if path != "" {
		if err := ed.Open(path); err != nil {
			return nil, fmt.Errorf("could not open the file provided: %w", err)
		}
	}

	var osc52 io.Writer
	if c.Clipboard.OSC52 {
		osc52 = term
	}

	s := &session{editor: ed}
	var changes <-chan struct{}
	if c.Watch.Enabled && path != "" {
		changes = s.watch(path, c.Watch)
	}

	s.app = app.New(term, ed, app.Options{
		Renderer:     renderer,
		Clipboard:    clipboard.NewDefault(c.Clipboard.System, osc52),
		Keys:         keys.DefaultKeyMap(),
		Resized:      resized,
		Changes:      changes,
		PollInterval: c.Editor.PollInterval,
	})
	return s, nil
}

// watch starts the file watcher. Failures only disable change notices.
func (s *session) watch(path string, wc config.WatchConfig) <-chan struct{} {
	w, err := watcher.New(watcher.Config{Path: path, Debounce: wc.Debounce})
	if err != nil {
		log.Warn(log.CatWatcher, "watcher unavailable", "path", path, "error", err)
		return nil
	}
	changes, err := w.Start()
	if err != nil {
		log.Warn(log.CatWatcher, "watcher unavailable", "path", path, "error", err)
		_ = w.Stop()
		return nil
	}
	s.watcher = w
	return changes
}

// Close releases the watcher.
func (s *session) Close() {
	if s.watcher == nil {
		return
	}
	if err := s.watcher.Stop(); err != nil {
		log.Warn(log.CatWatcher, "stopping watcher failed", "error", err)
	}
}
