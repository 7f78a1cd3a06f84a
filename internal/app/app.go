// Package app runs the editing session: it polls the terminal for input,
// applies each command to the editor and redraws the screen.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/rowedit/internal/editor"
	"github.com/zjrosen/rowedit/internal/input"
	"github.com/zjrosen/rowedit/internal/keys"
	"github.com/zjrosen/rowedit/internal/log"
	"github.com/zjrosen/rowedit/internal/render"
	"github.com/zjrosen/rowedit/internal/terminal"
)

// DefaultPollInterval is the delay between reads when no input is pending.
const DefaultPollInterval = 30 * time.Millisecond

// Terminal is the screen the session reads from and draws on.
type Terminal interface {
	io.Reader
	io.Writer
	Size() (rows, cols int, err error)
}

// Clipboard holds copied text.
type Clipboard interface {
	Get() string
	Set(text string)
}

// Options configures an App.
type Options struct {
	Renderer  *render.Renderer
	Clipboard Clipboard
	Keys      keys.KeyMap

	// Resized is raised by the resize notifier. Nil disables resize handling.
	Resized *terminal.Flag
	// Changes delivers external modification notices for the open file.
	Changes <-chan struct{}

	PollInterval time.Duration
	// Idle is called between empty reads while an escape sequence is
	// incomplete. Nil sleeps briefly.
	Idle func()
}

// App is one editing session.
type App struct {
	id      string
	term    Terminal
	ed      *editor.Editor
	dec     *input.Decoder
	rend    *render.Renderer
	clip    Clipboard
	keys    keys.KeyMap
	resized *terminal.Flag
	changes <-chan struct{}
	poll    time.Duration
	log     log.Scope
}

// New creates a session editing ed on term.
func New(term Terminal, ed *editor.Editor, opts Options) *App {
	if opts.Renderer == nil {
		opts.Renderer = render.New(render.Options{})
	}
	if opts.Clipboard == nil {
		opts.Clipboard = &memClipboard{}
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}

	var decOpts []input.Option
	if opts.Idle != nil {
		decOpts = append(decOpts, input.WithIdle(opts.Idle))
	}

	id := uuid.NewString()
	return &App{
		id:      id,
		term:    term,
		ed:      ed,
		dec:     input.NewDecoder(term, decOpts...),
		rend:    opts.Renderer,
		clip:    opts.Clipboard,
		keys:    opts.Keys,
		resized: opts.Resized,
		changes: opts.Changes,
		poll:    opts.PollInterval,
		log:     log.With("session", id),
	}
}

// ID returns the session id used in log entries.
func (a *App) ID() string { return a.id }

// Run shows the key help, then processes input until Quit or until ctx is
// done. The screen is cleared on return.
func (a *App) Run(ctx context.Context) (err error) {
	a.log.Info(log.CatEditor, "session started", "file", a.ed.Filename())
	defer func() {
		if cerr := render.Clear(a.term); cerr != nil && err == nil {
			err = fmt.Errorf("clearing screen: %w", cerr)
		}
		a.log.Info(log.CatEditor, "session ended")
	}()

	if help := keys.HelpLine(a.keys.ShortHelp()...); help != "" {
		a.ed.SetStatus("%s", help)
	}
	if err := a.rend.Render(a.term, a.ed); err != nil {
		return err
	}

	for {
		cmd := a.dec.Next(ctx)
		if ctx.Err() != nil {
			a.log.Debug(log.CatEditor, "session cancelled")
			return nil
		}
		if a.Apply(cmd) {
			return nil
		}

		if a.resized.TestAndClear() {
			a.refreshSize()
		}
		a.drainChanges()
		a.ed.ExpireStatus()

		if err := a.rend.Render(a.term, a.ed); err != nil {
			return err
		}

		if cmd.Kind == input.Ignore {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(a.poll):
			}
		}
	}
}

// Apply runs one command against the editor. It reports whether the
// session should end.
func (a *App) Apply(cmd input.Command) (quit bool) {
	if cmd.Kind != input.Ignore {
		// Kind only, so typed text never reaches the log file.
		a.log.Debug(log.CatInput, "command", "cmd", cmd.Kind.String())
	}
	if !a.keys.Enabled(cmd.Kind) {
		return false
	}

	e := a.ed
	switch cmd.Kind {
	case input.MoveUp:
		e.MoveCursor(editor.Up)
	case input.MoveDown:
		e.MoveCursor(editor.Down)
	case input.MoveLeft:
		e.MoveCursor(editor.Left)
	case input.MoveRight:
		e.MoveCursor(editor.Right)
	case input.MoveLeftWord:
		e.CursorToLeftWord()
	case input.MoveRightWord:
		e.CursorToRightWord()
	case input.PageUp:
		e.PageCursor(editor.Up)
	case input.PageDown:
		e.PageCursor(editor.Down)
	case input.GoHome:
		e.CursorToStartOfLine()
	case input.GoEnd:
		e.CursorToEndOfLine()
	case input.Backspace:
		e.Backspace()
	case input.BackspaceWord:
		e.BackspaceWord()
	case input.BackspaceLine:
		e.BackspaceToStartOfLine()
	case input.Save:
		a.save()
	case input.Open:
		e.SetStatus("Opening files is not yet supported")
	case input.Copy:
		if text, ok := e.CurrentLine(); ok {
			a.clip.Set(text)
			e.SetStatus("Copied line")
		}
	case input.Cut:
		if text, ok := e.CutLine(); ok {
			a.clip.Set(text)
			e.SetStatus("Cut line")
		}
	case input.Paste:
		e.InsertString(a.clip.Get())
	case input.Refresh:
		a.refreshSize()
	case input.Quit:
		return true
	case input.Char:
		a.insert(cmd.Ch)
	}
	return false
}

func (a *App) insert(ch rune) {
	switch {
	case ch == '\n':
		a.ed.Newline()
	case ch < 0x20 && ch != '\t', ch == 0x7F:
		// Unbound control characters are not text.
	default:
		a.ed.InsertChar(ch)
	}
}

func (a *App) save() {
	e := a.ed
	wrote, err := e.Save()
	switch {
	case errors.Is(err, editor.ErrNoFilename):
		e.SetStatus("Cannot save: no file name")
	case err != nil:
		e.SetStatus("Can't save! I/O error: %v", err)
	case wrote:
		e.SetStatus("%d lines written to %s", e.Document().Len(), e.Filename())
	default:
		e.SetStatus("No changes to save")
	}
}

func (a *App) refreshSize() {
	rows, cols, err := a.term.Size()
	if err != nil {
		a.log.Warn(log.CatTerm, "size query failed", "error", err)
		return
	}
	a.ed.SetScreenSize(rows, cols)
}

// drainChanges handles a pending external modification notice. A clean
// buffer is reloaded; unsaved edits are kept and the user is told.
func (a *App) drainChanges() {
	select {
	case <-a.changes:
	default:
		return
	}

	e := a.ed
	changed, err := e.DiskChanged()
	if err != nil {
		a.log.Warn(log.CatWatcher, "checking file failed", "error", err)
		return
	}
	if !changed {
		return
	}
	if e.Modified() {
		e.SetStatus("%s changed on disk", e.Filename())
		return
	}
	if err := e.Reload(); err != nil {
		a.log.ErrorErr(log.CatWatcher, "reload failed", err)
		e.SetStatus("%s changed on disk", e.Filename())
		return
	}
	e.SetStatus("%s reloaded from disk", e.Filename())
}

// memClipboard is the in-process clipboard used when none is configured.
type memClipboard struct{ text string }

func (c *memClipboard) Get() string     { return c.text }
func (c *memClipboard) Set(text string) { c.text = text }
