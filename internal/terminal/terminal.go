// Package terminal puts the controlling terminal into raw, polled mode and
// reports its size and resize notifications.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/zjrosen/rowedit/internal/log"
)

// ErrNotTerminal is returned by Open when input is not a terminal.
var ErrNotTerminal = errors.New("input is not a terminal")

// Terminal is a raw-mode terminal. Reads never block: they return zero
// bytes when no input is pending.
type Terminal struct {
	in    *os.File
	out   *os.File
	state *term.State

	// Resized is set whenever the window size changes.
	Resized *Flag

	stopResize func()
	closeOnce  sync.Once
}

// Open switches in to raw mode with polling reads and enters the
// alternate screen on out. Close restores both.
func Open(in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("entering raw mode: %w", err)
	}
	if err := setPolling(fd); err != nil {
		_ = term.Restore(fd, state)
		return nil, fmt.Errorf("enabling polled reads: %w", err)
	}

	t := &Terminal{in: in, out: out, state: state, Resized: &Flag{}}
	t.stopResize = notifyResize(t.Resized)

	if _, err := io.WriteString(out, ansi.SetModeAltScreenSaveCursor); err != nil {
		log.Warn(log.CatTerm, "entering alternate screen failed", "error", err)
	}
	log.Debug(log.CatTerm, "raw mode enabled", "fd", fd)
	return t, nil
}

// Read reads pending input. It returns 0, io.EOF when nothing is pending.
func (t *Terminal) Read(p []byte) (int, error) {
	return t.in.Read(p)
}

// Write writes to the terminal.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Size returns the window size in rows and columns.
func (t *Terminal) Size() (rows, cols int, err error) {
	cols, rows, err = term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("querying window size: %w", err)
	}
	return rows, cols, nil
}

// Close leaves the alternate screen and restores the original terminal
// mode. It is safe to call more than once.
func (t *Terminal) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.stopResize()
		if _, werr := io.WriteString(t.out, ansi.ResetModeAltScreenSaveCursor); werr != nil {
			log.Warn(log.CatTerm, "leaving alternate screen failed", "error", werr)
		}
		if rerr := term.Restore(int(t.in.Fd()), t.state); rerr != nil {
			err = fmt.Errorf("restoring terminal: %w", rerr)
			return
		}
		log.Debug(log.CatTerm, "terminal restored")
	})
	return err
}
