// Package editor owns an editing session: the document, the visible window
// into it and the on-screen cursor.
//
// The cursor is stored relative to the window. Absolute document coordinates
// are (RowOffset+Y, ColOffset+X). After every exported operation:
//
//   - RowOffset+Y is a row index or exactly Len() (the append row)
//   - ColOffset+X never exceeds the current row length
//   - 0 <= Y < ScreenRows and 0 <= X < ScreenCols
//
// Every navigation and editing operation is built from the single-step
// MoveCursor and Backspace primitives so scrolling and clamping behave the
// same however a position was reached.
package editor

import (
	"fmt"
	"time"

	"github.com/zjrosen/rowedit/internal/document"
	"github.com/zjrosen/rowedit/internal/log"
	"github.com/zjrosen/rowedit/internal/textfile"
)

// DefaultReservedRows is the number of terminal lines kept for the status
// bar, the message line and one spare line.
const DefaultReservedRows = 3

// DefaultStatusTTL is how long a status message stays visible.
const DefaultStatusTTL = 10 * time.Second

// Viewport is the window into the document.
type Viewport struct {
	RowOffset  int
	ColOffset  int
	ScreenRows int
	ScreenCols int
}

// Cursor is the caret position relative to the viewport.
type Cursor struct {
	X int
	Y int
}

// Store loads and saves documents.
type Store interface {
	Load(path string) ([]string, error)
	Save(path string, lines []string) error
}

// Options configures an Editor. Zero values select defaults.
type Options struct {
	ReservedRows int
	StatusTTL    time.Duration
	Store        Store
	Now          func() time.Time
}

// Editor is one editing session.
type Editor struct {
	doc *document.Document
	vp  Viewport
	cur Cursor

	filename string
	modified bool

	status       string
	statusExpiry time.Time
	statusTTL    time.Duration

	reserved int
	store    Store
	now      func() time.Time
}

// New creates an editor for a terminal of the given size with an empty document.
func New(termRows, termCols int, opts Options) *Editor {
	if opts.ReservedRows <= 0 {
		opts.ReservedRows = DefaultReservedRows
	}
	if opts.StatusTTL <= 0 {
		opts.StatusTTL = DefaultStatusTTL
	}
	if opts.Store == nil {
		opts.Store = textfile.Store{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	e := &Editor{
		doc:       document.New(nil),
		statusTTL: opts.StatusTTL,
		reserved:  opts.ReservedRows,
		store:     opts.Store,
		now:       opts.Now,
	}
	e.SetScreenSize(termRows, termCols)
	return e
}

// NewWithLines creates an editor holding lines. Used for scratch buffers and tests.
func NewWithLines(termRows, termCols int, lines []string, opts Options) *Editor {
	e := New(termRows, termCols, opts)
	e.doc.Reset(lines)
	return e
}

// SetScreenSize updates the window for a terminal of termRows x termCols.
// The cursor keeps its absolute position; offsets move to keep it visible.
func (e *Editor) SetScreenSize(termRows, termCols int) {
	e.vp.ScreenRows = max(termRows-e.reserved, 1)
	e.vp.ScreenCols = max(termCols, 1)

	if e.cur.Y >= e.vp.ScreenRows {
		e.vp.RowOffset += e.cur.Y - (e.vp.ScreenRows - 1)
		e.cur.Y = e.vp.ScreenRows - 1
	}
	if e.cur.X >= e.vp.ScreenCols {
		e.vp.ColOffset += e.cur.X - (e.vp.ScreenCols - 1)
		e.cur.X = e.vp.ScreenCols - 1
	}
	log.Debug(log.CatEditor, "screen size", "rows", e.vp.ScreenRows, "cols", e.vp.ScreenCols)
}

// Document returns the document. Callers must treat it as read-only.
func (e *Editor) Document() *document.Document { return e.doc }

// Viewport returns the current window.
func (e *Editor) Viewport() Viewport { return e.vp }

// Cursor returns the window-relative cursor.
func (e *Editor) Cursor() Cursor { return e.cur }

// Position returns the absolute document position of the cursor.
func (e *Editor) Position() (row, col int) {
	return e.fileRow(), e.fileCol()
}

// Filename returns the path of the open file, or "" for a scratch buffer.
func (e *Editor) Filename() string { return e.filename }

// Modified reports whether the document changed since the last load or save.
func (e *Editor) Modified() bool { return e.modified }

// Status returns the current status message, or "" when none is shown.
func (e *Editor) Status() string { return e.status }

// SetStatus shows a message for the configured time-to-live.
func (e *Editor) SetStatus(format string, args ...any) {
	e.status = fmt.Sprintf(format, args...)
	e.statusExpiry = e.now().Add(e.statusTTL)
}

// ClearStatus removes the status message.
func (e *Editor) ClearStatus() {
	e.status = ""
	e.statusExpiry = time.Time{}
}

// ExpireStatus clears the status message once its time-to-live has elapsed.
// It reports whether a message was cleared.
func (e *Editor) ExpireStatus() bool {
	if e.status == "" || e.now().Before(e.statusExpiry) {
		return false
	}
	e.ClearStatus()
	return true
}

func (e *Editor) fileRow() int { return e.vp.RowOffset + e.cur.Y }
func (e *Editor) fileCol() int { return e.vp.ColOffset + e.cur.X }

func (e *Editor) leftEdge() bool   { return e.cur.X == 0 }
func (e *Editor) rightEdge() bool  { return e.cur.X == e.vp.ScreenCols-1 }
func (e *Editor) topEdge() bool    { return e.cur.Y == 0 }
func (e *Editor) bottomEdge() bool { return e.cur.Y == e.vp.ScreenRows-1 }
