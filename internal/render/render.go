// Package render projects editor state onto a VT/ANSI terminal.
//
// Every frame is a full redraw: the cursor is hidden, the text area, status
// bar and message line are drawn from the top-left cell, and the cursor is
// placed and shown again. Nothing is diffed against the previous frame.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/zjrosen/rowedit/internal/cachemanager"
	"github.com/zjrosen/rowedit/internal/document"
	"github.com/zjrosen/rowedit/internal/editor"
	"github.com/zjrosen/rowedit/internal/highlight"
)

const (
	emptyLineMarker = "~"
	noFilename      = "(no file)"
)

// Options configures a Renderer.
type Options struct {
	TabWidth   int
	Palette    highlight.Palette
	Classifier highlight.Classifier
	Version    string
	// Banner draws the version banner when the document is empty.
	Banner bool
	// Cache memoizes rendered rows by content. Nil disables memoization.
	Cache cachemanager.Manager[[]document.Cell]
}

// Renderer draws frames. It holds no per-frame state.
type Renderer struct {
	tabWidth int
	palette  highlight.Palette
	version  string
	banner   bool
	rows     *cachemanager.Memo[*document.Row, []document.Cell]
}

// New creates a renderer.
func New(opts Options) *Renderer {
	if opts.TabWidth < 1 {
		opts.TabWidth = document.DefaultTabWidth
	}
	if opts.Palette == nil {
		opts.Palette = highlight.DefaultTheme().Compile(termenv.ANSI)
	}
	if opts.Classifier == nil {
		opts.Classifier = highlight.Plain
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	tabWidth, classifier := opts.TabWidth, opts.Classifier
	return &Renderer{
		tabWidth: tabWidth,
		palette:  opts.Palette,
		version:  opts.Version,
		banner:   opts.Banner,
		rows: cachemanager.NewMemo(opts.Cache,
			(*document.Row).String,
			func(r *document.Row) []document.Cell { return r.Render(tabWidth, classifier) },
			opts.Cache == nil),
	}
}

// SetPalette swaps the tag styles used by later frames.
func (r *Renderer) SetPalette(p highlight.Palette) {
	r.palette = p
}

// Render writes one frame to w in a single write.
func (r *Renderer) Render(w io.Writer, e *editor.Editor) error {
	if _, err := io.WriteString(w, r.Frame(e)); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Frame returns the control sequence stream for one full redraw.
func (r *Renderer) Frame(e *editor.Editor) string {
	var b strings.Builder
	doc, vp, cur := e.Document(), e.Viewport(), e.Cursor()

	b.WriteString(ansi.HideCursor)
	b.WriteString(ansi.CursorHomePosition)

	for y := range vp.ScreenRows {
		fileRow := vp.RowOffset + y
		if row := doc.Row(fileRow); row != nil {
			r.drawRow(&b, row, vp)
		} else if r.banner && doc.Len() == 0 && y == vp.ScreenRows/3 {
			r.drawBanner(&b, vp.ScreenCols)
		} else {
			b.WriteString(emptyLineMarker)
		}
		b.WriteString(ansi.EraseLineRight)
		b.WriteString("\r\n")
	}

	b.WriteString(ansi.EraseLineRight)
	b.WriteString(ansi.Style{}.Reverse(true).String())
	b.WriteString(statusLine(e, vp.ScreenCols))
	b.WriteString(ansi.ResetStyle)
	b.WriteString("\r\n")

	if msg := e.Status(); msg != "" {
		b.WriteString(runewidth.Truncate(msg, vp.ScreenCols, ""))
	}
	b.WriteString(ansi.EraseLineRight)

	b.WriteString(ansi.CursorPosition(r.cursorColumn(e)+1, cur.Y+1))
	b.WriteString(ansi.ShowCursor)
	return b.String()
}

// drawRow writes the visible slice of row, switching styles only when the
// tag changes.
func (r *Renderer) drawRow(b *strings.Builder, row *document.Row, vp editor.Viewport) {
	cells := r.rows.Get(row)
	start := row.DisplayCol(vp.ColOffset, r.tabWidth)
	if start >= len(cells) {
		return
	}
	end := min(start+vp.ScreenCols, len(cells))

	current := highlight.Tag(-1)
	for i := start; i < end; i++ {
		c := cells[i]
		if c.Cont {
			continue
		}
		if c.Tag != current {
			b.WriteString(r.palette.Sequence(c.Tag))
			current = c.Tag
		}
		// A wide character cut by the right edge is drawn as a blank.
		if i+1 == end && end < len(cells) && cells[end].Cont {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(c.Ch)
	}
	b.WriteString(ansi.ResetStyle)
}

func (r *Renderer) drawBanner(b *strings.Builder, cols int) {
	const prefix = "rowedit version "
	width := runewidth.StringWidth(prefix + r.version)

	b.WriteString(emptyLineMarker)
	if width >= cols {
		b.WriteString(runewidth.Truncate(prefix+r.version, max(cols-1, 0), ""))
		return
	}
	if pad := (cols - width) / 2; pad > 1 {
		b.WriteString(strings.Repeat(" ", pad-1))
	}
	b.WriteString(prefix)
	b.WriteString(ansi.Style{}.Bold().String())
	b.WriteString(r.version)
	b.WriteString(ansi.ResetStyle)
}

// cursorColumn returns the on-screen column of the cursor. Tabs advance to
// the next tab stop, matching the rendered cells.
func (r *Renderer) cursorColumn(e *editor.Editor) int {
	vp := e.Viewport()
	fileRow, fileCol := e.Position()
	row := e.Document().Row(fileRow)
	if row == nil {
		return 0
	}
	cx := row.DisplayCol(fileCol, r.tabWidth) - row.DisplayCol(vp.ColOffset, r.tabWidth)
	return min(max(cx, 0), vp.ScreenCols-1)
}

// statusLine formats "name (modified) - N lines" on the left and
// "current/total" on the right, padded to width.
func statusLine(e *editor.Editor, width int) string {
	name := e.Filename()
	if name == "" {
		name = noFilename
	}
	modified := ""
	if e.Modified() {
		modified = " (modified)"
	}
	total := e.Document().Len()
	fileRow, _ := e.Position()

	left := fmt.Sprintf("%s%s - %d lines", name, modified, total)
	right := fmt.Sprintf("%d/%d", fileRow+1, total)
	return fit(left, right, width)
}

// fit places left and right in a field of width cells. left is shortened
// first; right is only cut when it alone does not fit.
func fit(left, right string, width int) string {
	rw := runewidth.StringWidth(right)
	if rw >= width {
		return runewidth.Truncate(right, width, "")
	}
	if lw := runewidth.StringWidth(left); lw+rw >= width {
		left = runewidth.Truncate(left, max(width-rw-1, 0), "…")
	}
	gap := width - runewidth.StringWidth(left) - rw
	return left + strings.Repeat(" ", gap) + right
}

// Clear erases the screen and restores the cursor, leaving the terminal
// ready for the shell.
func Clear(w io.Writer) error {
	_, err := io.WriteString(w, ansi.EraseEntireScreen+ansi.CursorHomePosition+ansi.ResetStyle+ansi.ShowCursor)
	return err
}
