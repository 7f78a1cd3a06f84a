// Package document holds the text being edited as an ordered sequence of rows.
//
// Columns are rune offsets into a row. Display cells are terminal columns:
// tabs expand to tab stops and wide characters take two cells. Every line-structure mutation (split,
// merge, padding on append) goes through Document so callers never touch the
// row slice directly.
package document

import (
	"slices"

	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/rowedit/internal/highlight"
)

// DefaultTabWidth is the number of display cells a tab expands to.
const DefaultTabWidth = 4

// Cell is one display cell of a rendered row.
type Cell struct {
	Ch  rune
	Tag highlight.Tag
	// Cont marks the second cell of a wide character. It carries no glyph.
	Cont bool
}

// cellWidth returns the display cells ch occupies. Zero-width characters
// still get a cell of their own.
func cellWidth(ch rune) int {
	if runewidth.RuneWidth(ch) == 2 {
		return 2
	}
	return 1
}

// Row is one line of text.
type Row struct {
	// Index is the line number the row was loaded from. Informational only;
	// rows are addressed by their position in the document.
	Index   int
	content []rune
}

// NewRow creates a row with the given content.
func NewRow(index int, content string) *Row {
	return &Row{Index: index, content: []rune(content)}
}

// Len returns the number of characters in the row.
func (r *Row) Len() int {
	return len(r.content)
}

// String returns the row content.
func (r *Row) String() string {
	return string(r.content)
}

// Runes returns a copy of the row content.
func (r *Row) Runes() []rune {
	return slices.Clone(r.content)
}

// At returns the character at col. ok is false when col is out of range.
func (r *Row) At(col int) (ch rune, ok bool) {
	if col < 0 || col >= len(r.content) {
		return 0, false
	}
	return r.content[col], true
}

// HasColumn reports whether a character exists at col.
func (r *Row) HasColumn(col int) bool {
	return col >= 0 && col < len(r.content)
}

// IsEnd reports whether col is exactly the end-of-line position.
func (r *Row) IsEnd(col int) bool {
	return col == len(r.content)
}

// Render maps every character to display cells. A tab becomes Normal-tagged
// spaces up to the next multiple of tabWidth, so a leading tab is tabWidth
// cells wide. Any other character becomes one cell tagged by c, followed by
// a continuation cell when it is wide. A nil
// classifier tags everything Normal.
func (r *Row) Render(tabWidth int, c highlight.Classifier) []Cell {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	var tags []highlight.Tag
	if c != nil {
		tags = c.Classify(r.Runes())
	}

	cells := make([]Cell, 0, len(r.content))
	for i, ch := range r.content {
		if ch == '\t' {
			cells = append(cells, Cell{Ch: ' ', Tag: highlight.Normal})
			for len(cells)%tabWidth != 0 {
				cells = append(cells, Cell{Ch: ' ', Tag: highlight.Normal})
			}
			continue
		}
		tag := highlight.Normal
		if i < len(tags) {
			tag = tags[i]
		}
		cells = append(cells, Cell{Ch: ch, Tag: tag})
		if cellWidth(ch) == 2 {
			cells = append(cells, Cell{Tag: tag, Cont: true})
		}
	}
	return cells
}

// DisplayCol returns the display cell where character col starts, using the
// same tab expansion as Render. col is clamped to the row.
func (r *Row) DisplayCol(col, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	col = min(max(col, 0), len(r.content))
	cx := 0
	for _, ch := range r.content[:col] {
		if ch == '\t' {
			cx += tabWidth - cx%tabWidth
			continue
		}
		cx += cellWidth(ch)
	}
	return cx
}

func (r *Row) insert(col int, ch rune) {
	r.content = slices.Insert(r.content, col, ch)
}

func (r *Row) removeBefore(col int) {
	r.content = slices.Delete(r.content, col-1, col)
}

// Document is an ordered sequence of rows.
type Document struct {
	rows []*Row
}

// New creates a document with one row per line.
func New(lines []string) *Document {
	d := &Document{rows: make([]*Row, 0, len(lines))}
	for i, line := range lines {
		d.rows = append(d.rows, NewRow(i, line))
	}
	return d
}

// Len returns the number of rows.
func (d *Document) Len() int {
	return len(d.rows)
}

// Row returns the row at index i, or nil when i is out of range.
func (d *Document) Row(i int) *Row {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	return d.rows[i]
}

// RowLen returns the length of row i, or 0 when the row does not exist.
func (d *Document) RowLen(i int) int {
	if r := d.Row(i); r != nil {
		return r.Len()
	}
	return 0
}

// Lines returns the content of every row.
func (d *Document) Lines() []string {
	lines := make([]string, len(d.rows))
	for i, r := range d.rows {
		lines[i] = r.String()
	}
	return lines
}

// Reset replaces the content of the document.
func (d *Document) Reset(lines []string) {
	*d = *New(lines)
}

// AppendRow adds an empty row at the end.
func (d *Document) AppendRow() {
	d.rows = append(d.rows, NewRow(len(d.rows), ""))
}

// InsertRow inserts a row with content before index at.
// at == Len() appends.
func (d *Document) InsertRow(at int, content string) {
	at = min(max(at, 0), len(d.rows))
	d.rows = slices.Insert(d.rows, at, NewRow(at, content))
}

// RemoveRow deletes row at. Out of range indexes are ignored.
func (d *Document) RemoveRow(at int) {
	if at < 0 || at >= len(d.rows) {
		return
	}
	d.rows = slices.Delete(d.rows, at, at+1)
}

// InsertChar inserts ch at (row, col). When row is past the end the document
// is padded with empty rows up to and including row. col is clamped to the
// row length.
func (d *Document) InsertChar(row, col int, ch rune) {
	for len(d.rows) <= row {
		d.AppendRow()
	}
	r := d.rows[row]
	col = min(max(col, 0), r.Len())
	r.insert(col, ch)
}

// BackspaceChar removes the character at col-1 of row.
// It is a no-op when col is 0 or the position does not exist.
func (d *Document) BackspaceChar(row, col int) {
	r := d.Row(row)
	if r == nil || col <= 0 || col > r.Len() {
		return
	}
	r.removeBefore(col)
}

// SplitRow truncates row to col characters and inserts the remainder as a
// new row right after it. It returns the kept row and the new row.
func (d *Document) SplitRow(row, col int) (kept, added *Row) {
	r := d.Row(row)
	if r == nil {
		return nil, nil
	}
	col = min(max(col, 0), r.Len())
	rest := string(r.content[col:])
	r.content = slices.Clip(r.content[:col])
	d.rows = slices.Insert(d.rows, row+1, NewRow(row+1, rest))
	return r, d.rows[row+1]
}

// MergeRowInto appends row+1 onto row and removes row+1.
// It is a no-op when row is the last row.
func (d *Document) MergeRowInto(row int) {
	r, next := d.Row(row), d.Row(row+1)
	if r == nil || next == nil {
		return
	}
	r.content = append(r.content, next.content...)
	d.RemoveRow(row + 1)
}
