package editor

import "github.com/zjrosen/rowedit/internal/log"

// InsertChar inserts ch at the cursor and advances one column, scrolling at
// the right edge. Typing on the append row creates it.
func (e *Editor) InsertChar(ch rune) {
	e.doc.InsertChar(e.fileRow(), e.fileCol(), ch)
	if e.rightEdge() {
		e.vp.ColOffset++
	} else {
		e.cur.X++
	}
	e.modified = true
}

// InsertString inserts s at the cursor. Line breaks start new rows; carriage
// returns are dropped so CRLF text pastes as one row per line.
func (e *Editor) InsertString(s string) {
	for _, ch := range s {
		switch ch {
		case '\r':
		case '\n':
			e.Newline()
		default:
			e.InsertChar(ch)
		}
	}
}

// Newline breaks the current row at the cursor and moves to the start of
// the row below.
func (e *Editor) Newline() {
	fileRow, fileCol := e.fileRow(), e.fileCol()
	n := e.doc.Len()
	switch {
	case fileRow > n:
		return
	case fileRow == n:
		e.doc.AppendRow()
	case fileCol == 0:
		e.doc.InsertRow(fileRow, "")
	default:
		e.doc.SplitRow(fileRow, fileCol)
	}

	e.stepDown()
	e.cur.X = 0
	e.vp.ColOffset = 0
	e.modified = true
	log.Debug(log.CatEditor, "newline", "row", fileRow, "col", fileCol, "rows", e.doc.Len())
}

// Backspace deletes the character before the cursor. At column 0 the current
// row is joined onto the previous one and the cursor lands at the join point.
func (e *Editor) Backspace() {
	fileRow, fileCol := e.fileRow(), e.fileCol()
	if fileRow >= e.doc.Len() || (fileRow == 0 && fileCol == 0) {
		return
	}

	if fileCol == 0 {
		join := e.doc.RowLen(fileRow - 1)
		e.doc.MergeRowInto(fileRow - 1)
		if e.topEdge() {
			e.vp.RowOffset--
		} else {
			e.cur.Y--
		}
		e.vp.ColOffset = 0
		e.cur.X = join
		if e.cur.X > e.vp.ScreenCols-1 {
			e.vp.ColOffset = join - (e.vp.ScreenCols - 1)
			e.cur.X = e.vp.ScreenCols - 1
		}
		e.modified = true
		return
	}

	e.doc.BackspaceChar(fileRow, fileCol)
	if e.leftEdge() {
		if e.vp.ColOffset > 0 {
			e.vp.ColOffset--
		}
	} else {
		e.cur.X--
	}
	e.modified = true
}

// CurrentLine returns the content of the row under the cursor.
func (e *Editor) CurrentLine() (string, bool) {
	row := e.doc.Row(e.fileRow())
	if row == nil {
		return "", false
	}
	return row.String(), true
}

// CutLine removes the row under the cursor and returns its content. The
// cursor moves to column 0 of the row that takes its place.
func (e *Editor) CutLine() (string, bool) {
	fileRow := e.fileRow()
	row := e.doc.Row(fileRow)
	if row == nil {
		return "", false
	}
	text := row.String()
	e.doc.RemoveRow(fileRow)
	e.cur.X = 0
	e.vp.ColOffset = 0
	e.modified = true
	return text, true
}

// BackspaceWord deletes the word immediately before the cursor.
func (e *Editor) BackspaceWord() {
	n, ok := e.wordRunLeft()
	if !ok {
		return
	}
	for range n {
		e.Backspace()
	}
}

// BackspaceToStartOfLine deletes everything between column 0 and the cursor.
func (e *Editor) BackspaceToStartOfLine() {
	if e.doc.Row(e.fileRow()) == nil {
		return
	}
	for range e.fileCol() {
		e.Backspace()
	}
}
