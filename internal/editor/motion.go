package editor

import "unicode"

// Direction is a single-step cursor direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// MoveCursor moves the cursor one step, scrolling the window when the cursor
// sits on the edge it is moving towards. Left at the start of a row wraps to
// the end of the previous row and Right at the end of a row wraps to the
// start of the next one.
func (e *Editor) MoveCursor(dir Direction) {
	fileRow, fileCol := e.fileRow(), e.fileCol()
	row := e.doc.Row(fileRow)

	switch dir {
	case Left:
		switch {
		case !e.leftEdge():
			e.cur.X--
		case e.vp.ColOffset > 0:
			e.vp.ColOffset--
		case fileRow > 0:
			if e.topEdge() {
				e.vp.RowOffset--
			} else {
				e.cur.Y--
			}
			e.cur.X = e.doc.RowLen(fileRow - 1)
			if e.cur.X > e.vp.ScreenCols-1 {
				e.vp.ColOffset = e.cur.X - e.vp.ScreenCols + 1
				e.cur.X = e.vp.ScreenCols - 1
			}
		}

	case Right:
		switch {
		case row == nil:
		case row.HasColumn(fileCol):
			if e.rightEdge() {
				e.vp.ColOffset++
			} else {
				e.cur.X++
			}
		case row.IsEnd(fileCol) && fileRow+1 < e.doc.Len():
			e.cur.X = 0
			e.vp.ColOffset = 0
			e.stepDown()
		}

	case Up:
		if e.topEdge() {
			if e.vp.RowOffset > 0 {
				e.vp.RowOffset--
			}
		} else {
			e.cur.Y--
		}

	case Down:
		if fileRow+1 < e.doc.Len() {
			e.stepDown()
		}
	}

	e.clampColumn()
}

// stepDown advances one row, scrolling at the bottom edge.
func (e *Editor) stepDown() {
	if e.bottomEdge() {
		e.vp.RowOffset++
	} else {
		e.cur.Y++
	}
}

// clampColumn pulls the cursor back onto the current row when it points past
// its end. The cursor retracts first; the window only scrolls left when the
// row ends before the window's left edge.
func (e *Editor) clampColumn() {
	rowLen := e.doc.RowLen(e.fileRow())
	col := e.fileCol()
	if col <= rowLen {
		return
	}
	delta := e.cur.X - (col - rowLen)
	if delta >= 0 {
		e.cur.X = delta
		return
	}
	e.cur.X = 0
	e.vp.ColOffset = max(e.vp.ColOffset+delta, 0)
}

// CursorToStartOfLine moves to column 0 of the current row.
func (e *Editor) CursorToStartOfLine() {
	e.vp.ColOffset = 0
	e.cur.X = 0
}

// CursorToEndOfLine steps right until the end of the current row.
func (e *Editor) CursorToEndOfLine() {
	row := e.doc.Row(e.fileRow())
	if row == nil {
		return
	}
	for range row.Len() - e.fileCol() {
		e.MoveCursor(Right)
	}
}

// isWordChar reports whether r belongs to a word.
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordRunLeft counts the word characters immediately left of the cursor.
// ok is false when the cursor is not on a document row.
func (e *Editor) wordRunLeft() (n int, ok bool) {
	row := e.doc.Row(e.fileRow())
	if row == nil {
		return 0, false
	}
	for col := min(e.fileCol(), row.Len()) - 1; col >= 0; col-- {
		ch, _ := row.At(col)
		if !isWordChar(ch) {
			break
		}
		n++
	}
	return n, true
}

// CursorToLeftWord steps left across the word before the cursor and the
// separator in front of it.
func (e *Editor) CursorToLeftWord() {
	n, ok := e.wordRunLeft()
	if !ok {
		return
	}
	for range n + 1 {
		e.MoveCursor(Left)
	}
}

// CursorToRightWord steps right to the end of the word that starts one
// position past the cursor.
func (e *Editor) CursorToRightWord() {
	row := e.doc.Row(e.fileRow())
	if row == nil {
		return
	}
	n := 0
	for col := e.fileCol() + 1; col < row.Len(); col++ {
		ch, _ := row.At(col)
		if !isWordChar(ch) {
			break
		}
		n++
	}
	for range n + 1 {
		e.MoveCursor(Right)
	}
}

// PageCursor moves one screen up or down. The cursor first snaps to the near
// edge of the window, then takes ScreenRows single steps.
func (e *Editor) PageCursor(dir Direction) {
	switch dir {
	case Up:
		if !e.topEdge() {
			e.cur.Y = 0
		}
	case Down:
		if !e.bottomEdge() {
			// The window may extend past the last row.
			last := max(e.doc.Len()-1, e.fileRow(), 0)
			e.cur.Y = e.vp.ScreenRows - 1
			if e.fileRow() > last {
				e.cur.Y = max(last-e.vp.RowOffset, 0)
			}
		}
	default:
		return
	}
	e.clampColumn()

	for range e.vp.ScreenRows {
		e.MoveCursor(dir)
	}
}
