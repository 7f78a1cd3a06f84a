package editor

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zjrosen/rowedit/internal/log"
)

// ErrNoFilename is returned when saving a buffer that was never opened from a file.
var ErrNoFilename = errors.New("no filename")

// Open loads path into the editor, replacing the document. The file is
// created when it does not exist. On error the editor is left unchanged.
func (e *Editor) Open(path string) error {
	lines, err := e.store.Load(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	e.doc.Reset(lines)
	e.filename = path
	e.modified = false
	e.cur = Cursor{}
	e.vp.RowOffset = 0
	e.vp.ColOffset = 0
	log.Info(log.CatFile, "opened file", "path", path, "rows", len(lines))
	return nil
}

// Reload re-reads the open file, keeping the cursor where the new content
// allows. It is a no-op for scratch buffers.
func (e *Editor) Reload() error {
	if e.filename == "" {
		return nil
	}
	lines, err := e.store.Load(e.filename)
	if err != nil {
		return fmt.Errorf("reload %s: %w", e.filename, err)
	}

	e.doc.Reset(lines)
	e.modified = false
	if last := e.doc.Len(); e.fileRow() > last {
		e.vp.RowOffset = min(e.vp.RowOffset, last)
		e.cur.Y = last - e.vp.RowOffset
	}
	e.clampColumn()
	log.Info(log.CatFile, "reloaded file", "path", e.filename, "rows", len(lines))
	return nil
}

// Save writes the document to its file when it has unsaved changes.
// It reports whether a write happened.
func (e *Editor) Save() (bool, error) {
	if !e.modified {
		return false, nil
	}
	if e.filename == "" {
		return false, ErrNoFilename
	}

	if err := e.store.Save(e.filename, e.doc.Lines()); err != nil {
		log.ErrorErr(log.CatFile, "save failed", err, "path", e.filename)
		return false, fmt.Errorf("save %s: %w", e.filename, err)
	}
	e.modified = false
	log.Info(log.CatFile, "saved file", "path", e.filename, "rows", e.doc.Len())
	return true, nil
}

// DiskChanged reports whether the open file's content differs from the
// document. Scratch buffers never change on disk.
func (e *Editor) DiskChanged() (bool, error) {
	if e.filename == "" {
		return false, nil
	}
	lines, err := e.store.Load(e.filename)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", e.filename, err)
	}
	return !slices.Equal(lines, e.doc.Lines()), nil
}
