// Package clipboard gives the editor a best-effort system clipboard with an
// in-process fallback.
package clipboard

import (
	"io"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/rowedit/internal/log"
)

// Backend is a system clipboard.
type Backend interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System is the platform clipboard.
type System struct{}

// ReadAll reads the platform clipboard.
func (System) ReadAll() (string, error) { return clipboard.ReadAll() }

// WriteAll writes the platform clipboard.
func (System) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Options configures a Clipboard.
type Options struct {
	// Backend is the system clipboard. Nil keeps everything in process.
	Backend Backend
	// OSC52 receives an OSC 52 sequence on every Set when non-nil, letting
	// terminals over SSH update the local clipboard.
	OSC52 io.Writer
}

// Clipboard holds the last copied text.
type Clipboard struct {
	mu       sync.Mutex
	backend  Backend
	osc52    io.Writer
	contents string
}

// New creates a clipboard.
func New(opts Options) *Clipboard {
	return &Clipboard{backend: opts.Backend, osc52: opts.OSC52}
}

// NewDefault creates a clipboard using the platform clipboard when one is
// available.
func NewDefault(useSystem bool, osc52 io.Writer) *Clipboard {
	opts := Options{OSC52: osc52}
	if useSystem && !clipboard.Unsupported {
		opts.Backend = System{}
	}
	return New(opts)
}

// Get returns the system clipboard, or the last value set in process when
// the system clipboard cannot be read.
func (c *Clipboard) Get() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		text, err := c.backend.ReadAll()
		if err == nil {
			return text
		}
		log.Debug(log.CatClipboard, "system clipboard read failed", "error", err)
	}
	return c.contents
}

// Set stores text in process and offers it to the system clipboard.
func (c *Clipboard) Set(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.contents = text
	if c.backend != nil {
		if err := c.backend.WriteAll(text); err != nil {
			log.Debug(log.CatClipboard, "system clipboard write failed", "error", err)
		}
	}
	if c.osc52 != nil {
		if _, err := io.WriteString(c.osc52, ansi.SetSystemClipboard(text)); err != nil {
			log.Debug(log.CatClipboard, "osc52 write failed", "error", err)
		}
	}
}
