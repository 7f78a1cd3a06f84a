package testutil

import (
	"bytes"
	"sync"
)

// FakeTerminal is an in-memory terminal. Reads return scripted input one
// chunk at a time and then report no data, like a raw-mode terminal polled
// with VMIN=0. Writes are captured.
type FakeTerminal struct {
	mu sync.Mutex

	chunks [][]byte
	out    bytes.Buffer
	rows   int
	cols   int
	reads  int

	// Drained is closed the first time a read finds no scripted input left.
	Drained chan struct{}
	drained bool
}

// NewFakeTerminal creates a 24x80 terminal configured by opts.
func NewFakeTerminal(opts ...TerminalOption) *FakeTerminal {
	ft := &FakeTerminal{rows: 24, cols: 80, Drained: make(chan struct{})}
	for _, opt := range opts {
		opt(ft)
	}
	return ft
}

// Read returns the next scripted chunk. An empty chunk, or no chunk at all,
// reads zero bytes.
func (ft *FakeTerminal) Read(p []byte) (int, error) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.reads++

	if len(ft.chunks) == 0 {
		if !ft.drained {
			ft.drained = true
			close(ft.Drained)
		}
		return 0, nil
	}
	n := copy(p, ft.chunks[0])
	ft.chunks[0] = ft.chunks[0][n:]
	if len(ft.chunks[0]) == 0 {
		ft.chunks = ft.chunks[1:]
	}
	return n, nil
}

// Write captures output.
func (ft *FakeTerminal) Write(p []byte) (int, error) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return ft.out.Write(p)
}

// Size returns the configured dimensions.
func (ft *FakeTerminal) Size() (rows, cols int, err error) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return ft.rows, ft.cols, nil
}

// Resize changes the reported dimensions.
func (ft *FakeTerminal) Resize(rows, cols int) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.rows, ft.cols = rows, cols
}

// Type queues more input.
func (ft *FakeTerminal) Type(chunks ...string) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	for _, c := range chunks {
		ft.chunks = append(ft.chunks, []byte(c))
	}
}

// Output returns everything written so far.
func (ft *FakeTerminal) Output() string {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return ft.out.String()
}

// ResetOutput discards captured output.
func (ft *FakeTerminal) ResetOutput() {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.out.Reset()
}

// Reads returns the number of Read calls.
func (ft *FakeTerminal) Reads() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return ft.reads
}
