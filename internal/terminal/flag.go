package terminal

import "sync/atomic"

// Flag is a set-and-forget signal shared between a notifier goroutine and
// the loop that consumes it.
type Flag struct {
	v atomic.Bool
}

// Set raises the flag.
func (f *Flag) Set() {
	f.v.Store(true)
}

// TestAndClear reports whether the flag was raised and lowers it.
func (f *Flag) TestAndClear() bool {
	if f == nil {
		return false
	}
	return f.v.Swap(false)
}
