//go:build unix

package terminal

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"github.com/zjrosen/rowedit/internal/log"
)

// notifyResize raises f on every SIGWINCH until the returned stop is called.
func notifyResize(f *Flag) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range ch {
			log.Debug(log.CatTerm, "window resized")
			f.Set()
		}
	}()

	return func() {
		signal.Stop(ch)
		close(ch)
		<-done
	}
}
