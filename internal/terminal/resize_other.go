//go:build !unix

package terminal

// notifyResize is a no-op where SIGWINCH does not exist. Ctrl-L still
// re-queries the size.
func notifyResize(*Flag) (stop func()) {
	return func() {}
}
