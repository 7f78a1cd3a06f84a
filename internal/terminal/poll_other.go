//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package terminal

import "errors"

func setPolling(int) error {
	return errors.New("polled terminal reads are not supported on this platform")
}
