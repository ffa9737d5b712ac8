//go:build linux || darwin
// +build linux darwin

package main

import (
	"golang.org/x/sys/unix"
)

// terminalWidth reports the column width of fd, or 0 if it isn't a
// terminal or the ioctl fails. Grounded on evanw-esbuild's
// logger_darwin.go IoctlGetWinsize call; generalized to the single unix
// build tag x/sys already covers both darwin and linux with.
func terminalWidth(fd uintptr) int {
	w, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		return 0
	}
	return int(w.Col)
}
