//go:build windows
// +build windows

package main

import (
	"golang.org/x/sys/windows"
)

// terminalWidth reports the column width of fd, or 0 if it isn't a
// terminal. Grounded on evanw-esbuild's logger_windows.go
// GetConsoleScreenBufferInfo call, rewritten against x/sys/windows
// instead of a hand-rolled syscall.NewLazyDLL table.
func terminalWidth(fd uintptr) int {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(fd), &info); err != nil {
		return 0
	}
	return int(info.Size.X)
}
