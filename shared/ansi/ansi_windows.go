//go:build windows

package ansi

import (
	"os"

	"golang.org/x/sys/windows"
)

const enableVirtualTerminalProcessing = 0x0004

// EnableVirtualTerminal turns on escape sequence processing for the console
// behind f. It returns false when f is not a console.
func EnableVirtualTerminal(f *os.File) bool {
	handle := windows.Handle(f.Fd())

	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return false
	}

	return windows.SetConsoleMode(handle, mode|enableVirtualTerminalProcessing) == nil
}
