//go:build !windows

package ansi

import "os"

// EnableVirtualTerminal reports whether f can render escape sequences.
// Non-Windows terminals support them natively.
func EnableVirtualTerminal(_ *os.File) bool {
	return true
}
