// Package ansi prepares consoles for colored spinner and table output.
package ansi

import "os"

// Setup enables escape sequences on stdout and stderr.
func Setup() {
	EnableVirtualTerminal(os.Stdout)
	EnableVirtualTerminal(os.Stderr)
}
