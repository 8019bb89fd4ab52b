// Package spinner shows a progress spinner on interactive terminals.
package spinner

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

var loader *spinner.Spinner

// Enabled reports whether stderr is a terminal the spinner can draw on.
func Enabled() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// StartSpinner starts the spinner with the given suffix. It is a no-op when
// stderr is not a terminal.
func StartSpinner(suffix string) {
	if !Enabled() {
		return
	}
	loader = spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	loader.Color("yellow") //nolint:errcheck
	loader.Suffix = " " + suffix
	loader.Start()
}

// StopSpinner stops the spinner if it is running.
func StopSpinner() {
	if loader != nil {
		loader.Stop()
		loader = nil
	}
}
