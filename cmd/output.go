package cmd

import (
	"os"
	"time"

	"github.com/charmbracelet/x/term"
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 80

// maxWidth keeps cards readable on very wide terminals.
const maxWidth = 100

var timeNow = time.Now

func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return defaultWidth
	}
	if w > maxWidth {
		return maxWidth
	}
	return w
}
