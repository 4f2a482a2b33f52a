package util

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// StdinIsTTY reports whether stdin is a terminal, i.e. whether prompts can
// be answered.
func StdinIsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// InitColor turns colored output off for --no-color, a set NO_COLOR or a
// non-terminal stdout.
func InitColor(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); set || noColor || !IsTTY() {
		color.NoColor = true
	}
}
