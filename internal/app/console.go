package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/blackwell-systems/libractl/internal/util"
)

// consoleNotifier prints controller notifications as status lines.
type consoleNotifier struct{}

func (consoleNotifier) Success(msg string) { ok("%s", msg) }

func (consoleNotifier) Error(msg string) {
	fmt.Fprintln(os.Stderr, color.RedString("✗"), msg)
}

// stdinConfirmer asks y/n questions on the terminal. Without a terminal
// and without --yes every question is answered no.
type stdinConfirmer struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
	tty       bool
}

func newStdinConfirmer(assumeYes bool) *stdinConfirmer {
	return &stdinConfirmer{
		in:        bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		assumeYes: assumeYes,
		tty:       util.StdinIsTTY(),
	}
}

func (c *stdinConfirmer) Confirm(title, text string) bool {
	if c.assumeYes {
		return true
	}
	if !c.tty {
		warn("%s: refusing without --yes", title)
		return false
	}
	fmt.Fprintf(c.out, "%s %s (y/n): ", color.YellowString(title+":"), text)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}

func printField(label, value string) {
	fmt.Printf("  %-14s %s\n", color.CyanString(label+":"), value)
}
