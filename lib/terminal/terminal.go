// Package terminal provides VT100 terminal codes and a writer for the
// messages the server prints for the user.
package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"

	colorable "github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// VT100 codes
const (
	Reset = "\x1b[0m"

	RedFg    = "\x1b[31m"
	GreenFg  = "\x1b[32m"
	YellowFg = "\x1b[33m"
)

var (
	// make sure that start is only called once
	once sync.Once
)

// Out is an io.Writer which can be used to write to the terminal
// e.g. for use with fmt.Fprintf(terminal.Out, "terminal fun: %d\n", n)
var Out io.Writer

// Start the terminal - must be called before use
func Start() {
	once.Do(func() {
		if Out != nil {
			return
		}
		f := os.Stdout
		if !IsTerminal(f.Fd()) {
			// If stdout is not a tty, remove escape codes
			Out = colorable.NewNonColorable(f)
		} else {
			Out = colorable.NewColorable(f)
		}
	})
}

// IsTerminal returns whether the fd passed in is a terminal or not
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// WriteString writes the string passed in to the terminal
func WriteString(s string) {
	Write([]byte(s))
}

// Write sends out to the VT100 terminal.
// It will initialise the terminal if this is the first call.
func Write(out []byte) {
	Start()
	_, _ = Out.Write(out)
}

// Printf formats according to a format specifier and writes to the
// terminal.
func Printf(format string, a ...interface{}) {
	WriteString(fmt.Sprintf(format, a...))
}

// Colour wraps s in the VT100 code passed in and a reset.
func Colour(code, s string) string {
	return code + s + Reset
}
