package config

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// exitCode is returned by every monsterdex binary that fails at startup.
const exitCode = 1

// Exitf reports a fatal startup error on stderr and terminates the process.
func Exitf(format string, args ...any) {
	fprintExit(os.Stderr, format, args...)
	os.Exit(exitCode)
}

// fprintExit writes the message terminated by exactly one newline, even when
// the wrapped error already ends in one.
func fprintExit(w io.Writer, format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintln(w, msg)
}
