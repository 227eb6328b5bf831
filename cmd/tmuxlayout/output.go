package main

import (
	"io"
	"os"
	"strings"

	isatty "github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\033[0m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiCyan   = "\033[36m"
)

func shouldUsePrettyOutput(w io.Writer) bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("TERM")), "dumb") {
		return false
	}
	fd, ok := fileDescriptor(w)
	if !ok {
		return false
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func fileDescriptor(w io.Writer) (uintptr, bool) {
	type fdWriter interface {
		Fd() uintptr
	}
	f, ok := w.(fdWriter)
	if !ok {
		return 0, false
	}
	return f.Fd(), true
}

// showError writes a colour-tagged error diagnostic.
func showError(w io.Writer, message string) {
	writeTagged(w, "error:", ansiRed, message)
}

// showWarning writes a colour-tagged warning diagnostic.
func showWarning(w io.Writer, message string) {
	writeTagged(w, "warning:", ansiYellow, message)
}

// showInfo writes a colour-tagged informational diagnostic.
func showInfo(w io.Writer, message string) {
	writeTagged(w, "info:", ansiCyan, message)
}

func writeTagged(w io.Writer, tag, color, message string) {
	if shouldUsePrettyOutput(w) {
		writef(w, "%s%s%s %s\n", color, tag, ansiReset, message)
		return
	}
	writef(w, "%s %s\n", tag, message)
}
