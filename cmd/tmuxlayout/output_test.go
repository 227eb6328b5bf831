package main

import (
	"bytes"
	"testing"
)

func TestShowWarningPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	showWarning(&buf, "no sessions or windows to create")

	want := "warning: no sessions or windows to create\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestShowErrorPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	showError(&buf, "config has unresolved includes")

	want := "error: config has unresolved includes\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestShowInfoPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	showInfo(&buf, "using config file at '.tmux-layout.yaml'")

	want := "info: using config file at '.tmux-layout.yaml'\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestShouldUsePrettyOutputFalseForNonFileWriter(t *testing.T) {
	var buf bytes.Buffer
	if shouldUsePrettyOutput(&buf) {
		t.Fatalf("expected a bytes.Buffer to never be treated as a terminal")
	}
}
