package tlerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsKindMatchesWrappedError(t *testing.T) {
	base := UnresolvedIncludes()
	wrapped := fmt.Errorf("loading config: %w", base)

	if !IsKind(wrapped, KindUnresolvedIncludes) {
		t.Fatal("expected IsKind to see through fmt.Errorf wrapping")
	}
	if IsKind(wrapped, KindParse) {
		t.Fatal("expected IsKind to reject the wrong kind")
	}
}

func TestIsKindRejectsPlainError(t *testing.T) {
	if IsKind(errors.New("boom"), KindIO) {
		t.Fatal("expected a plain error to never match any Kind")
	}
}

func TestErrorMessageFallsBackToWrappedErr(t *testing.T) {
	err := &Error{Kind: KindCommandIO, Err: errors.New("no such file")}
	if got, want := err.Error(), "no such file"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestErrorMessagePrefersMsg(t *testing.T) {
	err := CommandExitCode(2)
	if got := err.Error(); got != "non-successful tmux exit code: 2" {
		t.Fatalf("unexpected message: %q", got)
	}
	if err.ExitCode != 2 {
		t.Fatalf("got ExitCode %d, want 2", err.ExitCode)
	}
}

func TestUnwrapReturnsUnderlyingErr(t *testing.T) {
	underlying := errors.New("disk full")
	err := IO("failed to write", underlying)

	if !errors.Is(err, underlying) {
		t.Fatal("expected errors.Is to reach the underlying error via Unwrap")
	}
}
