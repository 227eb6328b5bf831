// Package tlerr defines the error taxonomy shared across tmuxlayout's
// core packages, generalizing the {Kind, Msg, Err} pattern the teacher
// uses for classifying subprocess failures.
package tlerr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindIO                Kind = "IO"
	KindUnsupportedFormat Kind = "UNSUPPORTED_FORMAT"
	KindParse             Kind = "PARSE_ERROR"
	KindUnresolvedIncludes Kind = "UNRESOLVED_INCLUDES"
	KindCommandIO         Kind = "COMMAND_IO"
	KindCommandExitCode   Kind = "COMMAND_EXIT_CODE"
)

// Error is the single error type returned across config loading, parsing
// and tmux-subprocess invocation. ExitCode is only meaningful when
// Kind == KindCommandExitCode.
type Error struct {
	Kind     Kind
	Msg      string
	Err      error
	ExitCode int
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is (or wraps) a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var terr *Error
	return errors.As(err, &terr) && terr.Kind == kind
}

func IO(msg string, err error) *Error {
	return &Error{Kind: KindIO, Msg: msg, Err: err}
}

func UnsupportedFormat(msg string) *Error {
	return &Error{Kind: KindUnsupportedFormat, Msg: msg}
}

func Parse(msg string) *Error {
	return &Error{Kind: KindParse, Msg: msg}
}

func Parsef(format string, args ...any) *Error {
	return &Error{Kind: KindParse, Msg: fmt.Sprintf(format, args...)}
}

func UnresolvedIncludes() *Error {
	return &Error{Kind: KindUnresolvedIncludes, Msg: "config has unresolved includes"}
}

func CommandIO(err error) *Error {
	return &Error{Kind: KindCommandIO, Msg: "error while invoking tmux command", Err: err}
}

func CommandExitCode(code int) *Error {
	return &Error{Kind: KindCommandExitCode, Msg: fmt.Sprintf("non-successful tmux exit code: %d", code), ExitCode: code}
}
