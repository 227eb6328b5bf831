package tmuxfmt

import (
	"strconv"

	"tmuxlayout/internal/tlerr"
)

// SessionID, WindowID and PaneID are opaque nominal integer types for
// the multiplexer's own identifiers ($N, @N, %N). Keeping them
// distinct prevents accidentally comparing or indexing with the wrong
// kind of id.
type SessionID int32
type WindowID int32
type PaneID int32

// ParseSessionID parses a "$N" identifier.
func ParseSessionID(s string) (SessionID, error) {
	n, err := parseTaggedID(s, '$')
	return SessionID(n), err
}

// ParseWindowID parses an "@N" identifier.
func ParseWindowID(s string) (WindowID, error) {
	n, err := parseTaggedID(s, '@')
	return WindowID(n), err
}

// ParsePaneID parses a "%N" identifier.
func ParsePaneID(s string) (PaneID, error) {
	n, err := parseTaggedID(s, '%')
	return PaneID(n), err
}

func parseTaggedID(s string, tag byte) (int32, error) {
	if len(s) < 2 || s[0] != tag {
		return 0, tlerr.Parsef("identifier %q: expected leading %q", s, string(tag))
	}
	n, err := strconv.ParseInt(s[1:], 10, 32)
	if err != nil {
		return 0, tlerr.Parsef("identifier %q: %v", s, err)
	}
	return int32(n), nil
}
