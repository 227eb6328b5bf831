package tmuxfmt

import (
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"tmuxlayout/internal/tlerr"
)

// ListPanesFormat is the -F format string the command builder passes
// to list-panes to produce the input ParseState consumes.
const ListPanesFormat = "#{q:session_id} #{q:window_id} #{q:pane_id} #{q:session_name}" +
	" #{q:session_path} #{q:window_index} #{q:window_name}" +
	" #{q:window_active} #{q:window_layout} #{q:pane_index}" +
	" #{q:pane_active} #{q:pane_current_path}"

// PaneRecord is one reconstructed pane entry: its index within its
// window, whether it is the active pane, and its (possibly empty)
// current working directory.
type PaneRecord struct {
	ID     PaneID
	Index  int
	Active bool
	Cwd    string
}

// WindowRecord is one reconstructed window, keyed by pane id.
type WindowRecord struct {
	ID     WindowID
	Index  int
	Name   string
	Active bool
	Layout string
	Panes  map[PaneID]*PaneRecord
}

// SessionRecord is one reconstructed session, keyed by window id.
type SessionRecord struct {
	ID      SessionID
	Name    string
	Cwd     string
	Windows map[WindowID]*WindowRecord
}

// State is the full imported-state mapping, keyed by session id.
type State map[SessionID]*SessionRecord

// ParseState parses the tabular, shell-quoted list-panes output
// described in §4.5/§6: one line per pane, twelve shell-word fields in
// order (session_id, window_id, pane_id, session_name, session_cwd,
// window_index, window_name, window_active, window_layout, pane_index,
// pane_active, pane_cwd). Duplicate (session_id, window_id, pane_id)
// triples accumulate into a single record set; session/window fields
// are first-write-wins.
func ParseState(raw string) (State, error) {
	state := State{}

	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		// Fields are only split and unquoted: a parameter reference such
		// as an unescaped "$0" session id expands to its own "$name"
		// text instead of an environment lookup.
		fields, err := shell.Fields(line, func(name string) string { return "$" + name })
		if err != nil {
			return nil, tlerr.Parsef("state descriptor: mismatched quoting in %q: %v", line, err)
		}
		// The last field (pane cwd) may be omitted by the multiplexer
		// when a pane has no resolvable current path.
		if len(fields) == 11 {
			fields = append(fields, "")
		}
		if len(fields) != 12 {
			return nil, tlerr.Parsef("state descriptor: expected 12 fields, got %d in %q", len(fields), line)
		}

		sessionID, err := ParseSessionID(fields[0])
		if err != nil {
			return nil, err
		}
		windowID, err := ParseWindowID(fields[1])
		if err != nil {
			return nil, err
		}
		paneID, err := ParsePaneID(fields[2])
		if err != nil {
			return nil, err
		}
		sessionName := fields[3]
		sessionCwd := fields[4]
		windowIndex, err := parseInt(fields[5])
		if err != nil {
			return nil, err
		}
		windowName := fields[6]
		windowActive, err := parseBoolFlag(fields[7])
		if err != nil {
			return nil, err
		}
		windowLayout := fields[8]
		paneIndex, err := parseInt(fields[9])
		if err != nil {
			return nil, err
		}
		paneActive, err := parseBoolFlag(fields[10])
		if err != nil {
			return nil, err
		}
		paneCwd := fields[11]

		session, ok := state[sessionID]
		if !ok {
			session = &SessionRecord{
				ID:      sessionID,
				Name:    sessionName,
				Cwd:     sessionCwd,
				Windows: map[WindowID]*WindowRecord{},
			}
			state[sessionID] = session
		}

		window, ok := session.Windows[windowID]
		if !ok {
			window = &WindowRecord{
				ID:     windowID,
				Index:  windowIndex,
				Name:   windowName,
				Active: windowActive,
				Layout: windowLayout,
				Panes:  map[PaneID]*PaneRecord{},
			}
			session.Windows[windowID] = window
		}

		if _, ok := window.Panes[paneID]; !ok {
			window.Panes[paneID] = &PaneRecord{
				ID:     paneID,
				Index:  paneIndex,
				Active: paneActive,
				Cwd:    paneCwd,
			}
		}
	}

	return state, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, tlerr.Parsef("state descriptor: invalid integer %q: %v", s, err)
	}
	return int(n), nil
}

func parseBoolFlag(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, tlerr.Parsef("state descriptor: expected 0 or 1, got %q", s)
	}
}
