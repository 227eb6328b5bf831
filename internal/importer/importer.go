// Package importer reassembles a canonical configuration from a live
// multiplexer's reported pane state (internal/tmuxfmt) and window
// layout descriptors (internal/geomconv), inverting the compile
// direction built by internal/tmuxcmd.
package importer

import (
	"sort"

	"tmuxlayout/internal/config"
	"tmuxlayout/internal/cwd"
	"tmuxlayout/internal/geomconv"
	"tmuxlayout/internal/tmuxfmt"
)

// Scope narrows reassembly the same way tmuxcmd.QueryScope narrows the
// list-panes query that produced the state being reassembled.
type Scope int

const (
	ScopeCurrentWindow Scope = iota
	ScopeCurrentSession
	ScopeAllSessions
)

// Reassemble converts parsed pane state into a canonical configuration
// for the given scope (§4.8).
func Reassemble(state tmuxfmt.State, scope Scope) (*config.Configuration, error) {
	sessions, err := reassembleSessions(state)
	if err != nil {
		return nil, err
	}

	if scope == ScopeCurrentWindow {
		return reassembleCurrentWindow(sessions)
	}
	return &config.Configuration{Sessions: sessions}, nil
}

func reassembleSessions(state tmuxfmt.State) ([]config.Session, error) {
	sessionIDs := make([]tmuxfmt.SessionID, 0, len(state))
	for id := range state {
		sessionIDs = append(sessionIDs, id)
	}
	sort.Slice(sessionIDs, func(i, j int) bool { return sessionIDs[i] < sessionIDs[j] })

	sessions := make([]config.Session, 0, len(sessionIDs))
	for _, sid := range sessionIDs {
		rec := state[sid]

		windowIDs := make([]tmuxfmt.WindowID, 0, len(rec.Windows))
		for id := range rec.Windows {
			windowIDs = append(windowIDs, id)
		}
		sort.Slice(windowIDs, func(i, j int) bool {
			return rec.Windows[windowIDs[i]].Index < rec.Windows[windowIDs[j]].Index
		})

		sessionCwd := cwd.Cwd(rec.Cwd)
		windows := make([]config.Window, 0, len(windowIDs))
		for _, wid := range windowIDs {
			w, err := reassembleWindow(rec.Windows[wid], sessionCwd)
			if err != nil {
				return nil, err
			}
			windows = append(windows, *w)
		}

		sessions = append(sessions, config.Session{
			Name:    rec.Name,
			Cwd:     sessionCwd,
			Windows: windows,
		})
	}

	return sessions, nil
}

func reassembleWindow(rec *tmuxfmt.WindowRecord, sessionCwd cwd.Cwd) (*config.Window, error) {
	paneIDs := make([]tmuxfmt.PaneID, 0, len(rec.Panes))
	for id := range rec.Panes {
		paneIDs = append(paneIDs, id)
	}
	sort.Slice(paneIDs, func(i, j int) bool {
		return rec.Panes[paneIDs[i]].Index < rec.Panes[paneIDs[j]].Index
	})

	geom, err := tmuxfmt.ParseLayout(rec.Layout)
	if err != nil {
		return nil, err
	}
	root := geomconv.Convert(geom)

	panes := config.Panes(root)
	for i, p := range paneIDs {
		if i >= len(panes) {
			break
		}
		record := rec.Panes[p]
		panes[i].Active = record.Active
		panes[i].Cwd = cwd.RelativeTo(sessionCwd, cwd.Cwd(record.Cwd))
	}

	var name *string
	if rec.Name != "" {
		n := rec.Name
		name = &n
	}

	return &config.Window{
		Name:   name,
		Active: rec.Active,
		Root:   config.IntoRoot(root),
	}, nil
}

func reassembleCurrentWindow(sessions []config.Session) (*config.Configuration, error) {
	for _, s := range sessions {
		for i := range s.Windows {
			if s.Windows[i].Active {
				return &config.Configuration{Windows: []config.Window{s.Windows[i]}}, nil
			}
		}
	}
	return &config.Configuration{}, nil
}
