package config

import (
	"fmt"

	"tmuxlayout/internal/cwd"
	"tmuxlayout/internal/tlerr"
)

// This file implements the §4.3 serialization glue: every Split is
// (de)serialized through an intermediate flat map with keys
// {left?, right?, top?, bottom?, cwd?, active?, shell_command?,
// send_keys?}, discriminated by presence of left/right vs top/bottom.
// It operates on a generic document tree (map[string]any / []any /
// scalars) so the same code serves both the YAML and TOML codecs in
// codec.go, which merely convert between that generic tree and bytes.

// PartialConfiguration is the pre-include-resolution shape of a
// configuration document: it may still carry a list of include paths.
type PartialConfiguration struct {
	Includes        []string
	SelectedSession *string
	Sessions        []Session
	Windows         []Window
}

// ConfigurationToDoc renders a resolved configuration as a generic
// document tree ready for a codec to encode.
func ConfigurationToDoc(c *Configuration) map[string]any {
	m := map[string]any{}
	if c.SelectedSession != nil {
		m["selected_session"] = *c.SelectedSession
	}
	if len(c.Sessions) > 0 {
		sessions := make([]any, len(c.Sessions))
		for i, s := range c.Sessions {
			sessions[i] = sessionToDoc(s)
		}
		m["sessions"] = sessions
	}
	if len(c.Windows) > 0 {
		windows := make([]any, len(c.Windows))
		for i, w := range c.Windows {
			windows[i] = windowToDoc(w)
		}
		m["windows"] = windows
	}
	return m
}

// PartialConfigurationFromDoc parses a generic document tree (as
// produced by a codec's decode step) into a PartialConfiguration.
func PartialConfigurationFromDoc(doc any) (*PartialConfiguration, error) {
	m, err := asMap(doc)
	if err != nil {
		return nil, tlerr.Parse("config document must be a mapping")
	}

	pc := &PartialConfiguration{}

	if raw, ok := m["includes"]; ok {
		items, err := asSlice(raw)
		if err != nil {
			return nil, tlerr.Parse("includes must be a list")
		}
		for _, it := range items {
			s, err := asString(it)
			if err != nil {
				return nil, tlerr.Parse("includes entries must be strings")
			}
			pc.Includes = append(pc.Includes, s)
		}
	}

	if raw, ok := m["selected_session"]; ok {
		s, err := asString(raw)
		if err != nil {
			return nil, tlerr.Parse("selected_session must be a string")
		}
		pc.SelectedSession = &s
	}

	if raw, ok := m["sessions"]; ok {
		items, err := asSlice(raw)
		if err != nil {
			return nil, tlerr.Parse("sessions must be a list")
		}
		for _, it := range items {
			sm, err := asMap(it)
			if err != nil {
				return nil, tlerr.Parse("session entries must be mappings")
			}
			s, err := sessionFromDoc(sm)
			if err != nil {
				return nil, err
			}
			pc.Sessions = append(pc.Sessions, s)
		}
	}

	if raw, ok := m["windows"]; ok {
		items, err := asSlice(raw)
		if err != nil {
			return nil, tlerr.Parse("windows must be a list")
		}
		for _, it := range items {
			wm, err := asMap(it)
			if err != nil {
				return nil, tlerr.Parse("window entries must be mappings")
			}
			w, err := windowFromDoc(wm)
			if err != nil {
				return nil, err
			}
			pc.Windows = append(pc.Windows, w)
		}
	}

	return pc, nil
}

func sessionToDoc(s Session) map[string]any {
	m := map[string]any{"name": s.Name}
	if !s.Cwd.IsEmpty() {
		m["cwd"] = string(s.Cwd)
	}
	windows := make([]any, len(s.Windows))
	for i, w := range s.Windows {
		windows[i] = windowToDoc(w)
	}
	m["windows"] = windows
	return m
}

func sessionFromDoc(m map[string]any) (Session, error) {
	name, err := asString(m["name"])
	if err != nil {
		return Session{}, tlerr.Parse("session name must be a string")
	}
	if name == "" {
		return Session{}, tlerr.Parse("session name must not be empty")
	}

	s := Session{Name: name}
	if raw, ok := m["cwd"]; ok {
		c, err := asString(raw)
		if err != nil {
			return Session{}, tlerr.Parse("session cwd must be a string")
		}
		expanded, err := cwd.Parse(c)
		if err != nil {
			return Session{}, tlerr.Parsef("session %q: %v", name, err)
		}
		s.Cwd = expanded
	}

	if raw, ok := m["windows"]; ok {
		items, err := asSlice(raw)
		if err != nil {
			return Session{}, tlerr.Parse("session windows must be a list")
		}
		for _, it := range items {
			wm, err := asMap(it)
			if err != nil {
				return Session{}, tlerr.Parse("window entries must be mappings")
			}
			w, err := windowFromDoc(wm)
			if err != nil {
				return Session{}, err
			}
			s.Windows = append(s.Windows, w)
		}
	}
	return s, nil
}

// windowToDoc flattens the window's root split into the window's own
// map: name/cwd/active sit alongside whatever the root split
// contributes (left/right/top/bottom, or cwd/active/shell_command/
// send_keys for a bare pane). A bare-pane root's Active is forced to
// false first, so it never collides with the window's own Active.
func windowToDoc(w Window) map[string]any {
	root := w.Root.Split
	if pane, ok := root.(*PaneSplit); ok {
		forced := *pane
		forced.Pane.Active = false
		root = &forced
	}

	m := splitToDoc(root)
	if w.Name != nil {
		m["name"] = *w.Name
	}
	if w.Active {
		m["active"] = true
	}
	if !w.Cwd.IsEmpty() {
		m["cwd"] = string(w.Cwd)
	}
	return m
}

func windowFromDoc(m map[string]any) (Window, error) {
	w := Window{}
	if raw, ok := m["name"]; ok {
		s, err := asString(raw)
		if err != nil {
			return Window{}, tlerr.Parse("window name must be a string")
		}
		w.Name = &s
	}
	if raw, ok := m["active"]; ok {
		b, err := asBool(raw)
		if err != nil {
			return Window{}, tlerr.Parse("window active must be a boolean")
		}
		w.Active = b
	}
	if raw, ok := m["cwd"]; ok {
		s, err := asString(raw)
		if err != nil {
			return Window{}, tlerr.Parse("window cwd must be a string")
		}
		expanded, err := cwd.Parse(s)
		if err != nil {
			return Window{}, tlerr.Parsef("window cwd: %v", err)
		}
		w.Cwd = expanded
	}

	// The "active" key belongs to the window itself, never to a bare
	// root pane sharing the same flattened map.
	rootDoc := make(map[string]any, len(m))
	for k, v := range m {
		if k != "active" {
			rootDoc[k] = v
		}
	}
	split, err := docToSplit(rootDoc)
	if err != nil {
		return Window{}, err
	}
	w.Root = IntoRoot(split)
	return w, nil
}

func splitToDoc(s Split) map[string]any {
	switch n := s.(type) {
	case *PaneSplit:
		m := map[string]any{}
		if !n.Pane.Cwd.IsEmpty() {
			m["cwd"] = string(n.Pane.Cwd)
		}
		if n.Pane.Active {
			m["active"] = true
		}
		if n.Pane.ShellCommand != nil {
			m["shell_command"] = *n.Pane.ShellCommand
		}
		if n.Pane.SendKeys != nil {
			keys := make([]any, len(n.Pane.SendKeys))
			for i, k := range n.Pane.SendKeys {
				keys[i] = k
			}
			m["send_keys"] = keys
		}
		return m
	case *HSplit:
		m := map[string]any{}
		m["left"] = sideToDoc(n.Left, "width")
		m["right"] = sideToDoc(n.Right, "width")
		return m
	case *VSplit:
		m := map[string]any{}
		m["top"] = sideToDoc(n.Top, "height")
		m["bottom"] = sideToDoc(n.Bottom, "height")
		return m
	default:
		return map[string]any{}
	}
}

func sideToDoc(s Side, sizeKey string) map[string]any {
	m := splitToDoc(s.Split)
	if s.Size != nil && *s.Size != "50%" {
		m[sizeKey] = *s.Size
	}
	return m
}

// docToSplit discriminates the flattened map by presence of
// left/right (→H), top/bottom (→V), or neither (→Pane).
func docToSplit(m map[string]any) (Split, error) {
	_, hasLeft := m["left"]
	_, hasRight := m["right"]
	if hasLeft || hasRight {
		left, err := docToSide(m["left"], "width")
		if err != nil {
			return nil, err
		}
		right, err := docToSide(m["right"], "width")
		if err != nil {
			return nil, err
		}
		return &HSplit{Left: left, Right: right}, nil
	}

	_, hasTop := m["top"]
	_, hasBottom := m["bottom"]
	if hasTop || hasBottom {
		top, err := docToSide(m["top"], "height")
		if err != nil {
			return nil, err
		}
		bottom, err := docToSide(m["bottom"], "height")
		if err != nil {
			return nil, err
		}
		return &VSplit{Top: top, Bottom: bottom}, nil
	}

	pane := Pane{}
	if raw, ok := m["cwd"]; ok {
		s, err := asString(raw)
		if err != nil {
			return nil, tlerr.Parse("pane cwd must be a string")
		}
		expanded, err := cwd.Parse(s)
		if err != nil {
			return nil, tlerr.Parsef("pane cwd: %v", err)
		}
		pane.Cwd = expanded
	}
	if raw, ok := m["active"]; ok {
		b, err := asBool(raw)
		if err != nil {
			return nil, tlerr.Parse("pane active must be a boolean")
		}
		pane.Active = b
	}
	if raw, ok := m["shell_command"]; ok {
		s, err := asString(raw)
		if err != nil {
			return nil, tlerr.Parse("pane shell_command must be a string")
		}
		pane.ShellCommand = &s
	}
	if raw, ok := m["send_keys"]; ok {
		items, err := asSlice(raw)
		if err != nil {
			return nil, tlerr.Parse("pane send_keys must be a list")
		}
		keys := make([]string, len(items))
		for i, it := range items {
			s, err := asString(it)
			if err != nil {
				return nil, tlerr.Parse("pane send_keys entries must be strings")
			}
			keys[i] = s
		}
		pane.SendKeys = keys
	}
	return &PaneSplit{Pane: pane}, nil
}

func docToSide(v any, sizeKey string) (Side, error) {
	if v == nil {
		return DefaultSide(), nil
	}
	m, err := asMap(v)
	if err != nil {
		return Side{}, tlerr.Parse("split side must be a mapping")
	}
	split, err := docToSplit(m)
	if err != nil {
		return Side{}, err
	}
	side := Side{Split: split}
	if raw, ok := m[sizeKey]; ok {
		s, err := asString(raw)
		if err != nil {
			return Side{}, tlerr.Parsef("%s must be a string", sizeKey)
		}
		side.Size = &s
	}
	return side, nil
}

func asMap(v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case nil:
		return map[string]any{}, nil
	default:
		return nil, fmt.Errorf("expected mapping, got %T", v)
	}
}

func asSlice(v any) ([]any, error) {
	switch s := v.(type) {
	case []any:
		return s, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("expected list, got %T", v)
	}
}

func asString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	case nil:
		return "", nil
	default:
		return fmt.Sprintf("%v", s), nil
	}
}

func asBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}
