package tmuxcmd

import (
	"fmt"
	"strconv"

	"tmuxlayout/internal/config"
	"tmuxlayout/internal/cwd"
)

// SessionSelectMode is the final, resolved session-selection action.
// The CLI's "auto" option is resolved into one of these (by inspecting
// live multiplexer clients) before the builder ever sees it.
type SessionSelectMode int

const (
	ModeAttach SessionSelectMode = iota
	ModeSwitch
	ModeDetached
)

// QueryScope narrows a list-panes query to all sessions, the current
// session, or (by omission) the current window.
type QueryScope int

const (
	ScopeCurrentWindow QueryScope = iota
	ScopeCurrentSession
	ScopeAllSessions
)

// Builder is a strictly stateful, single-use command-stream
// constructor: it owns one growing argv and a handful of per-session
// bookkeeping fields, mutated in place by its own methods.
type Builder struct {
	argv         []string
	firstCommand bool

	hasCurrentSession bool
	currentSession    string

	windowCount       int
	activeWindowIndex *int

	warnings []string
}

// NewBuilder starts a command stream for the given multiplexer binary
// path, with tmuxArgs appended verbatim (the pass-through arguments
// following "--" on the CLI).
func NewBuilder(tmuxPath string, tmuxArgs []string) *Builder {
	argv := make([]string, 0, 1+len(tmuxArgs))
	argv = append(argv, tmuxPath)
	argv = append(argv, tmuxArgs...)
	return &Builder{argv: argv, firstCommand: true}
}

// Argv returns the constructed argument vector.
func (b *Builder) Argv() []string { return b.argv }

// Warnings returns the non-fatal diagnostics collected during
// construction (multiple active windows/panes per window/session).
func (b *Builder) Warnings() []string { return b.warnings }

func (b *Builder) warn(msg string) { b.warnings = append(b.warnings, msg) }

func (b *Builder) push(args ...string) *Builder {
	b.argv = append(b.argv, args...)
	return b
}

func (b *Builder) pushNewCommand(name string) *Builder {
	if b.firstCommand {
		b.firstCommand = false
	} else {
		b.push(";")
	}
	return b.push(name)
}

func (b *Builder) pushTarget(t Target) *Builder {
	return b.push("-t", t.String())
}

func (b *Builder) sessionTarget() Target {
	if b.hasCurrentSession {
		return SessionTarget(b.currentSession)
	}
	return Target{}
}

func (b *Builder) sessionNameOrCurrent() string {
	if b.hasCurrentSession {
		return b.currentSession
	}
	return "(current)"
}

// NewSessions appends every session in order (§4.6 "Session
// construction"); sessions with no windows contribute nothing.
func (b *Builder) NewSessions(sessions []config.Session) *Builder {
	for i := range sessions {
		b.NewSession(&sessions[i])
	}
	return b
}

// NewSession appends one session: new-session, its bootstrap window,
// then its remaining windows.
func (b *Builder) NewSession(s *config.Session) *Builder {
	if len(s.Windows) == 0 {
		return b
	}

	b.hasCurrentSession = true
	b.currentSession = s.Name

	b.pushNewCommand("new-session").push("-s", s.Name)
	if path, ok := s.Cwd.Path(); ok {
		b.push("-c", path)
	}
	b.push("-d")

	b.createInitialWindow(&s.Windows[0], s.Cwd)
	b.NewWindows(s.Windows[1:], s.Cwd)
	return b
}

// createInitialWindow creates the session's first window at index 0,
// displacing (and then killing) the multiplexer's own placeholder
// window that new-session -d always produces.
func (b *Builder) createInitialWindow(w *config.Window, parentCwd cwd.Cwd) {
	b.activeWindowIndex = nil
	b.windowCount = 0

	b.newWindow(w, parentCwd, "0")

	b.pushNewCommand("kill-window")
	b.pushTarget(b.sessionTarget().WithWindow("1"))
}

// NewWindows appends a list of windows under parentCwd, then selects
// whichever one was marked active.
func (b *Builder) NewWindows(windows []config.Window, parentCwd cwd.Cwd) *Builder {
	for i := range windows {
		b.newWindow(&windows[i], parentCwd, "")
	}
	b.selectActiveWindow()
	return b
}

func (b *Builder) newWindow(w *config.Window, parentCwd cwd.Cwd, beforeTarget string) {
	if w.Active {
		if b.activeWindowIndex == nil {
			idx := b.windowCount
			b.activeWindowIndex = &idx
		} else {
			b.warn(fmt.Sprintf("Multiple active windows in session '%s'", b.sessionNameOrCurrent()))
		}
	}
	b.windowCount++

	windowCwd := cwd.Join(parentCwd, w.Cwd)

	b.pushNewCommand("new-window")
	if w.Name != nil {
		b.push("-n", *w.Name)
	}
	if path, ok := windowCwd.Path(); ok {
		b.push("-c", path)
	}
	b.pushTarget(b.sessionTarget())
	if beforeTarget != "" {
		b.push("-b")
		b.pushTarget(b.sessionTarget().WithWindow(beforeTarget))
	}

	b.applyRootSplit(w.Root.Split, windowCwd)
	b.selectActivePane(w)
}

// applyRootSplit realises a fresh window's single unconfigured pane
// into the designated root pane, then recurses into the rest of the
// split tree (§4.6.1).
func (b *Builder) applyRootSplit(split config.Split, parentCwd cwd.Cwd) {
	first := rootPane(split)
	firstCwd := cwd.Join(parentCwd, first.Cwd)

	b.splitPane(AxisHorizontal, FlowRegular, firstCwd, first.ShellCommand, "")

	b.pushNewCommand("kill-pane")
	b.pushTarget(b.sessionTarget().WithPane("0"))

	b.applySplit(split, parentCwd)
}

// applySplit recursively realises every non-root split node (§4.6.2).
func (b *Builder) applySplit(split config.Split, parentCwd cwd.Cwd) {
	switch n := split.(type) {
	case *config.PaneSplit:
		if len(n.Pane.SendKeys) > 0 {
			b.sendKeys(n.Pane.SendKeys)
		}

	case *config.HSplit:
		flow := flowOf(split)
		parent, child := n.Left, n.Right
		if flow == FlowInverted {
			parent, child = n.Right, n.Left
		}
		b.applyChildSplit(AxisHorizontal, flow, parent, child, parentCwd)

	case *config.VSplit:
		flow := flowOf(split)
		parent, child := n.Top, n.Bottom
		if flow == FlowInverted {
			parent, child = n.Bottom, n.Top
		}
		b.applyChildSplit(AxisVertical, flow, parent, child, parentCwd)
	}
}

func (b *Builder) applyChildSplit(axis Axis, flow SplitFlow, parent, child config.Side, parentCwd cwd.Cwd) {
	childPane := rootPane(child.Split)
	childCwd := cwd.Join(parentCwd, childPane.Cwd)

	size := ""
	if child.Size != nil {
		size = *child.Size
	}

	b.splitPane(axis, flow, childCwd, childPane.ShellCommand, size)
	b.applySplit(child.Split, parentCwd)
	b.selectPaneAt(flow.Direction(axis).Inverted())
	b.applySplit(parent.Split, parentCwd)
}

func (b *Builder) splitPane(axis Axis, flow SplitFlow, pcwd cwd.Cwd, shellCommand *string, size string) {
	b.pushNewCommand("split-window")
	b.pushTarget(b.sessionTarget())
	b.push(axis.flag())
	if flag, ok := flow.pushArg(); ok {
		b.push(flag)
	}
	if path, ok := pcwd.Path(); ok {
		b.push("-c", path)
	}
	if size != "" {
		b.push("-l", size)
	}
	if shellCommand != nil {
		b.push(*shellCommand)
	}
}

func (b *Builder) sendKeys(keys []string) {
	b.pushNewCommand("send-keys")
	b.pushTarget(b.sessionTarget())
	b.push(keys...)
}

func (b *Builder) selectPaneAt(d Direction) {
	b.pushNewCommand("select-pane")
	b.pushTarget(b.sessionTarget())
	b.push(d.selectPaneFlag())
}

// selectActivePane emits a single select-pane for the first pane
// marked active in pre-order, warning if more than one was found
// (§4.6.3).
func (b *Builder) selectActivePane(w *config.Window) {
	panes := config.Panes(w.Root.Split)
	activeIndex := -1
	activeCount := 0
	for i, p := range panes {
		if p.Active {
			activeCount++
			if activeIndex == -1 {
				activeIndex = i
			}
		}
	}

	if activeCount > 1 {
		name := "(unnamed)"
		if w.Name != nil {
			name = *w.Name
		}
		b.warn(fmt.Sprintf("Multiple active panes in window '%s' of session '%s'", name, b.sessionNameOrCurrent()))
	}

	if activeIndex >= 0 {
		b.pushNewCommand("select-pane")
		b.pushTarget(b.sessionTarget().WithPane(strconv.Itoa(activeIndex)))
	}
}

// selectActiveWindow emits the final window-selection command for the
// session/top-level-window list just appended (§4.6 "After the whole
// list").
func (b *Builder) selectActiveWindow() {
	if b.activeWindowIndex == nil {
		return
	}
	index := *b.activeWindowIndex

	if b.hasCurrentSession {
		b.pushNewCommand("select-window")
		b.pushTarget(SessionTarget(b.currentSession).WithWindow(strconv.Itoa(index)))
		return
	}

	steps := b.windowCount - index - 1
	for i := 0; i < steps; i++ {
		b.pushNewCommand("select-window")
		b.pushTarget(b.sessionTarget())
		b.push(DirLeft.nextPrevFlag())
	}
}

// SelectSession emits the final session-selection command (§4.6.4).
// A nil name targets ":" (the multiplexer's notion of "current").
func (b *Builder) SelectSession(name *string, mode SessionSelectMode) *Builder {
	var cmdName string
	switch mode {
	case ModeDetached:
		return b
	case ModeSwitch:
		cmdName = "switch-client"
	default:
		cmdName = "attach-session"
	}

	target := Target{}
	if name != nil {
		target = SessionTarget(*name)
	}

	b.pushNewCommand(cmdName)
	b.pushTarget(target)
	return b
}

// QueryPanes emits the list-panes invocation the import direction
// parses (§4.6.5).
func (b *Builder) QueryPanes(format string, scope QueryScope) *Builder {
	b.pushNewCommand("list-panes").push("-F", format)
	switch scope {
	case ScopeAllSessions:
		b.push("-a")
	case ScopeCurrentSession:
		b.push("-s")
	}
	return b
}

// QueryClients emits list-clients, used by "auto" session-select mode
// to decide between attach and switch.
func (b *Builder) QueryClients() *Builder {
	b.pushNewCommand("list-clients")
	return b
}
