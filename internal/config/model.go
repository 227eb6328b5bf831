// Package config holds the split-tree data model (pane, split, window,
// session, configuration) and its dual on-disk/in-memory shape.
package config

import "tmuxlayout/internal/cwd"

// Pane is a leaf node: a single terminal pane.
type Pane struct {
	Cwd          cwd.Cwd
	Active       bool
	ShellCommand *string
	SendKeys     []string
}

// Split is the recursive split-tree node: a leaf Pane, or a binary
// horizontal (H) or vertical (V) division of two Sides.
type Split interface {
	isSplit()
}

// PaneSplit wraps a leaf Pane as a Split.
type PaneSplit struct {
	Pane Pane
}

func (*PaneSplit) isSplit() {}

// Side is one half of an H or V split: an optional size hint ("N%" or a
// raw cell count) and the child split realizing that half.
type Side struct {
	Size  *string
	Split Split
}

// HSplit divides a window into two columns.
type HSplit struct {
	Left, Right Side
}

func (*HSplit) isSplit() {}

// VSplit divides a window into two rows.
type VSplit struct {
	Top, Bottom Side
}

func (*VSplit) isSplit() {}

// DefaultSplit returns the zero-value split: a single empty pane.
func DefaultSplit() Split {
	return &PaneSplit{}
}

// DefaultSide returns a side with no size hint and a default pane child.
func DefaultSide() Side {
	return Side{Split: DefaultSplit()}
}

// RootSplit is a Split specialized as a window's root. Its one extra
// rule lives in the serialization glue (doc.go): a bare root Pane has
// its Active flag forced to false on serialization, since it would
// otherwise be ambiguous with the enclosing window's own Active flag.
type RootSplit struct {
	Split Split
}

// IntoRoot wraps any split as a window root.
func IntoRoot(s Split) RootSplit {
	return RootSplit{Split: s}
}

// Window is a named pane/split arrangement, optionally the active one
// in its session.
type Window struct {
	Name   *string
	Cwd    cwd.Cwd
	Active bool
	Root   RootSplit
}

// Session is a named, ordered collection of windows.
type Session struct {
	Name    string
	Cwd     cwd.Cwd
	Windows []Window
}

// Configuration is the canonical, include-resolved configuration: an
// optional selected session, an ordered list of sessions, and an
// ordered list of top-level windows attached to whatever session is
// current at creation time.
type Configuration struct {
	SelectedSession *string
	Sessions        []Session
	Windows         []Window
}

// PaneIter walks the panes of a split tree in multiplexer index order:
// a left-first/top-first pre-order traversal.
type PaneIter struct {
	stack []Split
}

// NewPaneIter starts a traversal rooted at root.
func NewPaneIter(root Split) *PaneIter {
	return &PaneIter{stack: []Split{root}}
}

// Next returns the next pane in traversal order, or (nil, false) when
// the traversal is exhausted.
func (it *PaneIter) Next() (*Pane, bool) {
	for len(it.stack) > 0 {
		n := len(it.stack) - 1
		s := it.stack[n]
		it.stack = it.stack[:n]

		switch split := s.(type) {
		case *PaneSplit:
			return &split.Pane, true
		case *HSplit:
			it.stack = append(it.stack, split.Right.Split, split.Left.Split)
		case *VSplit:
			it.stack = append(it.stack, split.Bottom.Split, split.Top.Split)
		}
	}
	return nil, false
}

// Panes collects every pane of root in traversal order.
func Panes(root Split) []*Pane {
	var out []*Pane
	it := NewPaneIter(root)
	for {
		p, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, p)
	}
}
