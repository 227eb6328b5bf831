package geomconv

import (
	"testing"

	"tmuxlayout/internal/config"
	"tmuxlayout/internal/tmuxfmt"
)

func TestConvertMatchesKnownLayout(t *testing.T) {
	node, err := tmuxfmt.ParseLayout("abcd,80x24,0,0{40x24,0,0,1,39x24,41,0,2}")
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}

	split := Convert(node)
	h, ok := split.(*config.HSplit)
	if !ok {
		t.Fatalf("expected HSplit, got %T", split)
	}
	if h.Left.Size != nil {
		t.Errorf("expected left side to have no size hint, got %v", *h.Left.Size)
	}
	if h.Right.Size == nil || *h.Right.Size != "51%" {
		t.Fatalf("expected right size 51%%, got %v", h.Right.Size)
	}
	if _, ok := h.Left.Split.(*config.PaneSplit); !ok {
		t.Errorf("expected left side to be a pane, got %T", h.Left.Split)
	}
	if _, ok := h.Right.Split.(*config.PaneSplit); !ok {
		t.Errorf("expected right side to be a pane, got %T", h.Right.Split)
	}
}

func TestConvertPreservesPaneCount(t *testing.T) {
	raw := "4264,401x112,0,0{200x112,0,0[200x56,0,0,546,200x55,0,57,798],200x112,201,0[200x56,201,0,795,200x55,201,57{100x55,201,57,796,99x55,302,57[99x27,302,57,797,99x27,302,85,799]}]}"
	node, err := tmuxfmt.ParseLayout(raw)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}

	split := Convert(node)
	panes := config.Panes(split)
	if len(panes) != leafCount(node) {
		t.Errorf("pane count mismatch: got %d, want %d", len(panes), leafCount(node))
	}
}

func leafCount(n *tmuxfmt.GeomNode) int {
	if n.IsLeaf() {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += leafCount(c)
	}
	return total
}

func TestConvertEmptyChildrenReturnsDefaultPane(t *testing.T) {
	split := Convert(&tmuxfmt.GeomNode{SplitDir: '{'})
	if _, ok := split.(*config.PaneSplit); !ok {
		t.Errorf("expected default pane for empty children, got %T", split)
	}
}
