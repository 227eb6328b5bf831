package tmuxfmt

import "testing"

func TestParseLayoutSample(t *testing.T) {
	raw := "abcd,80x24,0,0{40x24,0,0,1,39x24,41,0,2}"
	node, err := ParseLayout(raw)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if node.SplitDir != '{' {
		t.Fatalf("expected H split ('{'), got %q", string(node.SplitDir))
	}
	if node.Geom.Size != (Size{Width: 80, Height: 24}) {
		t.Errorf("root size = %+v, want 80x24", node.Geom.Size)
	}
	if len(node.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(node.Children))
	}
	if !node.Children[0].IsLeaf() || node.Children[0].Geom.Size != (Size{40, 24}) {
		t.Errorf("left child = %+v", node.Children[0])
	}
	if !node.Children[1].IsLeaf() || node.Children[1].Geom.XOffset != 41 {
		t.Errorf("right child = %+v", node.Children[1])
	}
}

func TestParseLayoutNested(t *testing.T) {
	raw := "4264,401x112,0,0{200x112,0,0[200x56,0,0,546,200x55,0,57,798],200x112,201,0[200x56,201,0,795,200x55,201,57{100x55,201,57,796,99x55,302,57[99x27,302,57,797,99x27,302,85,799]}]}"
	node, err := ParseLayout(raw)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if node.Geom.Size != (Size{401, 112}) {
		t.Errorf("root size = %+v", node.Geom.Size)
	}
	if node.SplitDir != '{' || len(node.Children) != 2 {
		t.Fatalf("unexpected root shape: %+v", node)
	}
	leftCol := node.Children[0]
	if leftCol.SplitDir != '[' || len(leftCol.Children) != 2 {
		t.Fatalf("unexpected left column shape: %+v", leftCol)
	}
}

func TestParseLayoutRejectsTrailingGarbage(t *testing.T) {
	if _, err := ParseLayout("abcd,40x24,0,0,1x"); err == nil {
		t.Fatal("expected error for trailing garbage")
	}
}

func TestParseLayoutRejectsMissingChecksum(t *testing.T) {
	if _, err := ParseLayout("40x24,0,0,1"); err == nil {
		t.Fatal("expected error for missing checksum separator")
	}
}

func TestParseLayoutRejectsUnterminatedGroup(t *testing.T) {
	if _, err := ParseLayout("abcd,80x24,0,0{40x24,0,0,1"); err == nil {
		t.Fatal("expected error for unterminated group")
	}
}
