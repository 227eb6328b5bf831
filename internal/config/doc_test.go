package config

import "testing"

func strp(s string) *string { return &s }

func TestSplitRoundTrip(t *testing.T) {
	cmd := "vim"
	original := &HSplit{
		Left: Side{Split: &PaneSplit{Pane: Pane{ShellCommand: &cmd, Active: true}}},
		Right: Side{
			Size: strp("30%"),
			Split: &VSplit{
				Top:    Side{Split: &PaneSplit{Pane: Pane{Cwd: "src"}}},
				Bottom: Side{Split: &PaneSplit{Pane: Pane{SendKeys: []string{"ls", "Enter"}}}},
			},
		},
	}

	doc := splitToDoc(original)
	restored, err := docToSplit(doc)
	if err != nil {
		t.Fatalf("docToSplit: %v", err)
	}

	restoredPanes := Panes(restored)
	originalPanes := Panes(original)
	if len(restoredPanes) != len(originalPanes) {
		t.Fatalf("pane count mismatch: got %d, want %d", len(restoredPanes), len(originalPanes))
	}
	if restoredPanes[0].ShellCommand == nil || *restoredPanes[0].ShellCommand != cmd {
		t.Errorf("shell_command not preserved")
	}
	if !restoredPanes[0].Active {
		t.Errorf("active not preserved on left pane")
	}
	if restoredPanes[1].Cwd != "src" {
		t.Errorf("cwd not preserved on top pane, got %q", restoredPanes[1].Cwd)
	}
	if len(restoredPanes[2].SendKeys) != 2 || restoredPanes[2].SendKeys[1] != "Enter" {
		t.Errorf("send_keys not preserved, got %v", restoredPanes[2].SendKeys)
	}

	rs, ok := restored.(*HSplit)
	if !ok {
		t.Fatalf("root split is not HSplit: %T", restored)
	}
	if rs.Right.Size == nil || *rs.Right.Size != "30%" {
		t.Errorf("size hint not preserved")
	}
}

func TestWindowRootPaneActiveForcedFalseOnSerialize(t *testing.T) {
	w := Window{
		Active: true,
		Root:   IntoRoot(&PaneSplit{Pane: Pane{Active: true}}),
	}
	doc := windowToDoc(w)
	if doc["active"] != true {
		t.Fatalf("expected window active=true in doc, got %v", doc["active"])
	}

	restored, err := windowFromDoc(doc)
	if err != nil {
		t.Fatalf("windowFromDoc: %v", err)
	}
	if !restored.Active {
		t.Errorf("window active not restored")
	}
	pane := restored.Root.Split.(*PaneSplit)
	if pane.Pane.Active {
		t.Errorf("bare-root pane active should round-trip as false, got true")
	}
}

func TestDocToSplitDiscriminatesByKeyPresence(t *testing.T) {
	m := map[string]any{
		"top":    map[string]any{"cwd": "a"},
		"bottom": map[string]any{"cwd": "b"},
	}
	split, err := docToSplit(m)
	if err != nil {
		t.Fatalf("docToSplit: %v", err)
	}
	if _, ok := split.(*VSplit); !ok {
		t.Fatalf("expected VSplit, got %T", split)
	}
}

func TestSessionFromDocRejectsEmptyName(t *testing.T) {
	_, err := sessionFromDoc(map[string]any{"name": ""})
	if err == nil {
		t.Fatal("expected error for empty session name")
	}
}

func TestConfigurationToDocOmitsEmptyCollections(t *testing.T) {
	c := &Configuration{}
	doc := ConfigurationToDoc(c)
	if _, ok := doc["sessions"]; ok {
		t.Errorf("expected no sessions key for empty configuration")
	}
	if _, ok := doc["windows"]; ok {
		t.Errorf("expected no windows key for empty configuration")
	}
}

func TestSideToDocOmitsDefaultSize(t *testing.T) {
	fifty := "50%"
	side := Side{Size: &fifty, Split: &PaneSplit{}}
	doc := sideToDoc(side, "width")
	if _, ok := doc["width"]; ok {
		t.Errorf("expected default 50%% size hint to be omitted")
	}
}
