package importer

import (
	"testing"

	"tmuxlayout/internal/config"
	"tmuxlayout/internal/tmuxfmt"
)

func mustParseState(t *testing.T, raw string) tmuxfmt.State {
	t.Helper()
	state, err := tmuxfmt.ParseState(raw)
	if err != nil {
		t.Fatalf("ParseState: %v", err)
	}
	return state
}

func TestReassembleSingleSessionSinglePane(t *testing.T) {
	raw := `$1 @1 %1 mysession /home/user 0 work 1 "abcd,80x24,0,0,1" 0 1 /home/user`
	state := mustParseState(t, raw)

	cfg, err := Reassemble(state, ScopeAllSessions)
	if err != nil {
		t.Fatalf("Reassemble: %v", err)
	}

	if len(cfg.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(cfg.Sessions))
	}
	s := cfg.Sessions[0]
	if s.Name != "mysession" {
		t.Errorf("session name = %q", s.Name)
	}
	if len(s.Windows) != 1 || *s.Windows[0].Name != "work" {
		t.Fatalf("unexpected windows: %+v", s.Windows)
	}

	panes := config.Panes(s.Windows[0].Root.Split)
	if len(panes) != 1 {
		t.Fatalf("expected 1 pane, got %d", len(panes))
	}
	if !panes[0].Active {
		t.Errorf("expected the sole pane to be active")
	}
	if panes[0].Cwd != "." {
		t.Errorf("expected pane cwd identical to session cwd to relativize to '.', got %q", panes[0].Cwd)
	}
}

func TestReassembleOrdersSessionsByID(t *testing.T) {
	raw := "$2 @1 %1 b /b 1 second 1 \"abcd,80x24,0,0,1\" 0 1 /b\n" +
		"$1 @1 %1 a /a 0 first 1 \"abcd,80x24,0,0,1\" 0 1 /a\n"
	state := mustParseState(t, raw)

	cfg, err := Reassemble(state, ScopeAllSessions)
	if err != nil {
		t.Fatalf("Reassemble: %v", err)
	}

	if len(cfg.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(cfg.Sessions))
	}
	if cfg.Sessions[0].Name != "a" || cfg.Sessions[1].Name != "b" {
		t.Errorf("sessions not ordered by numeric id: %+v", cfg.Sessions)
	}
}

func TestReassembleCurrentWindowScope(t *testing.T) {
	raw := "$1 @1 %1 s /home 0 first 0 \"abcd,80x24,0,0,1\" 0 1 /home\n" +
		"$1 @2 %2 s /home 1 second 1 \"abcd,80x24,0,0,2\" 0 1 /home\n"
	state := mustParseState(t, raw)

	cfg, err := Reassemble(state, ScopeCurrentWindow)
	if err != nil {
		t.Fatalf("Reassemble: %v", err)
	}

	if len(cfg.Windows) != 1 || *cfg.Windows[0].Name != "second" {
		t.Fatalf("expected only the active window 'second', got %+v", cfg.Windows)
	}
	if len(cfg.Sessions) != 0 {
		t.Errorf("expected no sessions in current-window scope, got %+v", cfg.Sessions)
	}
}

func TestReassembleRelativizesPaneCwd(t *testing.T) {
	raw := `$1 @1 %1 s /home/user/project 0 w 1 "abcd,80x24,0,0,1" 0 1 /home/user/project/sub`
	state := mustParseState(t, raw)

	cfg, err := Reassemble(state, ScopeAllSessions)
	if err != nil {
		t.Fatalf("Reassemble: %v", err)
	}

	panes := config.Panes(cfg.Sessions[0].Windows[0].Root.Split)
	if panes[0].Cwd != "sub" {
		t.Errorf("expected relativized cwd 'sub', got %q", panes[0].Cwd)
	}
}
