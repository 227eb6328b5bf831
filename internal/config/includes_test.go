package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadConfigAtMergesIncludes(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", "includes: [\"extra.yaml\"]\nselected_session: main\nsessions:\n  - name: main\n    windows: []\n")
	writeConfig(t, dir, "extra.yaml", "sessions:\n  - name: side\n    windows: []\n")

	cfg, err := LoadConfigAt(filepath.Join(dir, "base.yaml"), nil)
	if err != nil {
		t.Fatalf("LoadConfigAt: %v", err)
	}
	if len(cfg.Sessions) != 2 {
		t.Fatalf("expected 2 sessions after merge, got %d", len(cfg.Sessions))
	}
	if cfg.SelectedSession == nil || *cfg.SelectedSession != "main" {
		t.Fatalf("expected selected_session main, got %v", cfg.SelectedSession)
	}
}

func TestLoadConfigAtWarnsOnConflictingSelectedSession(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", "includes: [\"extra.yaml\"]\nselected_session: main\nsessions: []\n")
	writeConfig(t, dir, "extra.yaml", "selected_session: other\nsessions: []\n")

	var warnings []string
	_, err := LoadConfigAt(filepath.Join(dir, "base.yaml"), func(msg string) {
		warnings = append(warnings, msg)
	})
	if err != nil {
		t.Fatalf("LoadConfigAt: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %v", warnings)
	}
}

func TestLoadConfigAtRejectsUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "base.json", "{}")
	if _, err := LoadConfigAt(path, nil); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestFindDefaultConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if _, ok := FindDefaultConfigFile(); ok {
		t.Fatal("expected no default config file in empty directory")
	}
	writeConfig(t, dir, ".tmux-layout.yaml", "sessions: []\n")
	got, ok := FindDefaultConfigFile()
	if !ok {
		t.Fatal("expected to find default config file")
	}
	if filepath.Base(got) != ".tmux-layout.yaml" {
		t.Errorf("found %q, want .tmux-layout.yaml", got)
	}
}
