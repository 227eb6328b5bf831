// Package cwd implements the optional, shell-expanded working-directory
// value shared by panes, windows and sessions.
package cwd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// Cwd is an optional path. The empty string is indistinguishable from
// "absent", matching the multiplexer config's treatment of missing and
// empty cwd values.
type Cwd string

// IsEmpty reports whether c carries no path.
func (c Cwd) IsEmpty() bool {
	return c == ""
}

// Path returns the underlying path and whether one is set.
func (c Cwd) Path() (string, bool) {
	if c.IsEmpty() {
		return "", false
	}
	return string(c), true
}

// Join returns the effective cwd of a child relative to parent c:
// an absolute child wins outright, an empty child yields c unchanged,
// and a relative child is joined onto c (or returned bare if c is empty).
func Join(parent, child Cwd) Cwd {
	if child.IsEmpty() {
		return parent
	}
	if filepath.IsAbs(string(child)) {
		return child
	}
	if parent.IsEmpty() {
		return child
	}
	return Cwd(filepath.Join(string(parent), string(child)))
}

// Parse expands shell-style home and environment-variable references in
// raw and returns the resulting Cwd. An empty string parses to the
// absent Cwd. A reference to an undefined environment variable is a
// parse error.
func Parse(raw string) (Cwd, error) {
	if raw == "" {
		return "", nil
	}

	expanded := expandHome(raw)

	var missing []string
	env := func(name string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		missing = append(missing, name)
		return ""
	}

	result, err := shell.Expand(expanded, env)
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", raw, err)
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("unknown variable reference %q in %q", missing[0], raw)
	}
	return Cwd(result), nil
}

// expandHome expands a leading "~" or "~/..." to the current user's home
// directory. mvdan.cc/sh's shell expansion only handles parameter
// expansion, not tilde expansion, so this is done as a separate pass.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// RelativeTo makes cwd relative to root when root is a path prefix of
// cwd, otherwise it returns cwd unchanged (absolute).
func RelativeTo(root, target Cwd) Cwd {
	rootPath, ok := root.Path()
	if !ok {
		return target
	}
	targetPath, ok := target.Path()
	if !ok {
		return target
	}
	rel, err := filepath.Rel(rootPath, targetPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return target
	}
	return Cwd(rel)
}
