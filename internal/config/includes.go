package config

import (
	"fmt"
	"os"
	"path/filepath"

	tcwd "tmuxlayout/internal/cwd"
	"tmuxlayout/internal/tlerr"
)

// Warner receives non-fatal diagnostics produced while resolving
// includes, mirroring the original's show_warning callout.
type Warner func(msg string)

// LoadConfigAt reads and fully resolves the configuration at path,
// recursively merging any includes it names. Included paths are
// resolved relative to the directory containing the including file,
// after shell-style expansion via internal/cwd.
func LoadConfigAt(path string, warn Warner) (*Configuration, error) {
	partial, err := LoadPartialConfigAt(path)
	if err != nil {
		return nil, err
	}

	cfg := &Configuration{
		SelectedSession: partial.SelectedSession,
		Sessions:        partial.Sessions,
		Windows:         partial.Windows,
	}

	dir := filepath.Dir(path)
	for _, rawInclude := range partial.Includes {
		expanded, err := tcwd.Parse(rawInclude)
		if err != nil {
			return nil, tlerr.Parsef("include %q: %v", rawInclude, err)
		}
		includePath, _ := expanded.Path()
		if !filepath.IsAbs(includePath) {
			includePath = filepath.Join(dir, includePath)
		}

		included, err := LoadConfigAt(includePath, warn)
		if err != nil {
			return nil, err
		}

		cfg.Sessions = append(cfg.Sessions, included.Sessions...)
		cfg.Windows = append(cfg.Windows, included.Windows...)

		if included.SelectedSession != nil {
			if cfg.SelectedSession == nil {
				cfg.SelectedSession = included.SelectedSession
			} else if warn != nil {
				warn(fmt.Sprintf("ignoring selected session %q from %s", *included.SelectedSession, includePath))
			}
		}
	}

	return cfg, nil
}

// ResolveStandalone converts a partial configuration with no includes
// into a canonical Configuration. Standard input has no directory to
// resolve include paths against, so a config read from stdin is
// rejected outright if it names any.
func ResolveStandalone(partial *PartialConfiguration) (*Configuration, error) {
	if len(partial.Includes) > 0 {
		return nil, tlerr.UnresolvedIncludes()
	}
	return &Configuration{
		SelectedSession: partial.SelectedSession,
		Sessions:        partial.Sessions,
		Windows:         partial.Windows,
	}, nil
}

// LoadPartialConfigAt reads and decodes the file at path without
// resolving its includes.
func LoadPartialConfigAt(path string) (*PartialConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tlerr.IO(fmt.Sprintf("failed to load config file at %q", path), err)
	}

	ext := filepath.Ext(path)
	if len(ext) > 0 && ext[0] == '.' {
		ext = ext[1:]
	}
	f, ok := FormatFromExtension(ext)
	if !ok {
		return nil, tlerr.UnsupportedFormat("unsupported config format (supported: YAML, TOML)")
	}

	doc, err := Decode(f, data)
	if err != nil {
		return nil, tlerr.Parsef("failed to parse config file at %q: %v", path, err)
	}
	return PartialConfigurationFromDoc(doc)
}

// defaultConfigBasename is the stem searched for by FindDefaultConfigFile.
const defaultConfigBasename = ".tmux-layout"

var defaultConfigExtensions = []string{"yaml", "yml", "toml"}

// FindDefaultConfigFile looks for ".tmux-layout.{yaml,yml,toml}" first
// in the current directory, then in the user's home directory,
// returning the first match.
func FindDefaultConfigFile() (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	home, homeErr := os.UserHomeDir()

	dirs := []string{cwd}
	if homeErr == nil {
		dirs = append(dirs, home)
	}

	for _, dir := range dirs {
		for _, ext := range defaultConfigExtensions {
			candidate := filepath.Join(dir, defaultConfigBasename+"."+ext)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
	}
	return "", false
}
