package main

import (
	"context"
	"flag"
	"io"
	"os"
	"strings"

	"tmuxlayout/internal/config"
	"tmuxlayout/internal/importer"
	"tmuxlayout/internal/tmuxcmd"
	"tmuxlayout/internal/tmuxexec"
	"tmuxlayout/internal/tmuxfmt"

	isatty "github.com/mattn/go-isatty"
)

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

const (
	cmdHelp       = "help"
	flagHelpShort = "-h"
	flagHelpLong  = "--help"
)

func runCLI(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx := commandContext{stdin: stdin, stdout: stdout, stderr: stderr}

	if len(args) == 0 {
		showError(ctx.stderr, "no subcommand given")
		printRootHelp(ctx.stderr)
		return 1
	}

	switch args[0] {
	case "create":
		return runCreateCommand(ctx, args[1:])
	case "dump-command":
		return runDumpCommandCommand(ctx, args[1:])
	case "dump-config":
		return runDumpConfigCommand(ctx, args[1:])
	case "export":
		return runExportCommand(ctx, args[1:])
	case cmdHelp, flagHelpShort, flagHelpLong:
		printRootHelp(ctx.stdout)
		return 0
	default:
		showError(ctx.stderr, "unknown command: "+args[0])
		printRootHelp(ctx.stderr)
		return 1
	}
}

func tmuxPath() string {
	if v := strings.TrimSpace(os.Getenv("TMUX_PATH")); v != "" {
		return v
	}
	return "tmux"
}

// splitTmuxArgs pulls the "-- <tmux args>" tail off args, returning the
// flags to parse and the pass-through tmux arguments.
func splitTmuxArgs(args []string) (flagArgs, tmuxArgs []string) {
	for i, a := range args {
		if a == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

func runCreateCommand(ctx commandContext, args []string) int {
	flagArgs, tmuxArgs := splitTmuxArgs(args)
	fs := newFlagSet("create", ctx.stderr)
	configPath := fs.String("c", "", "config file path ('-' for standard input)")
	mode := fs.String("m", "auto", "session select mode: auto|attach|switch|detached")
	ignoreExisting := fs.Bool("i", false, "don't create already existing tmux sessions")
	help := fs.Bool("help", false, "show help")
	if err := fs.Parse(flagArgs); err != nil {
		return 1
	}
	if *help {
		printCreateHelp(ctx.stdout)
		return 0
	}

	cfg, ok := loadConfig(ctx, *configPath)
	if !ok {
		return 1
	}

	tPath := tmuxPath()
	if *ignoreExisting {
		if !removeExistingSessions(ctx, tPath, cfg) {
			return 1
		}
	}

	if len(cfg.Sessions) == 0 && len(cfg.Windows) == 0 {
		showWarning(ctx.stderr, "no sessions or windows to create")
		return 0
	}

	selectMode := resolveSessionSelectMode(*mode, tPath, true)

	b := tmuxcmd.NewBuilder(tPath, tmuxArgs)
	b.NewWindows(cfg.Windows, "")
	b.NewSessions(cfg.Sessions)
	b.SelectSession(cfg.SelectedSession, selectMode)
	printWarnings(ctx.stderr, b.Warnings())

	code, err := tmuxexec.RunInherit(context.Background(), b.Argv())
	if err != nil {
		showError(ctx.stderr, err.Error())
		return 1
	}
	return code
}

func runDumpCommandCommand(ctx commandContext, args []string) int {
	flagArgs, tmuxArgs := splitTmuxArgs(args)
	fs := newFlagSet("dump-command", ctx.stderr)
	configPath := fs.String("c", "", "config file path ('-' for standard input)")
	mode := fs.String("m", "auto", "session select mode: auto|attach|switch|detached")
	ignoreExisting := fs.Bool("i", false, "don't create already existing tmux sessions")
	help := fs.Bool("help", false, "show help")
	if err := fs.Parse(flagArgs); err != nil {
		return 1
	}
	if *help {
		printDumpCommandHelp(ctx.stdout)
		return 0
	}

	cfg, ok := loadConfig(ctx, *configPath)
	if !ok {
		return 1
	}

	tPath := tmuxPath()
	if *ignoreExisting {
		if !removeExistingSessions(ctx, tPath, cfg) {
			return 1
		}
	}

	if len(cfg.Sessions) == 0 && len(cfg.Windows) == 0 {
		showWarning(ctx.stderr, "no sessions or windows to create")
	}

	selectMode := resolveSessionSelectMode(*mode, tPath, false)

	b := tmuxcmd.NewBuilder(tPath, tmuxArgs)
	b.NewWindows(cfg.Windows, "")
	b.NewSessions(cfg.Sessions)
	b.SelectSession(cfg.SelectedSession, selectMode)
	printWarnings(ctx.stderr, b.Warnings())

	writeln(ctx.stdout, strings.Join(b.Argv(), " "))
	return 0
}

func runDumpConfigCommand(ctx commandContext, args []string) int {
	fs := newFlagSet("dump-config", ctx.stderr)
	configPath := fs.String("c", "", "config file path ('-' for standard input)")
	format := fs.String("f", "yaml", "output format: yaml|toml")
	help := fs.Bool("help", false, "show help")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *help {
		printDumpConfigHelp(ctx.stdout)
		return 0
	}

	cfg, ok := loadConfig(ctx, *configPath)
	if !ok {
		return 1
	}

	f, ok := config.FormatFromExtension(*format)
	if !ok {
		showError(ctx.stderr, "unsupported output format: "+*format)
		return 1
	}

	out, err := config.Encode(f, config.ConfigurationToDoc(cfg))
	if err != nil {
		showError(ctx.stderr, err.Error())
		return 1
	}
	_, _ = ctx.stdout.Write(out)
	return 0
}

func runExportCommand(ctx commandContext, args []string) int {
	flagArgs, tmuxArgs := splitTmuxArgs(args)
	fs := newFlagSet("export", ctx.stderr)
	scopeFlag := fs.String("s", "all", "export scope: all|session|window")
	format := fs.String("f", "yaml", "output format: yaml|toml")
	help := fs.Bool("help", false, "show help")
	if err := fs.Parse(flagArgs); err != nil {
		return 1
	}
	if *help {
		printExportHelp(ctx.stdout)
		return 0
	}

	scope, ok := parseExportScope(*scopeFlag)
	if !ok {
		showError(ctx.stderr, "unknown export scope: "+*scopeFlag)
		return 1
	}

	tPath := tmuxPath()
	state, err := queryState(tPath, tmuxArgs, tmuxcmdScopeOf(scope))
	if err != nil {
		showError(ctx.stderr, "failed to query tmux state: "+err.Error())
		return 1
	}

	cfg, err := importer.Reassemble(state, scope)
	if err != nil {
		showError(ctx.stderr, err.Error())
		return 1
	}

	f, ok := config.FormatFromExtension(*format)
	if !ok {
		showError(ctx.stderr, "unsupported output format: "+*format)
		return 1
	}

	out, err := config.Encode(f, config.ConfigurationToDoc(cfg))
	if err != nil {
		showError(ctx.stderr, err.Error())
		return 1
	}
	_, _ = ctx.stdout.Write(out)
	return 0
}

func parseExportScope(raw string) (importer.Scope, bool) {
	switch raw {
	case "all":
		return importer.ScopeAllSessions, true
	case "session":
		return importer.ScopeCurrentSession, true
	case "window":
		return importer.ScopeCurrentWindow, true
	default:
		return 0, false
	}
}

func tmuxcmdScopeOf(s importer.Scope) tmuxcmd.QueryScope {
	switch s {
	case importer.ScopeAllSessions:
		return tmuxcmd.ScopeAllSessions
	case importer.ScopeCurrentSession:
		return tmuxcmd.ScopeCurrentSession
	default:
		return tmuxcmd.ScopeCurrentWindow
	}
}

func queryState(tPath string, tmuxArgs []string, scope tmuxcmd.QueryScope) (tmuxfmt.State, error) {
	b := tmuxcmd.NewBuilder(tPath, tmuxArgs)
	b.QueryPanes(tmuxfmt.ListPanesFormat, scope)

	out, err := tmuxexec.RunCaptured(context.Background(), b.Argv())
	if err != nil {
		return nil, err
	}
	return tmuxfmt.ParseState(out)
}

// loadConfig resolves a config either from an explicit path ('-' for
// stdin), or by searching the default locations.
func loadConfig(ctx commandContext, path string) (*config.Configuration, bool) {
	warn := func(msg string) { showWarning(ctx.stderr, msg) }

	switch path {
	case "-":
		data, err := io.ReadAll(ctx.stdin)
		if err != nil {
			showError(ctx.stderr, "reading from standard input failed: "+err.Error())
			return nil, false
		}
		doc, err := config.DecodeGuessed(data)
		if err != nil {
			showError(ctx.stderr, "parsing config from standard input failed: "+err.Error())
			return nil, false
		}
		partial, err := config.PartialConfigurationFromDoc(doc)
		if err != nil {
			showError(ctx.stderr, err.Error())
			return nil, false
		}
		cfg, err := config.ResolveStandalone(partial)
		if err != nil {
			showError(ctx.stderr, "config given via standard input can't have file includes")
			return nil, false
		}
		return cfg, true

	case "":
		found, ok := config.FindDefaultConfigFile()
		if !ok {
			showError(ctx.stderr, "no config file found")
			return nil, false
		}
		showInfo(ctx.stderr, "using config file at '"+found+"'")
		cfg, err := config.LoadConfigAt(found, warn)
		if err != nil {
			showError(ctx.stderr, err.Error())
			return nil, false
		}
		return cfg, true

	default:
		cfg, err := config.LoadConfigAt(path, warn)
		if err != nil {
			showError(ctx.stderr, err.Error())
			return nil, false
		}
		return cfg, true
	}
}

// removeExistingSessions drops from cfg any session whose name already
// exists on the live multiplexer.
func removeExistingSessions(ctx commandContext, tPath string, cfg *config.Configuration) bool {
	state, err := queryState(tPath, nil, tmuxcmd.ScopeAllSessions)
	if err != nil {
		showError(ctx.stderr, "failed to query tmux state (needed for -i/--ignore-existing-sessions): "+err.Error())
		return false
	}

	existing := map[string]bool{}
	for _, rec := range state {
		existing[rec.Name] = true
	}

	kept := cfg.Sessions[:0]
	for _, s := range cfg.Sessions {
		if !existing[s.Name] {
			kept = append(kept, s)
		}
	}
	cfg.Sessions = kept
	return true
}

// resolveSessionSelectMode turns the CLI's "auto" option into a
// concrete tmuxcmd.SessionSelectMode by inspecting the environment:
// switch when a live client exists, attach when running from a
// terminal, detached otherwise. An explicit "attach" falls back to
// detached when stdin is not a terminal only if allowAttach is true
// (create); dump-command passes false and always keeps "attach", since
// it spawns nothing whose terminal could be checked.
func resolveSessionSelectMode(opt, tPath string, allowAttach bool) tmuxcmd.SessionSelectMode {
	isTerminal := isatty.IsTerminal(os.Stdin.Fd())

	switch opt {
	case "switch":
		return tmuxcmd.ModeSwitch
	case "detached":
		return tmuxcmd.ModeDetached
	case "attach":
		if isTerminal || !allowAttach {
			return tmuxcmd.ModeAttach
		}
		return tmuxcmd.ModeDetached
	default: // "auto"
		if hasTmuxClients(tPath) {
			return tmuxcmd.ModeSwitch
		}
		if isTerminal {
			return tmuxcmd.ModeAttach
		}
		return tmuxcmd.ModeDetached
	}
}

func hasTmuxClients(tPath string) bool {
	b := tmuxcmd.NewBuilder(tPath, nil)
	b.QueryClients()
	out, err := tmuxexec.RunCaptured(context.Background(), b.Argv())
	if err != nil {
		return false
	}
	return strings.TrimSpace(out) != ""
}

func printWarnings(w io.Writer, warnings []string) {
	for _, m := range warnings {
		showWarning(w, m)
	}
}

func printRootHelp(w io.Writer) {
	writeln(w, "tmux-layout: reconstructs a tmux pane/window/session topology from a config file")
	writeln(w, "")
	writeln(w, "Usage:")
	writeln(w, "  tmux-layout create [-c FILE] [-m auto|attach|switch|detached] [-i] -- <tmux args>")
	writeln(w, "  tmux-layout dump-command [-c FILE] [-m auto|attach|switch|detached] [-i] -- <tmux args>")
	writeln(w, "  tmux-layout dump-config [-c FILE] [-f yaml|toml]")
	writeln(w, "  tmux-layout export [-s all|session|window] [-f yaml|toml] -- <tmux args>")
}

func printCreateHelp(w io.Writer) {
	writeln(w, "Usage:")
	writeln(w, "  tmux-layout create [-c FILE] [-m auto|attach|switch|detached] [-i] -- <tmux args>")
}

func printDumpCommandHelp(w io.Writer) {
	writeln(w, "Usage:")
	writeln(w, "  tmux-layout dump-command [-c FILE] [-m auto|attach|switch|detached] [-i] -- <tmux args>")
}

func printDumpConfigHelp(w io.Writer) {
	writeln(w, "Usage:")
	writeln(w, "  tmux-layout dump-config [-c FILE] [-f yaml|toml]")
}

func printExportHelp(w io.Writer) {
	writeln(w, "Usage:")
	writeln(w, "  tmux-layout export [-s all|session|window] [-f yaml|toml] -- <tmux args>")
}
