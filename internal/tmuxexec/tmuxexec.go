// Package tmuxexec spawns the multiplexer binary built by
// internal/tmuxcmd, generalizing the teacher's subprocess invocation
// (exec.CommandContext plus stderr capture for error classification)
// to the two shapes this tool needs: an inherited-stdio compile run
// and a captured-stdout query run.
package tmuxexec

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"

	"tmuxlayout/internal/tlerr"
)

// RunInherit spawns argv[0] with argv[1:] as arguments, with stdin,
// stdout and stderr all inherited from the current process (the
// compile-direction shape from §5: the multiplexer owns the
// terminal). It returns the child's exit code, or an error if the
// process could not be started at all.
func RunInherit(ctx context.Context, argv []string) (int, error) {
	if len(argv) == 0 {
		return 0, tlerr.CommandIO(errors.New("empty command"))
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	return exitCodeOf(cmd, err)
}

// RunCaptured spawns argv[0] with argv[1:] as arguments, inheriting
// stderr but fully capturing stdout before returning it (the
// import-direction shape from §5: list-panes/list-clients output must
// be parsed as a whole).
func RunCaptured(ctx context.Context, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", tlerr.CommandIO(errors.New("empty command"))
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", tlerr.CommandExitCode(exitErr.ExitCode())
		}
		return "", tlerr.CommandIO(err)
	}
	return stdout.String(), nil
}

func exitCodeOf(cmd *exec.Cmd, err error) (int, error) {
	if err == nil {
		return cmd.ProcessState.ExitCode(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return 1, tlerr.CommandIO(err)
	}
	return 1, tlerr.CommandIO(err)
}
