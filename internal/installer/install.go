package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// installTimeout bounds the privileged installer run. Variable so tests can
// shrink it.
var installTimeout = 10 * time.Minute

// InstallationError reports an installer run that did not complete cleanly.
type InstallationError struct {
	ExitCode int
	TimedOut bool
	Err      error
}

func (e *InstallationError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("driver installation timed out after %s", installTimeout)
	}
	if e.ExitCode != 0 {
		return fmt.Sprintf("driver installation failed with exit code %d", e.ExitCode)
	}
	return fmt.Sprintf("driver installation failed: %v", e.Err)
}

func (e *InstallationError) Unwrap() error { return e.Err }

// installCommand builds the privileged installer invocation. Swapped in tests
// so no test ever runs sudo.
var installCommand = func(ctx context.Context, path string) *exec.Cmd {
	return exec.CommandContext(ctx, "sudo", path)
}

// Install runs the downloaded .run installer with elevated privileges. The
// installer presents its own interactive prompts, so stdio is inherited.
func Install(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, installTimeout)
	defer cancel()

	cmd := installCommand(ctx, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &InstallationError{TimedOut: true, Err: ctx.Err()}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &InstallationError{ExitCode: exitErr.ExitCode(), Err: err}
	}
	return &InstallationError{Err: err}
}
