// Package trainer is the boundary to the external per-PDE trainer.
// Only the invocation contract lives here; the training itself is an
// external program.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// #region invoker
// Invoker launches a named trainer module and blocks until it exits.
// The exec-backed implementation below spawns real processes; tests
// inject a fake.
type Invoker interface {
	Run(ctx context.Context, module string) error
}
// #endregion invoker

// #region exec-error
// ExecError reports a trainer process that exited with failure.
type ExecError struct {
	Module   string
	ExitCode int
	Err      error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("trainer %s: exit status %d", e.Module, e.ExitCode)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
// #endregion exec-error

// #region exec-invoker
// ExecInvoker runs trainer modules as `<python> -m <module>`
// subprocesses with the working directory pinned to the repo root, so
// the trainer's own `src` tree is importable. One invocation completes
// before the next begins; there is no timeout and no retry, so a hung
// trainer hangs the run.
type ExecInvoker struct {
	// Python is the interpreter executable, e.g. "python3".
	Python string

	// RepoRoot is the working directory for every invocation.
	RepoRoot string
}

// NewExecInvoker creates an invoker rooted at repoRoot.
func NewExecInvoker(python, repoRoot string) *ExecInvoker {
	return &ExecInvoker{Python: python, RepoRoot: repoRoot}
}

// Run launches the module and waits. A non-zero exit status is
// returned as *ExecError and aborts the caller's run; it is never
// swallowed.
func (iv *ExecInvoker) Run(ctx context.Context, module string) error {
	cmd := exec.CommandContext(ctx, iv.Python, "-m", module)
	cmd.Dir = iv.RepoRoot
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExecError{Module: module, ExitCode: exitErr.ExitCode(), Err: err}
		}
		return fmt.Errorf("start trainer %s: %w", module, err)
	}
	return nil
}
// #endregion exec-invoker
