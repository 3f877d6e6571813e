// Package toolrun abstracts blocking child-process invocations behind a small
// capability interface so pipelines can be tested without spawning real binaries.
package toolrun

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"trackup/internal/services"
)

var commandContext = exec.CommandContext

// Result captures the observable outcome of a finished tool invocation.
type Result struct {
	ExitCode int
	Output   []byte
}

// Runner executes an external tool and reports its exit code and combined output.
// A non-zero exit code is not an error at this layer; callers decide how to
// classify it. The returned error covers missing binaries and launch failures.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// Exec is the Runner implementation backed by os/exec.
type Exec struct{}

func (Exec) Run(ctx context.Context, name string, args ...string) (Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Result{}, services.Wrap(services.ErrToolMissing, "toolrun", "run", "empty tool name", nil)
	}
	if _, err := exec.LookPath(name); err != nil {
		return Result{}, services.Wrap(services.ErrToolMissing, "toolrun", name, "not found in PATH", err)
	}

	cmd := commandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{ExitCode: exitErr.ExitCode(), Output: output}, nil
		}
		return Result{}, services.Wrap(services.ErrExternalTool, "toolrun", name, "launch failed", err)
	}
	return Result{ExitCode: 0, Output: output}, nil
}

var _ Runner = Exec{}

// Available reports whether the named binary resolves on PATH.
func Available(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	_, err := exec.LookPath(name)
	return err == nil
}
