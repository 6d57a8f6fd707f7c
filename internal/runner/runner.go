// Package runner executes learner Python snippets.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes source and returns everything it printed.
type Runner interface {
	Run(ctx context.Context, source string) (string, error)
}

// Func adapts a plain function to Runner.
type Func func(ctx context.Context, source string) (string, error)

func (f Func) Run(ctx context.Context, source string) (string, error) {
	return f(ctx, source)
}

// ExecError reports a snippet that ran but exited unsuccessfully, or one
// that could not be started. Output holds whatever it printed.
type ExecError struct {
	Output string
	Err    error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("run python: %v", e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Message is the last non-empty output line (usually the traceback's
// exception line), falling back to the underlying error.
func (e *ExecError) Message() string {
	lines := strings.Split(strings.TrimRight(e.Output, "\n"), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return e.Err.Error()
}

// PythonRunner runs snippets with a local interpreter in isolated mode,
// feeding the source on stdin.
type PythonRunner struct {
	Interpreter string
	// Timeout bounds a single run; zero means no limit.
	Timeout time.Duration
}

// DefaultInterpreter is used when PythonRunner.Interpreter is empty.
const DefaultInterpreter = "python3"

func (p PythonRunner) interpreter() string {
	if p.Interpreter == "" {
		return DefaultInterpreter
	}
	return p.Interpreter
}

// Run executes source. A non-zero exit yields *ExecError carrying the
// combined stdout and stderr.
func (p PythonRunner) Run(ctx context.Context, source string) (string, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, p.interpreter(), "-I", "-")
	cmd.Stdin = strings.NewReader(source)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.Env = append(cmd.Environ(), "PYTHONIOENCODING=utf-8", "PYTHONUNBUFFERED=1")

	err := cmd.Run()
	if err == nil {
		return out.String(), nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("timed out after %s", p.Timeout)
	}
	return out.String(), &ExecError{Output: out.String(), Err: err}
}
