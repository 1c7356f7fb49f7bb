package connect

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
)

// Result holds the captured output of one external program invocation.
// A non-empty Stderr marks the invocation as failed.
type Result struct {
	Stdout string
	Stderr string
}

// Failed reports whether the invocation produced error output.
func (r Result) Failed() bool {
	return r.Stderr != ""
}

// Err converts a failed result into a *CommandError, or nil on success.
func (r Result) Err(program string, args ...string) error {
	if !r.Failed() {
		return nil
	}
	return &CommandError{Program: program, Args: args, Stderr: r.Stderr}
}

// Runner executes external programs. Implementations never return an error:
// every failure is reported through Result.Stderr.
type Runner interface {
	Run(ctx context.Context, program string, args ...string) Result
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, program string, args ...string) Result

func (f RunnerFunc) Run(ctx context.Context, program string, args ...string) Result {
	return f(ctx, program, args...)
}

// ExecRunner runs programs directly through os/exec, without a shell.
type ExecRunner struct {
	logger *slog.Logger
}

// NewExecRunner creates an ExecRunner logging to logger. A nil logger discards output.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ExecRunner{logger: logger}
}

// Run executes program with args and captures both output streams.
func (r *ExecRunner) Run(ctx context.Context, program string, args ...string) Result {
	cmdline := strings.TrimSpace(program + " " + strings.Join(args, " "))
	r.logger.Debug("running command", "command", cmdline)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		if result.Stderr == "" {
			switch {
			case errors.Is(ctx.Err(), context.DeadlineExceeded):
				result.Stderr = "command timed out"
			case errors.Is(ctx.Err(), context.Canceled):
				result.Stderr = "command cancelled"
			default:
				result.Stderr = err.Error()
			}
		}
		r.logger.Error("command failed", "command", cmdline, "error", err, "stderr", result.Stderr)
		return result
	}

	r.logger.Debug("command finished", "command", cmdline, "stdout", result.Stdout, "stderr", result.Stderr)
	return result
}
