// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package clangformat runs a source formatter in place over a source tree.
//
// Every eligible file gets its own invocation of the formatter. Invocations
// are explicit calls returning a [Result]; the [Runner] logs failed
// invocations and moves on, so a run succeeds once every file has been
// submitted, whether or not the formatter succeeded on it.
package clangformat

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"slices"

	"go.astrophena.name/journeytools/internal/srctree"
	"go.astrophena.name/journeytools/logger"
)

// DefaultCommand formats a file in place and reports what it does. The path
// of the file is appended as the last argument.
var DefaultCommand = []string{"clang-format", "-verbose", "-i"}

// Result is the outcome of a single formatter invocation.
type Result struct {
	// Path is the formatted file.
	Path string
	// Argv is the full command line that was run.
	Argv []string
	// ExitCode is the exit status of the command, or -1 if it could not be
	// started or was terminated by a signal.
	ExitCode int
	// Output holds the combined standard output and standard error.
	Output []byte
	// Err is set when the command could not be started or waited for. A
	// non-zero exit status alone is not an error.
	Err error
}

// OK reports whether the formatter ran and exited successfully.
func (r Result) OK() bool { return r.Err == nil && r.ExitCode == 0 }

// Executor runs a command and reports its outcome.
type Executor interface {
	Exec(ctx context.Context, argv []string) Result
}

// ExecutorFunc is an adapter to allow the use of ordinary functions as an
// Executor.
type ExecutorFunc func(ctx context.Context, argv []string) Result

// Exec calls f.
func (f ExecutorFunc) Exec(ctx context.Context, argv []string) Result { return f(ctx, argv) }

// CommandExecutor runs commands as child processes using [os/exec].
type CommandExecutor struct {
	// Dir is the working directory of the child. Empty means the current
	// directory.
	Dir string
}

// Exec runs argv and waits for it to exit.
func (e CommandExecutor) Exec(ctx context.Context, argv []string) Result {
	res := Result{Argv: argv, ExitCode: -1}
	if len(argv) == 0 {
		res.Err = errors.New("clangformat: empty command")
		return res
	}

	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = e.Dir
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	res.Output = buf.Bytes()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.ExitCode = 0
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		res.Err = err
	}
	return res
}

// Summary counts the files a [Runner] handled.
type Summary struct {
	// Submitted is the number of eligible files handed to the formatter.
	Submitted int
	// Failed is the number of invocations that did not succeed.
	Failed int
}

// Runner formats every eligible file of a tree.
type Runner struct {
	// Command is the formatter command line without the file path. If empty,
	// DefaultCommand is used.
	Command []string
	// Executor runs the formatter. If nil, a CommandExecutor is used.
	Executor Executor
	// Output receives the captured output of every invocation. If nil, the
	// output is discarded.
	Output io.Writer
	// DryRun makes the runner log the files it would format without running
	// anything. Dry runs count files as submitted.
	DryRun bool
}

// Run walks root and formats every file accepted by f, one at a time, in walk
// order. The returned error is a walk error or the context's error; failures
// of the formatter itself are only logged and counted.
func (r *Runner) Run(ctx context.Context, root string, f srctree.Filter) (Summary, error) {
	var sum Summary

	err := srctree.Walk(root, f, func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if r.DryRun {
			logger.Info(ctx, "would format", slog.String("path", path))
			sum.Submitted++
			return nil
		}

		res := r.Format(ctx, path)
		sum.Submitted++
		if !res.OK() {
			sum.Failed++
		}
		return nil
	})

	return sum, err
}

// Format runs the formatter on a single file.
//
// The result is logged: failures at warn level, successes at debug level.
// Failures are deliberately not returned as errors; callers that care can
// inspect the result.
func (r *Runner) Format(ctx context.Context, path string) Result {
	argv := append(slices.Clone(r.command()), path)

	res := r.executor().Exec(ctx, argv)
	res.Path = path

	if r.Output != nil && len(res.Output) > 0 {
		r.Output.Write(res.Output)
	}

	attrs := []slog.Attr{
		slog.String("path", path),
		slog.Int("exit_code", res.ExitCode),
	}
	switch {
	case res.Err != nil:
		logger.Warn(ctx, "formatter could not run", append(attrs, slog.Any("err", res.Err))...)
	case res.ExitCode != 0:
		logger.Warn(ctx, "formatter failed", attrs...)
	default:
		logger.Debug(ctx, "formatted", attrs...)
	}
	return res
}

func (r *Runner) command() []string {
	if len(r.Command) == 0 {
		return DefaultCommand
	}
	return r.Command
}

func (r *Runner) executor() Executor {
	if r.Executor == nil {
		return CommandExecutor{}
	}
	return r.Executor
}
