// Package gitio runs git queries and hands their raw output to the
// blame parser. Stdout, stderr, and the exit status stay separate so
// callers can tell a failed query from an empty one.
package gitio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
)

// Executor runs a command and reports its streams and exit status.
// Implementations must not fold a non-zero exit into an error; that
// distinction belongs to the caller.
type Executor interface {
	RunDir(ctx context.Context, dir string, cmd string, args ...string) ExecResult
	RunDirInput(ctx context.Context, dir string, stdin io.Reader, cmd string, args ...string) ExecResult
}

// ExecResult is the raw outcome of one command invocation. ExitCode is
// -1 when the process could not be started at all.
type ExecResult struct {
	Stdout   []byte
	Stderr   string
	ExitCode int
}

// RealExecutor invokes actual processes.
type RealExecutor struct{}

func (RealExecutor) RunDir(ctx context.Context, dir string, cmd string, args ...string) ExecResult {
	return run(ctx, dir, nil, cmd, args...)
}

func (RealExecutor) RunDirInput(ctx context.Context, dir string, stdin io.Reader, cmd string, args ...string) ExecResult {
	return run(ctx, dir, stdin, cmd, args...)
}

func run(ctx context.Context, dir string, stdin io.Reader, cmd string, args ...string) ExecResult {
	c := exec.CommandContext(ctx, cmd, args...)
	if dir != "" {
		c.Dir = dir
	}
	c.Stdin = stdin

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	res := ExecResult{}
	err := c.Run()
	res.Stdout = stdout.Bytes()
	res.Stderr = strings.TrimSpace(stderr.String())
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
			if res.Stderr == "" {
				res.Stderr = err.Error()
			}
		}
	}
	return res
}
