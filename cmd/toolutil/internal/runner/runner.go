// Package runner runs a tool located by a finder.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/albertocavalcante/toolutil/internal/log"
	"github.com/albertocavalcante/toolutil/pkg/env"
	"github.com/albertocavalcante/toolutil/pkg/finder"
)

// ErrToolNotFound is returned when no tier has the tool.
var ErrToolNotFound = errors.New("tool not found")

// Runner handles resolving and executing one tool.
type Runner struct {
	finder *finder.ToolFinder
	env    *env.Environment
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Option configures a Runner.
type Option func(*Runner)

// WithStdio replaces the process's standard streams. Used primarily for testing.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// New creates a Runner for the tool f finds in e.
func New(f *finder.ToolFinder, e *env.Environment, opts ...Option) *Runner {
	r := &Runner{
		finder: f,
		env:    e,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the path of the program to execute.
//
// A stripped result is a bare program name meant to be looked up again in the
// execution PATH; when that lookup fails the directory the finder searched is
// used instead.
func (r *Runner) Resolve() (string, error) {
	res, ok := r.finder.Lookup(r.env)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, r.finder.Tool())
	}
	if !res.Stripped || filepath.IsAbs(res.Path) || strings.ContainsRune(res.Path, filepath.Separator) {
		return res.Path, nil
	}
	if path := r.env.WhereIs(res.Path, nil, r.finder.PathExt(), r.finder.Reject()); path != "" {
		return path, nil
	}
	log.Component("runner").Debug("stripped name not on PATH, using discovered path",
		"tool", r.finder.Tool(), "name", res.Path, "found", res.Found)
	return res.Found, nil
}

// Exec replaces the current process with the tool (unix exec).
func (r *Runner) Exec(args []string) error {
	path, err := r.Resolve()
	if err != nil {
		return err
	}

	// Prepend the binary path to args (argv[0])
	argv := append([]string{path}, args...)
	return syscall.Exec(path, argv, r.env.Environ())
}

// Run executes the tool and returns after it completes.
func (r *Runner) Run(ctx context.Context, args []string) error {
	cmd, err := r.command(ctx, args)
	if err != nil {
		return err
	}
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	return cmd.Run()
}

// RunWithOutput executes the tool and captures its combined output.
func (r *Runner) RunWithOutput(ctx context.Context, args []string) ([]byte, error) {
	cmd, err := r.command(ctx, args)
	if err != nil {
		return nil, err
	}
	return cmd.CombinedOutput()
}

func (r *Runner) command(ctx context.Context, args []string) (*exec.Cmd, error) {
	path, err := r.Resolve()
	if err != nil {
		return nil, err
	}
	log.Component("runner").Info("running tool", "tool", r.finder.Tool(), "path", path, "args", args)
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = r.env.Environ()
	return cmd, nil
}
