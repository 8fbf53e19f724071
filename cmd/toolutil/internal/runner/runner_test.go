//go:build !windows

package runner_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/albertocavalcante/toolutil/cmd/toolutil/internal/runner"
	"github.com/albertocavalcante/toolutil/pkg/env"
	"github.com/albertocavalcante/toolutil/pkg/finder"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolve_PriorityTier(t *testing.T) {
	tmpDir := t.TempDir()
	toolPath := writeScript(t, tmpDir, "greet", "echo hi")

	f := finder.MustNew("greet", finder.Options{PriorityPath: env.PathList{tmpDir}})
	r := runner.New(f, env.New(nil))

	got, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != toolPath {
		t.Errorf("Resolve() = %q, want %q", got, toolPath)
	}
}

func TestResolve_StrippedNameUsesExecPath(t *testing.T) {
	tmpDir := t.TempDir()
	toolPath := writeScript(t, tmpDir, "greet", "echo hi")

	f := finder.MustNew("greet", finder.Options{})
	r := runner.New(f, env.New(nil, env.WithExecEnv(env.Vars{"PATH": tmpDir})))

	got, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != toolPath {
		t.Errorf("Resolve() = %q, want %q", got, toolPath)
	}
}

func TestResolve_StrippedFallbackUsesDiscoveredPath(t *testing.T) {
	tmpDir := t.TempDir()
	toolPath := writeScript(t, tmpDir, "greet", "echo hi")

	f := finder.MustNew("greet", finder.Options{
		FallbackPath:      env.PathList{tmpDir},
		StripFallbackPath: finder.Bool(true),
	})
	r := runner.New(f, env.New(nil, env.WithExecEnv(env.Vars{"PATH": t.TempDir()})))

	got, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != toolPath {
		t.Errorf("Resolve() = %q, want %q", got, toolPath)
	}
}

func TestResolve_NotFound(t *testing.T) {
	f := finder.MustNew("nope", finder.Options{Path: env.PathList{t.TempDir()}})
	r := runner.New(f, env.New(nil))

	_, err := r.Resolve()
	if !errors.Is(err, runner.ErrToolNotFound) {
		t.Errorf("Resolve() error = %v, want ErrToolNotFound", err)
	}
}

func TestRun(t *testing.T) {
	tmpDir := t.TempDir()
	writeScript(t, tmpDir, "greet", `echo "hello $1 $GREETING"`)

	f := finder.MustNew("greet", finder.Options{PriorityPath: env.PathList{tmpDir}})
	e := env.New(nil, env.WithExecEnv(env.Vars{"GREETING": "from-env", "PATH": "/bin:/usr/bin"}))

	var stdout, stderr bytes.Buffer
	r := runner.New(f, e, runner.WithStdio(strings.NewReader(""), &stdout, &stderr))
	if err := r.Run(context.Background(), []string{"world"}); err != nil {
		t.Fatalf("Run() error = %v (stderr: %s)", err, stderr.String())
	}
	if got := strings.TrimSpace(stdout.String()); got != "hello world from-env" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRunWithOutput(t *testing.T) {
	tmpDir := t.TempDir()
	writeScript(t, tmpDir, "fail", "echo broken >&2; exit 3")

	f := finder.MustNew("fail", finder.Options{PriorityPath: env.PathList{tmpDir}})
	out, err := runner.New(f, env.New(nil)).RunWithOutput(context.Background(), nil)
	if err == nil {
		t.Fatal("RunWithOutput() should report the non-zero exit")
	}
	if !strings.Contains(string(out), "broken") {
		t.Errorf("output = %q", out)
	}
}
