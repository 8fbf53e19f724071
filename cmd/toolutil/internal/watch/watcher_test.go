package watch

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/albertocavalcante/toolutil/pkg/env"
	"github.com/albertocavalcante/toolutil/pkg/finder"
)

func TestIsWatchLimitError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "path error without limit",
			err:      &os.PathError{Op: "watch", Path: "/foo", Err: os.ErrNotExist},
			expected: false,
		},
		{
			name:     "regular error",
			err:      os.ErrPermission,
			expected: false,
		},
		{
			name:     "no space left on device",
			err:      errors.New("inotify_add_watch: no space left on device"),
			expected: true,
		},
		{
			name:     "too many open files",
			err:      &os.PathError{Op: "watch", Path: "/foo", Err: errors.New("too many open files")},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isWatchLimitError(tt.err)
			if result != tt.expected {
				t.Errorf("isWatchLimitError(%v) = %v, want %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestNewWatcher(t *testing.T) {
	binDir := t.TempDir()
	fallbackDir := t.TempDir()

	cc := finder.MustNew("cc", finder.Options{
		Path:         env.PathList{binDir},
		FallbackPath: env.PathList{fallbackDir},
	})
	ar := finder.MustNew("ar", finder.Options{Path: env.PathList{binDir}})

	w, err := New(Config{
		Env:     env.New(nil, env.WithExecEnv(env.Vars{})),
		Tools:   []*finder.ToolFinder{cc, ar},
		Verbose: true,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	if w.fsWatcher == nil {
		t.Error("fsWatcher is nil")
	}
	if w.logger == nil {
		t.Error("logger is nil")
	}

	if got, want := w.Tools(), []string{"ar", "cc"}; !slices.Equal(got, want) {
		t.Errorf("Tools() = %v, want %v", got, want)
	}

	wantDirs := []string{binDir, fallbackDir}
	slices.Sort(wantDirs)
	if got := w.Dirs(); !slices.Equal(got, wantDirs) {
		t.Errorf("Dirs() = %v, want %v", got, wantDirs)
	}

	if got := w.dirTools[binDir]; !slices.Equal(got, []string{"cc", "ar"}) {
		t.Errorf("dirTools[bin] = %v, want [cc ar]", got)
	}
	if got := w.dirTools[fallbackDir]; !slices.Equal(got, []string{"cc"}) {
		t.Errorf("dirTools[fallback] = %v, want [cc]", got)
	}
}

func TestNewWatcher_SubstitutesSearchPaths(t *testing.T) {
	root := t.TempDir()

	cc := finder.MustNew("cc", finder.Options{Path: env.PathList{"$TOOLROOT/bin"}})
	w, err := New(Config{
		Env:   env.New(env.Vars{"TOOLROOT": root}),
		Tools: []*finder.ToolFinder{cc},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	want := filepath.Join(root, "bin")
	if got := w.Dirs(); !slices.Equal(got, []string{want}) {
		t.Errorf("Dirs() = %v, want [%s]", got, want)
	}
}

func TestNewWatcher_RequiresEnv(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() without environment should fail")
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := New(Config{Env: env.New(nil)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
		return // Explicit return for nilaway
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestWatcherCloseNilFsWatcher(t *testing.T) {
	w := &Watcher{fsWatcher: nil}
	if err := w.Close(); err != nil {
		t.Errorf("Close() on nil fsWatcher error = %v", err)
	}
}
