package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/albertocavalcante/toolutil/internal/log"
	"github.com/albertocavalcante/toolutil/pkg/env"
	"github.com/albertocavalcante/toolutil/pkg/finder"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Config.Debounce is not positive.
const DefaultDebounce = 500 * time.Millisecond

// ErrWatchLimitReached is returned when the OS watch limit is exceeded.
var ErrWatchLimitReached = errors.New("filesystem watch limit reached")

// Config configures the watcher.
type Config struct {
	Env   *env.Environment
	Tools []*finder.ToolFinder
	// Cache, when set, is reset before tools are re-resolved so stale
	// lookups are not served after a directory changes.
	Cache    *env.CachingLocator
	Debounce time.Duration
	Verbose  bool
	NoColor  bool
	JSON     bool
	Writer   io.Writer
}

// Watcher watches the directories tools are searched in and reports when a
// tool's resolution changes.
type Watcher struct {
	config    Config
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer[string]
	logger    *Logger

	finders  map[string]*finder.ToolFinder
	dirTools map[string][]string

	// resolveMu serializes re-resolution and guards resolved.
	resolveMu sync.Mutex
	resolved  map[string]string
}

// New creates a new watcher with the given configuration.
func New(cfg Config) (*Watcher, error) {
	if cfg.Env == nil {
		return nil, errors.New("watch: environment is required")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		config:    cfg,
		fsWatcher: fsWatcher,
		logger: NewLogger(LoggerConfig{
			Writer:  cfg.Writer,
			Verbose: cfg.Verbose,
			NoColor: cfg.NoColor,
			JSON:    cfg.JSON,
		}),
		finders:  make(map[string]*finder.ToolFinder, len(cfg.Tools)),
		dirTools: make(map[string][]string),
		resolved: make(map[string]string, len(cfg.Tools)),
	}

	for _, f := range cfg.Tools {
		w.finders[f.Tool()] = f
		for _, dir := range searchDirs(cfg.Env, f) {
			if !slices.Contains(w.dirTools[dir], f.Tool()) {
				w.dirTools[dir] = append(w.dirTools[dir], f.Tool())
			}
		}
	}

	return w, nil
}

// searchDirs returns every directory f may search, across all tiers.
func searchDirs(e *env.Environment, f *finder.ToolFinder) []string {
	var dirs []string
	for _, tier := range finder.Tiers {
		for _, dir := range e.SearchDirs(f.TierPath(tier)) {
			if dir == "" {
				dir = "."
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				continue
			}
			if !slices.Contains(dirs, abs) {
				dirs = append(dirs, abs)
			}
		}
	}
	return dirs
}

// Dirs returns the search directories of all watched tools, sorted.
func (w *Watcher) Dirs() []string {
	dirs := make([]string, 0, len(w.dirTools))
	for dir := range w.dirTools {
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)
	return dirs
}

// Tools returns the names of the watched tools, sorted.
func (w *Watcher) Tools() []string {
	tools := make([]string, 0, len(w.finders))
	for name := range w.finders {
		tools = append(tools, name)
	}
	slices.Sort(tools)
	return tools
}

// Resolved returns the current resolution of tool, or "" when it is missing.
func (w *Watcher) Resolved(tool string) string {
	w.resolveMu.Lock()
	defer w.resolveMu.Unlock()
	return w.resolved[tool]
}

// Run resolves every tool once, then watches until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	window := w.config.Debounce
	if window <= 0 {
		window = DefaultDebounce
	}
	w.debouncer = NewDebouncer(window, w.handleChangedTools)
	defer w.debouncer.Stop()

	var watched []string
	for _, dir := range w.Dirs() {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			log.Debug("skipping missing search directory", "dir", dir)
			continue
		}
		if err := w.fsWatcher.Add(dir); err != nil {
			if isWatchLimitError(err) {
				return fmt.Errorf("%w: %s: %v\n"+
					"Increase limit with: sudo sysctl fs.inotify.max_user_watches=524288",
					ErrWatchLimitReached, dir, err)
			}
			if w.config.Verbose {
				w.logger.Error(fmt.Errorf("failed to watch %s: %w", dir, err))
			}
			continue
		}
		watched = append(watched, dir)
	}

	w.handleChangedTools(w.Tools())
	w.logger.Ready(w.Tools(), watched)

	for {
		select {
		case <-ctx.Done():
			w.logger.Shutdown()
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error(err)
		}
	}
}

// isWatchLimitError checks if an error is due to inotify watch limits.
func isWatchLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "no space left on device") ||
		strings.Contains(errStr, "too many open files")
}

// handleEvent maps a filesystem event to the tools searching its directory.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	tools := w.dirTools[filepath.Dir(event.Name)]
	if len(tools) == 0 {
		return
	}

	var changeType ChangeType
	switch {
	case event.Has(fsnotify.Create):
		changeType = ChangeAdded
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		changeType = ChangeDeleted
	case event.Has(fsnotify.Write) || event.Has(fsnotify.Chmod):
		// Chmod matters here: gaining or losing the exec bit changes resolution.
		changeType = ChangeModified
	default:
		return
	}

	w.logger.DirChanged(event.Name, changeType)

	for _, tool := range tools {
		w.debouncer.Add(tool)
	}
}

// handleChangedTools re-resolves tools and logs every resolution that changed.
func (w *Watcher) handleChangedTools(tools []string) {
	if len(tools) == 0 {
		return
	}

	w.resolveMu.Lock()
	defer w.resolveMu.Unlock()

	if w.config.Cache != nil {
		w.config.Cache.Reset()
	}

	slices.Sort(tools)
	for _, tool := range tools {
		f, ok := w.finders[tool]
		if !ok {
			continue
		}
		prev, known := w.resolved[tool]
		res, found := f.Lookup(w.config.Env)
		switch {
		case found && (!known || res.Path != prev):
			w.logger.Resolved(tool, res.Path, prev, res.Tier.String())
		case !found && (!known || prev != ""):
			w.logger.Missing(tool, prev)
		}
		w.resolved[tool] = res.Path
	}
}

// Close closes the watcher and releases resources.
func (w *Watcher) Close() error {
	if w.fsWatcher != nil {
		return w.fsWatcher.Close()
	}
	return nil
}
