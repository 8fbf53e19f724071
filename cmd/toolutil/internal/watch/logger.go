package watch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ChangeType represents the type of filesystem change seen in a search directory.
type ChangeType string

const (
	ChangeAdded    ChangeType = "+"
	ChangeModified ChangeType = "~"
	ChangeDeleted  ChangeType = "-"
)

// Logger handles watch mode output formatting.
type Logger struct {
	writer  io.Writer
	verbose bool
	jsonOut bool

	green  *color.Color
	yellow *color.Color
	red    *color.Color

	statsMu sync.Mutex
	stats   WatchStats
}

// WatchStats tracks statistics for the watch session.
type WatchStats struct {
	ResolveCount int
	MissingCount int
	ErrorCount   int
	StartTime    time.Time
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	Writer  io.Writer
	Verbose bool
	NoColor bool
	JSON    bool
}

// NewLogger creates a new logger with the given configuration.
// Colors are only emitted when the writer is a terminal.
func NewLogger(cfg LoggerConfig) *Logger {
	writer := cfg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	isTTY := false
	if f, ok := writer.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	colored := isTTY && !cfg.NoColor

	return &Logger{
		writer:  writer,
		verbose: cfg.Verbose,
		jsonOut: cfg.JSON,
		green:   newColor(colored, color.FgGreen),
		yellow:  newColor(colored, color.FgYellow),
		red:     newColor(colored, color.FgRed),
		stats: WatchStats{
			StartTime: time.Now(),
		},
	}
}

func newColor(enabled bool, attr color.Attribute) *color.Color {
	c := color.New(attr)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Ready logs the initial ready message.
func (l *Logger) Ready(tools []string, dirs []string) {
	if l.jsonOut {
		l.writeJSON(map[string]any{
			"event": "ready",
			"tools": tools,
			"dirs":  dirs,
		})
		return
	}

	l.printf("toolutil: watching %d directories for %d tools\n", len(dirs), len(tools))
	if len(tools) > 0 {
		l.printf("toolutil: tools: %s\n", strings.Join(tools, ", "))
	}
	l.println("toolutil: ready")
	l.println()
}

// DirChanged logs a change in a search directory. Only shown when verbose.
func (l *Logger) DirChanged(path string, change ChangeType) {
	if l.jsonOut {
		l.writeJSON(map[string]any{
			"event":  "dir_changed",
			"path":   path,
			"change": string(change),
			"time":   time.Now().Format(time.RFC3339),
		})
		return
	}

	if l.verbose {
		l.printf("[%s] %s %s\n", l.timestamp(), l.colorize(string(change), change), path)
	}
}

// Resolved logs that tool now resolves to found. prev is the previous
// resolution, empty when the tool was missing.
func (l *Logger) Resolved(tool, found, prev, tier string) {
	l.statsMu.Lock()
	l.stats.ResolveCount++
	l.statsMu.Unlock()

	if l.jsonOut {
		l.writeJSON(map[string]any{
			"event":    "resolved",
			"tool":     tool,
			"found":    found,
			"previous": prev,
			"tier":     tier,
			"time":     time.Now().Format(time.RFC3339),
		})
		return
	}

	checkmark := l.colorize("✓", ChangeAdded)
	if prev == "" {
		l.printf("[%s] %s %s -> %s (%s)\n", l.timestamp(), checkmark, tool, found, tier)
		return
	}
	l.printf("[%s] %s %s: %s -> %s (%s)\n", l.timestamp(), checkmark, tool, prev, found, tier)
}

// Missing logs that tool no longer resolves. prev is the last known resolution.
func (l *Logger) Missing(tool, prev string) {
	l.statsMu.Lock()
	l.stats.MissingCount++
	l.statsMu.Unlock()

	if l.jsonOut {
		l.writeJSON(map[string]any{
			"event":    "missing",
			"tool":     tool,
			"previous": prev,
			"time":     time.Now().Format(time.RFC3339),
		})
		return
	}

	xmark := l.colorize("✗", ChangeDeleted)
	if prev == "" {
		l.printf("[%s] %s %s not found\n", l.timestamp(), xmark, tool)
		return
	}
	l.printf("[%s] %s %s not found (was %s)\n", l.timestamp(), xmark, tool, prev)
}

// Error logs an error.
func (l *Logger) Error(err error) {
	l.statsMu.Lock()
	l.stats.ErrorCount++
	l.statsMu.Unlock()

	if l.jsonOut {
		l.writeJSON(map[string]any{
			"event": "error",
			"error": err.Error(),
			"time":  time.Now().Format(time.RFC3339),
		})
		return
	}

	xmark := l.colorize("✗", ChangeDeleted)
	l.printf("[%s] %s error: %v\n", l.timestamp(), xmark, err)
}

// Shutdown logs the shutdown message with statistics.
func (l *Logger) Shutdown() {
	l.statsMu.Lock()
	stats := l.stats
	l.statsMu.Unlock()

	if l.jsonOut {
		l.writeJSON(map[string]any{
			"event":    "shutdown",
			"resolved": stats.ResolveCount,
			"missing":  stats.MissingCount,
			"errors":   stats.ErrorCount,
			"duration": time.Since(stats.StartTime).String(),
		})
		return
	}

	l.println()
	l.printf("toolutil: shutting down (%d resolved, %d missing, %d errors)\n",
		stats.ResolveCount, stats.MissingCount, stats.ErrorCount)
}

// Stats returns the current watch statistics.
func (l *Logger) Stats() WatchStats {
	l.statsMu.Lock()
	defer l.statsMu.Unlock()
	return l.stats
}

func (l *Logger) timestamp() string {
	return time.Now().Format("15:04:05")
}

func (l *Logger) colorize(s string, change ChangeType) string {
	switch change {
	case ChangeAdded:
		return l.green.Sprint(s)
	case ChangeModified:
		return l.yellow.Sprint(s)
	case ChangeDeleted:
		return l.red.Sprint(s)
	default:
		return s
	}
}

// writeJSON writes a JSON object to the output.
func (l *Logger) writeJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		l.println(`{"event":"internal_error","error":"json marshal failed"}`)
		return
	}
	l.println(string(data))
}

// Output errors are ignored; watch output is informational.
func (l *Logger) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(l.writer, format, args...)
}

func (l *Logger) println(args ...any) {
	_, _ = fmt.Fprintln(l.writer, args...)
}
