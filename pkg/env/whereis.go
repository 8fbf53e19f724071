package env

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/albertocavalcante/toolutil/internal/log"
)

// Locator searches directories for an executable. Arguments are already
// substituted: dirs and exts are individual entries, reject holds cleaned paths.
type Locator interface {
	Locate(prog string, dirs, exts, reject []string) string
}

// FSLocator searches the real filesystem.
type FSLocator struct{}

// Locate returns the first executable candidate, or "" when none exists.
func (FSLocator) Locate(prog string, dirs, exts, reject []string) string {
	if filepath.IsAbs(prog) {
		return firstExecutable(prog, exts, reject)
	}
	for _, dir := range dirs {
		if dir == "" {
			// Shell semantics: an empty element means the current directory.
			dir = "."
		}
		if found := firstExecutable(filepath.Join(dir, prog), exts, reject); found != "" {
			return found
		}
	}
	return ""
}

func firstExecutable(base string, exts, reject []string) string {
	for _, c := range candidates(base, exts) {
		if isRejected(c, reject) {
			log.Trace("rejected candidate", "path", c)
			continue
		}
		if isExecutable(c) {
			log.Trace("found executable", "path", c)
			return c
		}
	}
	return ""
}

func isRejected(path string, reject []string) bool {
	clean := filepath.Clean(path)
	for _, r := range reject {
		if r == clean {
			return true
		}
	}
	return false
}

func statFile(path string) (os.FileInfo, bool) {
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return nil, false
	}
	return fi, true
}

// hasExt reports whether file ends in one of exts, ignoring case.
func hasExt(file string, exts []string) bool {
	ext := filepath.Ext(file)
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// WhereIs locates prog the way a build tool does before running it.
//
// A nil path searches the execution PATH; a nil pathExt uses the execution
// PATHEXT on Windows and no extensions elsewhere. prog, every path entry, every
// extension and every reject entry are substituted first. Returns "" when prog is
// not found.
func (e *Environment) WhereIs(prog string, path, pathExt PathList, reject []string) string {
	prog = e.Subst(prog)
	if prog == "" {
		return ""
	}

	dirs := e.SearchDirs(path)

	var extList string
	if pathExt.IsDefault() {
		extList = e.defaultPathExt()
	} else {
		extList = pathExt.Join()
	}
	exts := splitExts(e.Subst(extList))

	rejected := make([]string, 0, len(reject))
	for _, r := range reject {
		if r = e.Subst(r); r != "" {
			rejected = append(rejected, filepath.Clean(r))
		}
	}

	found := e.locator.Locate(prog, dirs, exts, rejected)
	log.Trace("whereis", "prog", prog, "dirs", dirs, "exts", exts, "found", found)
	return found
}

// SearchDirs returns the directories WhereIs would search for path, after
// substitution. A nil path yields the execution PATH.
func (e *Environment) SearchDirs(path PathList) []string {
	var dirList string
	if path.IsDefault() {
		dirList = e.execEnv["PATH"]
	} else {
		dirList = path.Join()
	}
	return filepath.SplitList(e.Subst(dirList))
}

// splitExts splits a PATHEXT-style value on ';' and the path list separator,
// dropping empty entries and adding a missing leading dot.
func splitExts(s string) []string {
	if s == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == os.PathListSeparator
	})
	exts := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if f[0] != '.' {
			f = "." + f
		}
		exts = append(exts, f)
	}
	return exts
}
