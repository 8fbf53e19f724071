//go:build windows

package env

// isExecutable reports whether path exists and is not a directory; Windows has
// no execute bit, extensions decide.
func isExecutable(path string) bool {
	_, ok := statFile(path)
	return ok
}

// candidates lists the file names tried for base. A name that already carries one
// of the extensions is tried as is first; otherwise only the extended names are
// tried.
func candidates(base string, exts []string) []string {
	if len(exts) == 0 {
		return []string{base}
	}
	out := make([]string, 0, len(exts)+1)
	if hasExt(base, exts) {
		out = append(out, base)
	}
	for _, ext := range exts {
		out = append(out, base+ext)
	}
	return out
}
