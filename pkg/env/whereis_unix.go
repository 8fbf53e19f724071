//go:build !windows

package env

// isExecutable reports whether path is a regular file with an execute bit set.
func isExecutable(path string) bool {
	fi, ok := statFile(path)
	return ok && fi.Mode()&0o111 != 0
}

// candidates lists the file names tried for base: base itself, then base with
// each extension appended.
func candidates(base string, exts []string) []string {
	out := make([]string, 0, len(exts)+1)
	out = append(out, base)
	for _, ext := range exts {
		out = append(out, base+ext)
	}
	return out
}
