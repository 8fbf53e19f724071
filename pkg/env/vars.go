// Package env provides the Environment that toolutil helpers are written against:
// a set of construction variables with shell-style substitution, plus an execution
// environment used to locate programs.
package env

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Vars is a set of construction variables.
type Vars map[string]string

// Lookup returns the value of key and whether it is set.
func (v Vars) Lookup(key string) (string, bool) {
	val, ok := v[key]
	return val, ok
}

// Keys returns the variable names in sorted order.
func (v Vars) Keys() []string {
	return slices.Sorted(maps.Keys(v))
}

// Clone returns a shallow copy of v. The clone of a nil Vars is an empty, non-nil Vars.
func (v Vars) Clone() Vars {
	out := make(Vars, len(v))
	maps.Copy(out, v)
	return out
}

// Lookuper is anything that can answer "is this variable set, and to what".
// Vars, *Environment and plain maps adapted with Vars(m) all satisfy it.
type Lookuper interface {
	Lookup(key string) (string, bool)
}

// Substituter expands variable references in text.
type Substituter interface {
	Subst(text string) string
}

// PathList is a list of search directories.
//
// A nil PathList means "use the default" wherever defaults apply, while a non-nil
// empty PathList means "no directories". Elements may themselves be
// os.PathListSeparator-joined lists.
type PathList []string

// ParsePathList splits s on os.PathListSeparator. An empty string yields an empty,
// non-nil list.
func ParsePathList(s string) PathList {
	if s == "" {
		return PathList{}
	}
	return PathList(filepath.SplitList(s))
}

// IsDefault reports whether p should be replaced by a default.
func (p PathList) IsDefault() bool {
	return p == nil
}

// Join joins all elements with os.PathListSeparator.
func (p PathList) Join() string {
	return strings.Join(p, string(os.PathListSeparator))
}

// String implements fmt.Stringer.
func (p PathList) String() string {
	if p == nil {
		return "<default>"
	}
	return p.Join()
}
