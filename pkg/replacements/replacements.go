// Package replacements lets a wrapped build step read one set of variables in
// place of another, e.g. MY_CFLAGS instead of CFLAGS, without touching the
// Environment the rest of the build sees.
package replacements

import (
	"maps"
	"slices"

	"github.com/albertocavalcante/toolutil/pkg/env"
)

// Replacements maps a variable to the variable that replaces it:
// {"CFLAGS": "MY_CFLAGS"} makes a wrapped step see $MY_CFLAGS as $CFLAGS.
type Replacements map[string]string

// Keys returns the replaced variable names in sorted order.
func (r Replacements) Keys() []string {
	return slices.Sorted(maps.Keys(r))
}

// MappedVariables returns {replacement: "$variable"} for every entry. With a
// non-nil only, entries whose variable is not set in only are skipped.
func (r Replacements) MappedVariables(only env.Lookuper) env.Vars {
	out := make(env.Vars, len(r))
	for k, v := range r {
		if only != nil {
			if _, ok := only.Lookup(k); !ok {
				continue
			}
		}
		out[v] = "$" + k
	}
	return out
}

// Inject initializes the replacement variables in dest so that, by default,
// each one refers back to the variable it replaces. With onlyPresent, only
// variables already set in dest are considered.
func (r Replacements) Inject(dest env.Lookuper, strategy Strategy, onlyPresent bool) {
	var only env.Lookuper
	if onlyPresent {
		only = dest
	}
	strategy.inject(r.MappedVariables(only))
}

// Apply extracts {variable: subj[replacement]} for every entry whose replacement
// is set in subj and does not just point back at the variable ("$variable").
// With includeUnmapped, the remaining variables of subj are copied as well,
// except the replacement variables themselves.
func (r Replacements) Apply(subj Source, includeUnmapped bool) env.Vars {
	out := env.Vars{}
	for k, v := range r {
		val, ok := subj.Lookup(v)
		if !ok || val == "$"+k {
			continue
		}
		out[k] = val
	}
	if !includeUnmapped {
		return out
	}
	mapped := make(map[string]bool, len(r)+len(out))
	for _, v := range r {
		mapped[v] = true
	}
	for k := range out {
		mapped[k] = true
	}
	for _, k := range subj.Keys() {
		if mapped[k] {
			continue
		}
		if val, ok := subj.Lookup(k); ok {
			out[k] = val
		}
	}
	return out
}

// Source is a variable set that can also enumerate its keys.
// env.Vars and *env.Environment both implement it.
type Source interface {
	env.Lookuper
	Keys() []string
}

// Strategy writes a set of variables into a destination. Use SetterFunc for
// per-variable setters and BulkSetterFunc for setters taking the whole set.
type Strategy interface {
	inject(vars env.Vars)
}

// SetterFunc is called once per variable, in sorted key order.
type SetterFunc func(key, value string)

func (f SetterFunc) inject(vars env.Vars) {
	for _, k := range vars.Keys() {
		f(k, vars[k])
	}
}

// BulkSetterFunc receives every variable in one call, like
// (*env.Environment).SetDefault.
type BulkSetterFunc func(vars env.Vars)

func (f BulkSetterFunc) inject(vars env.Vars) {
	f(vars)
}
