package env

import (
	"maps"
	"os"
	"runtime"
	"strings"
)

// Environment holds construction variables, the execution environment used to
// run programs (PATH, PATHEXT) and the Locator that WhereIs searches with.
//
// An Environment is not safe for concurrent mutation; concurrent reads are fine.
type Environment struct {
	vars    Vars
	execEnv Vars
	locator Locator
}

// Option configures an Environment.
type Option func(*Environment)

// WithExecEnv sets the execution environment (PATH, PATHEXT, ...).
func WithExecEnv(vars Vars) Option {
	return func(e *Environment) {
		e.execEnv = vars.Clone()
	}
}

// WithLocator replaces the filesystem locator, e.g. with a CachingLocator.
func WithLocator(l Locator) Option {
	return func(e *Environment) {
		if l != nil {
			e.locator = l
		}
	}
}

// New creates an Environment holding a copy of vars.
func New(vars Vars, opts ...Option) *Environment {
	e := &Environment{
		vars:    vars.Clone(),
		execEnv: Vars{},
		locator: FSLocator{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FromOS creates an Environment whose execution environment carries the host PATH
// (and PATHEXT on Windows).
func FromOS(vars Vars, opts ...Option) *Environment {
	execEnv := Vars{"PATH": os.Getenv("PATH")}
	if pathExt, ok := os.LookupEnv("PATHEXT"); ok {
		execEnv["PATHEXT"] = pathExt
	}
	return New(vars, append([]Option{WithExecEnv(execEnv)}, opts...)...)
}

// Lookup returns a construction variable and whether it is set.
func (e *Environment) Lookup(key string) (string, bool) {
	return e.vars.Lookup(key)
}

// Get returns a construction variable or "".
func (e *Environment) Get(key string) string {
	return e.vars[key]
}

// Has reports whether key is set.
func (e *Environment) Has(key string) bool {
	_, ok := e.vars[key]
	return ok
}

// Keys returns the construction variable names in sorted order.
func (e *Environment) Keys() []string {
	return e.vars.Keys()
}

// Vars returns a copy of the construction variables.
func (e *Environment) Vars() Vars {
	return e.vars.Clone()
}

// Set assigns a single construction variable.
func (e *Environment) Set(key, value string) {
	e.vars[key] = value
}

// Replace assigns every variable in vars, overwriting existing values.
func (e *Environment) Replace(vars Vars) {
	maps.Copy(e.vars, vars)
}

// SetDefault assigns the variables in vars that are not already set.
func (e *Environment) SetDefault(vars Vars) {
	for k, v := range vars {
		if _, ok := e.vars[k]; !ok {
			e.vars[k] = v
		}
	}
}

// Append adds each value to the end of the existing variable, space separated.
func (e *Environment) Append(vars Vars) {
	for k, v := range vars {
		e.vars[k] = joinNonEmpty(e.vars[k], v)
	}
}

// Prepend adds each value to the front of the existing variable, space separated.
func (e *Environment) Prepend(vars Vars) {
	for k, v := range vars {
		e.vars[k] = joinNonEmpty(v, e.vars[k])
	}
}

// Override returns a copy of e with vars layered on top. The receiver is unchanged.
func (e *Environment) Override(vars Vars) *Environment {
	out := e.Clone()
	maps.Copy(out.vars, vars)
	return out
}

// Clone returns a deep copy of the variables; the locator is shared.
func (e *Environment) Clone() *Environment {
	return &Environment{
		vars:    e.vars.Clone(),
		execEnv: e.execEnv.Clone(),
		locator: e.locator,
	}
}

// ExecEnv returns a copy of the execution environment.
func (e *Environment) ExecEnv() Vars {
	return e.execEnv.Clone()
}

// SetExecEnv assigns a variable of the execution environment.
func (e *Environment) SetExecEnv(key, value string) {
	e.execEnv[key] = value
}

// PrependExecPath puts dirs in front of the execution PATH.
func (e *Environment) PrependExecPath(dirs ...string) {
	if len(dirs) == 0 {
		return
	}
	list := PathList(dirs)
	if cur := e.execEnv["PATH"]; cur != "" {
		list = append(list, cur)
	}
	e.execEnv["PATH"] = list.Join()
}

// Environ renders the execution environment as KEY=VALUE pairs for os/exec.
// Variables of the host environment that are not overridden are kept.
func (e *Environment) Environ() []string {
	merged := map[string]string{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			merged[k] = v
		}
	}
	maps.Copy(merged, e.execEnv)
	out := make([]string, 0, len(merged))
	for _, k := range Vars(merged).Keys() {
		out = append(out, k+"="+merged[k])
	}
	return out
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

// defaultPathExt is used on Windows when neither the caller nor the execution
// environment provides PATHEXT.
const defaultPathExt = ".COM;.EXE;.BAT;.CMD"

func (e *Environment) defaultPathExt() string {
	if runtime.GOOS != "windows" {
		return ""
	}
	if v, ok := e.execEnv["PATHEXT"]; ok {
		return v
	}
	return defaultPathExt
}
