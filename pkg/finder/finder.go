// Package finder locates tool executables across three ordered search tiers.
//
// A ToolFinder is configured once, typically as a package-level variable of a
// tool plugin, and called with whatever Environment the plugin is generating:
//
//	var swig = finder.MustNew("swig", finder.Options{
//		Names:        []string{"swig4.0", "swig"},
//		FallbackPath: env.PathList{"/opt/swig/bin"},
//	})
//
//	func Generate(e *env.Environment) {
//		if prog, ok := swig.Find(e); ok {
//			e.SetDefault(env.Vars{"SWIG": prog})
//		}
//	}
package finder

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/albertocavalcante/toolutil/internal/log"
	"github.com/albertocavalcante/toolutil/pkg/env"
)

// ErrInvalidOptions is returned by New for unusable configurations.
var ErrInvalidOptions = errors.New("invalid finder options")

// Environment is what a ToolFinder needs from its caller: substitution and a
// WhereIs lookup. *env.Environment implements it.
type Environment interface {
	env.Substituter
	WhereIs(prog string, path, pathExt env.PathList, reject []string) string
}

// Tier identifies one of the ordered search locations.
type Tier int

const (
	// TierPriority is searched first.
	TierPriority Tier = iota
	// TierPath is the main search path, the execution PATH unless configured.
	TierPath
	// TierFallback is searched last.
	TierFallback
)

// Tiers lists the tiers in search order.
var Tiers = []Tier{TierPriority, TierPath, TierFallback}

func (t Tier) String() string {
	switch t {
	case TierPriority:
		return "priority"
	case TierPath:
		return "path"
	case TierFallback:
		return "fallback"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Result describes a successful search.
type Result struct {
	// Name is the candidate name that matched, after substitution.
	Name string
	// Found is the path WhereIs reported.
	Found string
	// Tier is the tier that produced the hit.
	Tier Tier
	// Stripped reports whether Path is the name rather than the discovered path.
	Stripped bool
	// Path is what Find returns: Name when stripped or absolute, Found otherwise.
	Path string
}

// ToolFinder searches for one program. It holds no mutable state and may be used
// from several goroutines with different Environments.
type ToolFinder struct {
	tool string
	opts Options
}

// New validates opts and returns a ToolFinder for tool.
func New(tool string, opts Options) (*ToolFinder, error) {
	if tool == "" {
		return nil, fmt.Errorf("%w: empty tool name", ErrInvalidOptions)
	}
	if opts.Names != nil && len(opts.Names) == 0 {
		return nil, fmt.Errorf("%w: tool %q: names must not be empty", ErrInvalidOptions, tool)
	}
	if slices.Contains(opts.Names, "") {
		return nil, fmt.Errorf("%w: tool %q: empty program name", ErrInvalidOptions, tool)
	}
	return &ToolFinder{tool: tool, opts: opts.clone()}, nil
}

// MustNew is New for package-level finders; it panics on invalid options.
func MustNew(tool string, opts Options) *ToolFinder {
	f, err := New(tool, opts)
	if err != nil {
		panic(err)
	}
	return f
}

// Tool returns the symbolic tool name.
func (f *ToolFinder) Tool() string {
	return f.tool
}

// Options returns a copy of the configuration the finder was built with.
func (f *ToolFinder) Options() Options {
	return f.opts.clone()
}

// Find returns the program to use, or false when no tier has it.
func (f *ToolFinder) Find(e Environment) (string, bool) {
	r, ok := f.Lookup(e)
	return r.Path, ok
}

// Lookup searches the priority, main and fallback tiers in that order. Within a
// tier candidate names are tried in order; the first hit ends the search.
func (f *ToolFinder) Lookup(e Environment) (Result, bool) {
	logger := log.Component("finder")
	for _, tier := range Tiers {
		path := f.TierPath(tier)
		for _, name := range f.Names() {
			found := e.WhereIs(name, path, f.PathExt(), f.Reject())
			logger.Debug("searched tier",
				"tool", f.tool, "tier", tier.String(), "name", name, "path", path.String(), "found", found)
			if found == "" {
				continue
			}
			r := f.adjust(e, name, found, tier)
			logger.Info("tool found", "tool", f.tool, "tier", tier.String(), "result", r.Path)
			return r, true
		}
	}
	logger.Info("tool not found", "tool", f.tool)
	return Result{}, false
}

// TierPath returns the search path handed to WhereIs for tier. Lists are joined
// into one element so that substitution sees the whole value at once.
func (f *ToolFinder) TierPath(tier Tier) env.PathList {
	var p env.PathList
	switch tier {
	case TierPriority:
		p = f.PriorityPath()
	case TierPath:
		p = f.Path()
	case TierFallback:
		p = f.FallbackPath()
	}
	if len(p) > 1 {
		return env.PathList{p.Join()}
	}
	return p
}

// adjust picks between the configured name and the discovered path.
func (f *ToolFinder) adjust(e Environment, name, found string, tier Tier) Result {
	prog := e.Subst(name)
	r := Result{Name: prog, Found: found, Tier: tier}
	if filepath.IsAbs(prog) || f.strip(tier) {
		r.Path = prog
		r.Stripped = true
		return r
	}
	r.Path = found
	return r
}

func (f *ToolFinder) strip(tier Tier) bool {
	switch tier {
	case TierPriority:
		return f.StripPriorityPath()
	case TierFallback:
		return f.StripFallbackPath()
	default:
		return f.StripPath()
	}
}
