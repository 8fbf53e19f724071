package finder

import (
	"slices"

	"github.com/albertocavalcante/toolutil/pkg/env"
)

// Options configures a ToolFinder. Every field is optional; the accessor methods
// on ToolFinder document the defaults.
type Options struct {
	// Names are alternative program names, tried in order.
	Names []string
	// Path is the main search path. nil searches the execution PATH.
	Path env.PathList
	// PathExt lists executable extensions. nil uses the platform default.
	PathExt env.PathList
	// Reject lists paths that must never be returned.
	Reject []string
	// PriorityPath is searched before Path.
	PriorityPath env.PathList
	// FallbackPath is searched after Path.
	FallbackPath env.PathList

	StripPath         *bool
	StripPriorityPath *bool
	StripFallbackPath *bool
}

// Bool returns a pointer to v, for the Strip* fields.
func Bool(v bool) *bool {
	return &v
}

func (o Options) clone() Options {
	out := o
	out.Names = slices.Clone(o.Names)
	out.Path = slices.Clone(o.Path)
	out.PathExt = slices.Clone(o.PathExt)
	out.Reject = slices.Clone(o.Reject)
	out.PriorityPath = slices.Clone(o.PriorityPath)
	out.FallbackPath = slices.Clone(o.FallbackPath)
	out.StripPath = clonePtr(o.StripPath)
	out.StripPriorityPath = clonePtr(o.StripPriorityPath)
	out.StripFallbackPath = clonePtr(o.StripFallbackPath)
	return out
}

func clonePtr(p *bool) *bool {
	if p == nil {
		return nil
	}
	return Bool(*p)
}

// Names returns the candidate program names. Default: the tool name.
func (f *ToolFinder) Names() []string {
	if f.opts.Names == nil {
		return []string{f.tool}
	}
	return f.opts.Names
}

// Path returns the main search path. Default: nil, the execution PATH.
func (f *ToolFinder) Path() env.PathList {
	return f.opts.Path
}

// PathExt returns the executable extensions. Default: nil, the platform default.
func (f *ToolFinder) PathExt() env.PathList {
	return f.opts.PathExt
}

// Reject returns the rejected paths. Default: none.
func (f *ToolFinder) Reject() []string {
	return f.opts.Reject
}

// PriorityPath returns the priority tier. Default: empty, which searches nothing.
func (f *ToolFinder) PriorityPath() env.PathList {
	if f.opts.PriorityPath == nil {
		return env.PathList{}
	}
	return f.opts.PriorityPath
}

// FallbackPath returns the fallback tier. Default: empty, which searches nothing.
func (f *ToolFinder) FallbackPath() env.PathList {
	if f.opts.FallbackPath == nil {
		return env.PathList{}
	}
	return f.opts.FallbackPath
}

// StripPath reports whether hits in the main tier are returned by name.
// Default: true, so PATH-found tools are re-resolved by the shell.
func (f *ToolFinder) StripPath() bool {
	return boolOr(f.opts.StripPath, true)
}

// StripPriorityPath reports whether priority hits are returned by name. Default: false.
func (f *ToolFinder) StripPriorityPath() bool {
	return boolOr(f.opts.StripPriorityPath, false)
}

// StripFallbackPath reports whether fallback hits are returned by name. Default: false.
func (f *ToolFinder) StripFallbackPath() bool {
	return boolOr(f.opts.StripFallbackPath, false)
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
