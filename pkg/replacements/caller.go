package replacements

import (
	"github.com/albertocavalcante/toolutil/internal/log"
	"github.com/albertocavalcante/toolutil/pkg/env"
)

// Caller holds the replacements shared by Builder and Action.
type Caller struct {
	Replacements Replacements
}

// ApplyReplacements returns e overridden with the replaced variables, and
// overrides with replacements applied and unmapped entries kept.
func (c Caller) ApplyReplacements(e *env.Environment, overrides env.Vars) (*env.Environment, env.Vars) {
	applied := c.Replacements.Apply(e, false)
	if overrides == nil {
		overrides = env.Vars{}
	}
	kw := c.Replacements.Apply(overrides, true)
	log.Component("replacements").Debug("applied replacements",
		"env", applied.Keys(), "overrides", kw.Keys())
	return e.Override(applied), kw
}

// InjectReplacements is Replacements.Inject with e as the destination.
func (c Caller) InjectReplacements(e *env.Environment, strategy Strategy, onlyPresent bool) {
	c.Replacements.Inject(e, strategy, onlyPresent)
}

// BuilderFunc is a build step: it turns sources into targets under e.
type BuilderFunc func(e *env.Environment, target, source []string, overrides env.Vars) ([]string, error)

// Builder calls a BuilderFunc with replaced variables.
//
//	b := replacements.Builder{
//		Caller:  replacements.Caller{Replacements: replacements.Replacements{"CFLAGS": "MY_CFLAGS"}},
//		Wrapped: object,
//	}
//	b.InjectReplacements(e, replacements.BulkSetterFunc(e.SetDefault), false)
//	b.Build(e, nil, []string{"test1.c"}, nil)
type Builder struct {
	Caller
	Wrapped BuilderFunc
}

// Build invokes the wrapped builder.
func (b Builder) Build(e *env.Environment, target, source []string, overrides env.Vars) ([]string, error) {
	e, overrides = b.ApplyReplacements(e, overrides)
	return b.Wrapped(e, target, source, overrides)
}

// ActionFunc is a build action. Actions receive the environment last.
type ActionFunc func(target, source []string, e *env.Environment, overrides env.Vars) error

// Action calls an ActionFunc with replaced variables.
type Action struct {
	Caller
	Wrapped ActionFunc
}

// Execute invokes the wrapped action.
func (a Action) Execute(target, source []string, e *env.Environment, overrides env.Vars) error {
	e, overrides = a.ApplyReplacements(e, overrides)
	return a.Wrapped(target, source, e, overrides)
}
