// Package emitter chooses between two emitters with a predicate.
package emitter

import (
	"errors"

	"github.com/albertocavalcante/toolutil/pkg/env"
)

// ErrNilPredicate is returned by New when no predicate is given.
var ErrNilPredicate = errors.New("emitter: predicate must not be nil")

// Func computes the targets and sources a build step will produce and consume.
type Func func(target, source []string, e *env.Environment) ([]string, []string)

// Predicate decides which emitter runs.
type Predicate func(target, source []string, e *env.Environment) bool

// Identity returns target and source unchanged.
func Identity(target, source []string, _ *env.Environment) ([]string, []string) {
	return target, source
}

// Conditional dispatches to If when the predicate holds and to Else otherwise.
type Conditional struct {
	predicate Predicate
	ifFunc    Func
	elseFunc  Func
}

// New returns a Conditional. Nil emitters default to Identity.
func New(predicate Predicate, ifFunc, elseFunc Func) (*Conditional, error) {
	if predicate == nil {
		return nil, ErrNilPredicate
	}
	if ifFunc == nil {
		ifFunc = Identity
	}
	if elseFunc == nil {
		elseFunc = Identity
	}
	return &Conditional{predicate: predicate, ifFunc: ifFunc, elseFunc: elseFunc}, nil
}

// Emit runs the emitter selected by the predicate.
func (c *Conditional) Emit(target, source []string, e *env.Environment) ([]string, []string) {
	if c.predicate(target, source, e) {
		return c.ifFunc(target, source, e)
	}
	return c.elseFunc(target, source, e)
}

// VarSet is a Predicate that holds when key substitutes to a non-empty value.
func VarSet(key string) Predicate {
	return func(_, _ []string, e *env.Environment) bool {
		return e.Subst("$"+key) != ""
	}
}
