// Package selector picks a value by the longest suffix of a file name.
//
// Suffix patterns are either literal (".c") or templated ("$CXXFILESUFFIX"). A
// pattern is templated when substitution changes it, which is decided on every
// lookup against the Environment passed in, so the same table can resolve
// differently under different environments.
package selector

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/albertocavalcante/toolutil/internal/log"
	"github.com/albertocavalcante/toolutil/pkg/env"
)

// ErrAmbiguousSuffix is wrapped by every *AmbiguityError.
var ErrAmbiguousSuffix = errors.New("ambiguous suffix")

// AmbiguityError reports two templated patterns that resolve to the same suffix.
type AmbiguityError struct {
	First  string
	Second string
	Suffix string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous suffix after environment expansion: %q and %q both resolve to %q",
		e.First, e.Second, e.Suffix)
}

func (e *AmbiguityError) Unwrap() error {
	return ErrAmbiguousSuffix
}

// Kind tells which group produced a match.
type Kind int

const (
	// None means nothing matched and no fallback is registered.
	None Kind = iota
	// Literal patterns are unchanged by substitution.
	Literal
	// Templated patterns change under substitution.
	Templated
	// Fallback is the value registered for "no suffix matched".
	Fallback
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Templated:
		return "templated"
	case Fallback:
		return "fallback"
	default:
		return "none"
	}
}

// Match describes the outcome of a lookup.
type Match[V any] struct {
	Value   V
	Kind    Kind
	Pattern string // registered pattern; empty for Fallback and None
	Suffix  string // pattern after substitution
}

// Found reports whether a value was selected.
func (m Match[V]) Found() bool {
	return m.Kind != None
}

// Selector maps suffix patterns to values. The zero value is not usable; call New.
// Lookups may run concurrently with each other and with mutations.
type Selector[V any] struct {
	mu          sync.RWMutex
	rules       map[string]V
	fallback    V
	hasFallback bool
}

// New returns an empty Selector.
func New[V any]() *Selector[V] {
	return &Selector[V]{rules: make(map[string]V)}
}

// FromMap returns a Selector holding the entries of m.
func FromMap[V any](m map[string]V) *Selector[V] {
	s := New[V]()
	maps.Copy(s.rules, m)
	return s
}

// Set registers value under pattern, replacing any previous value.
func (s *Selector[V]) Set(pattern string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[pattern] = value
}

// Get returns the value registered under pattern.
func (s *Selector[V]) Get(pattern string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.rules[pattern]
	return v, ok
}

// Delete removes pattern.
func (s *Selector[V]) Delete(pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rules, pattern)
}

// SetFallback registers the value returned when no pattern matches.
func (s *Selector[V]) SetFallback(value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = value
	s.hasFallback = true
}

// ClearFallback removes the fallback value.
func (s *Selector[V]) ClearFallback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero V
	s.fallback = zero
	s.hasFallback = false
}

// Fallback returns the fallback value, if any.
func (s *Selector[V]) Fallback() (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fallback, s.hasFallback
}

// Len returns the number of patterns, not counting the fallback.
func (s *Selector[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rules)
}

// Patterns returns the registered patterns in sorted order.
func (s *Selector[V]) Patterns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.rules))
}

// Select matches the first source name. With no sources the empty string is
// matched, so a "" pattern or the fallback answers source-less lookups.
// A lookup that finds nothing returns the zero value, false and a nil error.
func (s *Selector[V]) Select(e env.Substituter, sources []string) (V, bool, error) {
	var name string
	if len(sources) > 0 {
		name = sources[0]
	}
	m, err := s.Lookup(e, name)
	return m.Value, m.Found(), err
}

// SelectSuffix is Select with an explicit suffix in place of a source name.
func (s *Selector[V]) SelectSuffix(e env.Substituter, suffix string) (V, bool, error) {
	m, err := s.Lookup(e, suffix)
	return m.Value, m.Found(), err
}

// Lookup returns the best match for name.
//
// The longest literal pattern name ends with and the longest templated suffix
// name ends with are found separately. The literal one wins unless the templated
// suffix is strictly longer. Two templated patterns expanding to the same suffix
// fail the lookup with an *AmbiguityError, whether or not they match name.
func (s *Selector[V]) Lookup(e env.Substituter, name string) (Match[V], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	literal := make([]string, 0, len(s.rules))
	templated := make(map[string]string) // expanded suffix -> pattern
	for _, pattern := range slices.Sorted(maps.Keys(s.rules)) {
		expanded := e.Subst(pattern)
		if expanded == pattern {
			literal = append(literal, pattern)
			continue
		}
		if prev, ok := templated[expanded]; ok {
			return Match[V]{}, &AmbiguityError{First: prev, Second: pattern, Suffix: expanded}
		}
		templated[expanded] = pattern
	}

	litSuffix, litOK := longestSuffix(name, literal)
	tplSuffix, tplOK := longestSuffix(name, slices.Collect(maps.Keys(templated)))

	var m Match[V]
	switch {
	case litOK && (!tplOK || len(tplSuffix) <= len(litSuffix)):
		m = Match[V]{Value: s.rules[litSuffix], Kind: Literal, Pattern: litSuffix, Suffix: litSuffix}
	case tplOK:
		pattern := templated[tplSuffix]
		m = Match[V]{Value: s.rules[pattern], Kind: Templated, Pattern: pattern, Suffix: tplSuffix}
	case s.hasFallback:
		m = Match[V]{Value: s.fallback, Kind: Fallback}
	}

	log.Component("selector").Debug("suffix lookup",
		"name", name, "literal", len(literal), "templated", len(templated),
		"kind", m.Kind, "pattern", m.Pattern)
	return m, nil
}

// longestSuffix returns the longest candidate that name ends with.
func longestSuffix(name string, candidates []string) (string, bool) {
	best, found := "", false
	for _, c := range candidates {
		if !strings.HasSuffix(name, c) {
			continue
		}
		if !found || len(c) > len(best) {
			best, found = c, true
		}
	}
	return best, found
}
