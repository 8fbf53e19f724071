package config

import (
	"errors"
	"fmt"

	"github.com/albertocavalcante/toolutil/pkg/env"
	"github.com/albertocavalcante/toolutil/pkg/finder"
	"github.com/albertocavalcante/toolutil/pkg/replacements"
	"github.com/albertocavalcante/toolutil/pkg/selector"
)

var (
	// ErrUnknownTool is returned for a tool with no [tools.NAME] table.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrUnknownSelector is returned for a selector with no [selectors.NAME] table.
	ErrUnknownSelector = errors.New("unknown selector")
	// ErrUnknownReplacements is returned for a missing [replacements.NAME] table.
	ErrUnknownReplacements = errors.New("unknown replacement set")
)

// Environment builds an Environment from the configured variables, the host
// execution environment and the ExecEnv overrides. opts are applied last, so a
// caller-supplied locator replaces the configured cache.
func (c *Config) Environment(opts ...env.Option) *env.Environment {
	var all []env.Option
	if c.CacheEnabled() {
		all = append(all, env.WithLocator(env.NewCachingLocator(nil)))
	}
	e := env.FromOS(c.Vars, append(all, opts...)...)
	for _, k := range env.Vars(c.ExecEnv).Keys() {
		e.SetExecEnv(k, c.ExecEnv[k])
	}
	return e
}

// Options converts the table into finder options.
func (t ToolConfig) Options() finder.Options {
	return finder.Options{
		Names:             []string(t.Name),
		Path:              pathList(t.Path),
		PathExt:           pathList(t.PathExt),
		Reject:            []string(t.Reject),
		PriorityPath:      pathList(t.PriorityPath),
		FallbackPath:      pathList(t.FallbackPath),
		StripPath:         t.StripPath,
		StripPriorityPath: t.StripPriorityPath,
		StripFallbackPath: t.StripFallbackPath,
	}
}

func pathList(s StringList) env.PathList {
	if s == nil {
		return nil
	}
	return env.PathList(s)
}

// Finder builds the finder configured under [tools.NAME].
func (c *Config) Finder(name string) (*finder.ToolFinder, error) {
	t, ok := c.Tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	return finder.New(name, t.Options())
}

// FinderOrDefault is Finder, except that an unconfigured tool gets a finder
// with default options.
func (c *Config) FinderOrDefault(name string) (*finder.ToolFinder, error) {
	f, err := c.Finder(name)
	if errors.Is(err, ErrUnknownTool) {
		return finder.New(name, finder.Options{})
	}
	return f, err
}

// Selector builds the selector configured under [selectors.NAME].
func (c *Config) Selector(name string) (*selector.Selector[string], error) {
	sc, ok := c.Selectors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSelector, name)
	}
	s := selector.FromMap(sc.Suffixes)
	if sc.Fallback != nil {
		s.SetFallback(*sc.Fallback)
	}
	return s, nil
}

// ReplacementSet returns the replacements configured under [replacements.NAME].
func (c *Config) ReplacementSet(name string) (replacements.Replacements, error) {
	r, ok := c.Replacements[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReplacements, name)
	}
	return replacements.Replacements(r), nil
}

// Validate builds every configured finder so that bad tables fail at load time.
func (c *Config) Validate() error {
	var errs []error
	for _, name := range c.ToolNames() {
		if _, err := c.Finder(name); err != nil {
			errs = append(errs, fmt.Errorf("tools.%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
