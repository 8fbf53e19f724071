// Package config loads toolutil configuration.
// It supports multi-layer configuration with precedence:
//  1. Built-in defaults (lowest priority)
//  2. Global user config (~/.config/toolutil/config.toml)
//  3. Project config (.toolutil/config.toml or toolutil.toml)
//  4. Environment variables (TOOLUTIL_*)
//  5. CLI flags (highest priority)
package config

import (
	"fmt"
	"maps"
	"slices"
)

// Config is the main configuration struct for toolutil.
type Config struct {
	// Vars are construction variables available to substitution.
	Vars map[string]string `toml:"vars"`

	// ExecEnv overrides entries of the execution environment (PATH, PATHEXT).
	ExecEnv map[string]string `toml:"exec_env"`

	// Cache memoizes WhereIs lookups for the lifetime of one Environment.
	Cache *bool `toml:"cache"`

	// Tools configures executable finders by tool name.
	Tools map[string]ToolConfig `toml:"tools"`

	// Selectors configures suffix selectors by name.
	Selectors map[string]SelectorConfig `toml:"selectors"`

	// Replacements configures variable replacement sets by name.
	Replacements map[string]map[string]string `toml:"replacements"`

	sources []string
}

// ToolConfig mirrors finder.Options. Path-like keys accept a string or a list.
type ToolConfig struct {
	Name         StringList `toml:"name"`
	Path         StringList `toml:"path"`
	PathExt      StringList `toml:"pathext"`
	Reject       StringList `toml:"reject"`
	PriorityPath StringList `toml:"priority_path"`
	FallbackPath StringList `toml:"fallback_path"`

	StripPath         *bool `toml:"strip_path"`
	StripPriorityPath *bool `toml:"strip_priority_path"`
	StripFallbackPath *bool `toml:"strip_fallback_path"`
}

// toolKeys are the keys accepted in a [tools.NAME] table.
var toolKeys = []string{
	"name", "path", "pathext", "reject", "priority_path", "fallback_path",
	"strip_path", "strip_priority_path", "strip_fallback_path",
}

// SelectorConfig describes a suffix selector.
type SelectorConfig struct {
	// Fallback is returned when no suffix matches.
	Fallback *string `toml:"fallback"`

	// Suffixes maps suffix patterns to values.
	Suffixes map[string]string `toml:"suffixes"`
}

var selectorKeys = []string{"fallback", "suffixes"}

var topLevelKeys = []string{"vars", "exec_env", "cache", "tools", "selectors", "replacements"}

// StringList is a list of strings that may be written as a single string in TOML.
// A key that is absent leaves the list nil; an explicit [] yields an empty list.
type StringList []string

// UnmarshalTOML implements toml.Unmarshaler.
func (s *StringList) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*s = StringList{v}
	case []any:
		out := make(StringList, 0, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return fmt.Errorf("element %d: expected string, got %T", i, item)
			}
			out = append(out, str)
		}
		*s = out
	default:
		return fmt.Errorf("expected string or list of strings, got %T", v)
	}
	return nil
}

// NewConfig creates a new Config with built-in defaults.
func NewConfig() *Config {
	falseVal := false
	return &Config{
		Vars:         map[string]string{},
		ExecEnv:      map[string]string{},
		Cache:        &falseVal,
		Tools:        map[string]ToolConfig{},
		Selectors:    map[string]SelectorConfig{},
		Replacements: map[string]map[string]string{},
	}
}

// CacheEnabled reports whether WhereIs results should be memoized.
func (c *Config) CacheEnabled() bool {
	return c.Cache != nil && *c.Cache
}

// ToolNames returns the configured tool names in sorted order.
func (c *Config) ToolNames() []string {
	return slices.Sorted(maps.Keys(c.Tools))
}

// SelectorNames returns the configured selector names in sorted order.
func (c *Config) SelectorNames() []string {
	return slices.Sorted(maps.Keys(c.Selectors))
}

// Sources returns the config files that contributed to c, lowest precedence first.
func (c *Config) Sources() []string {
	return slices.Clone(c.sources)
}

// Merge merges another config into this one (other takes precedence).
// Variables merge key by key; tools, selectors and replacement sets are
// replaced as a whole.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	c.Vars = mergeMap(c.Vars, other.Vars)
	c.ExecEnv = mergeMap(c.ExecEnv, other.ExecEnv)
	if other.Cache != nil {
		c.Cache = other.Cache
	}
	c.Tools = mergeMap(c.Tools, other.Tools)
	c.Selectors = mergeMap(c.Selectors, other.Selectors)
	c.Replacements = mergeMap(c.Replacements, other.Replacements)
	c.sources = append(c.sources, other.sources...)
}

func mergeMap[V any](dst, src map[string]V) map[string]V {
	if dst == nil {
		dst = make(map[string]V, len(src))
	}
	maps.Copy(dst, src)
	return dst
}
