// Package gazelle exposes toolutil Environments to Gazelle extensions.
//
// Add Configurer to a language's Configure chain, then call EnvFor from
// GenerateRules to get the Environment for the directory being visited:
//
//	# gazelle:toolutil_var PROTOC=/opt/protobuf/bin/protoc
//	# gazelle:toolutil_path tools/bin
package gazelle

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bazelbuild/bazel-gazelle/config"
	"github.com/bazelbuild/bazel-gazelle/rule"

	"github.com/albertocavalcante/toolutil/internal/log"
	tuconfig "github.com/albertocavalcante/toolutil/pkg/config"
	"github.com/albertocavalcante/toolutil/pkg/env"
)

// ExtName keys the per-directory state in config.Config.Exts.
const ExtName = "toolutil"

// Directive names.
const (
	VarDirective   = "toolutil_var"
	PathDirective  = "toolutil_path"
	ResetDirective = "toolutil_reset"
)

// DirectiveHandler applies one directive value to a directory's state.
type DirectiveHandler func(c *config.Config, rel string, dc *DirConfig, value string)

// DirConfig is the state stored for each directory.
type DirConfig struct {
	Env *env.Environment
	// root holds the variables in effect at the repository root, for reset.
	root *env.Environment
}

// Clone copies the state for a child directory.
func (dc *DirConfig) Clone() *DirConfig {
	return &DirConfig{Env: dc.Env.Clone(), root: dc.root}
}

// Configurer implements config.Configurer.
type Configurer struct {
	vars       []string
	configPath string
}

// RegisterFlags implements config.Configurer.
func (cr *Configurer) RegisterFlags(fs *flag.FlagSet, cmd string, c *config.Config) {
	fs.Func(VarDirective, "construction variable NAME=value (repeatable)", func(s string) error {
		cr.vars = append(cr.vars, s)
		return nil
	})
	fs.StringVar(&cr.configPath, "toolutil_config", "", "toolutil config file seeding the root environment")
}

// CheckFlags implements config.Configurer.
func (cr *Configurer) CheckFlags(fs *flag.FlagSet, c *config.Config) error {
	cfg := tuconfig.NewConfig()
	if cr.configPath != "" {
		path := cr.configPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.RepoRoot, path)
		}
		loaded, err := tuconfig.LoadFile(path)
		if err != nil {
			return fmt.Errorf("-toolutil_config: %w", err)
		}
		cfg = loaded
	}
	for _, s := range cr.vars {
		name, value, err := tuconfig.ParseAssignment(s)
		if err != nil {
			return fmt.Errorf("-%s: %w", VarDirective, err)
		}
		cfg.Vars[name] = value
	}

	e := cfg.Environment()
	c.Exts[ExtName] = &DirConfig{Env: e, root: e.Clone()}
	return nil
}

// KnownDirectives implements config.Configurer.
func (*Configurer) KnownDirectives() []string {
	return []string{VarDirective, PathDirective, ResetDirective}
}

// Configure implements config.Configurer.
func (*Configurer) Configure(c *config.Config, rel string, f *rule.File) {
	dc := GetDirConfig(c).Clone()
	c.Exts[ExtName] = dc

	if f == nil {
		return
	}
	handlers := Directives()
	for _, d := range f.Directives {
		if handler, ok := handlers[d.Key]; ok {
			handler(c, rel, dc, d.Value)
		}
	}
}

// Directives returns the handlers keyed by directive name.
func Directives() map[string]DirectiveHandler {
	return map[string]DirectiveHandler{
		VarDirective: func(_ *config.Config, rel string, dc *DirConfig, value string) {
			name, v, err := tuconfig.ParseAssignment(value)
			if err != nil {
				log.Warn("ignoring directive", "directive", VarDirective, "dir", rel, "error", err)
				return
			}
			dc.Env.Set(name, v)
		},
		PathDirective: func(c *config.Config, rel string, dc *DirConfig, value string) {
			dir := strings.TrimSpace(value)
			if dir == "" {
				return
			}
			if strings.Contains(dir, "..") {
				log.Warn("path contains '..' which may be unsafe", "directive", PathDirective, "value", dir)
			}
			if !filepath.IsAbs(dir) && !strings.HasPrefix(dir, "$") {
				dir = filepath.Join(c.RepoRoot, filepath.FromSlash(rel), filepath.FromSlash(dir))
			}
			dc.Env.PrependExecPath(dir)
		},
		ResetDirective: func(_ *config.Config, _ string, dc *DirConfig, _ string) {
			dc.Env = dc.root.Clone()
		},
	}
}

// GetDirConfig returns the state for the directory being configured, or a
// fresh one when CheckFlags has not run.
func GetDirConfig(c *config.Config) *DirConfig {
	if dc, ok := c.Exts[ExtName].(*DirConfig); ok && dc != nil {
		return dc
	}
	e := env.FromOS(nil)
	return &DirConfig{Env: e, root: e.Clone()}
}

// EnvFor returns the Environment of the directory being configured.
func EnvFor(c *config.Config) *env.Environment {
	return GetDirConfig(c).Env
}
