package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/albertocavalcante/toolutil/internal/log"
	"github.com/albertocavalcante/toolutil/pkg/kwargs"
)

// ConfigFileName is the name of the project-level config file.
const ConfigFileName = "toolutil.toml"

// ConfigDirName is the name of the project-level config directory.
const ConfigDirName = ".toolutil"

// GlobalConfigDir is the name of the global config directory inside user's config.
const GlobalConfigDir = "toolutil"

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "TOOLUTIL_"

// envVarPrefix marks construction variables: TOOLUTIL_VAR_CC=clang sets CC.
const envVarPrefix = EnvPrefix + "VAR_"

// Load loads configuration from all layers in order of precedence:
//  1. Built-in defaults
//  2. Global user config (~/.config/toolutil/config.toml)
//  3. Project config (.toolutil/config.toml or toolutil.toml)
//  4. Environment variables (TOOLUTIL_*)
//
// CLI flags are applied separately after Load() returns.
func Load() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return LoadFrom(wd)
}

// LoadFrom loads configuration starting from a specific directory.
func LoadFrom(dir string) (*Config, error) {
	cfg := NewConfig()

	// Layer 2: Global user config
	if path := GetGlobalConfigPath(); path != "" {
		globalCfg, err := loadConfigFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Merge(globalCfg)
	}

	// Layer 3: Project config
	projectCfg, err := loadProjectConfigFrom(dir)
	if err != nil {
		return nil, err
	}
	cfg.Merge(projectCfg)

	// Layer 4: Environment variables
	if err := applyEnvironmentVariables(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Component("config").Info("configuration loaded",
		"sources", cfg.sources, "tools", len(cfg.Tools), "selectors", len(cfg.Selectors))
	return cfg, nil
}

// LoadFile loads an explicit config file on top of the defaults and
// environment variables, skipping the global and project search.
func LoadFile(path string) (*Config, error) {
	cfg := NewConfig()
	fileCfg, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}
	if fileCfg == nil {
		return nil, fmt.Errorf("config file %s: %w", path, fs.ErrNotExist)
	}
	cfg.Merge(fileCfg)
	if err := applyEnvironmentVariables(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadProjectConfigFrom looks for project configuration starting from the given directory.
func loadProjectConfigFrom(dir string) (*Config, error) {
	current := dir
	for {
		for _, path := range GetProjectConfigPaths(current) {
			cfg, err := loadConfigFile(path)
			if err != nil {
				return nil, err
			}
			if cfg != nil {
				return cfg, nil
			}
		}

		// Stop at filesystem root or workspace root
		if isWorkspaceRoot(current) {
			break
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return nil, nil
}

// workspaceMarkers identify the top of a project.
var workspaceMarkers = []string{".git", "WORKSPACE", "WORKSPACE.bazel", "MODULE.bazel", "SConstruct"}

// isWorkspaceRoot checks if the directory contains one of workspaceMarkers.
func isWorkspaceRoot(dir string) bool {
	for _, marker := range workspaceMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// loadConfigFile loads a configuration from a TOML file. A missing file is not
// an error and yields nil.
func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := checkUndecoded(md.Undecoded()); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg.sources = []string{path}
	log.Component("config").Debug("loaded config file", "path", path)
	return &cfg, nil
}

// checkUndecoded reports keys the Config struct has no field for.
func checkUndecoded(keys []toml.Key) error {
	var errs []error
	for _, key := range keys {
		var err error
		switch {
		case len(key) == 1:
			err = kwargs.EnsureIn("config", key[0], topLevelKeys)
		case len(key) == 3 && key[0] == "tools":
			err = kwargs.EnsureIn("tools."+key[1], key[2], toolKeys)
		case len(key) == 3 && key[0] == "selectors":
			err = kwargs.EnsureIn("selectors."+key[1], key[2], selectorKeys)
		default:
			err = fmt.Errorf("unexpected key %q", key.String())
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// applyEnvironmentVariables applies TOOLUTIL_* environment variables to the config.
func applyEnvironmentVariables(cfg *Config) error {
	// TOOLUTIL_VAR_NAME=value sets construction variable NAME
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, envVarPrefix) {
			continue
		}
		name := strings.TrimPrefix(key, envVarPrefix)
		if name == "" {
			continue
		}
		if cfg.Vars == nil {
			cfg.Vars = map[string]string{}
		}
		cfg.Vars[name] = value
	}

	// TOOLUTIL_PATH replaces the execution PATH
	if v, ok := os.LookupEnv(EnvPrefix + "PATH"); ok {
		if cfg.ExecEnv == nil {
			cfg.ExecEnv = map[string]string{}
		}
		cfg.ExecEnv["PATH"] = v
	}

	return applyBoolEnv(EnvPrefix+"CACHE", &cfg.Cache)
}

// applyBoolEnv applies a boolean environment variable to a pointer.
func applyBoolEnv(envVar string, target **bool) error {
	v := os.Getenv(envVar)
	if v == "" {
		return nil
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		t := true
		*target = &t
	case "false", "0", "no":
		f := false
		*target = &f
	default:
		return fmt.Errorf("%s: invalid boolean %q", envVar, v)
	}
	return nil
}

// ParseAssignment splits NAME=value as given to --var and directives.
func ParseAssignment(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid assignment %q (want NAME=value)", s)
	}
	return name, value, nil
}

// GetGlobalConfigPath returns the path to the global config file.
func GetGlobalConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, GlobalConfigDir, "config.toml")
}

// GetProjectConfigPaths returns potential project config paths for a given directory.
func GetProjectConfigPaths(dir string) []string {
	return []string{
		filepath.Join(dir, ConfigDirName, "config.toml"),
		filepath.Join(dir, ConfigFileName),
	}
}
