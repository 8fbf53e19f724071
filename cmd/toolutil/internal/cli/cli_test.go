package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/albertocavalcante/toolutil/cmd/toolutil/internal/watch"
	"github.com/albertocavalcante/toolutil/internal/log"
	"github.com/spf13/cobra"
)

// TestNoFlagConflicts verifies that all subcommands can be initialized
// without flag shorthand conflicts.
func TestNoFlagConflicts(t *testing.T) {
	root := RootCmd()
	if root == nil {
		t.Fatal("RootCmd() returned nil")
	}

	subcommands := root.Commands()
	if len(subcommands) == 0 {
		t.Fatal("expected at least one subcommand")
	}

	for _, cmd := range subcommands {
		t.Run(cmd.Name(), func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("flag conflict in %q command: %v", cmd.Name(), r)
				}
			}()

			// Merges persistent flags from parent with local flags.
			_ = cmd.Flags()
			_ = cmd.InheritedFlags()
		})
	}
}

// TestGlobalVerbosityFlag verifies the global -v flag exists and is properly configured.
func TestGlobalVerbosityFlag(t *testing.T) {
	root := RootCmd()

	vFlag := root.PersistentFlags().Lookup("verbosity")
	if vFlag == nil {
		t.Fatal("expected persistent 'verbosity' flag on root command")
	}
	if vFlag.Shorthand != "v" {
		t.Errorf("expected verbosity flag shorthand to be 'v', got %q", vFlag.Shorthand)
	}
	if vFlag.DefValue != "1" {
		t.Errorf("verbosity default = %q, want 1", vFlag.DefValue)
	}
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	root := RootCmd()

	tests := []struct {
		flagName     string
		wantShortcut string
	}{
		{"verbosity", "v"},
		{"log-format", ""},
		{"config", "c"},
		{"var", "D"},
	}
	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			flag := root.PersistentFlags().Lookup(tt.flagName)
			if flag == nil {
				t.Fatalf("persistent flag %q not found", tt.flagName)
			}
			if flag.Shorthand != tt.wantShortcut {
				t.Errorf("flag %q shorthand = %q, want %q", tt.flagName, flag.Shorthand, tt.wantShortcut)
			}
		})
	}
}

// TestSubcommandsExist verifies expected subcommands are registered.
func TestSubcommandsExist(t *testing.T) {
	expectedCmds := []string{"version", "find", "check", "select", "subst", "replace", "run", "watch"}

	for _, name := range expectedCmds {
		if getCommand(name) == nil {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

// TestVerboseFlagNoShorthand verifies that subcommand --verbose flags
// don't have a -v shorthand (which would conflict with root's -v).
func TestVerboseFlagNoShorthand(t *testing.T) {
	for _, cmd := range RootCmd().Commands() {
		verboseFlag := cmd.Flags().Lookup("verbose")
		if verboseFlag == nil {
			continue
		}
		if verboseFlag.Shorthand != "" {
			t.Errorf("command %q verbose flag should not have shorthand, got %q",
				cmd.Name(), verboseFlag.Shorthand)
		}
	}
}

func TestWatchCmd_FlagDefaults(t *testing.T) {
	cmd := getCommand("watch")
	if cmd == nil {
		t.Fatal("watch command not found")
	}

	tests := []struct {
		flagName    string
		wantDefault string
	}{
		{"debounce", watch.DefaultDebounce.String()},
		{"verbose", "false"},
		{"json", "false"},
		{"no-color", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.flagName)
			if flag == nil {
				t.Fatalf("flag %q not found on watch command", tt.flagName)
			}
			if flag.DefValue != tt.wantDefault {
				t.Errorf("flag %q default = %q, want %q", tt.flagName, flag.DefValue, tt.wantDefault)
			}
		})
	}
}

func TestCommands_HaveRunE(t *testing.T) {
	for _, name := range []string{"find", "check", "select", "subst", "replace", "run", "watch"} {
		cmd := getCommand(name)
		if cmd == nil {
			t.Fatalf("%s command not found", name)
		}
		if cmd.RunE == nil {
			t.Errorf("%s command should use RunE", name)
		}
	}
}

func getCommand(name string) *cobra.Command {
	for _, c := range RootCmd().Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func TestGetCommand_Helper(t *testing.T) {
	if cmd := getCommand("find"); cmd == nil || cmd.Name() != "find" {
		t.Fatalf("getCommand(\"find\") = %v", cmd)
	}
	if cmd := getCommand("nonexistent"); cmd != nil {
		t.Error("getCommand should return nil for non-existent command")
	}
}

// resetFlags restores flag variables between Execute calls on the shared root.
func resetFlags() {
	globalFlags.verbosity = log.VerbosityWarn
	globalFlags.logFormat = "text"
	globalFlags.configPath = ""
	globalFlags.vars = nil
	findFlags.json = false
	checkFlags.noColor = false
	selectFlags.suffix = false
	replaceFlags.all = false
	runFlags.exec = false
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	root := RootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	t.Cleanup(func() {
		root.SetOut(nil)
		root.SetErr(nil)
		root.SetArgs(nil)
		resetFlags()
	})

	err := root.Execute()
	return out.String(), err
}

// writeConfig writes a toolutil.toml into a fresh directory and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toolutil.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
