// Package cli implements the toolutil command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/albertocavalcante/toolutil/internal/log"
	"github.com/albertocavalcante/toolutil/pkg/config"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// globalFlags holds persistent flags that apply to all commands
var globalFlags struct {
	verbosity  int
	logFormat  string
	configPath string
	vars       []string
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "toolutil",
	Short: "Locate build tools and expand construction variables",
	Long: `Toolutil resolves build tools the way an SCons-style build does:
priority, PATH and fallback search tiers, construction variable
substitution, suffix-based selection and variable replacement sets.

Tools, selectors and replacement sets are configured in toolutil.toml
(or .toolutil/config.toml) at the workspace root.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "toolutil %s (%s)\n", Version, GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().IntVarP(&globalFlags.verbosity, "verbosity", "v", log.VerbosityWarn,
		"Verbosity level (0=error, 1=warn, 2=info, 3=debug, 4=trace)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.logFormat, "log-format", "text",
		"Log format (text, json)")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.configPath, "config", "c", "",
		"Config file (skips the global and project search)")
	rootCmd.PersistentFlags().StringArrayVarP(&globalFlags.vars, "var", "D", nil,
		"Set a construction variable (KEY=VALUE, repeatable)")

	cobra.OnInitialize(initLogging)
}

// initLogging applies CLI flags to the logger.
// This runs after flags are parsed but before command execution.
func initLogging() {
	log.Init(globalFlags.verbosity, globalFlags.logFormat)
}

// loadConfig loads the layered configuration, or the --config file when given,
// and applies --var assignments on top.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if globalFlags.configPath != "" {
		cfg, err = config.LoadFile(globalFlags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	for _, assignment := range globalFlags.vars {
		key, value, err := config.ParseAssignment(assignment)
		if err != nil {
			return nil, fmt.Errorf("--var: %w", err)
		}
		cfg.Vars[key] = value
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
