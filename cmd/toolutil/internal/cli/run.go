package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/albertocavalcante/toolutil/cmd/toolutil/internal/runner"
	"github.com/spf13/cobra"
)

var runFlags struct {
	exec bool
}

var runCmd = &cobra.Command{
	Use:   "run TOOL [-- ARGS...]",
	Short: "Resolve a tool and run it",
	Long: `Resolves TOOL like 'toolutil find' and runs it with ARGS, using the
execution environment (PATH and exec_env overrides) of the configuration.

With --exec the current process is replaced by the tool (unix only).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runFlags.exec, "exec", false,
		"Replace the current process with the tool")
	runCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	f, err := cfg.FinderOrDefault(args[0])
	if err != nil {
		return err
	}

	// Flag parsing stops at TOOL, so a separating "--" reaches us verbatim.
	toolArgs := args[1:]
	if len(toolArgs) > 0 && toolArgs[0] == "--" {
		toolArgs = toolArgs[1:]
	}

	r := runner.New(f, cfg.Environment(),
		runner.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()))
	if runFlags.exec {
		return r.Exec(toolArgs)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return r.Run(ctx, toolArgs)
}
