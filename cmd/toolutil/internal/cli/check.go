package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkFlags struct {
	noColor bool
}

var checkCmd = &cobra.Command{
	Use:   "check [TOOL...]",
	Short: "Report which configured tools can be found",
	Long: `Resolves every tool (all configured tools when none are named) and
prints one line per tool. Exits non-zero when any tool is missing.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkFlags.noColor, "no-color", false,
		"Disable colored output")

	rootCmd.AddCommand(checkCmd)
}

// errMissingTools is returned when check finds at least one missing tool.
var errMissingTools = errors.New("some tools were not found")

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if checkFlags.noColor {
		color.NoColor = true
	}

	tools := args
	if len(tools) == 0 {
		tools = cfg.ToolNames()
	}
	if len(tools) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "no tools configured")
		return err
	}

	ok := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()

	e := cfg.Environment()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	missing := 0
	for _, name := range tools {
		f, err := cfg.FinderOrDefault(name)
		if err != nil {
			return err
		}
		res, found := f.Lookup(e)
		if !found {
			missing++
			_, _ = fmt.Fprintf(tw, "%s\t%s\tnot found\t\n", fail("FAIL"), name)
			continue
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t(%s)\n", ok("OK"), name, res.Path, res.Tier)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if missing > 0 {
		return fmt.Errorf("%w: %d of %d", errMissingTools, missing, len(tools))
	}
	return nil
}
