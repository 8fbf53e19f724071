package cli

import (
	"fmt"

	"github.com/albertocavalcante/toolutil/pkg/env"
	"github.com/spf13/cobra"
)

var replaceFlags struct {
	all bool
}

var replaceCmd = &cobra.Command{
	Use:   "replace SET",
	Short: "Show the variables a replacement set produces",
	Long: `Applies the replacement set configured under [replacements.SET] to the
configured variables and prints the result as KEY=VALUE lines.

Only mapped variables that are set are printed unless --all is given, in
which case unmapped variables are included unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplace,
}

func init() {
	replaceCmd.Flags().BoolVar(&replaceFlags.all, "all", false,
		"Include variables the set does not map")

	rootCmd.AddCommand(replaceCmd)
}

func runReplace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := cfg.ReplacementSet(args[0])
	if err != nil {
		return err
	}

	vars := r.Apply(env.Vars(cfg.Vars), replaceFlags.all)
	out := cmd.OutOrStdout()
	for _, k := range vars.Keys() {
		if _, err := fmt.Fprintf(out, "%s=%s\n", k, vars[k]); err != nil {
			return err
		}
	}
	return nil
}
