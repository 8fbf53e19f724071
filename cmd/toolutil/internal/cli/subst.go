package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var substCmd = &cobra.Command{
	Use:   "subst TEXT...",
	Short: "Expand construction variables in TEXT",
	Long: `Expands $VAR and ${VAR} references against the configured variables
until no reference remains. Undefined variables expand to nothing and
"$$" yields a literal "$".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSubst,
}

func init() {
	rootCmd.AddCommand(substCmd)
}

func runSubst(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cfg.Environment().Subst(strings.Join(args, " ")))
	return err
}
