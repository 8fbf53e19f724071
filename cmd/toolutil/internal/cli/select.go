package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var selectFlags struct {
	suffix bool
}

var selectCmd = &cobra.Command{
	Use:   "select SELECTOR SOURCE...",
	Short: "Choose a value by source file suffix",
	Long: `Looks up the selector configured under [selectors.SELECTOR] using the
first SOURCE. With --suffix, SOURCE is taken to be a suffix (".c") rather
than a file name.

Suffix patterns are substituted before matching, so a selector keyed on
"$OBJSUFFIX" follows the construction variables.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().BoolVar(&selectFlags.suffix, "suffix", false,
		"Treat SOURCE as a suffix rather than a file name")

	rootCmd.AddCommand(selectCmd)
}

// errNoSelection is returned when no pattern and no fallback matched.
var errNoSelection = errors.New("no matching suffix")

func runSelect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := cfg.Selector(args[0])
	if err != nil {
		return err
	}

	e := cfg.Environment()
	var (
		value string
		ok    bool
	)
	if selectFlags.suffix {
		value, ok, err = s.SelectSuffix(e, args[1])
	} else {
		value, ok, err = s.Select(e, args[1:])
	}
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w for %q", args[0], errNoSelection, args[1])
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), e.Subst(value))
	return err
}
