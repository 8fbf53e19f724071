package cli

import (
	"encoding/json"
	"fmt"

	"github.com/albertocavalcante/toolutil/cmd/toolutil/internal/runner"
	"github.com/spf13/cobra"
)

var findFlags struct {
	json bool
}

var findCmd = &cobra.Command{
	Use:   "find TOOL",
	Short: "Print the program a tool resolves to",
	Long: `Searches the priority, PATH and fallback tiers configured for TOOL
under [tools.TOOL] and prints the program to use.

A tool without a [tools.TOOL] table is searched for by its own name on
the execution PATH.`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().BoolVar(&findFlags.json, "json", false,
		"Output as JSON")

	rootCmd.AddCommand(findCmd)
}

// FindOutput is the JSON output format for toolutil find.
type FindOutput struct {
	Tool     string `json:"tool"`
	Path     string `json:"path"`
	Found    string `json:"found"`
	Tier     string `json:"tier"`
	Stripped bool   `json:"stripped"`
}

func runFind(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	f, err := cfg.FinderOrDefault(args[0])
	if err != nil {
		return err
	}

	res, ok := f.Lookup(cfg.Environment())
	if !ok {
		return fmt.Errorf("%w: %s", runner.ErrToolNotFound, args[0])
	}

	out := cmd.OutOrStdout()
	if findFlags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(FindOutput{
			Tool:     f.Tool(),
			Path:     res.Path,
			Found:    res.Found,
			Tier:     res.Tier.String(),
			Stripped: res.Stripped,
		})
	}
	_, err = fmt.Fprintln(out, res.Path)
	return err
}
