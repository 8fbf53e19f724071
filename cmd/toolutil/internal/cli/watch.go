package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/albertocavalcante/toolutil/cmd/toolutil/internal/watch"
	"github.com/albertocavalcante/toolutil/pkg/env"
	"github.com/albertocavalcante/toolutil/pkg/finder"
	"github.com/spf13/cobra"
)

var watchFlags struct {
	debounce time.Duration
	verbose  bool
	json     bool
	noColor  bool
}

var watchCmd = &cobra.Command{
	Use:   "watch [TOOL...]",
	Short: "Watch tool search directories and report resolution changes",
	Long: `Watches every directory the named tools (all configured tools when
none are named) are searched in, and re-resolves a tool whenever one of
its directories changes.

Example output:

  $ toolutil watch cc

  toolutil: watching 6 directories for 1 tools
  toolutil: tools: cc
  toolutil: ready

  [14:32:16] ✓ cc: gcc -> /opt/cross/bin/gcc (priority)

Press Ctrl+C to stop watching.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", watch.DefaultDebounce,
		"Debounce window")
	watchCmd.Flags().BoolVar(&watchFlags.verbose, "verbose", false,
		"Show directory-level changes")
	watchCmd.Flags().BoolVar(&watchFlags.json, "json", false,
		"Stream JSON events (for tooling integration)")
	watchCmd.Flags().BoolVar(&watchFlags.noColor, "no-color", false,
		"Disable colored output")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = cfg.ToolNames()
	}
	tools := make([]*finder.ToolFinder, 0, len(names))
	for _, name := range names {
		f, err := cfg.FinderOrDefault(name)
		if err != nil {
			return err
		}
		tools = append(tools, f)
	}

	cache := env.NewCachingLocator(nil)

	// Include SIGHUP to handle terminal hangup
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	w, err := watch.New(watch.Config{
		Env:      cfg.Environment(env.WithLocator(cache)),
		Tools:    tools,
		Cache:    cache,
		Debounce: watchFlags.debounce,
		Verbose:  watchFlags.verbose,
		NoColor:  watchFlags.noColor,
		JSON:     watchFlags.json,
		Writer:   cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	return w.Run(ctx)
}
