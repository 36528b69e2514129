package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/matheuskafuri/fng/internal/config"
	"github.com/matheuskafuri/fng/internal/history"
	"github.com/matheuskafuri/fng/internal/ui"
	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit   int
	flagHistorySince   string
	flagPruneOlderThan string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous scrape runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := history.Open(config.HistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer db.Close()

		opts := history.QueryOpts{Limit: flagHistoryLimit}
		if flagHistorySince != "" {
			d, err := config.ParseDays(flagHistorySince)
			if err != nil {
				return fmt.Errorf("invalid --since value: %w", err)
			}
			opts.Since = time.Now().Add(-d)
		}

		runs, err := db.Runs(opts)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}
		ui.NewConsole(cmd.OutOrStdout()).Print(ui.RenderRuns(runs))
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old runs from the history",
	Long: `Delete recorded runs older than the retention period and reclaim disk space.

Uses the retention value from config (default: 90d) unless overridden with --older-than.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		db, err := history.Open(config.HistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer db.Close()

		retention := cfg.RetentionDuration()
		if flagPruneOlderThan != "" {
			d, err := config.ParseDays(flagPruneOlderThan)
			if err != nil {
				return fmt.Errorf("invalid --older-than value: %w", err)
			}
			retention = d
		}

		deleted, err := db.Prune(retention)
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		rep := ui.NewConsole(cmd.OutOrStdout())
		if deleted == 0 {
			rep.Info("Nothing to prune.")
		} else {
			rep.Info("Pruned %d run(s) older than %s.", deleted, formatDuration(retention))
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history database statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.HistoryPath()
		db, err := history.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer db.Close()

		count, size, err := db.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		rep := ui.NewConsole(cmd.OutOrStdout())
		rep.Print(ui.KeyValue("History", dbPath))
		rep.Print(ui.KeyValue("Runs", humanize.Comma(int64(count))))
		rep.Print(ui.KeyValue("Size", humanize.Bytes(uint64(size))))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "maximum number of runs to show")
	historyCmd.Flags().StringVar(&flagHistorySince, "since", "", "only show runs from the last duration (e.g., 7d, 24h)")
	pruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "", "override retention period (e.g., 30d, 720h)")

	historyCmd.AddCommand(pruneCmd)
	historyCmd.AddCommand(statsCmd)
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}
