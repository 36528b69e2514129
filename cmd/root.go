package cmd

import (
	"os"

	"github.com/matheuskafuri/fng/internal/update"
	"github.com/matheuskafuri/fng/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagVerbose bool
	flagCheck   bool
)

var rootCmd = &cobra.Command{
	Use:           "fng",
	Short:         "Fear and Greed Index scraper",
	Long:          "fng downloads the CNN Fear and Greed Index history, merges it with data you already have, fills missing days and saves it as Parquet or CSV.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log diagnostic details to stderr")

	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "check GitHub for a newer release")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(historyCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep := ui.NewConsole(cmd.OutOrStdout())
		rep.Info("fng %s (commit: %s, built: %s)", version, commit, date)
		if !flagCheck {
			return nil
		}
		res, err := update.Check(cmd.Context(), update.ReleasesURL, version)
		if err != nil {
			rep.Warn("%v", err)
			return nil
		}
		if res == nil {
			rep.Success("fng is up to date")
			return nil
		}
		rep.Info("A newer version is available: %s %s", res.LatestVersion, res.URL)
		return nil
	},
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.NewConsole(os.Stderr).Error("%v", err)
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
