package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/matheuskafuri/fng/internal/config"
	"github.com/matheuskafuri/fng/internal/fetch"
	"github.com/matheuskafuri/fng/internal/history"
	"github.com/matheuskafuri/fng/internal/series"
	"github.com/matheuskafuri/fng/internal/summary"
	"github.com/matheuskafuri/fng/internal/table"
	"github.com/matheuskafuri/fng/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// scrapeOptions holds the raw flag values before validation.
type scrapeOptions struct {
	StartDate string
	EndDate   string
	Input     string
	Output    string
	Format    string
	Backfill  bool
	Summary   bool
}

// scrapeParams is a validated scrape request.
type scrapeParams struct {
	Range   series.Range
	Input   string
	Output  string
	Format  table.Format
	Policy  series.FillPolicy
	Summary bool
}

var (
	flagScrape    scrapeOptions
	flagNoSummary bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch the index history and save it",
	Long: `Fetch Fear and Greed Index history from the CNN API and save it as Parquet or CSV.

Every calendar day between --start-date and --end-date appears exactly once in the output.
Values from an existing file given with --input-csv are kept unless the API returns the same day.
Days with no value are written as 0, or with --backfill take the next known value.`,
	Example: `  fng scrape
  fng scrape -s 2024-01-01 -o data/fng.csv -f csv
  fng scrape -i fng_data.csv -b --no-summary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		applyConfigDefaults(cmd, cfg, &flagScrape)
		if flagNoSummary {
			flagScrape.Summary = false
		}

		p, err := flagScrape.validate(time.Now())
		if err != nil {
			return err
		}

		logger := newLogger(flagVerbose)
		defer logger.Sync()

		rep := ui.NewConsole(cmd.OutOrStdout())
		rec := openRecorder(cfg, rep, logger)
		defer rec.Close()

		client := fetch.NewClient(cfg.BaseURL, cfg.TimeoutDuration(),
			fetch.WithUserAgents(cfg.UserAgents),
			fetch.WithLogger(logger),
		)

		_, err = runScrape(cmd.Context(), p, client, rec, rep, logger)
		return err
	},
}

func init() {
	f := scrapeCmd.Flags()
	f.StringVarP(&flagScrape.StartDate, "start-date", "s", "2020-09-19", "start date for data collection (YYYY-MM-DD)")
	f.StringVarP(&flagScrape.EndDate, "end-date", "e", "", "end date for data collection (YYYY-MM-DD, default today)")
	f.StringVarP(&flagScrape.Input, "input-csv", "i", "", "existing CSV or Parquet file to merge with new data")
	f.StringVarP(&flagScrape.Output, "output", "o", "fng_data.parquet", "output file path")
	f.StringVarP(&flagScrape.Format, "format", "f", "parquet", "output format (parquet or csv)")
	f.BoolVarP(&flagScrape.Backfill, "backfill", "b", false, "backfill missing values instead of using zeros")
	f.BoolVar(&flagScrape.Summary, "summary", true, "display data summary after processing")
	f.BoolVar(&flagNoSummary, "no-summary", false, "skip the data summary")
}

// applyConfigDefaults fills flags the user did not set from the config file.
func applyConfigDefaults(cmd *cobra.Command, cfg *config.Config, o *scrapeOptions) {
	flags := cmd.Flags()
	if !flags.Changed("start-date") && cfg.StartDate != "" {
		o.StartDate = cfg.StartDate
	}
	if !flags.Changed("output") && cfg.Output != "" {
		o.Output = cfg.Output
	}
	if !flags.Changed("format") && cfg.Format != "" {
		o.Format = cfg.Format
	}
	if !flags.Changed("backfill") && cfg.Backfill {
		o.Backfill = true
	}
}

func (o scrapeOptions) validate(now time.Time) (scrapeParams, error) {
	format, err := table.ParseFormat(o.Format)
	if err != nil {
		return scrapeParams{}, errors.New("format must be 'parquet' or 'csv'")
	}

	endDate := o.EndDate
	if endDate == "" {
		endDate = now.Format(series.DateLayout)
	}
	start, err := series.ParseDate(o.StartDate)
	if err != nil {
		return scrapeParams{}, fmt.Errorf("invalid start date %q: use YYYY-MM-DD", o.StartDate)
	}
	end, err := series.ParseDate(endDate)
	if err != nil {
		return scrapeParams{}, fmt.Errorf("invalid end date %q: use YYYY-MM-DD", endDate)
	}
	if start.After(end) {
		return scrapeParams{}, errors.New("start date must be before end date")
	}

	policy := series.ZeroFill
	if o.Backfill {
		policy = series.BackwardFill
	}

	return scrapeParams{
		Range:   series.NewRange(start, end),
		Input:   o.Input,
		Output:  table.NormalizePath(o.Output, format),
		Format:  format,
		Policy:  policy,
		Summary: o.Summary,
	}, nil
}

func openRecorder(cfg *config.Config, rep ui.Reporter, logger *zap.Logger) history.Recorder {
	if !cfg.HistoryEnabled() {
		return history.NewNoopRecorder()
	}
	h, err := history.Open(config.HistoryPath())
	if err != nil {
		rep.Warn("run history disabled: %v", err)
		return history.NewNoopRecorder()
	}
	logger.Debug("history opened", zap.String("path", config.HistoryPath()))
	return h
}

// runScrape loads, fetches, reconciles and saves one series.
func runScrape(ctx context.Context, p scrapeParams, f fetch.Fetcher, rec history.Recorder, rep ui.Reporter, logger *zap.Logger) (series.Series, error) {
	started := time.Now()

	rep.Print(ui.Title("Fear and Greed Index Scraper"))
	rep.Info("Date range: %s", p.Range)
	if p.Input != "" {
		rep.Info("Input CSV: %s", p.Input)
	}
	rep.Info("Output: %s (%s)", p.Output, strings.ToUpper(string(p.Format)))
	rep.Info("Backfill: %s", enabled(p.Policy == series.BackwardFill))
	rep.Print("")

	var existing []series.Observation
	if p.Input != "" {
		if !table.Exists(p.Input) {
			rep.Warn("%s not found", p.Input)
		} else if err := rep.Step("Loading existing data...", func() error {
			var err error
			existing, err = table.Load(p.Input)
			return err
		}); err != nil {
			return nil, fmt.Errorf("loading %s: %w", p.Input, err)
		}
		logger.Debug("existing data loaded", zap.Int("observations", len(existing)))
	}

	var fetched []series.Observation
	if err := rep.Step("Fetching data from CNN API...", func() error {
		var err error
		fetched, err = f.Fetch(ctx, p.Range.Start)
		return err
	}); err != nil {
		return nil, err
	}

	s := series.Reconcile(existing, fetched, p.Range, p.Policy)
	logger.Debug("series reconciled",
		zap.Int("rows", s.Len()),
		zap.Int("missing", s.Missing()),
		zap.Stringer("policy", p.Policy),
	)

	if err := rep.Step(fmt.Sprintf("Saving data as %s...", p.Format), func() error {
		return table.Save(s, p.Output, p.Format)
	}); err != nil {
		return nil, fmt.Errorf("saving %s: %w", p.Output, err)
	}
	rep.Success("Data saved to %s", p.Output)

	if p.Summary {
		rep.Print("")
		rep.Print(ui.RenderSummary(summary.Compute(s)))
	}

	var size int64
	if info, err := os.Stat(p.Output); err == nil {
		size = info.Size()
	}
	if err := rec.RecordRun(history.Run{
		StartedAt:   started,
		Start:       p.Range.Start,
		End:         p.Range.End,
		Policy:      p.Policy.String(),
		Format:      string(p.Format),
		Input:       p.Input,
		Output:      p.Output,
		OutputBytes: size,
		Fetched:     len(fetched),
		Rows:        s.Len(),
		Missing:     s.Missing(),
	}); err != nil {
		rep.Warn("recording run: %v", err)
	}

	rep.Print("")
	rep.Success("Successfully processed %d records!", s.Len())
	return s, nil
}

func enabled(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}
