package report

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/ewhitmore/fundboard/internal/adapters/dataset"
	"github.com/ewhitmore/fundboard/internal/adapters/export"
	"github.com/ewhitmore/fundboard/internal/domain/derive"
	"github.com/ewhitmore/fundboard/internal/domain/model"
	"github.com/ewhitmore/fundboard/internal/domain/series"
	"github.com/ewhitmore/fundboard/internal/domain/types"
	"github.com/ewhitmore/fundboard/pkg/logger"
)

// Run executes the complete report: load the dataset, derive the metrics,
// write the CSV bundle and print the era summary plus the latest-year
// narrative. Any derivation failure aborts the run with a non-nil error.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting funding report",
		logger.String("url", config.DatasetURL),
		logger.String("path", config.DatasetPath),
		logger.String("outputDir", config.OutputDir),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("austerityStart", config.AusterityStart),
		logger.Int("recoveryStart", config.RecoveryStart))

	// Step 1: Load the dataset
	result, err := loadDataset(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("dataset load failed: %w", err)
	}

	// Step 2: Derive per-year metrics and era summaries
	snap, err := deriveSnapshot(ctx, config, result, stats)
	if err != nil {
		return fmt.Errorf("derivation failed: %w", err)
	}

	// Step 3: Write the CSV bundle
	writer := export.NewWriter(export.WithDirectory(config.OutputDir))
	manifest, err := writer.Write(ctx, snap)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	logger.Get().Info(ctx, "bundle written",
		logger.String("runID", manifest.RunID),
		logger.Any("files", manifest.Files))

	// Step 4: Print the human-readable report
	printReport(snap)

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "report completed successfully")
	return nil
}

// loadDataset fetches and parses the funding dataset.
func loadDataset(ctx context.Context, config *Config, stats *Stats) (*dataset.Result, error) {
	opts := []dataset.Option{
		dataset.WithPath(config.DatasetPath),
		dataset.WithURL(config.DatasetURL),
	}
	if config.Timeout > 0 {
		opts = append(opts, dataset.WithTimeout(config.Timeout))
	}

	result, err := dataset.NewLoader(opts...).Load(ctx)
	if err != nil {
		return nil, err
	}
	stats.RecordsLoaded = len(result.Records)

	if gaps := series.Gaps(result.Records); len(gaps) > 0 {
		stats.GapYears = len(gaps)
		logger.Get().Warn(ctx, "dataset has missing years", logger.Any("years", gaps))
	}

	logger.Get().Info(ctx, "dataset loaded",
		logger.String("source", result.Source),
		logger.Int("records", len(result.Records)))
	return result, nil
}

// deriveSnapshot runs the calculator over the loaded records.
func deriveSnapshot(ctx context.Context, config *Config, result *dataset.Result, stats *Stats) (model.Snapshot, error) {
	var calcOpts []derive.Option
	if config.AusterityStart != 0 && config.RecoveryStart != 0 {
		calcOpts = append(calcOpts, derive.WithPeriodBoundaries(config.AusterityStart, config.RecoveryStart))
	}
	calc := derive.NewCalculator(calcOpts...)

	derived, err := calc.Derive(ctx, result.Records)
	if err != nil {
		return model.Snapshot{}, err
	}
	stats.PointsDerived = len(derived)

	summary, err := calc.Summarize(ctx, result.Records, derived)
	if err != nil {
		return model.Snapshot{}, err
	}
	stats.ErasSummarized = len(summary)

	peakShare, err := calc.PeakShareForLatest(result.Records)
	if err != nil {
		return model.Snapshot{}, err
	}

	latest := derived[len(derived)-1]
	return model.Snapshot{
		ID:       uuid.NewString(),
		LoadedAt: time.Now(),
		Source:   result.Source,
		Funding:  result.Records,
		Series:   derived,
		Summary:  summary,
		Narrative: model.Narrative{
			LatestYear:           latest.Year,
			Period:               latest.Period,
			GIAShareOfPeak:       peakShare,
			GovernmentDependency: latest.GovernmentDependency,
			DiversificationIndex: latest.DiversificationIndex,
			RealChangePct:        latest.RealChangePct,
		},
	}, nil
}

// printReport writes the era summary table and the narrative to stdout.
func printReport(snap model.Snapshot) {
	n := snap.Narrative
	fmt.Printf("\nIn %d (%s), government grant-in-aid stood at %.1f%% of its historical peak,\n",
		n.LatestYear, n.Period, n.GIAShareOfPeak*100)
	fmt.Printf("covering %.1f%% of total income with a diversification index of %.3f.\n",
		n.GovernmentDependency*100, n.DiversificationIndex)
	if n.RealChangePct != nil {
		fmt.Printf("Inflation-adjusted income changed %.1f%% year over year.\n", *n.RealChangePct)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nEra\tYears\tMean nominal (GBPm)\tMean govt dependency (%)\tMean diversification")
	for _, period := range types.Periods() {
		s, ok := snap.Summary[period]
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.1f\t%.3f\n",
			s.Period, s.Years, s.MeanNominal, s.MeanGovernmentDependencyPct, s.MeanDiversification)
	}
	_ = tw.Flush()
}

// displayFinalStats logs the final report statistics.
func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("recordsLoaded", stats.RecordsLoaded),
		logger.Int("pointsDerived", stats.PointsDerived),
		logger.Int("erasSummarized", stats.ErasSummarized),
		logger.Int("gapYears", stats.GapYears),
		logger.String("duration", stats.Duration.String()))
}
