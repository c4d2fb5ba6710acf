// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ewhitmore/fundboard/internal/adapters/dataset"
	"github.com/ewhitmore/fundboard/internal/adapters/export"
	"github.com/ewhitmore/fundboard/internal/adapters/repository"
	"github.com/ewhitmore/fundboard/internal/domain/derive"
	"github.com/ewhitmore/fundboard/internal/domain/model"
	"github.com/ewhitmore/fundboard/internal/domain/series"
	"github.com/ewhitmore/fundboard/internal/domain/types"
	"github.com/ewhitmore/fundboard/pkg/logger"
	"github.com/ewhitmore/fundboard/pkg/metrics"
)

// defaultFetchTimeout bounds remote dataset fetches unless configured.
const defaultFetchTimeout = 30 * time.Second

// Loader abstracts the dataset source so tests can substitute their own.
type Loader interface {
	Load(ctx context.Context) (*dataset.Result, error)
}

// Service implements the API dependencies for the funding analytics system.
type Service struct {
	mu sync.RWMutex

	// Core components
	loader   Loader
	calc     *derive.Calculator
	store    repository.Store
	exporter *export.Writer

	// Configuration
	datasetURL     string
	datasetPath    string
	fetchTimeout   time.Duration
	exportDir      string
	austerityStart int
	recoveryStart  int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDatasetURL sets the remote registry URL for the funding series.
func WithDatasetURL(url string) Option {
	return func(s *Service) {
		s.datasetURL = url
	}
}

// WithDatasetPath sets a local CSV path for the funding series.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		s.datasetPath = path
	}
}

// WithFetchTimeout bounds remote dataset fetches.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.fetchTimeout = timeout
		}
	}
}

// WithExportDir enables snapshot export into dir. Empty disables the
// export endpoint.
func WithExportDir(dir string) Option {
	return func(s *Service) {
		s.exportDir = dir
	}
}

// WithPeriodBoundaries overrides the era boundary years.
func WithPeriodBoundaries(austerityStart, recoveryStart int) Option {
	return func(s *Service) {
		if austerityStart > 0 && recoveryStart > austerityStart {
			s.austerityStart = austerityStart
			s.recoveryStart = recoveryStart
		}
	}
}

// WithLoader injects a dataset loader, replacing the one built from the
// URL/path configuration. Intended for tests.
func WithLoader(loader Loader) Option {
	return func(s *Service) {
		if loader != nil {
			s.loader = loader
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		fetchTimeout: defaultFetchTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the components and performs the first analysis run.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.loader == nil {
		s.loader = dataset.NewLoader(
			dataset.WithPath(s.datasetPath),
			dataset.WithURL(s.datasetURL),
			dataset.WithTimeout(s.fetchTimeout),
		)
	}
	var calcOpts []derive.Option
	if s.austerityStart > 0 {
		calcOpts = append(calcOpts, derive.WithPeriodBoundaries(s.austerityStart, s.recoveryStart))
	}
	s.calc = derive.NewCalculator(calcOpts...)
	s.store = repository.NewSnapshotStore()
	if s.exportDir != "" {
		s.exporter = export.NewWriter(export.WithDirectory(s.exportDir))
	}
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting funding analytics service")

	if err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("initial analysis run: %w", err)
	}

	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "funding analytics service stopped")
}

// Refresh loads the dataset, derives metrics and aggregates, and publishes
// a new snapshot.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.RLock()
	loader, calc, store := s.loader, s.calc, s.store
	s.mu.RUnlock()
	if loader == nil || calc == nil || store == nil {
		return fmt.Errorf("service not started")
	}

	fetchStart := time.Now()
	res, err := loader.Load(ctx)
	if err != nil {
		metrics.RecordDatasetLoadError()
		return fmt.Errorf("load dataset: %w", err)
	}
	metrics.RecordDatasetLoad()
	metrics.RecordDatasetFetchDuration(time.Since(fetchStart).Seconds())

	if gaps := series.Gaps(res.Records); len(gaps) > 0 {
		s.logger.Warn(ctx, "funding series has gaps", logger.Any("missingYears", gaps))
	}

	deriveStart := time.Now()
	derived, err := calc.Derive(ctx, res.Records)
	if err != nil {
		metrics.RecordDeriveError()
		return fmt.Errorf("derive metrics: %w", err)
	}
	summary, err := calc.Summarize(ctx, res.Records, derived)
	if err != nil {
		metrics.RecordDeriveError()
		return fmt.Errorf("summarize: %w", err)
	}
	narrative, err := s.buildNarrative(res.Records, derived)
	if err != nil {
		metrics.RecordDeriveError()
		return fmt.Errorf("narrative: %w", err)
	}
	metrics.RecordDeriveDuration(time.Since(deriveStart).Seconds())

	snap, err := store.Replace(ctx, model.Snapshot{
		Source:    res.Source,
		Funding:   res.Records,
		Series:    derived,
		Summary:   summary,
		Narrative: narrative,
	})
	if err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}

	metrics.UpdateFundingRecords(len(res.Records))
	metrics.UpdateDerivedPoints(len(derived))
	metrics.RecordSnapshot(snap.LoadedAt.Unix())

	s.logger.Info(ctx, "analysis snapshot published",
		logger.String("snapshot", snap.ID),
		logger.String("source", res.Source),
		logger.Int("records", len(res.Records)),
	)

	return nil
}

// buildNarrative assembles the latest-year headline figures. A missing
// peak-share value for the latest year fails the whole refresh rather
// than publishing a guessed default.
func (s *Service) buildNarrative(records []model.FundingRecord, derived []model.DerivedMetrics) (model.Narrative, error) {
	peakShare, err := s.calc.PeakShareForLatest(records)
	if err != nil {
		return model.Narrative{}, err
	}
	latest := derived[len(derived)-1]
	return model.Narrative{
		LatestYear:           latest.Year,
		Period:               latest.Period,
		GIAShareOfPeak:       peakShare,
		GovernmentDependency: latest.GovernmentDependency,
		DiversificationIndex: latest.DiversificationIndex,
		RealChangePct:        latest.RealChangePct,
	}, nil
}

// Series returns the derived metrics of the current snapshot.
func (s *Service) Series(ctx context.Context) ([]model.DerivedMetrics, error) {
	return s.store.Series(ctx)
}

// Record returns the derived metrics for one year.
func (s *Service) Record(ctx context.Context, year int) (model.DerivedMetrics, error) {
	return s.store.Record(ctx, year)
}

// Funding returns the raw funding records of the current snapshot.
func (s *Service) Funding(ctx context.Context) ([]model.FundingRecord, error) {
	return s.store.Funding(ctx)
}

// Summary returns the per-period aggregates.
func (s *Service) Summary(ctx context.Context) (map[types.Period]model.PeriodSummary, error) {
	return s.store.Summary(ctx)
}

// Narrative returns the latest-year headline figures.
func (s *Service) Narrative(ctx context.Context) (model.Narrative, error) {
	return s.store.Narrative(ctx)
}

// Snapshot returns the full current snapshot.
func (s *Service) Snapshot(ctx context.Context) (model.Snapshot, error) {
	return s.store.Snapshot(ctx)
}

// Export writes the current snapshot as a CSV bundle into the configured
// export directory.
func (s *Service) Export(ctx context.Context) (export.Manifest, error) {
	s.mu.RLock()
	exporter := s.exporter
	s.mu.RUnlock()
	if exporter == nil {
		return export.Manifest{}, fmt.Errorf("export: %w", ErrExportDisabled)
	}

	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return export.Manifest{}, fmt.Errorf("export: %w", err)
	}

	manifest, err := exporter.Write(ctx, snap)
	if err != nil {
		metrics.RecordExportError()
		return export.Manifest{}, fmt.Errorf("export: %w", err)
	}
	metrics.RecordExport()

	s.logger.Info(ctx, "snapshot exported",
		logger.String("runID", manifest.RunID),
		logger.String("snapshot", manifest.SnapshotID),
		logger.Any("files", manifest.Files),
	)
	return manifest, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
	}

	if s.started && s.store != nil {
		stats["derivedPoints"] = s.store.Count(ctx)
		if refreshed, err := s.store.LastRefreshed(ctx); err == nil {
			stats["lastRefreshed"] = refreshed.UTC().Format(time.RFC3339)
		}
	}

	return stats
}
