// Package repository holds the latest analysis snapshot behind a
// read-optimized store.
package repository

import (
	"context"
	"time"

	"github.com/ewhitmore/fundboard/internal/domain/model"
	"github.com/ewhitmore/fundboard/internal/domain/types"
)

// Store provides read/write access to analysis results.
type Store interface {
	// Replace publishes a new snapshot, assigning it an id and timestamp.
	// The previous snapshot is discarded.
	Replace(ctx context.Context, snap model.Snapshot) (model.Snapshot, error)

	// Series returns the derived metrics, ordered by year ascending.
	// Returns ErrEmptyStore before the first Replace.
	Series(ctx context.Context) ([]model.DerivedMetrics, error)

	// Record returns the derived metrics for one year.
	// Returns ErrYearNotFound for unknown years.
	Record(ctx context.Context, year int) (model.DerivedMetrics, error)

	// Funding returns the raw funding records backing the snapshot.
	Funding(ctx context.Context) ([]model.FundingRecord, error)

	// Summary returns the per-period aggregates.
	Summary(ctx context.Context) (map[types.Period]model.PeriodSummary, error)

	// Narrative returns the latest-year headline figures.
	Narrative(ctx context.Context) (model.Narrative, error)

	// Snapshot returns a copy of the whole current snapshot.
	Snapshot(ctx context.Context) (model.Snapshot, error)

	// Count returns the number of derived rows in the current snapshot.
	Count(ctx context.Context) int

	// LastRefreshed returns when the current snapshot was published.
	LastRefreshed(ctx context.Context) (time.Time, error)
}
