package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ewhitmore/fundboard/internal/domain/model"
	"github.com/ewhitmore/fundboard/internal/domain/types"
	"github.com/google/uuid"
)

// SnapshotStore implements Store with a single snapshot guarded by a
// RWMutex. Writes are rare (one per refresh); reads dominate.
type SnapshotStore struct {
	mu      sync.RWMutex
	current *model.Snapshot
	byYear  map[int]int // year -> index into current.Series

	now   func() time.Time
	newID func() string
}

// NewSnapshotStore creates an empty snapshot store with configuration
// options.
func NewSnapshotStore(opts ...Option) *SnapshotStore {
	s := &SnapshotStore{
		now:   time.Now,
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Replace publishes a new snapshot. The id and timestamp are assigned
// here so callers only supply the analysis payload.
func (s *SnapshotStore) Replace(_ context.Context, snap model.Snapshot) (model.Snapshot, error) {
	snap.ID = s.newID()
	snap.LoadedAt = s.now()

	byYear := make(map[int]int, len(snap.Series))
	for i, m := range snap.Series {
		if _, dup := byYear[m.Year]; dup {
			return model.Snapshot{}, fmt.Errorf("snapshot has duplicate year %d", m.Year)
		}
		byYear[m.Year] = i
	}

	s.mu.Lock()
	s.current = &snap
	s.byYear = byYear
	s.mu.Unlock()

	return snap, nil
}

// Series returns the derived metrics of the current snapshot.
func (s *SnapshotStore) Series(_ context.Context) ([]model.DerivedMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrEmptyStore
	}
	out := make([]model.DerivedMetrics, len(s.current.Series))
	copy(out, s.current.Series)
	return out, nil
}

// Record returns the derived metrics for one year.
func (s *SnapshotStore) Record(_ context.Context, year int) (model.DerivedMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return model.DerivedMetrics{}, ErrEmptyStore
	}
	i, ok := s.byYear[year]
	if !ok {
		return model.DerivedMetrics{}, fmt.Errorf("year %d: %w", year, ErrYearNotFound)
	}
	return s.current.Series[i], nil
}

// Funding returns the raw funding records of the current snapshot.
func (s *SnapshotStore) Funding(_ context.Context) ([]model.FundingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrEmptyStore
	}
	out := make([]model.FundingRecord, len(s.current.Funding))
	copy(out, s.current.Funding)
	return out, nil
}

// Summary returns the per-period aggregates of the current snapshot.
func (s *SnapshotStore) Summary(_ context.Context) (map[types.Period]model.PeriodSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrEmptyStore
	}
	out := make(map[types.Period]model.PeriodSummary, len(s.current.Summary))
	for k, v := range s.current.Summary {
		out[k] = v
	}
	return out, nil
}

// Narrative returns the latest-year headline figures.
func (s *SnapshotStore) Narrative(_ context.Context) (model.Narrative, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return model.Narrative{}, ErrEmptyStore
	}
	return s.current.Narrative, nil
}

// Snapshot returns a copy of the whole current snapshot. Slices and the
// summary map are copied so callers cannot mutate the published state.
func (s *SnapshotStore) Snapshot(_ context.Context) (model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return model.Snapshot{}, ErrEmptyStore
	}
	out := *s.current
	out.Funding = make([]model.FundingRecord, len(s.current.Funding))
	copy(out.Funding, s.current.Funding)
	out.Series = make([]model.DerivedMetrics, len(s.current.Series))
	copy(out.Series, s.current.Series)
	out.Summary = make(map[types.Period]model.PeriodSummary, len(s.current.Summary))
	for k, v := range s.current.Summary {
		out.Summary[k] = v
	}
	return out, nil
}

// Count returns the number of derived rows in the current snapshot.
func (s *SnapshotStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return 0
	}
	return len(s.current.Series)
}

// LastRefreshed returns when the current snapshot was published.
func (s *SnapshotStore) LastRefreshed(_ context.Context) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return time.Time{}, ErrEmptyStore
	}
	return s.current.LoadedAt, nil
}
