// Package derive computes per-year funding metrics and period aggregates
// from a validated funding series.
//
// Everything here is a pure mapping from the input sequence to the output
// sequence: no I/O, no global state, and no ordering dependency beyond the
// sequential access needed for the lag-based percent-change.
package derive

import (
	"context"
	"fmt"

	"github.com/ewhitmore/fundboard/internal/domain/model"
	"github.com/ewhitmore/fundboard/internal/domain/series"
	"github.com/ewhitmore/fundboard/internal/domain/types"
)

// Default period boundary constants.
const (
	defaultAusterityStart = 2008 // first year of the austerity era
	defaultRecoveryStart  = 2016 // first year of the recovery era
)

// percentFactor converts a ratio to a percentage.
const percentFactor = 100

// Deriver computes derived metrics from raw funding records.
type Deriver interface {
	// Derive maps one funding record per year to one derived-metrics
	// record per year, honoring ctx for cancellation between records.
	Derive(ctx context.Context, records []model.FundingRecord) ([]model.DerivedMetrics, error)

	// Summarize groups derived metrics by period and aggregates each group.
	Summarize(ctx context.Context, records []model.FundingRecord, derived []model.DerivedMetrics) (map[types.Period]model.PeriodSummary, error)
}

// Calculator implements Deriver with configurable period boundaries.
type Calculator struct {
	austerityStart int
	recoveryStart  int
}

// NewCalculator creates a calculator with configuration options.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		austerityStart: defaultAusterityStart,
		recoveryStart:  defaultRecoveryStart,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ClassifyPeriod maps a calendar year to its funding era. The function is
// total: every year lands in exactly one era, with the austerity and
// recovery start years inclusive on the later side.
func (c *Calculator) ClassifyPeriod(year int) types.Period {
	switch {
	case year < c.austerityStart:
		return types.PeriodPreCrisis
	case year < c.recoveryStart:
		return types.PeriodAusterity
	default:
		return types.PeriodRecovery
	}
}

// DiversificationIndex computes 1 minus the sum of squared income shares
// over the four main income categories. The "other" residual category is
// deliberately excluded from the denominator. The result lies in
// [0, 0.75]: 0 when one category holds the entire total, 0.75 when all
// four shares are equal.
func (c *Calculator) DiversificationIndex(rec model.FundingRecord) (float64, error) {
	total := rec.GIA + rec.Voluntary + rec.Investment + rec.Services
	if total == 0 {
		return 0, &DivisionError{Year: rec.Year, Quantity: "diversification_index"}
	}

	concentration := 0.0
	for _, component := range [4]float64{rec.GIA, rec.Voluntary, rec.Investment, rec.Services} {
		share := component / total
		concentration += share * share
	}

	return 1 - concentration, nil
}

// GovernmentDependency computes grant-in-aid as a fraction of the nominal
// total.
func (c *Calculator) GovernmentDependency(rec model.FundingRecord) (float64, error) {
	if rec.Nominal == 0 {
		return 0, &DivisionError{Year: rec.Year, Quantity: "government_dependency"}
	}
	return rec.GIA / rec.Nominal, nil
}

// RealChangePct computes the year-over-year percent change in the
// inflation-adjusted total between two consecutive records.
func (c *Calculator) RealChangePct(prev, curr model.FundingRecord) (float64, error) {
	if prev.RealY2000 == 0 {
		return 0, &DivisionError{Year: curr.Year, Quantity: "real_change_pct"}
	}
	return (curr.RealY2000 - prev.RealY2000) / prev.RealY2000 * percentFactor, nil
}

// Derive validates the series and produces one DerivedMetrics per record
// in a single forward pass. The first record's RealChangePct is nil: there
// is no prior year to compare.
func (c *Calculator) Derive(ctx context.Context, records []model.FundingRecord) ([]model.DerivedMetrics, error) {
	if err := series.Validate(records); err != nil {
		return nil, fmt.Errorf("derive: %w", err)
	}

	out := make([]model.DerivedMetrics, 0, len(records))
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("derive cancelled: %w", err)
		}

		div, err := c.DiversificationIndex(rec)
		if err != nil {
			return nil, err
		}
		dep, err := c.GovernmentDependency(rec)
		if err != nil {
			return nil, err
		}

		m := model.DerivedMetrics{
			Year:                 rec.Year,
			Period:               c.ClassifyPeriod(rec.Year),
			DiversificationIndex: div,
			GovernmentDependency: dep,
		}
		if i > 0 {
			change, err := c.RealChangePct(records[i-1], rec)
			if err != nil {
				return nil, err
			}
			m.RealChangePct = &change
		}
		out = append(out, m)
	}

	return out, nil
}

// PeakShareForLatest returns the gia-share-of-peak value for the most
// recent record. A null value is an explicit error, never a guessed
// default.
func (c *Calculator) PeakShareForLatest(records []model.FundingRecord) (float64, error) {
	if err := series.Validate(records); err != nil {
		return 0, fmt.Errorf("peak share: %w", err)
	}
	latest := records[len(records)-1]
	if latest.GIAShareOfPeak == nil {
		return 0, fmt.Errorf("year %d: %w", latest.Year, ErrMissingPeakShare)
	}
	return *latest.GIAShareOfPeak, nil
}
