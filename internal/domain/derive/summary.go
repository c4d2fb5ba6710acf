package derive

import (
	"context"
	"fmt"
	"math"

	"github.com/ewhitmore/fundboard/internal/domain/model"
	"github.com/ewhitmore/fundboard/internal/domain/types"
)

// Rounding precision constants for period aggregates.
const (
	nominalDecimals         = 1
	dependencyPctDecimals   = 1
	diversificationDecimals = 3
)

// Summarize groups derived metrics by period and computes, for each era
// present in the input, the mean nominal total (1 dp), the mean government
// dependency as a percentage (1 dp), and the mean diversification index
// (3 dp). records and derived must describe the same years in the same
// order, as produced by Derive.
func (c *Calculator) Summarize(ctx context.Context, records []model.FundingRecord, derived []model.DerivedMetrics) (map[types.Period]model.PeriodSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("summarize cancelled: %w", err)
	}
	if len(records) != len(derived) {
		return nil, fmt.Errorf("summarize: %d records vs %d derived rows", len(records), len(derived))
	}

	type accumulator struct {
		nominal         float64
		dependency      float64
		diversification float64
		n               int
	}
	groups := make(map[types.Period]*accumulator)

	for i, m := range derived {
		if records[i].Year != m.Year {
			return nil, fmt.Errorf("summarize: year mismatch at index %d (%d vs %d)", i, records[i].Year, m.Year)
		}
		acc, ok := groups[m.Period]
		if !ok {
			acc = &accumulator{}
			groups[m.Period] = acc
		}
		acc.nominal += records[i].Nominal
		acc.dependency += m.GovernmentDependency
		acc.diversification += m.DiversificationIndex
		acc.n++
	}

	out := make(map[types.Period]model.PeriodSummary, len(groups))
	for period, acc := range groups {
		n := float64(acc.n)
		out[period] = model.PeriodSummary{
			Period:                      period,
			MeanNominal:                 roundTo(acc.nominal/n, nominalDecimals),
			MeanGovernmentDependencyPct: roundTo(acc.dependency/n*percentFactor, dependencyPctDecimals),
			MeanDiversification:         roundTo(acc.diversification/n, diversificationDecimals),
			Years:                       acc.n,
		}
	}

	return out, nil
}

// roundTo rounds v to the given number of decimal places, half away from zero.
func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
