// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/ewhitmore/fundboard/internal/domain/types"
)

// FundingRecord is one year of raw funding figures for the institution.
// All monetary fields are GBP millions. Fields mirror the dataset schema.
type FundingRecord struct {
	Year       int      `json:"year"`
	GIA        float64  `json:"gia_gbp_millions"`        // government grant-in-aid, nominal
	Voluntary  float64  `json:"voluntary_gbp_millions"`  // donations and voluntary income
	Investment float64  `json:"investment_gbp_millions"` // investment income
	Services   float64  `json:"services_gbp_millions"`   // commercial services income
	Other      float64  `json:"other_gbp_millions"`      // residual income category
	Nominal    float64  `json:"nominal_gbp_millions"`    // total funding, nominal
	RealY2000  float64  `json:"total_y2000_gbp_millions"` // total funding, 2000 prices
	// GIAShareOfPeak is government funding as a fraction of its historical
	// maximum, in [0,1]. Nil where the dataset has no value for the year.
	GIAShareOfPeak *float64 `json:"gia_as_percent_of_peak_gia,omitempty"`
}

// DerivedMetrics is the per-year output of the metrics calculator.
// Recomputed fresh on every run; never mutated after creation.
type DerivedMetrics struct {
	Year                 int          `json:"year"`
	Period               types.Period `json:"period"`
	DiversificationIndex float64      `json:"diversification_index"`
	GovernmentDependency float64      `json:"government_dependency"`
	// RealChangePct is the year-over-year percent change in the
	// inflation-adjusted total. Nil for the first year of the series.
	RealChangePct *float64 `json:"real_change_pct,omitempty"`
}

// PeriodSummary aggregates one funding era.
type PeriodSummary struct {
	Period types.Period `json:"period"`
	// MeanNominal is the mean nominal total, GBP millions, 1 dp.
	MeanNominal float64 `json:"mean_nominal_gbp_millions"`
	// MeanGovernmentDependencyPct is the mean dependency ratio as a
	// percentage, 1 dp.
	MeanGovernmentDependencyPct float64 `json:"mean_government_dependency_pct"`
	// MeanDiversification is the mean diversification index, 3 dp.
	MeanDiversification float64 `json:"mean_diversification_index"`
	Years               int     `json:"years"`
}

// Narrative carries the latest-year headline figures for reports and the API.
type Narrative struct {
	LatestYear           int          `json:"latest_year"`
	Period               types.Period `json:"period"`
	GIAShareOfPeak       float64      `json:"gia_share_of_peak"`
	GovernmentDependency float64      `json:"government_dependency"`
	DiversificationIndex float64      `json:"diversification_index"`
	RealChangePct        *float64     `json:"real_change_pct,omitempty"`
}

// Snapshot bundles the results of one analysis run.
type Snapshot struct {
	ID        string                         `json:"id"`
	LoadedAt  time.Time                      `json:"loaded_at"`
	Source    string                         `json:"source"`
	Funding   []FundingRecord                `json:"funding"`
	Series    []DerivedMetrics               `json:"series"`
	Summary   map[types.Period]PeriodSummary `json:"summary"`
	Narrative Narrative                      `json:"narrative"`
}
