// Package types contains common types used across the application
package types

// Period is one of the analyst-defined funding eras used to group years
// for summary statistics.
type Period string

// The three funding eras. Every calendar year maps to exactly one of them.
const (
	PeriodPreCrisis Period = "Pre-Crisis"
	PeriodAusterity Period = "Austerity Era"
	PeriodRecovery  Period = "Recovery Era"
)

// Periods lists the eras in chronological order. Useful for stable
// iteration over summary maps.
func Periods() []Period {
	return []Period{PeriodPreCrisis, PeriodAusterity, PeriodRecovery}
}
