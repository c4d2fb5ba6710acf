// Package series validates ordered funding series before derivation.
//
// The lag-based percent-change computation is only meaningful over a
// strictly ascending, duplicate-free year sequence, so every entry point
// into the calculator validates through this package first.
package series

import (
	"fmt"

	"github.com/ewhitmore/fundboard/internal/domain/model"
)

// Validate checks that records form a non-empty sequence of strictly
// ascending, unique years. It returns nil on success and a wrapped
// sentinel error naming the offending year otherwise.
func Validate(records []model.FundingRecord) error {
	if len(records) == 0 {
		return ErrEmptySeries
	}
	for i := 1; i < len(records); i++ {
		prev, curr := records[i-1].Year, records[i].Year
		switch {
		case curr == prev:
			return fmt.Errorf("year %d: %w", curr, ErrDuplicateYear)
		case curr < prev:
			return fmt.Errorf("year %d after %d: %w", curr, prev, ErrUnsortedYears)
		}
	}
	return nil
}

// Gaps returns the years missing from an otherwise contiguous range.
// The dataset is expected to cover 1998-2023 without holes, but gaps are
// reported rather than rejected.
func Gaps(records []model.FundingRecord) []int {
	if len(records) < 2 {
		return nil
	}
	var missing []int
	for i := 1; i < len(records); i++ {
		for y := records[i-1].Year + 1; y < records[i].Year; y++ {
			missing = append(missing, y)
		}
	}
	return missing
}
