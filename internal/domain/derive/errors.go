package derive

import (
	"errors"
	"fmt"
)

// Sentinel kinds for derivation errors. These allow errors.Is/As from callers.
var (
	// ErrZeroDenominator is the kind every DivisionError unwraps to.
	ErrZeroDenominator = errors.New("zero denominator")

	// ErrMissingPeakShare is returned when the latest year's
	// gia-share-of-peak value is null. The caller must fail rather than
	// guess a default.
	ErrMissingPeakShare = errors.New("gia share of peak missing for latest year")
)

// DivisionError reports a zero denominator encountered while deriving a
// metric. It names the offending year and the quantity whose denominator
// was zero so the caller can decide whether to emit null or halt. A
// sentinel value is never substituted silently, since that would corrupt
// downstream aggregates.
type DivisionError struct {
	Year     int    // calendar year of the offending record
	Quantity string // metric being computed, e.g. "diversification_index"
}

func (e *DivisionError) Error() string {
	return fmt.Sprintf("%s for year %d: %v", e.Quantity, e.Year, ErrZeroDenominator)
}

// Unwrap lets errors.Is(err, ErrZeroDenominator) hold for every DivisionError.
func (e *DivisionError) Unwrap() error {
	return ErrZeroDenominator
}
