package derive

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithPeriodBoundaries overrides the first austerity-era year and the
// first recovery-era year. Both must be positive and the recovery year
// must follow the austerity year, otherwise the defaults are kept.
func WithPeriodBoundaries(austerityStart, recoveryStart int) Option {
	return func(c *Calculator) {
		if austerityStart > 0 && recoveryStart > austerityStart {
			c.austerityStart = austerityStart
			c.recoveryStart = recoveryStart
		}
	}
}
