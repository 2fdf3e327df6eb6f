package chart

import (
	"fmt"
	"time"
)

// Strategy selects how past-region X positions are derived for a TimeRange.
type Strategy int

const (
	// StrategyTimeOfDay spaces samples by minutes since the pre-market
	// open against a fixed trading-day length, so a missed minute leaves
	// a gap instead of distorting spacing.
	StrategyTimeOfDay Strategy = iota
	// StrategyOrdinal spaces samples evenly by rank; weekends and
	// holidays produce no visible gap.
	StrategyOrdinal
	// StrategyTimestamp spaces samples by true elapsed time from the
	// window start, for multi-year windows where gaps matter.
	StrategyTimestamp
)

// ResolveStrategy picks the positioning strategy for a range. An
// unrecognized range is a programmer error and panics: silently defaulting
// would corrupt spacing with no visible signal.
func ResolveStrategy(r TimeRange) Strategy {
	switch r {
	case RangeIntraday:
		return StrategyTimeOfDay
	case RangeWeek, RangeMonth, RangeQuarter, RangeYearToDate, RangeYear:
		return StrategyOrdinal
	case RangeFiveYear:
		return StrategyTimestamp
	}
	panic(fmt.Sprintf("chart: unknown time range %d", int(r)))
}

// windowDuration is the span of past time a range covers, measured back
// from now. Only the timestamp strategy consumes it.
func (r TimeRange) windowDuration(now time.Time) time.Duration {
	switch r {
	case RangeIntraday:
		return 24 * time.Hour
	case RangeWeek:
		return 7 * 24 * time.Hour
	case RangeMonth:
		return 30 * 24 * time.Hour
	case RangeQuarter:
		return 91 * 24 * time.Hour
	case RangeYearToDate:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return now.Sub(start)
	case RangeYear:
		return 365 * 24 * time.Hour
	case RangeFiveYear:
		return 5 * 365 * 24 * time.Hour
	}
	panic(fmt.Sprintf("chart: unknown time range %d", int(r)))
}
