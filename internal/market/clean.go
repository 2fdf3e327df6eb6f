package market

import (
	"sort"

	"catalystChart/internal/chart"
)

// IQR fence multiplier and the series length below which cleaning is skipped.
const (
	outlierFenceK    = 1.5
	outlierMinPoints = 20
)

// filterOutliers removes outliers using the Interquartile Range (IQR) rule.
// Any sample with price outside [Q1 - k*IQR, Q3 + k*IQR] is dropped; a single
// junk tick would otherwise stretch the price scale until the real line goes
// flat. For short series (< minPoints) it returns the original data, and it
// refuses any cleaning pass that would discard more than half the points.
func filterOutliers(samples []chart.PriceSample, k float64, minPoints int) []chart.PriceSample {
	if len(samples) < minPoints {
		return samples
	}
	vals := make([]float64, len(samples))
	for i, s := range samples {
		vals[i] = s.Price
	}
	sort.Float64s(vals)
	q1 := percentile(vals, 0.25)
	q3 := percentile(vals, 0.75)
	iqr := q3 - q1
	if iqr <= 0 {
		return samples
	}
	lower := q1 - k*iqr
	upper := q3 + k*iqr
	out := make([]chart.PriceSample, 0, len(samples))
	for _, s := range samples {
		if s.Price < lower || s.Price > upper {
			continue
		}
		out = append(out, s)
	}
	if len(out) < minPoints/2 {
		return samples
	}
	return out
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
