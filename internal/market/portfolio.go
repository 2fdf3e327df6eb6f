package market

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"catalystChart/internal/chart"
)

// Aggregate folds several asset series into one synthetic portfolio series
// so the portfolio-aggregate chart variant feeds the same engine as a
// single symbol. Weights are target fractions of the initial value; nil
// weights means equal weighting. Leftover weight is held as cash; negative
// weights are short positions whose proceeds add to cash.
//
// Only timestamps present in every series participate, which keeps mixed
// trading calendars (e.g., an ADR missing a local holiday) aligned.
func Aggregate(assets [][]chart.PriceSample, weights []float64, initial float64) ([]chart.PriceSample, error) {
	if len(assets) == 0 {
		return nil, errors.New("no asset series provided")
	}
	if initial <= 0 {
		return nil, fmt.Errorf("invalid initial value %f", initial)
	}
	if weights == nil {
		weights = make([]float64, len(assets))
		for i := range weights {
			weights[i] = 1.0 / float64(len(assets))
		}
	}
	if len(weights) != len(assets) {
		return nil, fmt.Errorf("weights (%d) don't match asset series (%d)", len(weights), len(assets))
	}

	// Intersect timestamps across all series.
	count := map[int64]int{}
	for _, series := range assets {
		for _, s := range series {
			count[s.Timestamp.Unix()]++
		}
	}
	common := make([]int64, 0, len(count))
	for ts, c := range count {
		if c == len(assets) {
			common = append(common, ts)
		}
	}
	if len(common) < 2 {
		return nil, errors.New("not enough overlapping time points")
	}
	sort.Slice(common, func(i, j int) bool { return common[i] < common[j] })

	// Index each series by timestamp.
	indexed := make([]map[int64]chart.PriceSample, len(assets))
	for i, series := range assets {
		m := make(map[int64]chart.PriceSample, len(series))
		for _, s := range series {
			m[s.Timestamp.Unix()] = s
		}
		indexed[i] = m
	}

	// Shares bought at the first common point; cash soaks up the rest.
	netWeight := 0.0
	for _, w := range weights {
		netWeight += w
	}
	cash := initial * (1.0 - netWeight)
	shares := make([]float64, len(assets))
	for i := range assets {
		first := indexed[i][common[0]].Price
		if first <= 0 || math.IsNaN(first) || math.IsInf(first, 0) {
			return nil, fmt.Errorf("invalid initial price for asset %d: %f", i, first)
		}
		shares[i] = initial * weights[i] / first
	}

	out := make([]chart.PriceSample, 0, len(common))
	for _, ts := range common {
		value := cash
		var volume int64
		for i := range assets {
			s := indexed[i][ts]
			if math.IsNaN(s.Price) || math.IsInf(s.Price, 0) {
				return nil, fmt.Errorf("invalid price for asset %d at %d: %f", i, ts, s.Price)
			}
			value += shares[i] * s.Price
			volume += s.Volume
		}
		ref := indexed[0][ts]
		out = append(out, chart.PriceSample{
			Timestamp: time.Unix(ts, 0).UTC(),
			Price:     value,
			Volume:    volume,
			Session:   ref.Session,
		})
	}
	return out, nil
}
