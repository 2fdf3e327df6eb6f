package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-08-25 is a Tuesday; ET is UTC-4 that day.
func intradayET(h, m int) time.Time {
	return time.Date(2026, 8, 25, h+4, m, 0, 0, time.UTC)
}

func sample(ts time.Time, price float64) PriceSample {
	return PriceSample{Timestamp: ts, Price: price, Session: SessionRegular}
}

func TestIntradayMapping(t *testing.T) {
	// Three samples at 0%, 50% and 100% of the trading day (04:00, 12:00,
	// 20:00 ET), prices 100/110/105, viewport 300x100 split at 0.6.
	samples := []PriceSample{
		sample(intradayET(4, 0), 100),
		sample(intradayET(12, 0), 110),
		sample(intradayET(20, 0), 105),
	}
	eng := NewEngine(DefaultConfig(), DefaultCalendar())
	vp := Viewport{Width: 300, Height: 100, SplitRatio: 0.6}
	now := intradayET(20, 0)

	scene, err := eng.BuildScene(samples, nil, vp, RangeIntraday, now)
	require.NoError(t, err)
	require.Len(t, scene.PastPoints, 3)

	assert.InDelta(t, 0, scene.PastPoints[0].X, 1e-9)
	assert.InDelta(t, 90, scene.PastPoints[1].X, 1e-9)
	assert.InDelta(t, 180, scene.PastPoints[2].X, 1e-9)
	assert.InDelta(t, 180, scene.SplitX, 1e-9)

	// Max price lands near the top edge, min price near the bottom, both
	// held off the edge by the padding factor.
	assert.InDelta(t, 4.545, scene.PastPoints[1].Y, 0.01)
	assert.InDelta(t, 95.455, scene.PastPoints[0].Y, 0.01)
}

func TestIntradayGapsPreserveSpacing(t *testing.T) {
	// A missing hour of samples must not compress the rest of the day:
	// position depends on the clock, not on sample count.
	samples := []PriceSample{
		sample(intradayET(4, 0), 10),
		sample(intradayET(4, 1), 11),
		sample(intradayET(12, 0), 12),
	}
	eng := NewEngine(DefaultConfig(), DefaultCalendar())
	vp := Viewport{Width: 300, Height: 100, SplitRatio: 0.6}
	scene, err := eng.BuildScene(samples, nil, vp, RangeIntraday, intradayET(12, 0))
	require.NoError(t, err)
	assert.InDelta(t, 180.0/960.0, scene.PastPoints[1].X, 1e-9) // one minute in
	assert.InDelta(t, 90, scene.PastPoints[2].X, 1e-9)          // half the day in
}

func TestOrdinalMappingEvenSpacing(t *testing.T) {
	base := time.Date(2026, 8, 17, 18, 0, 0, 0, time.UTC)
	var samples []PriceSample
	for i := 0; i < 5; i++ {
		// Friday-to-Monday gaps on purpose: ordinal spacing ignores them.
		samples = append(samples, sample(base.AddDate(0, 0, i*3), 50+float64(i)))
	}
	eng := NewEngine(DefaultConfig(), DefaultCalendar())
	vp := Viewport{Width: 200, Height: 100, SplitRatio: 0.5}
	scene, err := eng.BuildScene(samples, nil, vp, RangeMonth, base.AddDate(0, 0, 15))
	require.NoError(t, err)
	for i, p := range scene.PastPoints {
		assert.InDelta(t, float64(i)*25, p.X, 1e-9)
	}
}

func TestOrdinalSingleSampleSitsAtSplit(t *testing.T) {
	eng := NewEngine(DefaultConfig(), DefaultCalendar())
	vp := Viewport{Width: 200, Height: 100, SplitRatio: 0.5}
	scene, err := eng.BuildScene([]PriceSample{sample(winterDay, 12)}, nil, vp, RangeWeek, winterDay)
	require.NoError(t, err)
	require.Len(t, scene.PastPoints, 1)
	assert.InDelta(t, 100, scene.PastPoints[0].X, 1e-9)
}

func TestTimestampMappingProportionalGaps(t *testing.T) {
	now := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	window := RangeFiveYear.windowDuration(now)
	samples := []PriceSample{
		sample(now.Add(-window), 10),
		sample(now.Add(-window/4), 11),
		sample(now, 12),
	}
	eng := NewEngine(DefaultConfig(), DefaultCalendar())
	vp := Viewport{Width: 400, Height: 100, SplitRatio: 0.75}
	scene, err := eng.BuildScene(samples, nil, vp, RangeFiveYear, now)
	require.NoError(t, err)
	assert.InDelta(t, 0, scene.PastPoints[0].X, 1e-9)
	assert.InDelta(t, 225, scene.PastPoints[1].X, 1e-9) // 75% of 300px past width
	assert.InDelta(t, 300, scene.PastPoints[2].X, 1e-9)
}

func TestZeroVarianceWindowMapsToCenter(t *testing.T) {
	samples := []PriceSample{
		sample(intradayET(9, 30), 42),
		sample(intradayET(10, 30), 42),
		sample(intradayET(11, 30), 42),
	}
	eng := NewEngine(DefaultConfig(), DefaultCalendar())
	vp := Viewport{Width: 300, Height: 100, SplitRatio: 0.6}
	scene, err := eng.BuildScene(samples, nil, vp, RangeIntraday, intradayET(12, 0))
	require.NoError(t, err)
	for _, p := range scene.PastPoints {
		assert.InDelta(t, 50, p.Y, 1e-9)
	}
}

func TestZeroPriceWindowDoesNotDivideByZero(t *testing.T) {
	samples := []PriceSample{sample(intradayET(9, 30), 0), sample(intradayET(10, 0), 0)}
	eng := NewEngine(DefaultConfig(), DefaultCalendar())
	vp := Viewport{Width: 300, Height: 100, SplitRatio: 0.6}
	scene, err := eng.BuildScene(samples, nil, vp, RangeIntraday, intradayET(12, 0))
	require.NoError(t, err)
	for _, p := range scene.PastPoints {
		assert.InDelta(t, 50, p.Y, 1e-9)
	}
}

func TestFutureEventMapping(t *testing.T) {
	// One event a day out inside a 90-day window: a small offset past the
	// split line, never exactly on it.
	cfg := DefaultConfig()
	eng := NewEngine(cfg, DefaultCalendar())
	vp := Viewport{Width: 300, Height: 100, SplitRatio: 0.6}
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	events := []FutureEvent{{ID: "ev-1", Timestamp: now.Add(24 * time.Hour), Type: EventEarnings}}

	scene, err := eng.BuildScene(nil, events, vp, RangeIntraday, now)
	require.NoError(t, err)
	require.Len(t, scene.Markers, 1)

	want := 180 + float64(24*time.Hour+cfg.FutureBuffer)/float64(cfg.FutureWindow)*120
	assert.InDelta(t, want, scene.Markers[0].X, 1e-9)
	assert.Greater(t, scene.Markers[0].X, scene.SplitX)
}

func TestFutureEventBeyondWindowClampsToRightEdge(t *testing.T) {
	eng := NewEngine(DefaultConfig(), DefaultCalendar())
	vp := Viewport{Width: 300, Height: 100, SplitRatio: 0.6}
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	events := []FutureEvent{{ID: "far", Timestamp: now.AddDate(1, 0, 0), Type: EventRegulatory}}
	scene, err := eng.BuildScene(nil, events, vp, RangeIntraday, now)
	require.NoError(t, err)
	assert.InDelta(t, 300, scene.Markers[0].X, 1e-9)
}

func TestMonotonicXAcrossStrategies(t *testing.T) {
	eng := NewEngine(DefaultConfig(), DefaultCalendar())
	vp := Viewport{Width: 320, Height: 120, SplitRatio: 0.7}
	now := time.Date(2026, 8, 25, 23, 0, 0, 0, time.UTC)
	for _, rng := range []TimeRange{RangeIntraday, RangeWeek, RangeMonth, RangeQuarter, RangeYearToDate, RangeYear, RangeFiveYear} {
		var samples []PriceSample
		start := now.Add(-rng.windowDuration(now))
		step := rng.windowDuration(now) / 40
		if rng == RangeIntraday {
			// Intraday data covers a single trading day.
			start = intradayET(4, 0)
			step = 16 * time.Hour / 40
		}
		for i := 0; i < 40; i++ {
			samples = append(samples, sample(start.Add(time.Duration(i)*step), 100+float64(i%7)))
		}
		scene, err := eng.BuildScene(samples, nil, vp, rng, now)
		require.NoError(t, err, rng.String())
		for i := 1; i < len(scene.PastPoints); i++ {
			assert.GreaterOrEqual(t, scene.PastPoints[i].X, scene.PastPoints[i-1].X, rng.String())
		}
	}
}
