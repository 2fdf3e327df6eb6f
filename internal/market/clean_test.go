package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalystChart/internal/chart"
)

func tickSample(price float64, offset time.Duration) chart.PriceSample {
	base := time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC)
	return chart.PriceSample{Timestamp: base.Add(offset), Price: price, Session: chart.SessionRegular}
}

func TestToSamplesDropsSpikeOutlier(t *testing.T) {
	p := NewProvider(chart.DefaultCalendar())
	base := time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC)

	var ts []int64
	var cl []float64
	for i := 0; i < 31; i++ {
		ts = append(ts, base.Add(time.Duration(i)*5*time.Minute).Unix())
		if i == 15 {
			cl = append(cl, 1e6) // bad print
			continue
		}
		cl = append(cl, 100+float64(i%5)*0.5)
	}

	samples := p.toSamples(ts, cl, nil)
	require.Len(t, samples, 30)
	for _, s := range samples {
		assert.Less(t, s.Price, 103.0)
	}

	// The cleaned series should use most of the vertical space; with the
	// spike surviving, a 2% real move would render as a flat line.
	eng := chart.NewEngine(chart.DefaultConfig(), chart.DefaultCalendar())
	now := samples[len(samples)-1].Timestamp.Add(5 * time.Minute)
	scene, err := eng.BuildScene(samples, nil, chart.Viewport{Width: 300, Height: 100, SplitRatio: 0.6}, chart.RangeIntraday, now)
	require.NoError(t, err)
	minY, maxY := scene.PastPoints[0].Y, scene.PastPoints[0].Y
	for _, sp := range scene.PastPoints {
		if sp.Y < minY {
			minY = sp.Y
		}
		if sp.Y > maxY {
			maxY = sp.Y
		}
	}
	assert.Greater(t, maxY-minY, 50.0)
}

func TestFilterOutliersShortSeriesUntouched(t *testing.T) {
	samples := []chart.PriceSample{
		tickSample(100, 0),
		tickSample(1e6, 5*time.Minute),
		tickSample(101, 10*time.Minute),
	}
	out := filterOutliers(samples, outlierFenceK, outlierMinPoints)
	assert.Len(t, out, 3)
}

func TestFilterOutliersFlatSeriesUntouched(t *testing.T) {
	var samples []chart.PriceSample
	for i := 0; i < 25; i++ {
		samples = append(samples, tickSample(50, time.Duration(i)*5*time.Minute))
	}
	out := filterOutliers(samples, outlierFenceK, outlierMinPoints)
	assert.Len(t, out, 25)
}

func TestPercentileInterpolates(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 1.0, percentile(sorted, 0))
	assert.Equal(t, 3.0, percentile(sorted, 0.5))
	assert.Equal(t, 2.0, percentile(sorted, 0.25))
	assert.Equal(t, 5.0, percentile(sorted, 1))
}
