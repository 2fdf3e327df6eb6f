package render

import (
	"errors"
	"strings"
	"time"

	"github.com/vicanso/go-charts/v2"

	"catalystChart/internal/chart"
)

// PreviewPNG renders the mini-sparkline variant: past samples only, no
// future region, as a PNG for embedding where SVG is unavailable.
func PreviewPNG(samples []chart.PriceSample, rng chart.TimeRange, title string) ([]byte, error) {
	if len(samples) < 2 {
		return nil, errors.New("not enough data points")
	}
	labels := make([]string, len(samples))
	values := make([]float64, len(samples))
	var yMin, yMax float64
	for i, s := range samples {
		labels[i] = previewLabel(s.Timestamp, rng)
		values[i] = s.Price
		if i == 0 {
			yMin, yMax = s.Price, s.Price
		} else {
			if s.Price < yMin {
				yMin = s.Price
			}
			if s.Price > yMax {
				yMax = s.Price
			}
		}
	}
	pad := (yMax - yMin) * 0.05
	if pad < yMax*0.002 {
		pad = yMax * 0.002
	}
	yMin -= pad
	if yMin < 0 {
		yMin = 0
	}
	yMax += pad

	split := 8
	switch rng {
	case chart.RangeWeek:
		split = 7
	case chart.RangeMonth, chart.RangeQuarter:
		split = 10
	case chart.RangeYear, chart.RangeYearToDate, chart.RangeFiveYear:
		split = 12
	}
	painter, err := charts.LineRender([][]float64{values},
		charts.TitleTextOptionFunc(strings.ToUpper(title)+" • "+strings.ToUpper(rng.String())),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: split}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// previewLabel formats axis labels in Eastern wall time, coarser for longer
// ranges.
func previewLabel(ts time.Time, rng chart.TimeRange) string {
	et := chart.EasternWall(ts)
	switch rng {
	case chart.RangeIntraday:
		return et.Format("15:04")
	case chart.RangeWeek, chart.RangeMonth:
		return et.Format("Jan 02 15:04")
	case chart.RangeFiveYear:
		return et.Format("Jan '06")
	default:
		return et.Format("2006-01-02")
	}
}
