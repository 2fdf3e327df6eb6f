package render

import (
	"fmt"
	"sort"

	"github.com/vicanso/go-charts/v2"
)

// UsagePNG charts how render traffic splits across chart kinds. Categories
// are sorted so repeated renders of the same stats are identical.
func UsagePNG(counts map[string]int, days int) ([]byte, error) {
	if len(counts) == 0 {
		return nil, fmt.Errorf("no usage data available")
	}
	var kinds []string
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	total := 0
	values := make([]float64, 0, len(kinds))
	for _, kind := range kinds {
		values = append(values, float64(counts[kind]))
		total += counts[kind]
	}
	labels := make([]string, 0, len(kinds))
	for i, kind := range kinds {
		labels = append(labels, fmt.Sprintf("%s (%.1f%%)", kind, values[i]/float64(total)*100))
	}

	p, err := charts.PieRender(
		values,
		charts.TitleTextOptionFunc(fmt.Sprintf("Chart Renders by Kind (%d days)", days)),
		charts.LegendOptionFunc(charts.LegendOption{Data: labels, Top: charts.PositionTop}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(800),
		charts.HeightOptionFunc(600),
	)
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}
