package market

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"catalystChart/internal/chart"
)

// yahooChartResp mirrors the Yahoo v8 chart response (trimmed to needed fields).
type yahooChartResp struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// Provider fetches price series and turns them into engine samples. It is
// the "data provider" side of the chart contract; the engine never sees it.
type Provider struct {
	client *http.Client
	cal    chart.Calendar
}

func NewProvider(cal chart.Calendar) *Provider {
	return &Provider{client: &http.Client{Timeout: 15 * time.Second}, cal: cal}
}

// yahooParams maps a TimeRange onto Yahoo range/interval query values.
func yahooParams(rng chart.TimeRange) (rangeParam, interval string) {
	switch rng {
	case chart.RangeIntraday:
		return "1d", "5m"
	case chart.RangeWeek:
		return "5d", "15m"
	case chart.RangeMonth:
		return "1mo", "1h"
	case chart.RangeQuarter:
		return "3mo", "1d"
	case chart.RangeYearToDate:
		return "ytd", "1d"
	case chart.RangeYear:
		return "1y", "1d"
	default:
		return "5y", "1wk"
	}
}

// FetchSamples fetches the symbol's series for the given range, retrying
// across mirror hosts with backoff, and returns samples ascending by
// timestamp with each one session-classified.
func (p *Provider) FetchSamples(symbol string, rng chart.TimeRange) ([]chart.PriceSample, error) {
	rangeParam, interval := yahooParams(rng)
	hosts := []string{"query1.finance.yahoo.com", "query2.finance.yahoo.com"}
	backoffs := []time.Duration{200 * time.Millisecond, 500 * time.Millisecond, time.Second}

	var yc yahooChartResp
	var lastErr error
	for attempt := 0; attempt < len(backoffs)+1; attempt++ {
		for _, host := range hosts {
			url := fmt.Sprintf("https://%s/v8/finance/chart/%s?range=%s&interval=%s&includePrePost=true",
				host, symbol, rangeParam, interval)
			req, _ := http.NewRequest("GET", url, nil)
			req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15")
			req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
			resp, err := p.client.Do(req)
			if err != nil {
				lastErr = err
				continue
			}
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("failed to read yahoo response: %w", readErr)
				continue
			}
			if resp.StatusCode != http.StatusOK {
				preview := string(body)
				if len(preview) > 120 {
					preview = preview[:120]
				}
				lastErr = fmt.Errorf("yahoo %s returned %d: %s", host, resp.StatusCode, preview)
				continue
			}
			if strings.HasPrefix(string(body), "<") || strings.HasPrefix(string(body), "Edge:") {
				lastErr = errors.New("yahoo returned non-json body")
				continue
			}
			if err := json.Unmarshal(body, &yc); err != nil {
				lastErr = fmt.Errorf("failed to parse yahoo json: %w", err)
				continue
			}
			lastErr = nil
			break
		}
		if lastErr == nil {
			break
		}
		if attempt < len(backoffs) {
			time.Sleep(backoffs[attempt])
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	if len(yc.Chart.Result) == 0 || len(yc.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, errors.New("no data")
	}
	res := yc.Chart.Result[0]
	q := res.Indicators.Quote[0]
	return p.toSamples(res.Timestamp, q.Close, q.Volume), nil
}

// toSamples zips the parallel arrays into samples, dropping negative prices
// and then IQR outliers so one bad tick cannot distort the Y scale.
func (p *Provider) toSamples(ts []int64, cl []float64, vol []int64) []chart.PriceSample {
	n := len(ts)
	if len(cl) < n {
		n = len(cl)
	}
	out := make([]chart.PriceSample, 0, n)
	for i := 0; i < n; i++ {
		if cl[i] < 0 {
			continue
		}
		t := time.Unix(ts[i], 0).UTC()
		s := chart.PriceSample{
			Timestamp: t,
			Price:     cl[i],
			Session:   chart.ClassifySession(t, p.cal),
		}
		if i < len(vol) {
			s.Volume = vol[i]
		}
		out = append(out, s)
	}
	return filterOutliers(out, outlierFenceK, outlierMinPoints)
}
