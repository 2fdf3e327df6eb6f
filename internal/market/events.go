package market

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"catalystChart/internal/chart"
)

// eventRecord is the on-disk shape of one upcoming catalyst.
type eventRecord struct {
	ID           string   `json:"id"`
	Timestamp    string   `json:"timestamp"` // RFC 3339
	Symbol       string   `json:"symbol,omitempty"`
	Type         string   `json:"type"`
	Significance *float64 `json:"significance,omitempty"`
}

// LoadEvents reads the event catalog, keeps events for the symbol (or
// unscoped ones) that fall strictly after now and inside the future window,
// and returns them ascending by timestamp with ties broken by id. Every
// record must carry a unique, stable id so markers stay identifiable when
// the catalog is re-read between scenes.
func LoadEvents(path, symbol string, now time.Time, window time.Duration) ([]chart.FutureEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event catalog: %w", err)
	}
	var records []eventRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse event catalog: %w", err)
	}

	seen := make(map[string]bool, len(records))
	events := make([]chart.FutureEvent, 0, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			return nil, fmt.Errorf("event %d has no id", i)
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("duplicate event id %q", rec.ID)
		}
		seen[rec.ID] = true
		ts, err := time.Parse(time.RFC3339, rec.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("event %q: bad timestamp: %w", rec.ID, err)
		}
		if rec.Symbol != "" && rec.Symbol != symbol {
			continue
		}
		if !ts.After(now) || ts.Sub(now) > window {
			continue
		}
		events = append(events, chart.FutureEvent{
			ID:           rec.ID,
			Timestamp:    ts,
			Type:         chart.ParseEventType(rec.Type),
			Significance: rec.Significance,
		})
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.Before(events[j].Timestamp)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}
