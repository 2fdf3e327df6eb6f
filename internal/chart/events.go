package chart

import (
	"sort"
	"time"
)

// PlaceEvents maps every future event onto the future region. No event is
// ever dropped: coincident or near-coincident events keep their X and are
// fanned out vertically in deterministic slots, so each stays independently
// tappable. Layout of identical input is identical across calls.
func PlaceEvents(events []FutureEvent, vp Viewport, cfg Config, now time.Time) []Marker {
	if len(events) == 0 {
		return nil
	}
	ordered := make([]FutureEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Timestamp.Equal(ordered[j].Timestamp) {
			return ordered[i].Timestamp.Before(ordered[j].Timestamp)
		}
		return ordered[i].ID < ordered[j].ID
	})

	baseY := vp.Height / 2
	markers := make([]Marker, len(ordered))
	for i, ev := range ordered {
		markers[i] = Marker{
			X:      futureX(ev, vp, cfg, now),
			Y:      baseY,
			Radius: markerRadius(ev, cfg),
			Event:  ev,
		}
	}

	// Walk collision clusters: a marker within MinMarkerGap of its left
	// neighbor joins the neighbor's cluster.
	start := 0
	for i := 1; i <= len(markers); i++ {
		if i < len(markers) && markers[i].X-markers[i-1].X < cfg.MinMarkerGap {
			continue
		}
		fanOut(markers[start:i], vp, cfg)
		start = i
	}
	return markers
}

// fanOut assigns slot offsets 0, -1, +1, -2, +2, ... within one cluster.
// When the viewport is too short for the full fan the stack step shrinks to
// fit, so slots stay distinct instead of piling up on the clamp edges.
func fanOut(cluster []Marker, vp Viewport, cfg Config) {
	if len(cluster) < 2 {
		return
	}
	maxR := cluster[0].Radius
	for _, m := range cluster[1:] {
		if m.Radius > maxR {
			maxR = m.Radius
		}
	}
	step := cfg.MarkerStackStep
	reach := float64(len(cluster) / 2)
	if avail := vp.Height/2 - maxR; avail > 0 && step*reach > avail {
		step = avail / reach
	}
	for j := range cluster {
		off := float64((j + 1) / 2)
		if j%2 == 1 {
			off = -off
		}
		y := cluster[j].Y + off*step
		cluster[j].Y = clamp(y, cluster[j].Radius, vp.Height-cluster[j].Radius)
	}
}

// markerRadius scales significance into the configured radius range, with
// the midpoint as the default for events that carry none.
func markerRadius(ev FutureEvent, cfg Config) float64 {
	if ev.Significance == nil {
		return (cfg.MarkerMinRadius + cfg.MarkerMaxRadius) / 2
	}
	s := clamp(*ev.Significance, 0, 1)
	return cfg.MarkerMinRadius + s*(cfg.MarkerMaxRadius-cfg.MarkerMinRadius)
}
