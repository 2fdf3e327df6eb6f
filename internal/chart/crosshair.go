package chart

import "sort"

// HitKind says what a crosshair query resolved to.
type HitKind int

const (
	HitNone HitKind = iota
	HitSample
	HitEvent
)

// Mode restricts which regions a crosshair query may resolve into. Sparkline
// variants have no future region and use ModePastOnly.
type Mode int

const (
	ModeFull Mode = iota
	ModePastOnly
)

// Hit is the result of one crosshair query. SampleIndex indexes into
// Scene.PastPoints when Kind is HitSample.
type Hit struct {
	Kind        HitKind
	Sample      PriceSample
	SampleIndex int
	Point       Point
	Marker      Marker
}

// ResolveCrosshair resolves a pointer position to the nearest sample or
// event. Every call is an independent nearest-neighbor query over the
// scene's coordinate tables; no state is kept between moves.
//
// The split boundary is inclusive on the past side: a pointer exactly at
// SplitX resolves against history. In the past region the nearest sample
// always wins; in the future region a marker wins only within SnapRadius,
// so hovering empty future space yields HitNone. A pointer outside the
// viewport yields HitNone, since fast gestures routinely overshoot bounds.
func (e *Engine) ResolveCrosshair(px, py float64, scene Scene, mode Mode) Hit {
	vp := scene.Viewport
	if px < 0 || px > vp.Width || py < 0 || py > vp.Height {
		return Hit{Kind: HitNone}
	}
	if px <= scene.SplitX || mode == ModePastOnly {
		return nearestSample(px, scene.PastPoints)
	}
	return nearestMarker(px, scene.Markers, e.cfg.SnapRadius)
}

// nearestSample binary-searches the monotonic X table.
func nearestSample(px float64, pts []SamplePoint) Hit {
	if len(pts) == 0 {
		return Hit{Kind: HitNone}
	}
	i := sort.Search(len(pts), func(i int) bool { return pts[i].X >= px })
	if i == len(pts) {
		i = len(pts) - 1
	} else if i > 0 && px-pts[i-1].X <= pts[i].X-px {
		// Ties snap left, toward the older sample.
		i--
	}
	return Hit{Kind: HitSample, Sample: pts[i].Sample, SampleIndex: i, Point: pts[i].Point}
}

func nearestMarker(px float64, markers []Marker, snap float64) Hit {
	best := -1
	var bestDist float64
	for i, m := range markers {
		d := m.X - px
		if d < 0 {
			d = -d
		}
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 || bestDist > snap {
		return Hit{Kind: HitNone}
	}
	return Hit{Kind: HitEvent, Marker: markers[best]}
}
