// Package chart is the coordinate and geometry engine behind every chart
// variant. One timeline is split into a past region of historical price
// samples and a future region of upcoming catalysts; the two share an X
// axis but follow different mapping rules. Everything here is a pure
// function of its inputs: no clock reads, no I/O, no shared state, so a
// scene can be rebuilt cheaply on any goroutine, on every layout pass.
package chart

import (
	"errors"
	"time"
)

// Invalid configuration is a caller bug and is never clamped into a
// plausible-looking chart.
var (
	ErrViewport   = errors.New("chart: viewport dimensions must be positive")
	ErrSplitRatio = errors.New("chart: split ratio must be inside (0,1)")
	ErrTimeRange  = errors.New("chart: unknown time range")
)

// Engine composes the mappers into scene building and crosshair queries.
type Engine struct {
	cfg Config
	cal Calendar
}

// NewEngine builds an engine with the given tuning and market calendar.
func NewEngine(cfg Config, cal Calendar) *Engine {
	return &Engine{cfg: cfg, cal: cal}
}

// Config returns the engine's tuning values.
func (e *Engine) Config() Config { return e.cfg }

// Calendar returns the engine's market calendar.
func (e *Engine) Calendar() Calendar { return e.cal }

// BuildScene lays out one complete scene: mapped and smoothed past path,
// placed future markers, and reference lines. Samples must be ascending by
// timestamp; events must carry stable ids. Empty inputs produce empty scene
// fields, not errors, since an empty market window is a normal transient state.
// The returned Scene is a fresh value and is never mutated afterwards.
func (e *Engine) BuildScene(samples []PriceSample, events []FutureEvent, vp Viewport, rng TimeRange, now time.Time) (Scene, error) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return Scene{}, ErrViewport
	}
	if vp.SplitRatio <= 0 || vp.SplitRatio >= 1 {
		return Scene{}, ErrSplitRatio
	}
	if !rng.valid() {
		return Scene{}, ErrTimeRange
	}
	strat := ResolveStrategy(rng)

	scene := Scene{
		Viewport: vp,
		Range:    rng,
		SplitX:   vp.Width * vp.SplitRatio,
	}

	if len(samples) > 0 {
		scale := newPriceScale(samples, e.cfg.PricePadding, vp.Height)
		scene.PriceMin, scene.PriceMax = scale.min, scale.max

		pts := make([]SamplePoint, len(samples))
		raw := make([]Point, len(samples))
		for i, s := range samples {
			p := Point{
				X: pastX(s, i, len(samples), strat, rng, vp, now),
				Y: scale.y(s.Price),
			}
			pts[i] = SamplePoint{Point: p, Sample: s}
			raw[i] = p
		}
		scene.PastPoints = pts
		scene.PastPath = clampPath(Smooth(raw, e.cfg.Tension), vp)

		lastY := pts[len(pts)-1].Y
		scene.RefLines = append(scene.RefLines, ReferenceLine{
			Kind: ReferenceLastPrice,
			X1:   0, Y1: lastY, X2: vp.Width, Y2: lastY,
		})
	}

	scene.RefLines = append(scene.RefLines, ReferenceLine{
		Kind: ReferenceSplit,
		X1:   scene.SplitX, Y1: 0, X2: scene.SplitX, Y2: vp.Height,
	})

	scene.Markers = PlaceEvents(events, vp, e.cfg, now)
	return scene, nil
}

// CurrentSession classifies now against the engine's calendar. Region
// emphasis always follows the wall clock, never the most recent sample, so
// stale data cannot change which part of the chart is highlighted.
func (e *Engine) CurrentSession(now time.Time) Session {
	return ClassifySession(now, e.cal)
}
