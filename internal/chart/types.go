package chart

import (
	"fmt"
	"strings"
	"time"
)

// Session is the trading-hours classification of a timestamp.
type Session int

const (
	SessionClosed Session = iota
	SessionPreMarket
	SessionRegular
	SessionAfterHours
)

func (s Session) String() string {
	switch s {
	case SessionPreMarket:
		return "pre-market"
	case SessionRegular:
		return "regular"
	case SessionAfterHours:
		return "after-hours"
	default:
		return "closed"
	}
}

// TimeRange is the active viewing window of the past region.
type TimeRange int

const (
	RangeIntraday TimeRange = iota
	RangeWeek
	RangeMonth
	RangeQuarter
	RangeYearToDate
	RangeYear
	RangeFiveYear
)

func (r TimeRange) String() string {
	switch r {
	case RangeIntraday:
		return "1d"
	case RangeWeek:
		return "1w"
	case RangeMonth:
		return "1m"
	case RangeQuarter:
		return "3m"
	case RangeYearToDate:
		return "ytd"
	case RangeYear:
		return "1y"
	case RangeFiveYear:
		return "5y"
	default:
		return fmt.Sprintf("TimeRange(%d)", int(r))
	}
}

func (r TimeRange) valid() bool {
	return r >= RangeIntraday && r <= RangeFiveYear
}

// ParseTimeRange maps common user spellings onto a TimeRange.
func ParseTimeRange(s string) (TimeRange, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1d", "day", "intraday", "":
		return RangeIntraday, nil
	case "1w", "1wk", "week":
		return RangeWeek, nil
	case "1m", "1mo", "month":
		return RangeMonth, nil
	case "3m", "3mo", "quarter":
		return RangeQuarter, nil
	case "ytd":
		return RangeYearToDate, nil
	case "1y", "year":
		return RangeYear, nil
	case "5y":
		return RangeFiveYear, nil
	}
	return RangeIntraday, fmt.Errorf("unknown time range %q", s)
}

// EventType is a closed set of future-event categories. Feeds that carry
// categories outside this set land on EventOther so color and label lookups
// stay total.
type EventType int

const (
	EventEarnings EventType = iota
	EventDividend
	EventSplit
	EventRegulatory
	EventCorporateAction
	EventEconomic
	EventOther
)

func (t EventType) String() string {
	switch t {
	case EventEarnings:
		return "earnings"
	case EventDividend:
		return "dividend"
	case EventSplit:
		return "split"
	case EventRegulatory:
		return "regulatory"
	case EventCorporateAction:
		return "corporate-action"
	case EventEconomic:
		return "economic"
	default:
		return "other"
	}
}

// ParseEventType never fails: unrecognized categories become EventOther.
func ParseEventType(s string) EventType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "earnings":
		return EventEarnings
	case "dividend":
		return EventDividend
	case "split":
		return EventSplit
	case "regulatory":
		return EventRegulatory
	case "corporate-action", "corporate_action":
		return EventCorporateAction
	case "economic":
		return EventEconomic
	}
	return EventOther
}

// PriceSample is one historical price observation. Sequences are owned by
// the caller, ordered ascending by timestamp, and never mutated here.
type PriceSample struct {
	Timestamp time.Time
	Price     float64
	Volume    int64
	Session   Session
}

// FutureEvent is one upcoming catalyst on the future timeline. ID must be
// stable across re-fetches so markers stay identifiable between scenes.
// Significance, when present, is a [0,1] weight used for marker sizing.
type FutureEvent struct {
	ID           string
	Timestamp    time.Time
	Type         EventType
	Significance *float64
}

// Viewport is the pixel rectangle a scene is laid out in. SplitRatio is the
// fraction of the width given to the past region and must be inside (0,1).
type Viewport struct {
	Width      float64
	Height     float64
	SplitRatio float64
}

// Point is a pixel coordinate. Y grows downward.
type Point struct {
	X float64
	Y float64
}

// BezierSegment is one cubic segment of a smoothed path, starting at the
// previous segment's End (or the path Start).
type BezierSegment struct {
	Ctrl1 Point
	Ctrl2 Point
	End   Point
}

// Path is a smooth curve through mapped sample points. A zero Path with no
// segments and no start renders as nothing; a Start with no segments is a
// single dot.
type Path struct {
	Start    Point
	Segments []BezierSegment
}

// SamplePoint pairs a mapped pixel position with the sample it came from,
// so crosshair resolution can hand the sample back without re-mapping.
type SamplePoint struct {
	Point
	Sample PriceSample
}

// Marker is a positioned future-event dot.
type Marker struct {
	X      float64
	Y      float64
	Radius float64
	Event  FutureEvent
}

// ReferenceKind labels guide lines so hosts can style them differently.
type ReferenceKind int

const (
	ReferenceLastPrice ReferenceKind = iota
	ReferenceSplit
)

// ReferenceLine is a straight guide line in pixel space.
type ReferenceLine struct {
	Kind ReferenceKind
	X1   float64
	Y1   float64
	X2   float64
	Y2   float64
}

// Scene is the immutable output of one BuildScene call. Every coordinate in
// it lies inside the viewport.
type Scene struct {
	Viewport   Viewport
	Range      TimeRange
	SplitX     float64
	PastPath   Path
	PastPoints []SamplePoint
	Markers    []Marker
	RefLines   []ReferenceLine

	// Padded price bounds of the past window, for axis labeling.
	PriceMin float64
	PriceMax float64
}

// Config carries the tuning knobs of the engine. All values are plain call
// parameters; nothing is read from process-wide state.
type Config struct {
	// Tension of the Catmull-Rom smoothing, in (0,1]. 0.4 keeps curves
	// smooth without overshoot on sharp reversals.
	Tension float64
	// PricePadding is the symmetric fraction of the price span kept clear
	// above and below the line.
	PricePadding float64
	// FutureWindow is the span of time the future region represents.
	FutureWindow time.Duration
	// FutureBuffer shifts every event forward so near-term events do not
	// sit on the split line.
	FutureBuffer time.Duration
	// MinMarkerGap is the horizontal distance under which two markers are
	// considered colliding.
	MinMarkerGap float64
	// Marker radius range; significance scales linearly between the two.
	MarkerMinRadius float64
	MarkerMaxRadius float64
	// MarkerStackStep is the vertical offset applied per collision slot.
	MarkerStackStep float64
	// SnapRadius is how far (px) a pointer may be from a marker and still
	// resolve to it.
	SnapRadius float64
}

// DefaultConfig returns the tuning used by the stock charts.
func DefaultConfig() Config {
	return Config{
		Tension:         0.4,
		PricePadding:    0.05,
		FutureWindow:    90 * 24 * time.Hour,
		FutureBuffer:    6 * time.Hour,
		MinMarkerGap:    14,
		MarkerMinRadius: 4,
		MarkerMaxRadius: 10,
		MarkerStackStep: 12,
		SnapRadius:      20,
	}
}
