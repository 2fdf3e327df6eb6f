package chart

// Smooth converts an ordered pixel point sequence into a single cubic
// Bezier path using Catmull-Rom-derived control points. Neighboring
// segments share the tangent direction at their joint, so the curve is
// C1-continuous and shows no kink at sample boundaries. The first and last
// points clamp their missing neighbor to themselves.
//
// Smooth knows nothing about time or price; it only interpolates between
// the points it is given and never fabricates new on-curve points.
func Smooth(points []Point, tension float64) Path {
	if len(points) == 0 {
		return Path{}
	}
	path := Path{Start: points[0]}
	if len(points) == 1 {
		return path
	}
	path.Segments = make([]BezierSegment, 0, len(points)-1)
	last := len(points) - 1
	for i := 0; i < last; i++ {
		p0 := points[maxInt(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[minInt(i+2, last)]
		k := tension / 3
		path.Segments = append(path.Segments, BezierSegment{
			Ctrl1: Point{X: p1.X + (p2.X-p0.X)*k, Y: p1.Y + (p2.Y-p0.Y)*k},
			Ctrl2: Point{X: p2.X - (p3.X-p1.X)*k, Y: p2.Y - (p3.Y-p1.Y)*k},
			End:   p2,
		})
	}
	return path
}

// Flatten evaluates the path into stepsPerSegment straight-line points per
// segment, for hosts whose drawing surface has no cubic primitive.
func (p Path) Flatten(stepsPerSegment int) []Point {
	if len(p.Segments) == 0 {
		return []Point{p.Start}
	}
	if stepsPerSegment < 1 {
		stepsPerSegment = 1
	}
	out := make([]Point, 0, len(p.Segments)*stepsPerSegment+1)
	out = append(out, p.Start)
	start := p.Start
	for _, seg := range p.Segments {
		for s := 1; s <= stepsPerSegment; s++ {
			t := float64(s) / float64(stepsPerSegment)
			out = append(out, cubicAt(start, seg, t))
		}
		start = seg.End
	}
	return out
}

// cubicAt evaluates one cubic Bezier segment at parameter t in [0,1].
func cubicAt(start Point, seg BezierSegment, t float64) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Point{
		X: a*start.X + b*seg.Ctrl1.X + c*seg.Ctrl2.X + d*seg.End.X,
		Y: a*start.Y + b*seg.Ctrl1.Y + c*seg.Ctrl2.Y + d*seg.End.Y,
	}
}

// clampPath pulls every on-curve and control point inside the viewport so
// an overshooting curve cannot paint outside the chart.
func clampPath(p Path, vp Viewport) Path {
	cp := func(pt Point) Point {
		return Point{X: clamp(pt.X, 0, vp.Width), Y: clamp(pt.Y, 0, vp.Height)}
	}
	out := Path{Start: cp(p.Start)}
	if len(p.Segments) > 0 {
		out.Segments = make([]BezierSegment, len(p.Segments))
		for i, seg := range p.Segments {
			out.Segments[i] = BezierSegment{Ctrl1: cp(seg.Ctrl1), Ctrl2: cp(seg.Ctrl2), End: cp(seg.End)}
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
