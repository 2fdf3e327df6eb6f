// Package render turns engine scenes into drawable artifacts. The engine
// stops at geometry; everything stroke- and fill-shaped lives here.
package render

import (
	"fmt"
	"strings"

	"catalystChart/internal/chart"
)

// eventColors is total over EventType: unknown categories land on the
// EventOther entry instead of an invisible default.
var eventColors = map[chart.EventType]string{
	chart.EventEarnings:        "#e15759",
	chart.EventDividend:        "#59a14f",
	chart.EventSplit:           "#edc948",
	chart.EventRegulatory:      "#b07aa1",
	chart.EventCorporateAction: "#4e79a7",
	chart.EventEconomic:        "#f28e2b",
	chart.EventOther:           "#9c9c9c",
}

func eventColor(t chart.EventType) string {
	if c, ok := eventColors[t]; ok {
		return c
	}
	return eventColors[chart.EventOther]
}

// SceneSVG draws a scene as a standalone SVG document: smoothed past line,
// future-region tint, reference lines and one circle per event marker. The
// past line is drawn at full opacity only while the market is in regular
// hours; current comes from the wall clock, never from the data.
func SceneSVG(scene chart.Scene, current chart.Session, title string) []byte {
	w, h := scene.Viewport.Width, scene.Viewport.Height
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.2f %.2f">`+"\n", w, h, w, h)
	if title != "" {
		fmt.Fprintf(&b, "<title>%s</title>\n", escape(title))
	}
	fmt.Fprintf(&b, `<rect width="%.2f" height="%.2f" fill="#ffffff"/>`+"\n", w, h)
	// Tint the future region so the split reads even without the guide.
	fmt.Fprintf(&b, `<rect x="%.2f" width="%.2f" height="%.2f" fill="#f4f6fa"/>`+"\n",
		scene.SplitX, w-scene.SplitX, h)

	for _, l := range scene.RefLines {
		stroke, dash := "#c0c6cf", "4 4"
		if l.Kind == chart.ReferenceSplit {
			stroke, dash = "#8a93a3", "2 3"
		}
		fmt.Fprintf(&b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-dasharray="%s"/>`+"\n",
			l.X1, l.Y1, l.X2, l.Y2, stroke, dash)
	}

	if len(scene.PastPoints) > 0 {
		opacity := 0.6
		if current == chart.SessionRegular {
			opacity = 1.0
		}
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="#4e79a7" stroke-width="1.5" stroke-opacity="%.2f"/>`+"\n",
			pathData(scene.PastPath, len(scene.PastPoints)), opacity)
	}

	for _, m := range scene.Markers {
		fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="0.9"><title>%s</title></circle>`+"\n",
			m.X, m.Y, m.Radius, eventColor(m.Event.Type), escape(m.Event.ID))
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

// pathData serializes a smoothed path. A single sample degenerates into a
// dot-sized line so it still renders.
func pathData(p chart.Path, points int) string {
	var d strings.Builder
	fmt.Fprintf(&d, "M %.2f %.2f", p.Start.X, p.Start.Y)
	if points == 1 {
		fmt.Fprintf(&d, " l 0.01 0")
		return d.String()
	}
	for _, seg := range p.Segments {
		fmt.Fprintf(&d, " C %.2f %.2f, %.2f %.2f, %.2f %.2f",
			seg.Ctrl1.X, seg.Ctrl1.Y, seg.Ctrl2.X, seg.Ctrl2.Y, seg.End.X, seg.End.Y)
	}
	return d.String()
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
