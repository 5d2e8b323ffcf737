package radar

import (
	"fmt"
	"math"
	"strings"
)

// Config holds the cosmetic options that differ between call sites. The
// geometry itself is never configurable.
type Config struct {
	Size           int    // figure is square, Size x Size pixels
	TickStep       int    // radial label step when DualTickLabels is off
	ShowTickLabels bool   // neutral tick numerals along angle 0
	DualTickLabels bool   // per-series colored numerals (outward at angle 0, inward half a step off)
	OutwardColor   string
	InwardColor    string
	OutwardLabel   string
	InwardLabel    string
	Title          string
	ShowLegend     bool
}

// DefaultConfig is the upload-workflow preset: large figure, dual colored
// tick numerals, legend and title.
func DefaultConfig() Config {
	return Config{
		Size:           720,
		DualTickLabels: true,
		OutwardColor:   "#1f77b4",
		InwardColor:    "#2ca02c",
		OutwardLabel:   "Organization Capability",
		InwardLabel:    "Community Capacity",
		Title:          "Organization-Community Fit Assessment",
		ShowLegend:     true,
	}
}

// InteractiveConfig is the slider-workflow preset: smaller figure, neutral
// even-numbered tick labels.
func InteractiveConfig() Config {
	return Config{
		Size:           600,
		TickStep:       2,
		ShowTickLabels: true,
		OutwardColor:   "#1f77b4",
		InwardColor:    "#2ca02c",
		OutwardLabel:   "Organization Capability",
		InwardLabel:    "Community Capacity",
		Title:          "Organization-Community Fit Assessment",
		ShowLegend:     true,
	}
}

// RenderSVG draws the chart as a standalone SVG document.
func (c *Chart) RenderSVG(cfg Config) []byte {
	if cfg.Size <= 0 {
		cfg.Size = 720
	}

	size := float64(cfg.Size)
	cx, cy := size/2, size/2+10
	margin := 110.0
	scale := (size/2 - margin) / AxisMax

	// Angle 0 points up, angles grow clockwise.
	point := func(angle, radius float64) (float64, float64) {
		return cx + radius*scale*math.Sin(angle), cy - radius*scale*math.Cos(angle)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		cfg.Size, cfg.Size, cfg.Size, cfg.Size)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#ffffff"/>`+"\n", cfg.Size, cfg.Size)

	if cfg.Title != "" {
		fmt.Fprintf(&b, `<text x="%s" y="28" text-anchor="middle" font-family="sans-serif" font-size="18" font-weight="bold" fill="#333333">%s</text>`+"\n",
			f(cx), escape(cfg.Title))
	}

	// Radial gridlines: 11 uniform rings over [0, 10], the innermost being
	// the center point itself.
	for r := 1; r <= int(AxisMax); r++ {
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="#d9d9d9" stroke-width="1"/>`+"\n",
			f(cx), f(cy), f(float64(r)*scale))
	}

	// Spokes at the base angles.
	for i := 0; i < c.N; i++ {
		x, y := point(c.Angles[i], AxisMax)
		fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#d9d9d9" stroke-width="1"/>`+"\n",
			f(cx), f(cy), f(x), f(y))
	}

	// Inward series: annular fill between the outer reference ring and the
	// inner boundary, then the faint ring and the bold boundary line.
	fmt.Fprintf(&b, `<path d="%s %s" fill="%s" fill-opacity="0.25" fill-rule="evenodd" stroke="none"/>`+"\n",
		pathData(c, c.OuterRing, point, true), pathData(c, c.InnerBoundary, point, true),
		cfg.InwardColor)
	fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-opacity="0.3" stroke-width="1"/>`+"\n",
		pathData(c, c.OuterRing, point, true), cfg.InwardColor)
	fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
		pathData(c, c.InnerBoundary, point, true), cfg.InwardColor)
	for i := 0; i < c.N; i++ {
		x, y := point(c.Angles[i], c.InnerBoundary[i])
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="3" fill="%s"/>`+"\n", f(x), f(y), cfg.InwardColor)
	}

	// Outward series: filled polygon growing from the center.
	fmt.Fprintf(&b, `<path d="%s" fill="%s" fill-opacity="0.25" stroke="%s" stroke-width="2"/>`+"\n",
		pathData(c, c.Outward, point, true), cfg.OutwardColor, cfg.OutwardColor)
	for i := 0; i < c.N; i++ {
		x, y := point(c.Angles[i], c.Outward[i])
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="3" fill="%s"/>`+"\n", f(x), f(y), cfg.OutwardColor)
	}

	// Category labels sit just beyond the rim at their base angles.
	for i := 0; i < c.N; i++ {
		x, y := point(c.Angles[i], AxisMax+1.2)
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="12" fill="#333333">%s</text>`+"\n",
			f(x), f(y), escape(c.Labels[i]))
	}

	switch {
	case cfg.DualTickLabels:
		// Outward numerals climb along angle 0; inward numerals descend
		// along a half-step offset so the two scales stay readable.
		offset := math.Pi / float64(c.N)
		for i := 1; i <= int(AxisMax); i++ {
			x, y := point(0, float64(i))
			fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="10" font-weight="bold" fill="%s">%d</text>`+"\n",
				f(x), f(y), cfg.OutwardColor, i)
			xi, yi := point(offset, AxisMax-float64(i)+1)
			fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="10" font-weight="bold" fill="%s">%d</text>`+"\n",
				f(xi), f(yi), cfg.InwardColor, i)
		}
	case cfg.ShowTickLabels:
		step := cfg.TickStep
		if step <= 0 {
			step = 2
		}
		for i := 0; i <= int(AxisMax); i += step {
			x, y := point(0, float64(i))
			fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="10" fill="#666666">%d</text>`+"\n",
				f(x), f(y), i)
		}
	}

	if cfg.ShowLegend {
		lx := size - 215
		ly := 48.0
		fmt.Fprintf(&b, `<rect x="%s" y="%s" width="12" height="12" fill="%s" fill-opacity="0.6"/>`+"\n", f(lx), f(ly), cfg.OutwardColor)
		fmt.Fprintf(&b, `<text x="%s" y="%s" font-family="sans-serif" font-size="12" fill="#333333">%s</text>`+"\n", f(lx+18), f(ly+10), escape(cfg.OutwardLabel))
		fmt.Fprintf(&b, `<rect x="%s" y="%s" width="12" height="12" fill="%s" fill-opacity="0.6"/>`+"\n", f(lx), f(ly+20), cfg.InwardColor)
		fmt.Fprintf(&b, `<text x="%s" y="%s" font-family="sans-serif" font-size="12" fill="#333333">%s</text>`+"\n", f(lx+18), f(ly+30), escape(cfg.InwardLabel))
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

// pathData walks the closed series into an SVG path, one point per angle
// including the duplicated closing point.
func pathData(c *Chart, radii []float64, point func(a, r float64) (float64, float64), closePath bool) string {
	var b strings.Builder
	for i := 0; i <= c.N; i++ {
		x, y := point(c.Angles[i], radii[i])
		if i == 0 {
			fmt.Fprintf(&b, "M %s %s", f(x), f(y))
		} else {
			fmt.Fprintf(&b, " L %s %s", f(x), f(y))
		}
	}
	if closePath {
		b.WriteString(" Z")
	}
	return b.String()
}

func f(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
