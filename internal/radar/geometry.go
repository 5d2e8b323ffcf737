// Package radar builds dual-direction polar chart geometry: one series
// radiating outward from the center, one filling inward from the rim, both
// closed over N equally spaced angles, and renders it as an SVG figure.
package radar

import (
	"errors"
	"fmt"
	"math"
)

// AxisMax is the radial axis maximum. The inward series fills from this rim
// toward the center.
const AxisMax = 10.0

// minDimensions is the smallest N that yields a polygon.
const minDimensions = 3

// ErrGeometry reports a degenerate dimension count or misaligned inputs.
var ErrGeometry = errors.New("invalid chart geometry")

// Chart is the renderable description of one dual-direction radar plot.
// Angles, Outward, InnerBoundary and OuterRing have length N+1: the first
// point is appended again so the plotted polylines close on themselves.
// Labels keeps length N and belongs to the base angles only.
type Chart struct {
	N             int
	Angles        []float64
	Outward       []float64
	InnerBoundary []float64
	OuterRing     []float64
	Labels        []string
}

// Build converts the outward series (organization capability) and the inward
// series (community capacity) into closed chart geometry. Values are assumed
// to lie in [0, AxisMax]; a capacity of AxisMax reaches the center, a
// capacity of 0 stays at the rim.
func Build(outward, inward []float64, labels []string) (*Chart, error) {
	n := len(labels)
	if n < minDimensions {
		return nil, fmt.Errorf("%w: need at least %d dimensions, got %d", ErrGeometry, minDimensions, n)
	}
	if len(outward) != n || len(inward) != n {
		return nil, fmt.Errorf("%w: series lengths %d/%d do not match %d labels",
			ErrGeometry, len(outward), len(inward), n)
	}

	c := &Chart{
		N:             n,
		Angles:        make([]float64, n+1),
		Outward:       make([]float64, n+1),
		InnerBoundary: make([]float64, n+1),
		OuterRing:     make([]float64, n+1),
		Labels:        labels,
	}

	for i := 0; i < n; i++ {
		c.Angles[i] = 2 * math.Pi * float64(i) / float64(n)
		c.Outward[i] = outward[i]
		c.InnerBoundary[i] = AxisMax - inward[i]
		c.OuterRing[i] = AxisMax
	}

	// Close every polyline on its first point.
	c.Angles[n] = c.Angles[0]
	c.Outward[n] = c.Outward[0]
	c.InnerBoundary[n] = c.InnerBoundary[0]
	c.OuterRing[n] = c.OuterRing[0]

	return c, nil
}
