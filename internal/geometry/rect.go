package geometry

import (
	"errors"
	"math"
)

// ErrDegenerateRect indicates a Rect whose min bound is not strictly
// less than its max bound on some axis.
var ErrDegenerateRect = errors.New("geometry: rect min must be strictly less than max")

// Rect is a closed axis-aligned rectangle (u_min, v_min, u_max, v_max).
//
// Unlike the distilled Python source this is modeled after — which used
// two different positional-tuple field orders for obstacle bounds and
// domain bounds within the same module — Rect is the single named-field
// representation used everywhere a rectangle is needed, eliminating that
// footgun entirely.
type Rect struct {
	MinU float64
	MinV float64
	MaxU float64
	MaxV float64
}

// NewRect validates and constructs a Rect. MinU must be < MaxU and
// MinV must be < MaxV.
func NewRect(minU, minV, maxU, maxV float64) (Rect, error) {
	if !(minU < maxU) || !(minV < maxV) {
		return Rect{}, ErrDegenerateRect
	}

	return Rect{MinU: minU, MinV: minV, MaxU: maxU, MaxV: maxV}, nil
}

// Width returns MaxU - MinU.
func (r Rect) Width() float64 { return r.MaxU - r.MinU }

// Height returns MaxV - MinV.
func (r Rect) Height() float64 { return r.MaxV - r.MinV }

// ContainsPoint reports whether p lies within r, boundary inclusive.
func (r Rect) ContainsPoint(p Point2D) bool {
	return p.U >= r.MinU && p.U <= r.MaxU && p.V >= r.MinV && p.V <= r.MaxV
}

// IntersectsSegment reports whether the closed segment [start, end]
// intersects r, using Liang-Barsky line clipping against the four
// half-planes of the rectangle. Boundary touches count as intersecting.
//
// Complexity: O(1).
func (r Rect) IntersectsSegment(start, end Point2D) bool {
	const epsilon = 1e-10

	dU := end.U - start.U
	dV := end.V - start.V

	// p[i], q[i] define the four clip half-planes in Liang-Barsky order:
	// left (-u), right (+u), bottom (-v), top (+v).
	p := [4]float64{-dU, dU, -dV, dV}
	q := [4]float64{start.U - r.MinU, r.MaxU - start.U, start.V - r.MinV, r.MaxV - start.V}

	tMin, tMax := 0.0, 1.0

	for i := 0; i < 4; i++ {
		if math.Abs(p[i]) < epsilon {
			// Segment is parallel to this clip edge; outside if q[i] < 0.
			if q[i] < 0 {
				return false
			}

			continue
		}

		t := q[i] / p[i]
		if p[i] < 0 {
			if t > tMax {
				return false
			}
			if t > tMin {
				tMin = t
			}
		} else {
			if t < tMin {
				return false
			}
			if t < tMax {
				tMax = t
			}
		}
	}

	return tMin <= tMax
}
