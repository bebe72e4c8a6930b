package geometry

import "math"

// SegmentsIntersect reports whether closed segments (a0,a1) and (b0,b1)
// intersect, via orientation (cross-product sign) tests with a collinear
// on-segment fallback. Grounded on occupancy.py's `_segments_intersect`.
func SegmentsIntersect(a0, a1, b0, b1 Point2D) bool {
	d1 := cross(b1.Sub(b0), a0.Sub(b0))
	d2 := cross(b1.Sub(b0), a1.Sub(b0))
	d3 := cross(a1.Sub(a0), b0.Sub(a0))
	d4 := cross(a1.Sub(a0), b1.Sub(a0))

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	const epsilon = 1e-10
	if math.Abs(d1) < epsilon && onSegment(b0, b1, a0) {
		return true
	}
	if math.Abs(d2) < epsilon && onSegment(b0, b1, a1) {
		return true
	}
	if math.Abs(d3) < epsilon && onSegment(a0, a1, b0) {
		return true
	}
	if math.Abs(d4) < epsilon && onSegment(a0, a1, b1) {
		return true
	}

	return false
}

func cross(a, b Point2D) float64 {
	return a.U*b.V - a.V*b.U
}

// onSegment reports whether point p, already known to be collinear with
// (s0, s1), lies within the segment's bounding box.
func onSegment(s0, s1, p Point2D) bool {
	return p.U >= math.Min(s0.U, s1.U)-1e-10 && p.U <= math.Max(s0.U, s1.U)+1e-10 &&
		p.V >= math.Min(s0.V, s1.V)-1e-10 && p.V <= math.Max(s0.V, s1.V)+1e-10
}

// PointToSegmentDistance returns the shortest distance from p to the
// closed segment (s0, s1), via clamped scalar projection.
func PointToSegmentDistance(p, s0, s1 Point2D) float64 {
	d := s1.Sub(s0)
	lenSq := d.U*d.U + d.V*d.V
	if lenSq == 0 {
		return p.DistanceTo(s0)
	}

	t := ((p.U-s0.U)*d.U + (p.V-s0.V)*d.V) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	proj := s0.Add(d.Scale(t))

	return p.DistanceTo(proj)
}

// SegmentToSegmentDistance returns the minimum distance between two closed
// segments: zero if they intersect, otherwise the smallest of the four
// point-to-segment distances between each endpoint and the other segment.
// Grounded on occupancy.py's `_segment_to_segment_distance`.
func SegmentToSegmentDistance(a0, a1, b0, b1 Point2D) float64 {
	if SegmentsIntersect(a0, a1, b0, b1) {
		return 0
	}

	d1 := PointToSegmentDistance(a0, b0, b1)
	d2 := PointToSegmentDistance(a1, b0, b1)
	d3 := PointToSegmentDistance(b0, a0, a1)
	d4 := PointToSegmentDistance(b1, a0, a1)

	return math.Min(math.Min(d1, d2), math.Min(d3, d4))
}
