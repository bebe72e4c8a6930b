// Package geometry provides the 2D primitives shared by every routing
// domain: points, axis-aligned rectangles, and the segment/point distance
// and intersection predicates the occupancy and obstacle layers depend on.
//
// All coordinates are in feet. Boundary cases (a point exactly on an edge,
// two segments that touch at an endpoint) count as contained/intersecting —
// the only epsilon tolerances (1e-10) are the near-parallel test inside
// Liang-Barsky clipping and the collinearity test in SegmentsIntersect,
// which treats a near-collinear endpoint lying on the other segment as
// touching.
package geometry

import (
	"encoding/json"
	"math"

	"gopkg.in/yaml.v3"
)

// Point2D is an immutable point in a domain's (u, v) parametric plane.
type Point2D struct {
	U float64
	V float64
}

// MarshalJSON encodes p as the [u,v] tuple of spec.md §6.2, rather than
// a {"U":...,"V":...} object.
func (p Point2D) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.U, p.V})
}

// UnmarshalJSON decodes a [u,v] tuple into p.
func (p *Point2D) UnmarshalJSON(data []byte) error {
	var t [2]float64
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	p.U, p.V = t[0], t[1]
	return nil
}

// MarshalYAML encodes p as a [u,v] sequence, mirroring MarshalJSON.
func (p Point2D) MarshalYAML() (interface{}, error) {
	return [2]float64{p.U, p.V}, nil
}

// UnmarshalYAML decodes a [u,v] sequence into p.
func (p *Point2D) UnmarshalYAML(value *yaml.Node) error {
	var t [2]float64
	if err := value.Decode(&t); err != nil {
		return err
	}
	p.U, p.V = t[0], t[1]
	return nil
}

// NewPoint2D constructs a Point2D.
func NewPoint2D(u, v float64) Point2D {
	return Point2D{U: u, V: v}
}

// Add returns the pointwise sum of p and q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{U: p.U + q.U, V: p.V + q.V}
}

// Sub returns the pointwise difference p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{U: p.U - q.U, V: p.V - q.V}
}

// Scale returns p scaled by factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{U: p.U * factor, V: p.V * factor}
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point2D) DistanceTo(q Point2D) float64 {
	du := p.U - q.U
	dv := p.V - q.V

	return math.Hypot(du, dv)
}

// ManhattanDistanceTo returns the L1 (Manhattan) distance between p and q.
func (p Point2D) ManhattanDistanceTo(q Point2D) float64 {
	return math.Abs(p.U-q.U) + math.Abs(p.V-q.V)
}

// ToTuple returns p as a [2]float64, matching the [u,v] wire format of §6.2.
func (p Point2D) ToTuple() [2]float64 {
	return [2]float64{p.U, p.V}
}

// PointFromTuple constructs a Point2D from a [u,v] pair.
func PointFromTuple(t [2]float64) Point2D {
	return Point2D{U: t[0], V: t[1]}
}
