// Package routeseg defines the output shapes of pathfinding: a RouteSegment
// is a single axis-aligned run, and a Route is an ordered sequence of
// segments connecting a connector to a target (spec.md §3.7).
package routeseg

import (
	"github.com/oahs/router/internal/geometry"
)

// Direction enumerates the orientation of a RouteSegment.
type Direction string

// Recognized directions; serialize as these lowercase strings (spec.md §6.3).
const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
	Diagonal   Direction = "diagonal"
)

// inferDirection mirrors the auto-inference rule applied by the
// constructor below: |Δu| and |Δv| both non-negligible means diagonal;
// otherwise whichever delta dominates wins, ties going to horizontal.
// This consolidates the two subtly-divergent direction-inference call
// sites found in original_source (route_segment.py's __post_init__ and
// pathfinding.py's PathReconstructor._create_segment) into one function.
func inferDirection(start, end geometry.Point2D) Direction {
	const epsilon = 1e-6
	du := abs(end.U - start.U)
	dv := abs(end.V - start.V)

	switch {
	case du > epsilon && dv > epsilon:
		return Diagonal
	case dv > du:
		return Vertical
	default:
		return Horizontal
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}

// RouteSegment is one straight axis-aligned (or, after sanitary elbow
// optimization, 45°-diagonal) run of a Route.
type RouteSegment struct {
	Start           geometry.Point2D       `json:"start" yaml:"start"`
	End             geometry.Point2D       `json:"end" yaml:"end"`
	Direction       Direction              `json:"direction" yaml:"direction"`
	Length          float64                `json:"length" yaml:"length"`
	Cost            float64                `json:"cost" yaml:"cost"`
	DomainID        string                 `json:"domain_id" yaml:"domain_id"`
	IsSteiner       bool                   `json:"is_steiner" yaml:"is_steiner"`
	CrossesObstacle bool                   `json:"crosses_obstacle" yaml:"crosses_obstacle"`
	ObstacleKind    string                 `json:"obstacle_kind,omitempty" yaml:"obstacle_kind,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// SegmentOption configures a RouteSegment at construction.
type SegmentOption func(*RouteSegment)

// WithDirection overrides the auto-inferred direction. Use this for
// diagonal elbow-optimization segments, where the explicit direction is
// trusted rather than re-derived from the endpoints.
func WithDirection(d Direction) SegmentOption {
	return func(s *RouteSegment) { s.Direction = d }
}

// WithDomainID sets the segment's owning domain.
func WithDomainID(id string) SegmentOption {
	return func(s *RouteSegment) { s.DomainID = id }
}

// WithCost overrides the auto-derived cost (defaults to Length).
func WithCost(cost float64) SegmentOption {
	return func(s *RouteSegment) { s.Cost = cost }
}

// WithCrossesObstacle marks the segment as crossing a penetrable
// obstacle, tagging the obstacle kind for diagnostics.
func WithCrossesObstacle(kind string) SegmentOption {
	return func(s *RouteSegment) {
		s.CrossesObstacle = true
		s.ObstacleKind = kind
	}
}

// WithSteiner marks the segment's endpoint as a Steiner (non-terminal)
// junction.
func WithSteiner() SegmentOption {
	return func(s *RouteSegment) { s.IsSteiner = true }
}

// WithMetadata attaches a metadata key/value pair.
func WithMetadata(key string, value interface{}) SegmentOption {
	return func(s *RouteSegment) {
		if s.Metadata == nil {
			s.Metadata = make(map[string]interface{})
		}
		s.Metadata[key] = value
	}
}

// NewRouteSegment constructs a RouteSegment between start and end. Length
// auto-derives as the Manhattan norm of the endpoints; Direction
// auto-infers from the endpoint deltas unless WithDirection is supplied;
// Cost defaults to Length unless WithCost is supplied.
func NewRouteSegment(start, end geometry.Point2D, opts ...SegmentOption) RouteSegment {
	s := RouteSegment{
		Start:  start,
		End:    end,
		Length: start.ManhattanDistanceTo(end),
	}
	s.Direction = inferDirection(start, end)

	for _, opt := range opts {
		opt(&s)
	}

	if s.Cost == 0 {
		s.Cost = s.Length
	}

	return s
}

// Reversed returns a copy of s with Start and End swapped; all other
// fields (including Metadata, shallow-copied) are preserved.
func (s RouteSegment) Reversed() RouteSegment {
	r := s
	r.Start, r.End = s.End, s.Start
	if s.Metadata != nil {
		r.Metadata = make(map[string]interface{}, len(s.Metadata))
		for k, v := range s.Metadata {
			r.Metadata[k] = v
		}
	}

	return r
}
