package obstacle

import (
	"github.com/oahs/router/internal/geometry"
)

// DomainKind enumerates the recognized routing-domain kinds (spec.md §3.3).
type DomainKind string

// Recognized domain kinds.
const (
	DomainWallCavity    DomainKind = "wall_cavity"
	DomainFloorCavity   DomainKind = "floor_cavity"
	DomainCeilingCavity DomainKind = "ceiling_cavity"
	DomainShaft         DomainKind = "shaft"
)

// RoutingDomain is a rectangular 2D region containing obstacles, with
// declared adjacency (Transitions) to other domains.
//
// Construction does not validate that every obstacle is spatially
// contained in Bounds — per spec.md §3.3, that invariant is the
// responsibility of the builders (NewWallDomain, NewFloorDomain,
// AddOpening) that populate Obstacles, not of RoutingDomain itself.
type RoutingDomain struct {
	ID          string
	Kind        DomainKind
	Bounds      geometry.Rect
	Thickness   float64
	Obstacles   []Obstacle
	Transitions map[string]struct{}
	Metadata    map[string]interface{}
}

// NewRoutingDomain constructs an empty RoutingDomain.
func NewRoutingDomain(id string, kind DomainKind, bounds geometry.Rect, thickness float64) (*RoutingDomain, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	return &RoutingDomain{
		ID:          id,
		Kind:        kind,
		Bounds:      bounds,
		Thickness:   thickness,
		Obstacles:   nil,
		Transitions: make(map[string]struct{}),
		Metadata:    make(map[string]interface{}),
	}, nil
}

// AddObstacle appends obs to the domain.
func (d *RoutingDomain) AddObstacle(obs Obstacle) {
	d.Obstacles = append(d.Obstacles, obs)
}

// AddTransition records domainID as a declared neighbor of d.
func (d *RoutingDomain) AddTransition(domainID string) {
	d.Transitions[domainID] = struct{}{}
}

// ContainsPoint reports whether p lies within the domain's bounds.
func (d *RoutingDomain) ContainsPoint(p geometry.Point2D) bool {
	return d.Bounds.ContainsPoint(p)
}

// ObstaclesAt returns every obstacle containing p.
func (d *RoutingDomain) ObstaclesAt(p geometry.Point2D) []Obstacle {
	var out []Obstacle
	for _, o := range d.Obstacles {
		if o.ContainsPoint(p) {
			out = append(out, o)
		}
	}

	return out
}

// ObstaclesIntersecting returns every obstacle whose rectangle intersects
// the closed segment (start, end).
func (d *RoutingDomain) ObstaclesIntersecting(start, end geometry.Point2D) []Obstacle {
	var out []Obstacle
	for _, o := range d.Obstacles {
		if o.IntersectsSegment(start, end) {
			out = append(out, o)
		}
	}

	return out
}

// IsPathClear reports whether the segment (start, end) is free of
// obstacles. When allowPenetrable is true, penetrable obstacles do not
// block the path — only non-penetrable ones do.
func (d *RoutingDomain) IsPathClear(start, end geometry.Point2D, allowPenetrable bool) bool {
	for _, o := range d.Obstacles {
		if !o.IntersectsSegment(start, end) {
			continue
		}
		if allowPenetrable && o.Penetrable {
			continue
		}

		return false
	}

	return true
}

// CanFitPipe reports whether a pipe of the given diameter, plus clearance
// on both sides, fits within the domain's thickness.
func (d *RoutingDomain) CanFitPipe(diameter, clearance float64) bool {
	return diameter+2*clearance <= d.Thickness
}
