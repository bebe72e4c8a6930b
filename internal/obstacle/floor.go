package obstacle

import (
	"fmt"

	"github.com/oahs/router/internal/geometry"
)

// Default floor-domain factory parameters (spec.md §6.4).
const (
	DefaultFloorThickness      = 0.792
	DefaultJoistSpacing        = 1.333
	DefaultJoistWidth          = 0.146
	floorJoistPenetrationRatio = 0.6
)

// FloorDomainOptions configures NewFloorDomain.
type FloorDomainOptions struct {
	Thickness    float64
	JoistSpacing float64
	JoistWidth   float64
}

// DefaultFloorDomainOptions returns the standard I-joist-equivalent
// configuration (all dimensions in feet).
func DefaultFloorDomainOptions() FloorDomainOptions {
	return FloorDomainOptions{
		Thickness:    DefaultFloorThickness,
		JoistSpacing: DefaultJoistSpacing,
		JoistWidth:   DefaultJoistWidth,
	}
}

// NewFloorDomain builds a floor_cavity RoutingDomain of the given width
// (X) and length (Y), populated with regularly-spaced joists running the
// full length in the Y direction.
//
// Grounded on original_source's `create_floor_domain`; joists are
// penetrable (ratio 0.6), leaving the cost-model distinction between
// "web" (ratio > 0.5, cheaper) and "solid" (ratio <= 0.5, costlier) joist
// crossings to the floor graph builder (spec.md §4.5).
func NewFloorDomain(id string, width, length float64, opts FloorDomainOptions) (*RoutingDomain, error) {
	if width <= 0 || length <= 0 {
		return nil, ErrNonPositiveDimension
	}
	if opts.Thickness <= 0 {
		opts.Thickness = DefaultFloorThickness
	}
	if opts.JoistSpacing <= 0 {
		opts.JoistSpacing = DefaultJoistSpacing
	}
	if opts.JoistWidth <= 0 {
		opts.JoistWidth = DefaultJoistWidth
	}

	bounds, err := geometry.NewRect(0, 0, width, length)
	if err != nil {
		return nil, err
	}

	domain, err := NewRoutingDomain(id, DomainFloorCavity, bounds, opts.Thickness)
	if err != nil {
		return nil, err
	}

	joistIndex := 0
	x := opts.JoistWidth / 2
	for x < width {
		rect, rerr := geometry.NewRect(x-opts.JoistWidth/2, 0, x+opts.JoistWidth/2, length)
		if rerr == nil {
			joist, oerr := NewObstacle(fmt.Sprintf("%s_joist_%d", id, joistIndex), KindJoist, rect, true, floorJoistPenetrationRatio)
			if oerr != nil {
				return nil, oerr
			}
			domain.AddObstacle(joist)
		}

		x += opts.JoistSpacing
		joistIndex++
	}

	return domain, nil
}

// WebOpeningZone marks a rectangular region (in the floor domain's X/Y
// coordinates) where joist-crossing edges may receive a reduced cost
// (spec.md §4.5), modeling a pre-cut web opening in an engineered joist.
type WebOpeningZone struct {
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// Contains reports whether point p falls inside the zone.
func (z WebOpeningZone) Contains(p geometry.Point2D) bool {
	return p.U >= z.MinX && p.U <= z.MaxX && p.V >= z.MinY && p.V <= z.MaxY
}
