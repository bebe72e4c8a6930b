package obstacle

import (
	"fmt"
	"math"

	"github.com/oahs/router/internal/geometry"
)

// Default wall-domain factory parameters (spec.md §6.4).
const (
	DefaultWallThickness  = 0.292
	DefaultStudSpacing    = 1.333
	DefaultStudWidth      = 0.125
	DefaultPlateThickness = 0.125
	studPenetrationRatio  = 0.4
)

// WallDomainOptions configures NewWallDomain. Zero-value fields fall back
// to the package defaults.
type WallDomainOptions struct {
	Thickness      float64
	StudSpacing    float64
	StudWidth      float64
	PlateThickness float64
	HasTopPlate    bool
	HasBottomPlate bool
}

// DefaultWallDomainOptions returns the standard 2x4/16"-OC-equivalent
// configuration (all dimensions in feet, stud spacing 1.333 ft ≈ 16").
func DefaultWallDomainOptions() WallDomainOptions {
	return WallDomainOptions{
		Thickness:      DefaultWallThickness,
		StudSpacing:    DefaultStudSpacing,
		StudWidth:      DefaultStudWidth,
		PlateThickness: DefaultPlateThickness,
		HasTopPlate:    true,
		HasBottomPlate: true,
	}
}

// NewWallDomain builds a wall_cavity RoutingDomain of the given length and
// height, populated with regularly-spaced studs and top/bottom plates.
//
// Grounded on original_source's `create_wall_domain`, with one deliberate
// divergence from it (and a match to spec.md §3.3.1 instead): the final
// end-stud — placed when remaining width after the last regular stud is
// at least StudWidth — is non-penetrable, not penetrable like the regular
// studs. See SPEC_FULL.md §13 discrepancy #1.
func NewWallDomain(id string, length, height float64, opts WallDomainOptions) (*RoutingDomain, error) {
	if length <= 0 || height <= 0 {
		return nil, ErrNonPositiveDimension
	}
	if opts.Thickness <= 0 {
		opts.Thickness = DefaultWallThickness
	}
	if opts.StudSpacing <= 0 {
		opts.StudSpacing = DefaultStudSpacing
	}
	if opts.StudWidth <= 0 {
		opts.StudWidth = DefaultStudWidth
	}
	if opts.PlateThickness <= 0 {
		opts.PlateThickness = DefaultPlateThickness
	}

	bounds, err := geometry.NewRect(0, 0, length, height)
	if err != nil {
		return nil, err
	}

	domain, err := NewRoutingDomain(id, DomainWallCavity, bounds, opts.Thickness)
	if err != nil {
		return nil, err
	}

	plateBottom := 0.0
	plateTop := height
	if opts.HasBottomPlate {
		plateBottom = opts.PlateThickness
	}
	if opts.HasTopPlate {
		plateTop = height - opts.PlateThickness
	}

	studIndex := 0
	u := opts.StudWidth / 2
	for u < length {
		studRect, rerr := geometry.NewRect(u-opts.StudWidth/2, plateBottom, u+opts.StudWidth/2, plateTop)
		if rerr != nil {
			u += opts.StudSpacing
			studIndex++
			continue
		}

		stud, oerr := NewObstacle(fmt.Sprintf("%s_stud_%d", id, studIndex), KindStud, studRect, true, studPenetrationRatio)
		if oerr != nil {
			return nil, oerr
		}
		domain.AddObstacle(stud)

		u += opts.StudSpacing
		studIndex++
	}

	// End-stud: if there is at least one more stud-width of wall remaining
	// past the last regular stud, place a final non-penetrable stud near
	// the far edge (spec.md §3.3.1).
	lastStudU := u - opts.StudSpacing
	remaining := length - lastStudU
	if remaining >= opts.StudWidth {
		endU := length - opts.StudWidth/2
		if endU > 0 {
			endRect, rerr := geometry.NewRect(math.Max(0, endU-opts.StudWidth/2), plateBottom, endU+opts.StudWidth/2, plateTop)
			if rerr == nil {
				endStud, oerr := NewObstacle(fmt.Sprintf("%s_stud_end", id), KindStud, endRect, false, 0)
				if oerr != nil {
					return nil, oerr
				}
				domain.AddObstacle(endStud)
			}
		}
	}

	if opts.HasBottomPlate {
		rect, rerr := geometry.NewRect(0, 0, length, opts.PlateThickness)
		if rerr == nil {
			plate, _ := NewObstacle(fmt.Sprintf("%s_plate_bottom", id), KindPlate, rect, false, 0)
			domain.AddObstacle(plate)
		}
	}
	if opts.HasTopPlate {
		rect, rerr := geometry.NewRect(0, height-opts.PlateThickness, length, height)
		if rerr == nil {
			plate, _ := NewObstacle(fmt.Sprintf("%s_plate_top", id), KindPlate, rect, false, 0)
			domain.AddObstacle(plate)
		}
	}

	return domain, nil
}

// Opening describes a door or window cut into a wall, in the wall's own
// (u, v) coordinates (spec.md §3.3.2).
type Opening struct {
	ID     string
	IsDoor bool
	UStart float64
	UEnd   float64
	VStart float64 // ignored for doors (full height)
	VEnd   float64 // ignored for doors (full height)
}

// AddOpening injects a non-penetrable obstacle for the opening into
// domain. Doors span the full vertical extent of the domain; windows are
// confined to [VStart, VEnd], leaving routing above and below permitted.
func (d *RoutingDomain) AddOpening(o Opening) error {
	var rect geometry.Rect
	var err error
	if o.IsDoor {
		rect, err = geometry.NewRect(o.UStart, d.Bounds.MinV, o.UEnd, d.Bounds.MaxV)
	} else {
		rect, err = geometry.NewRect(o.UStart, o.VStart, o.UEnd, o.VEnd)
	}
	if err != nil {
		return err
	}

	obs, err := NewObstacle(o.ID, KindOpening, rect, false, 0)
	if err != nil {
		return err
	}
	d.AddObstacle(obs)

	return nil
}
