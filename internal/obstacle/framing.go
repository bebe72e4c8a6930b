package obstacle

import (
	"fmt"
	"math"

	"github.com/oahs/router/internal/geometry"
)

// FramingElementType enumerates the timber-framing member kinds a
// FramingElement may describe (spec.md §6.1's FramingElements override).
type FramingElementType string

// Recognized framing element types, grounded on wall_router.py's
// PENETRABLE_ELEMENT_TYPES/NON_PENETRABLE_ELEMENT_TYPES.
const (
	FramingStud          FramingElementType = "stud"
	FramingKingStud      FramingElementType = "king_stud"
	FramingTrimmer       FramingElementType = "trimmer"
	FramingSillCripple   FramingElementType = "sill_cripple"
	FramingHeaderCripple FramingElementType = "header_cripple"
	FramingHeader        FramingElementType = "header"
	FramingSillPlate     FramingElementType = "sill_plate"
	FramingTopPlate      FramingElementType = "top_plate"
	FramingBottomPlate   FramingElementType = "bottom_plate"
)

// penetrableFramingRatios gives the max penetration ratio for every
// penetrable element type; elements absent from this map and not one of
// the non-penetrable plate types fall back to the 0.4 stud default
// (wall_router.py's "unknown element type: treat as penetrable
// stud-like").
var penetrableFramingRatios = map[FramingElementType]float64{
	FramingStud:          0.4,
	FramingKingStud:      0.4,
	FramingTrimmer:       0.4,
	FramingSillCripple:   0.4,
	FramingHeaderCripple: 0.4,
	FramingHeader:        0.25,
	FramingSillPlate:     0.25,
}

var nonPenetrableFramingTypes = map[FramingElementType]struct{}{
	FramingTopPlate:    {},
	FramingBottomPlate: {},
}

// FramingElement is a caller-supplied timber member description that, when
// passed to NewWallDomainFromFraming, overrides the default 16"-OC-derived
// stud obstacles a plain NewWallDomain call would generate (spec.md §6.1).
type FramingElement struct {
	ID           string
	ElementType  FramingElementType
	ProfileWidth float64
	ProfileDepth float64
	UCoord       float64
	VStart       float64
	VEnd         float64
}

// NewWallDomainFromFraming builds a wall_cavity RoutingDomain the same
// shape as NewWallDomain, but derives its obstacles from elements instead
// of a regular stud-spacing pattern. Grounded on original_source's
// wall_router.py _create_framing_obstacles.
func NewWallDomainFromFraming(id string, length, height, thickness float64, elements []FramingElement) (*RoutingDomain, error) {
	if length <= 0 || height <= 0 {
		return nil, ErrNonPositiveDimension
	}
	if thickness <= 0 {
		thickness = DefaultWallThickness
	}

	bounds, err := geometry.NewRect(0, 0, length, height)
	if err != nil {
		return nil, err
	}

	domain, err := NewRoutingDomain(id, DomainWallCavity, bounds, thickness)
	if err != nil {
		return nil, err
	}

	for _, elem := range elements {
		if math.Abs(elem.VEnd-elem.VStart) < 1e-6 {
			continue
		}

		profileWidth := elem.ProfileWidth
		if profileWidth <= 0 {
			profileWidth = DefaultStudWidth
		}

		_, nonPenetrable := nonPenetrableFramingTypes[elem.ElementType]

		var uMin, uMax float64
		kind := KindStud
		if nonPenetrable {
			uMin, uMax = 0, length
			kind = KindPlate
		} else {
			uMin = elem.UCoord - profileWidth/2
			uMax = elem.UCoord + profileWidth/2
		}

		rect, rerr := geometry.NewRect(uMin, math.Max(0, elem.VStart), uMax, math.Min(height, elem.VEnd))
		if rerr != nil {
			continue
		}

		penetrable := !nonPenetrable
		ratio := 0.0
		if penetrable {
			if r, ok := penetrableFramingRatios[elem.ElementType]; ok {
				ratio = r
			} else {
				ratio = 0.4
			}
		}

		obs, oerr := NewObstacle(fmt.Sprintf("%s_frame_%s", id, elem.ID), kind, rect, penetrable, ratio)
		if oerr != nil {
			return nil, oerr
		}
		domain.AddObstacle(obs)
	}

	return domain, nil
}
