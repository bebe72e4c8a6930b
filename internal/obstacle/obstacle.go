package obstacle

import (
	"fmt"

	"github.com/oahs/router/internal/geometry"
)

// Kind enumerates the recognized obstacle kinds (spec.md §3.2).
type Kind string

// Recognized obstacle kinds.
const (
	KindStud    Kind = "stud"
	KindPlate   Kind = "plate"
	KindJoist   Kind = "joist"
	KindOpening Kind = "opening"
	KindPipe    Kind = "pipe"
	KindOther   Kind = "other"
)

// Obstacle is a closed axis-aligned rectangle with penetrability metadata.
//
// Invariant: Bounds.MinU < Bounds.MaxU and Bounds.MinV < Bounds.MaxV — this
// is enforced by construction via geometry.NewRect.
type Obstacle struct {
	ID                  string
	Kind                Kind
	Bounds              geometry.Rect
	Penetrable          bool
	MaxPenetrationRatio float64
}

// NewObstacle constructs an Obstacle, validating its id, bounds, and
// penetration ratio.
func NewObstacle(id string, kind Kind, bounds geometry.Rect, penetrable bool, maxPenetrationRatio float64) (Obstacle, error) {
	if id == "" {
		return Obstacle{}, ErrEmptyID
	}
	if maxPenetrationRatio < 0 || maxPenetrationRatio > 1 {
		return Obstacle{}, fmt.Errorf("%w: got %f", ErrBadPenetrationRatio, maxPenetrationRatio)
	}

	return Obstacle{
		ID:                  id,
		Kind:                kind,
		Bounds:              bounds,
		Penetrable:          penetrable,
		MaxPenetrationRatio: maxPenetrationRatio,
	}, nil
}

// ContainsPoint reports whether p lies within the obstacle, boundary
// inclusive.
func (o Obstacle) ContainsPoint(p geometry.Point2D) bool {
	return o.Bounds.ContainsPoint(p)
}

// IntersectsSegment reports whether the closed segment (start, end)
// intersects the obstacle's rectangle.
func (o Obstacle) IntersectsSegment(start, end geometry.Point2D) bool {
	return o.Bounds.IntersectsSegment(start, end)
}
