// Package obstacle defines the static geometric model a routing domain is
// built from: rectangular obstacles (studs, plates, joists, openings) and
// the RoutingDomain that contains them, together with the standard wall
// and floor domain factories described in spec.md §3.2-3.3.
package obstacle

import "errors"

// Sentinel errors for obstacle and domain construction.
var (
	// ErrEmptyID indicates a domain or obstacle was constructed without an identifier.
	ErrEmptyID = errors.New("obstacle: id is empty")

	// ErrBadPenetrationRatio indicates a penetration ratio outside [0,1].
	ErrBadPenetrationRatio = errors.New("obstacle: penetration ratio must be in [0,1]")

	// ErrNonPositiveDimension indicates a wall/floor factory received a
	// non-positive length, height, width, or thickness.
	ErrNonPositiveDimension = errors.New("obstacle: dimension must be positive")
)
