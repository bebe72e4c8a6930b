package result

import "github.com/oahs/router/internal/routeseg"

// WallRoutingStatus enumerates the readiness of a WallRoutingResult.
type WallRoutingStatus string

// Recognized statuses (spec.md §6.2).
const (
	WallRoutingReady      WallRoutingStatus = "ready"
	WallRoutingNeedsInput WallRoutingStatus = "needs_input"
)

// ObstacleSource records where a wall-only routing pass got its
// obstacle data from (spec.md §6.1's FramingElements override, §6.2).
type ObstacleSource string

// Recognized obstacle sources.
const (
	ObstacleSourceDerived ObstacleSource = "derived"
	ObstacleSourceFraming ObstacleSource = "framing"
	ObstacleSourceMixed   ObstacleSource = "mixed"
)

// WallRoutingResult is the Phase-2 return type for scenarios where only
// in-wall routing to a top/bottom plate is desired, without attempting
// floor or ceiling transitions (spec.md §6.2).
type WallRoutingResult struct {
	WallRoutes        []*routeseg.Route `json:"wall_routes" yaml:"wall_routes"`
	ExitPoints        [][2]float64      `json:"exit_points" yaml:"exit_points"`
	Unrouted          []string          `json:"unrouted" yaml:"unrouted"`
	FloorPassthroughs [][2]float64      `json:"floor_passthroughs" yaml:"floor_passthroughs"`
	Status            WallRoutingStatus `json:"status" yaml:"status"`
	Needs             []string          `json:"needs" yaml:"needs"`
	ObstacleSource    ObstacleSource    `json:"obstacle_source" yaml:"obstacle_source"`
}

// NewWallRoutingResult derives a WallRoutingResult from a full
// RoutingResult, restricted to routes whose source lies in wallDomainID:
// routes that never leave the wall (every segment's domain_id equals
// wallDomainID) become wall_routes with their final segment's endpoint
// recorded as an exit point; routes that cross into another domain are
// recorded as floor_passthroughs instead. Every connector in
// full.Failed surfaces in Unrouted; failures are not filtered by
// wallDomainID.
func NewWallRoutingResult(full *RoutingResult, wallDomainID string, source ObstacleSource) *WallRoutingResult {
	w := &WallRoutingResult{
		Status:         WallRoutingReady,
		ObstacleSource: source,
	}

	for _, route := range full.Routes {
		inWallOnly := true
		for _, d := range route.DomainsCrossed {
			if d != wallDomainID {
				inWallOnly = false
				break
			}
		}

		if !inWallOnly {
			if containsDomain(route.DomainsCrossed, wallDomainID) && len(route.Segments) > 0 {
				last := route.Segments[len(route.Segments)-1]
				w.FloorPassthroughs = append(w.FloorPassthroughs, [2]float64{last.End.U, last.End.V})
			}
			continue
		}

		w.WallRoutes = append(w.WallRoutes, route)
		if len(route.Segments) > 0 {
			last := route.Segments[len(route.Segments)-1]
			w.ExitPoints = append(w.ExitPoints, [2]float64{last.End.U, last.End.V})
		}
	}

	for _, f := range full.Failed {
		w.Unrouted = append(w.Unrouted, f.ConnectorID)
	}

	if len(w.Unrouted) > 0 {
		w.Status = WallRoutingNeedsInput
		w.Needs = append(w.Needs, "additional targets or framing input for unrouted connectors")
	}

	return w
}

func containsDomain(domains []string, id string) bool {
	for _, d := range domains {
		if d == id {
			return true
		}
	}
	return false
}
