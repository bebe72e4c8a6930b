// Package postprocess implements the sanitary post-processing pass of
// spec.md §4.9: slope imposition, 90°-elbow optimization, and flow
// direction tagging over an already-assembled RoutingResult.
//
// original_source's postprocess/sanitary.py carries only a module
// docstring and imports — no function bodies — so this package is built
// directly from spec.md §4.9's prose, in the value-transformation idiom
// the rest of the module follows: pure functions over Route/RouteSegment
// that return a new value rather than mutating shared state, matching
// prim_kruskal.Kruskal's shape (graph in, new edge list out).
package postprocess

import (
	"math"

	"github.com/oahs/router/internal/routeseg"
	"github.com/oahs/router/result"
)

// Config tunes the slope and elbow thresholds (spec.md §6.4).
type Config struct {
	SlopePerFoot          float64
	MinSlopePerFoot       float64
	ElbowMinSegmentLength float64
}

// DefaultConfig returns spec.md §4.9's stated defaults: ¼" per foot
// (0.0208 ft/ft) slope, ⅛" per foot (0.0104) minimum, and a half-foot
// elbow-optimization threshold (the value spec.md §14's Open Questions
// leaves unfixed, chosen here as configuration).
func DefaultConfig() Config {
	return Config{
		SlopePerFoot:          0.0208,
		MinSlopePerFoot:       0.0104,
		ElbowMinSegmentLength: 0.5,
	}
}

// sanitarySystems are the gravity-drained system types this pass applies
// slope and elbow optimization to; vent systems get flow-direction
// tagging only, in the opposite sense (spec.md §4.9 step 3).
var sanitarySystems = map[string]bool{
	"sanitary": true, "sanitary_drain": true, "drain": true,
}

var ventSystems = map[string]bool{
	"vent": true, "sanitary_vent": true,
}

// Process returns a copy of res with every sanitary route's segments
// sloped and elbow-optimized, and every sanitary or vent route's
// segments tagged with flow direction. Non-sanitary, non-vent routes
// pass through unchanged (spec.md §4.9).
func Process(res *result.RoutingResult, cfg Config) *result.RoutingResult {
	out := *res
	out.Routes = make([]*routeseg.Route, len(res.Routes))

	for i, route := range res.Routes {
		switch {
		case sanitarySystems[route.SystemType]:
			out.Routes[i] = processSanitary(route, cfg)
		case ventSystems[route.SystemType]:
			out.Routes[i] = assignFlowDirection(cloneRoute(route), true)
		default:
			out.Routes[i] = route
		}
	}

	return &out
}

// processSanitary applies slope, then elbow optimization, then
// downstream-tagged flow direction to a single sanitary route.
func processSanitary(route *routeseg.Route, cfg Config) *routeseg.Route {
	sloped := applySlope(route, cfg)
	elbowed := optimizeElbows(sloped, cfg)
	return assignFlowDirection(elbowed, false)
}

// applySlope returns a copy of route with every segment that has a
// horizontal component offset so its end sits slope_per_foot ×
// horizontal_length below its start (spec.md §4.9 step 1). A segment
// that cannot be sloped downward without raising above its start is
// flagged geometry_violation in its metadata rather than altered or
// dropped.
func applySlope(route *routeseg.Route, cfg Config) *routeseg.Route {
	out := routeseg.NewRoute(route.ID, route.SystemType, route.Source, route.Target)

	for _, seg := range route.Segments {
		horizontal := math.Abs(seg.End.U - seg.Start.U)
		if horizontal < 1e-9 {
			out.AddSegment(seg)
			continue
		}

		// A segment that rises while running horizontally cannot be
		// sloped downward without lifting it above its start; flag it
		// and keep it unchanged.
		if seg.End.V > seg.Start.V {
			flagged := seg
			flagged.Metadata = copyMetadata(seg.Metadata)
			flagged.Metadata["geometry_violation"] = "upslope"
			out.AddSegment(flagged)
			continue
		}

		drop := cfg.SlopePerFoot * horizontal
		newEnd := seg.End
		if seg.Start.V-drop < newEnd.V {
			newEnd.V = seg.Start.V - drop
		}

		// Keep the run's original direction: the small drop would
		// otherwise re-infer it as diagonal and hide the turn from
		// optimizeElbows.
		opts := []routeseg.SegmentOption{routeseg.WithDomainID(seg.DomainID), routeseg.WithCost(seg.Cost), routeseg.WithDirection(seg.Direction)}
		if seg.CrossesObstacle {
			opts = append(opts, routeseg.WithCrossesObstacle(seg.ObstacleKind))
		}
		sloped := routeseg.NewRouteSegment(seg.Start, newEnd, opts...)
		sloped.Metadata = copyMetadata(seg.Metadata)
		out.AddSegment(sloped)
	}

	return out
}

// optimizeElbows replaces each 90°-turn between two adjacent segments
// that both meet ElbowMinSegmentLength with a pair of 45° diagonal
// segments spanning min(len1, len2)/2 off each side of the corner
// (spec.md §4.9 step 2).
func optimizeElbows(route *routeseg.Route, cfg Config) *routeseg.Route {
	if len(route.Segments) < 2 {
		return route
	}

	out := routeseg.NewRoute(route.ID, route.SystemType, route.Source, route.Target)

	segs := route.Segments
	i := 0
	for i < len(segs) {
		if i+1 >= len(segs) || !isRightAngleTurn(segs[i], segs[i+1]) ||
			segs[i].Length < cfg.ElbowMinSegmentLength || segs[i+1].Length < cfg.ElbowMinSegmentLength {
			out.AddSegment(segs[i])
			i++
			continue
		}

		a, b := segs[i], segs[i+1]
		offset := math.Min(a.Length, b.Length) / 2

		dir1 := a.End.Sub(a.Start).Scale(1 / a.Length)
		dir2 := b.End.Sub(b.Start).Scale(1 / b.Length)

		c1 := a.End.Sub(dir1.Scale(offset))
		c2 := a.End.Add(dir2.Scale(offset))

		out.AddSegment(routeseg.NewRouteSegment(a.Start, c1, routeseg.WithDomainID(a.DomainID)))
		out.AddSegment(routeseg.NewRouteSegment(c1, c2, routeseg.WithDomainID(a.DomainID), routeseg.WithDirection(routeseg.Diagonal)))
		out.AddSegment(routeseg.NewRouteSegment(c2, b.End, routeseg.WithDomainID(b.DomainID)))

		i += 2
	}

	return out
}

func isRightAngleTurn(a, b routeseg.RouteSegment) bool {
	if a.Direction == routeseg.Diagonal || b.Direction == routeseg.Diagonal {
		return false
	}
	return a.Direction != b.Direction
}

// assignFlowDirection tags every segment with which endpoint is
// upstream/downstream of fixture flow: connector-to-target for drains,
// the reverse for vents (spec.md §4.9 step 3).
func assignFlowDirection(route *routeseg.Route, reversed bool) *routeseg.Route {
	upstream, downstream := "start", "end"
	if reversed {
		upstream, downstream = "end", "start"
	}

	for i := range route.Segments {
		if route.Segments[i].Metadata == nil {
			route.Segments[i].Metadata = make(map[string]interface{})
		}
		route.Segments[i].Metadata["upstream_end"] = upstream
		route.Segments[i].Metadata["downstream_end"] = downstream
	}

	return route
}

// cloneRoute returns a Route with the same segment values but
// independent metadata maps, so downstream tagging never mutates the
// caller's original RoutingResult.
func cloneRoute(route *routeseg.Route) *routeseg.Route {
	out := routeseg.NewRoute(route.ID, route.SystemType, route.Source, route.Target)
	for _, seg := range route.Segments {
		cloned := seg
		cloned.Metadata = copyMetadata(seg.Metadata)
		out.AddSegment(cloned)
	}
	return out
}

func copyMetadata(src map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(src)+1)
	for k, v := range src {
		out[k] = v
	}
	return out
}
