package pathfind

import (
	"github.com/oahs/router/internal/domaingraph"
	"github.com/oahs/router/internal/geometry"
	"github.com/oahs/router/internal/routeseg"
)

// ToRouteSegments walks path, emitting one RouteSegment per consecutive
// node pair. A segment is marked is_transition when its endpoints sit in
// different domains; crosses_obstacle is lifted from the traversed
// edge's metadata (spec.md §4.7.2).
func ToRouteSegments(g *domaingraph.Graph, path []domaingraph.NodeID) []routeseg.RouteSegment {
	if len(path) < 2 {
		return nil
	}

	segments := make([]routeseg.RouteSegment, 0, len(path)-1)

	for i := 0; i+1 < len(path); i++ {
		from, ok := g.Node(path[i])
		if !ok {
			continue
		}
		to, ok := g.Node(path[i+1])
		if !ok {
			continue
		}

		start := geometry.Point2D{U: from.Location[0], V: from.Location[1]}
		end := geometry.Point2D{U: to.Location[0], V: to.Location[1]}

		edge := edgeBetween(g, path[i], path[i+1])

		opts := []routeseg.SegmentOption{routeseg.WithDomainID(to.DomainID)}
		if edge != nil {
			opts = append(opts, routeseg.WithCost(edge.Weight))
			if edge.CrossesObstacle {
				opts = append(opts, routeseg.WithCrossesObstacle(edge.ObstacleKind))
			}
		}

		seg := routeseg.NewRouteSegment(start, end, opts...)
		if seg.Metadata == nil {
			seg.Metadata = make(map[string]interface{})
		}
		seg.Metadata["is_transition"] = from.DomainID != to.DomainID

		segments = append(segments, seg)
	}

	return segments
}

func edgeBetween(g *domaingraph.Graph, from, to domaingraph.NodeID) *domaingraph.Edge {
	for v, edge := range g.Neighbors(from) {
		if v == to {
			return edge
		}
	}

	return nil
}
