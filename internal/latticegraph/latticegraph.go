// Package latticegraph builds the regular-grid per-domain graphs of
// spec.md §4.4/§4.5 — one for wall cavities (UV = along-wall/vertical),
// one for floor cavities (XY = width/length) — and wires terminal
// fixture/target points into their enclosing grid cell. Grounded on
// wall_graph.py's WallGraphBuilder/floor_graph.py's FloorGraphBuilder,
// adapted onto domaingraph.Graph in place of a networkx.Graph, and
// styled on lvlath gridgraph.go's neighbor-offset/vertex-index pattern.
package latticegraph

import (
	"math"

	"github.com/oahs/router/internal/domaingraph"
	"github.com/oahs/router/internal/geometry"
	"github.com/oahs/router/internal/obstacle"
	"github.com/oahs/router/internal/occupancy"
)

const blockedPointTolerance = 0.05

// gridDimension returns max(2, ceil((maxV-minV)/res) + 1), the node
// count along one grid axis (spec.md §4.4 step 1 — ceiling, not
// truncation; SPEC_FULL.md discrepancy #2).
func gridDimension(minV, maxV, res float64) int {
	n := int(math.Ceil((maxV-minV)/res)) + 1
	if n < 2 {
		return 2
	}

	return n
}

// nodeBlockedByOccupancy reports whether loc lies within
// seg.Diameter/2 + blockedPointTolerance of any segment already
// reserved for domainID.
func nodeBlockedByOccupancy(occ *occupancy.OccupancyMap, domainID string, loc geometry.Point2D) bool {
	if occ == nil {
		return false
	}

	for _, seg := range occ.Segments(domainID) {
		threshold := seg.Diameter/2 + blockedPointTolerance
		if geometry.PointToSegmentDistance(loc, seg.Start, seg.End) < threshold {
			return true
		}
	}

	return false
}

// connectTerminalToGrid links a newly added terminal node to the (up to
// four) grid nodes surrounding its enclosing cell, each with a
// Manhattan-weight edge (spec.md §4.4 step 5 / §4.5).
func connectTerminalToGrid(g *domaingraph.Graph, lookup map[[2]int]domaingraph.NodeID, terminalID domaingraph.NodeID, loc geometry.Point2D, minU, minV, resU, resV float64) {
	i := int((loc.U - minU) / resU)
	j := int((loc.V - minV) / resV)

	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			idx := [2]int{i + di, j + dj}
			nid, ok := lookup[idx]
			if !ok {
				continue
			}

			gridNode, ok := g.Node(nid)
			if !ok {
				continue
			}

			dist := math.Abs(loc.U-gridNode.Location[0]) + math.Abs(loc.V-gridNode.Location[1])
			g.AddEdge(terminalID, nid, dist, domaingraph.WithDirection("terminal_connection"))
		}
	}
}

// crossingObstacles returns every obstacle in d whose bounds intersect
// the closed segment (a, b).
func crossingObstacles(d *obstacle.RoutingDomain, a, b geometry.Point2D) []obstacle.Obstacle {
	return d.ObstaclesIntersecting(a, b)
}
