package hanan

import (
	"github.com/oahs/router/internal/geometry"
	"github.com/oahs/router/internal/obstacle"
	"github.com/oahs/router/internal/routeseg"
)

// ToRouteSegments walks the Steiner tree edges from sourceIdx via BFS,
// emitting one RouteSegment per tree edge and flagging is_steiner for
// non-terminal endpoints (spec.md §4.7.3, final paragraph).
func ToRouteSegments(grid *Grid, edges []Edge, sourceIdx int, domainID string) []routeseg.RouteSegment {
	adj := buildAdjacency(edges)
	if _, ok := adj[sourceIdx]; !ok {
		return nil
	}

	terminalSet := make(map[int]bool, len(grid.TerminalIndices))
	for _, t := range grid.TerminalIndices {
		terminalSet[t] = true
	}

	var segments []routeseg.RouteSegment
	visited := map[int]bool{sourceIdx: true}
	queue := []int{sourceIdx}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		currentPt := grid.Points[current]

		for _, entry := range adj[current] {
			if visited[entry.Neighbor] {
				continue
			}
			visited[entry.Neighbor] = true
			queue = append(queue, entry.Neighbor)

			neighborPt := grid.Points[entry.Neighbor]

			opts := []routeseg.SegmentOption{
				routeseg.WithDomainID(domainID),
				routeseg.WithCost(entry.Cost),
			}
			if !terminalSet[entry.Neighbor] {
				opts = append(opts, routeseg.WithSteiner())
			}

			segments = append(segments, routeseg.NewRouteSegment(currentPt, neighborPt, opts...))
		}
	}

	return segments
}

// ToRoute converts a Steiner tree into a routeseg.Route from sourceIdx
// to targetIdx, via ToRouteSegments.
func ToRoute(grid *Grid, edges []Edge, id, systemType string, sourceIdx, targetIdx int, domainID string) *routeseg.Route {
	segments := ToRouteSegments(grid, edges, sourceIdx, domainID)

	var source, target geometry.Point2D
	if sourceIdx >= 0 && sourceIdx < len(grid.Points) {
		source = grid.Points[sourceIdx]
	}
	if targetIdx >= 0 && targetIdx < len(grid.Points) {
		target = grid.Points[targetIdx]
	}

	route := routeseg.NewRoute(id, systemType, source, target)
	for _, seg := range segments {
		route.AddSegment(seg)
	}

	return route
}

// SteinerPoints returns the grid coordinates of every non-terminal node
// that survives in edges.
func SteinerPoints(grid *Grid, edges []Edge, terminalIndices []int) []geometry.Point2D {
	terminalSet := make(map[int]bool, len(terminalIndices))
	for _, t := range terminalIndices {
		terminalSet[t] = true
	}

	treeNodes := make(map[int]bool)
	for _, e := range edges {
		treeNodes[e.From] = true
		treeNodes[e.To] = true
	}

	var out []geometry.Point2D
	for node := range treeNodes {
		if !terminalSet[node] {
			out = append(out, grid.Points[node])
		}
	}

	return out
}

// ComputeAndConvert is the convenience entry point mirroring
// compute_hanan_mst: build the grid, then compute and prune the MST.
func ComputeAndConvert(terminals []geometry.Point2D, obstacles []obstacle.Obstacle) (*Grid, []Edge) {
	grid := FromTerminals(terminals, obstacles, 0)
	edges := ComputeMST(grid, grid.TerminalIndices)

	return grid, edges
}
