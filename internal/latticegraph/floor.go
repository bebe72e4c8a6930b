package latticegraph

import (
	"github.com/oahs/router/internal/domaingraph"
	"github.com/oahs/router/internal/geometry"
	"github.com/oahs/router/internal/obstacle"
	"github.com/oahs/router/internal/occupancy"
)

// Default floor grid resolution (spec.md §4.5, §10 config defaults).
const DefaultFloorResolution = 1.0

// Floor obstacle-crossing cost multipliers (spec.md §4.5).
const (
	SolidJoistCost = 8.0
	WebJoistCost   = 3.0
	// solidJoistPenetrationCeiling is the penetration-ratio threshold
	// below which a penetrable joist is treated as solid (harder to
	// cross) rather than a web truss.
	solidJoistPenetrationCeiling = 0.5
)

// FloorLatticeOptions configures BuildFloorLattice.
type FloorLatticeOptions struct {
	Resolution  float64
	WebOpenings []obstacle.WebOpeningZone
	Occupancy   *occupancy.OccupancyMap
}

// DefaultFloorLatticeOptions returns spec.md §4.5's default resolution.
func DefaultFloorLatticeOptions() FloorLatticeOptions {
	return FloorLatticeOptions{Resolution: DefaultFloorResolution}
}

// BuildFloorLattice populates mdg's per-domain graph for a floor cavity
// with a regular XY grid (spec.md §4.5).
func BuildFloorLattice(mdg *domaingraph.MultiDomainGraph, d *obstacle.RoutingDomain, opts FloorLatticeOptions) {
	g, ok := mdg.DomainGraph(d.ID)
	if !ok {
		return
	}

	minX, maxX := d.Bounds.MinU, d.Bounds.MaxU
	minY, maxY := d.Bounds.MinV, d.Bounds.MaxV

	numX := gridDimension(minX, maxX, opts.Resolution)
	numY := gridDimension(minY, maxY, opts.Resolution)

	lookup := make(map[[2]int]domaingraph.NodeID, numX*numY)

	for i := 0; i < numX; i++ {
		for j := 0; j < numY; j++ {
			x := clampF(minX+float64(i)*opts.Resolution, minX, maxX)
			y := clampF(minY+float64(j)*opts.Resolution, minY, maxY)
			loc := geometry.Point2D{U: x, V: y}

			if nodeBlockedByOccupancy(opts.Occupancy, d.ID, loc) {
				continue
			}

			id := mdg.NewNodeID(d.ID)
			g.AddNode(&domaingraph.Node{
				ID:           id,
				DomainID:     d.ID,
				Location:     [2]float64{x, y},
				GridIndex:    [2]int{i, j},
				HasGridIndex: true,
			})
			lookup[[2]int{i, j}] = id
		}
	}

	for i := 0; i < numX; i++ {
		for j := 0; j < numY; j++ {
			id, ok := lookup[[2]int{i, j}]
			if !ok {
				continue
			}
			node, _ := g.Node(id)

			if nbr, ok := lookup[[2]int{i + 1, j}]; ok {
				addFloorEdge(g, d, id, nbr, node, mustNode(g, nbr), "x_direction", opts.WebOpenings)
			}
			if nbr, ok := lookup[[2]int{i, j + 1}]; ok {
				addFloorEdge(g, d, id, nbr, node, mustNode(g, nbr), "y_direction", opts.WebOpenings)
			}
		}
	}

	mdg.MarkStale()
}

func addFloorEdge(g *domaingraph.Graph, d *obstacle.RoutingDomain, id1, id2 domaingraph.NodeID, n1, n2 *domaingraph.Node, direction string, webOpenings []obstacle.WebOpeningZone) {
	p1 := geometry.Point2D{U: n1.Location[0], V: n1.Location[1]}
	p2 := geometry.Point2D{U: n2.Location[0], V: n2.Location[1]}
	baseCost := manhattan(p1, p2)

	crossings := crossingObstacles(d, p1, p2)

	multiplier := 1.0
	blocked := false
	crossesJoist := false

	for _, obs := range crossings {
		if obs.Kind != obstacle.KindJoist {
			continue
		}
		if !obs.Penetrable {
			blocked = true
			continue
		}

		crossesJoist = true
		if obs.MaxPenetrationRatio > solidJoistPenetrationCeiling {
			multiplier = maxF(multiplier, WebJoistCost)
		} else {
			multiplier = maxF(multiplier, SolidJoistCost)
		}
	}

	if blocked {
		return
	}

	weight := baseCost * multiplier

	mid := geometry.Point2D{U: (p1.U + p2.U) / 2, V: (p1.V + p2.V) / 2}
	for _, zone := range webOpenings {
		if crossesJoist && zone.Contains(mid) {
			// Halve the edge's current cost (spec.md §4.5 — not an
			// overwrite to 1.5x base cost; SPEC_FULL.md discrepancy #3).
			weight /= 2
			break
		}
	}

	opts := []domaingraph.EdgeOption{domaingraph.WithDirection(direction)}
	if crossesJoist {
		opts = append(opts, domaingraph.WithCrossesObstacle(string(obstacle.KindJoist)))
	}
	g.AddEdge(id1, id2, weight, opts...)
}

// ConnectFloorTerminal adds a terminal node at (x, y) in a floor
// domain's grid, wired to its enclosing cell's corner nodes.
func ConnectFloorTerminal(mdg *domaingraph.MultiDomainGraph, domainID string, x, y float64, res, minX, minY float64) domaingraph.NodeID {
	g, _ := mdg.DomainGraph(domainID)
	id := mdg.NewNodeID(domainID)
	g.AddNode(&domaingraph.Node{
		ID:         id,
		DomainID:   domainID,
		Location:   [2]float64{x, y},
		IsTerminal: true,
	})

	lookup := rebuildGridLookup(g, domainID)
	connectTerminalToGrid(g, lookup, id, geometry.Point2D{U: x, V: y}, minX, minY, res, res)
	mdg.MarkStale()

	return id
}
