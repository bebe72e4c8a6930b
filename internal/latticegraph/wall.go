package latticegraph

import (
	"github.com/oahs/router/internal/domaingraph"
	"github.com/oahs/router/internal/geometry"
	"github.com/oahs/router/internal/obstacle"
	"github.com/oahs/router/internal/occupancy"
)

// Default wall grid resolutions (spec.md §4.4, §10 config defaults).
const (
	DefaultWallResolutionU = 0.333
	DefaultWallResolutionV = 0.5
)

// Wall obstacle-crossing cost multipliers (spec.md §4.4 step 4).
const StudPenetrationCost = 5.0

// WallLatticeOptions configures BuildWallLattice.
type WallLatticeOptions struct {
	ResolutionU     float64
	ResolutionV     float64
	ClearPlateZones bool
	Occupancy       *occupancy.OccupancyMap
	PipeDiameter    float64
}

// DefaultWallLatticeOptions returns spec.md §4.4's default resolutions
// with plate zones cleared.
func DefaultWallLatticeOptions() WallLatticeOptions {
	return WallLatticeOptions{
		ResolutionU:     DefaultWallResolutionU,
		ResolutionV:     DefaultWallResolutionV,
		ClearPlateZones: true,
	}
}

// BuildWallLattice populates mdg's per-domain graph for a wall cavity
// with a regular UV grid, connecting adjacent nodes with obstacle-aware
// weighted edges (spec.md §4.4).
func BuildWallLattice(mdg *domaingraph.MultiDomainGraph, d *obstacle.RoutingDomain, opts WallLatticeOptions) {
	g, ok := mdg.DomainGraph(d.ID)
	if !ok {
		return
	}

	minU, maxU := d.Bounds.MinU, d.Bounds.MaxU
	minV, maxV := d.Bounds.MinV, d.Bounds.MaxV

	numU := gridDimension(minU, maxU, opts.ResolutionU)
	numV := gridDimension(minV, maxV, opts.ResolutionV)

	lookup := make(map[[2]int]domaingraph.NodeID, numU*numV)

	for i := 0; i < numU; i++ {
		for j := 0; j < numV; j++ {
			u := clampF(minU+float64(i)*opts.ResolutionU, minU, maxU)
			v := clampF(minV+float64(j)*opts.ResolutionV, minV, maxV)
			loc := geometry.Point2D{U: u, V: v}

			if nodeBlockedByOccupancy(opts.Occupancy, d.ID, loc) {
				continue
			}

			id := mdg.NewNodeID(d.ID)
			g.AddNode(&domaingraph.Node{
				ID:           id,
				DomainID:     d.ID,
				Location:     [2]float64{u, v},
				GridIndex:    [2]int{i, j},
				HasGridIndex: true,
			})
			lookup[[2]int{i, j}] = id
		}
	}

	for i := 0; i < numU; i++ {
		for j := 0; j < numV; j++ {
			id, ok := lookup[[2]int{i, j}]
			if !ok {
				continue
			}
			node, _ := g.Node(id)

			if nbr, ok := lookup[[2]int{i + 1, j}]; ok {
				addWallEdge(g, d, id, nbr, node, mustNode(g, nbr), "horizontal", opts.ClearPlateZones)
			}
			if nbr, ok := lookup[[2]int{i, j + 1}]; ok {
				addWallEdge(g, d, id, nbr, node, mustNode(g, nbr), "vertical", opts.ClearPlateZones)
			}
		}
	}

	mdg.MarkStale()
}

func mustNode(g *domaingraph.Graph, id domaingraph.NodeID) *domaingraph.Node {
	n, _ := g.Node(id)
	return n
}

func addWallEdge(g *domaingraph.Graph, d *obstacle.RoutingDomain, id1, id2 domaingraph.NodeID, n1, n2 *domaingraph.Node, direction string, clearPlateZones bool) {
	p1 := geometry.Point2D{U: n1.Location[0], V: n1.Location[1]}
	p2 := geometry.Point2D{U: n2.Location[0], V: n2.Location[1]}
	baseCost := manhattan(p1, p2)

	crossings := crossingObstacles(d, p1, p2)

	multiplier := 1.0
	blocked := false
	crossesAny := false
	crossedKind := ""

	for _, obs := range crossings {
		switch obs.Kind {
		case obstacle.KindStud:
			if obs.Penetrable {
				multiplier = maxF(multiplier, StudPenetrationCost)
				crossesAny = true
				crossedKind = string(obstacle.KindStud)
			} else {
				blocked = true
			}
		case obstacle.KindPlate:
			if clearPlateZones && !obs.Penetrable {
				blocked = true
				crossedKind = string(obstacle.KindPlate)
			}
		default:
			if !obs.Penetrable {
				blocked = true
			} else {
				multiplier = maxF(multiplier, StudPenetrationCost)
				crossesAny = true
				crossedKind = string(obs.Kind)
			}
		}
	}

	if blocked {
		return
	}

	weight := baseCost * multiplier
	opts := []domaingraph.EdgeOption{domaingraph.WithDirection(direction)}
	if crossesAny {
		opts = append(opts, domaingraph.WithCrossesObstacle(crossedKind))
	}
	g.AddEdge(id1, id2, weight, opts...)
}

func manhattan(a, b geometry.Point2D) float64 {
	return absF(a.U-b.U) + absF(a.V-b.V)
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func clampF(x, lo, hi float64) float64 {
	if x > hi {
		return hi
	}
	if x < lo {
		return lo
	}
	return x
}

// ConnectWallTerminal adds a terminal node (connector or target) at
// (u, v) in a wall domain's grid, wired to its enclosing cell's corner
// nodes (spec.md §4.4 step 5).
func ConnectWallTerminal(mdg *domaingraph.MultiDomainGraph, domainID string, u, v float64, resU, resV, minU, minV float64) domaingraph.NodeID {
	g, _ := mdg.DomainGraph(domainID)
	id := mdg.NewNodeID(domainID)
	g.AddNode(&domaingraph.Node{
		ID:         id,
		DomainID:   domainID,
		Location:   [2]float64{u, v},
		IsTerminal: true,
	})

	lookup := rebuildGridLookup(g, domainID)
	connectTerminalToGrid(g, lookup, id, geometry.Point2D{U: u, V: v}, minU, minV, resU, resV)
	mdg.MarkStale()

	return id
}

// rebuildGridLookup reconstructs the {gridIndex: NodeID} map for an
// already-built domain graph, used when connecting terminals added
// after BuildWallLattice/BuildFloorLattice has run.
func rebuildGridLookup(g *domaingraph.Graph, domainID string) map[[2]int]domaingraph.NodeID {
	lookup := make(map[[2]int]domaingraph.NodeID)
	for _, n := range g.Nodes() {
		if n.DomainID != domainID || !n.HasGridIndex {
			continue
		}
		lookup[n.GridIndex] = n.ID
	}

	return lookup
}
