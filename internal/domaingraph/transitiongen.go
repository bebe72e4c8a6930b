package domaingraph

import (
	"math"
	"sort"
)

// bottomTolerance is how close (in V) a wall node must be to the wall's
// v_min to be considered eligible for a wall-to-floor transition.
const bottomTolerance = 0.5

// nearestFloorCutoff is the maximum world-XY distance within which a
// wall-bottom node may connect to a floor node.
const nearestFloorCutoff = 2.0

// TransitionGenerator produces TransitionEdges between domain graphs,
// grounded on graph_builder.py's TransitionGenerator.
type TransitionGenerator struct {
	counter int
}

// NewTransitionGenerator returns an empty generator.
func NewTransitionGenerator() *TransitionGenerator {
	return &TransitionGenerator{}
}

func (tg *TransitionGenerator) nextID(prefix string) string {
	tg.counter++
	return prefix + "_" + itoa(tg.counter)
}

// sortedByID returns g's nodes in ascending NodeID order. Graph.Nodes
// ranges a map, so both the emission order of generated transitions and
// the winner of an exact-tie nearest-node comparison would otherwise
// vary between identical calls (spec.md §8 invariant 5).
func sortedByID(g *Graph) []*Node {
	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	buf := make([]byte, 0, 8)
	for n > 0 {
		buf = append(buf, byte('0'+n%10))
		n /= 10
	}
	if neg {
		buf = append(buf, '-')
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// GenerateWallToFloor connects every node within bottomTolerance of the
// wall's v_min to the nearest floor node (in world XY, after projecting
// the wall's U coordinate through wallWorldOrigin/wallDirection), within
// nearestFloorCutoff (spec.md §4.6).
func (tg *TransitionGenerator) GenerateWallToFloor(mdg *MultiDomainGraph, wallDomainID, floorDomainID string, wallMinV float64, wallWorldOrigin [2]float64, wallDirection [2]float64) []TransitionEdge {
	wallGraph, ok := mdg.DomainGraph(wallDomainID)
	if !ok {
		return nil
	}
	floorGraph, ok := mdg.DomainGraph(floorDomainID)
	if !ok {
		return nil
	}

	floorNodes := sortedByID(floorGraph)

	var out []TransitionEdge
	for _, wn := range sortedByID(wallGraph) {
		if math.Abs(wn.Location[1]-wallMinV) >= bottomTolerance {
			continue
		}

		wallU := wn.Location[0]
		worldX := wallWorldOrigin[0] + wallU*wallDirection[0]
		worldY := wallWorldOrigin[1] + wallU*wallDirection[1]

		var closest *Node
		closestDist := math.Inf(1)
		for _, fn := range floorNodes {
			dist := math.Abs(worldX-fn.Location[0]) + math.Abs(worldY-fn.Location[1])
			if dist < closestDist {
				closestDist = dist
				closest = fn
			}
		}

		if closest == nil || closestDist >= nearestFloorCutoff {
			continue
		}

		t := TransitionEdge{
			ID:            tg.nextID("trans_w2f"),
			Type:          TransitionWallToFloor,
			FromDomain:    wallDomainID,
			FromNode:      wn.ID,
			FromLocation:  [2]float64{wn.Location[0], wn.Location[1]},
			ToDomain:      floorDomainID,
			ToNode:        closest.ID,
			ToLocation:    [2]float64{closest.Location[0], closest.Location[1]},
			Cost:          WallToFloorCost,
			Bidirectional: true,
			Metadata: map[string]interface{}{
				"wall_u":   wallU,
				"world_xy": [2]float64{worldX, worldY},
			},
		}
		out = append(out, t)
	}

	return out
}

// GenerateWallToWall connects the max-U node of wallA to the min-U node
// of wallB, for two walls sharing a rounded world-XY endpoint (spec.md
// §4.6).
func (tg *TransitionGenerator) GenerateWallToWall(mdg *MultiDomainGraph, wallAID, wallBID string, cornerXY [2]float64) *TransitionEdge {
	graphA, ok := mdg.DomainGraph(wallAID)
	if !ok {
		return nil
	}
	graphB, ok := mdg.DomainGraph(wallBID)
	if !ok {
		return nil
	}

	var nodeA *Node
	maxU := math.Inf(-1)
	for _, n := range sortedByID(graphA) {
		if n.Location[0] > maxU {
			maxU = n.Location[0]
			nodeA = n
		}
	}

	var nodeB *Node
	minU := math.Inf(1)
	for _, n := range sortedByID(graphB) {
		if n.Location[0] < minU {
			minU = n.Location[0]
			nodeB = n
		}
	}

	if nodeA == nil || nodeB == nil {
		return nil
	}

	return &TransitionEdge{
		ID:            tg.nextID("trans_w2w"),
		Type:          TransitionWallToWall,
		FromDomain:    wallAID,
		FromNode:      nodeA.ID,
		FromLocation:  nodeA.Location,
		ToDomain:      wallBID,
		ToNode:        nodeB.ID,
		ToLocation:    nodeB.Location,
		Cost:          WallToWallCost,
		Bidirectional: true,
		Metadata:      map[string]interface{}{"corner_xy": cornerXY},
	}
}

// GenerateFloorToCeiling connects a floor node to its corresponding
// ceiling node directly above it (spec.md §4.6: "cost 2.5, not detailed
// here" — paired by matching XY location, the only relation the spec
// gives).
func (tg *TransitionGenerator) GenerateFloorToCeiling(mdg *MultiDomainGraph, floorDomainID, ceilingDomainID string) []TransitionEdge {
	floorGraph, ok := mdg.DomainGraph(floorDomainID)
	if !ok {
		return nil
	}
	ceilingGraph, ok := mdg.DomainGraph(ceilingDomainID)
	if !ok {
		return nil
	}

	ceilingNodes := sortedByID(ceilingGraph)

	var out []TransitionEdge
	for _, fn := range sortedByID(floorGraph) {
		var closest *Node
		closestDist := math.Inf(1)
		for _, cn := range ceilingNodes {
			dist := math.Abs(fn.Location[0]-cn.Location[0]) + math.Abs(fn.Location[1]-cn.Location[1])
			if dist < closestDist {
				closestDist = dist
				closest = cn
			}
		}

		if closest == nil || closestDist >= nearestFloorCutoff {
			continue
		}

		out = append(out, TransitionEdge{
			ID:            tg.nextID("trans_f2c"),
			Type:          TransitionFloorToCeiling,
			FromDomain:    floorDomainID,
			FromNode:      fn.ID,
			FromLocation:  fn.Location,
			ToDomain:      ceilingDomainID,
			ToNode:        closest.ID,
			ToLocation:    closest.Location,
			Cost:          FloorToCeilingCost,
			Bidirectional: true,
		})
	}

	return out
}
