package domaingraph

// TransitionType enumerates the recognized cross-domain connection kinds
// (spec.md §4.6).
type TransitionType string

// Recognized transition types.
const (
	TransitionWallToFloor    TransitionType = "wall_to_floor"
	TransitionFloorToWall    TransitionType = "floor_to_wall"
	TransitionWallToWall     TransitionType = "wall_to_wall"
	TransitionWallToShaft    TransitionType = "wall_to_shaft"
	TransitionFloorToShaft   TransitionType = "floor_to_shaft"
	TransitionFloorToCeiling TransitionType = "floor_to_ceiling"
)

// Default transition costs (spec.md §4.6, §10 config defaults).
const (
	WallToFloorCost    = 2.0
	WallToWallCost     = 1.5
	FloorToCeilingCost = 2.5
)

// TransitionEdge connects a node in one domain's graph to a node in
// another domain's graph.
type TransitionEdge struct {
	ID            string
	Type          TransitionType
	FromDomain    string
	FromNode      NodeID
	FromLocation  [2]float64
	ToDomain      string
	ToNode        NodeID
	ToLocation    [2]float64
	Cost          float64
	Bidirectional bool
	Metadata      map[string]interface{}
}
