// Package domaingraph implements the per-domain weighted graph and the
// unified multi-domain assembly of spec.md §4.6, adapted from lvlath's
// core.Graph: a single global integer node-ID space replaces core.Graph's
// string-keyed vertices (SPEC_FULL.md discrepancy #10), and weights are
// float64 throughout since routing costs are continuous.
package domaingraph

import (
	"errors"
	"sync"
)

// Sentinel errors.
var (
	ErrNodeNotFound  = errors.New("domaingraph: node not found")
	ErrDomainExists  = errors.New("domaingraph: domain already present")
	ErrDomainMissing = errors.New("domaingraph: domain not found")
)

// NodeID is a global integer identifier, unique across every domain in a
// MultiDomainGraph.
type NodeID int

// Node is a point where a route may pass through, originate, or
// terminate.
type Node struct {
	ID           NodeID
	DomainID     string
	Location     [2]float64
	IsTerminal   bool
	IsTransition bool
	GridIndex    [2]int
	HasGridIndex bool
	Metadata     map[string]interface{}
}

// Edge connects two nodes, possibly in different domains (a transition
// edge carries TransitionID non-empty). Directed is false for every
// in-domain edge; a non-bidirectional TransitionEdge produces a single
// Directed edge instead of the usual mirrored pair.
type Edge struct {
	ID              string
	From            NodeID
	To              NodeID
	Weight          float64
	Directed        bool
	IsTransition    bool
	TransitionType  TransitionType
	TransitionID    string
	CrossesObstacle bool
	ObstacleKind    string
	Direction       string
}

// Graph is a single domain's weighted, undirected graph. Adapted from
// core.Graph's option/mutex layout: a single RWMutex guards both nodes
// and adjacency since domain graphs are built once then read heavily.
type Graph struct {
	mu         sync.RWMutex
	nodes      map[NodeID]*Node
	edges      map[string]*Edge
	adjacency  map[NodeID]map[NodeID]string // neighbor -> edge ID
	nextEdgeID uint64
}

// NewGraph returns an empty per-domain Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[NodeID]*Node),
		edges:     make(map[string]*Edge),
		adjacency: make(map[NodeID]map[NodeID]string),
	}
}

// AddNode inserts n, indexed by its ID. Callers are expected to assign
// globally-unique IDs (MultiDomainGraph.NewNode does this).
func (g *Graph) AddNode(n *Node) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes[n.ID] = n
	if _, ok := g.adjacency[n.ID]; !ok {
		g.adjacency[n.ID] = make(map[NodeID]string)
	}
}

// Node returns the node with the given ID.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns every node in the graph, order unspecified.
func (g *Graph) Nodes() []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	return out
}

// AddEdge inserts an undirected edge between from and to. Weight must
// be finite and non-negative; callers omit (never add) +Inf edges per
// spec.md §4.4 step 4.
func (g *Graph) AddEdge(from, to NodeID, weight float64, opts ...EdgeOption) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nextEdgeID++
	id := edgeIDFor(g.nextEdgeID)
	e := &Edge{ID: id, From: from, To: to, Weight: weight}
	for _, opt := range opts {
		opt(e)
	}

	g.edges[id] = e
	if _, ok := g.adjacency[from]; !ok {
		g.adjacency[from] = make(map[NodeID]string)
	}
	g.adjacency[from][to] = id

	if !e.Directed {
		if _, ok := g.adjacency[to]; !ok {
			g.adjacency[to] = make(map[NodeID]string)
		}
		g.adjacency[to][from] = id
	}

	return id
}

// EdgeOption configures an Edge at construction time.
type EdgeOption func(*Edge)

// WithCrossesObstacle marks the edge as crossing an obstacle of the
// given kind.
func WithCrossesObstacle(kind string) EdgeOption {
	return func(e *Edge) { e.CrossesObstacle = true; e.ObstacleKind = kind }
}

// WithDirection tags the edge with a human-readable direction label
// ("horizontal", "vertical", "terminal_connection").
func WithDirection(dir string) EdgeOption {
	return func(e *Edge) { e.Direction = dir }
}

// WithDirected marks the edge as one-way (from -> to only), used for the
// single directed edge a non-bidirectional TransitionEdge produces.
func WithDirected() EdgeOption {
	return func(e *Edge) { e.Directed = true }
}

// Neighbors returns every NodeID adjacent to id and the connecting edge.
func (g *Graph) Neighbors(id NodeID) map[NodeID]*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make(map[NodeID]*Edge)
	for nbr, eid := range g.adjacency[id] {
		out[nbr] = g.edges[eid]
	}
	return out
}

// Edges returns every edge in the graph, order unspecified.
func (g *Graph) Edges() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

func edgeIDFor(n uint64) string {
	const prefix = "e"
	buf := make([]byte, 0, 12)
	buf = append(buf, prefix...)
	buf = appendUint(buf, n)
	return string(buf)
}

func appendUint(buf []byte, n uint64) []byte {
	if n == 0 {
		return append(buf, '0')
	}
	start := len(buf)
	for n > 0 {
		buf = append(buf, byte('0'+n%10))
		n /= 10
	}
	// reverse the appended digits
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}
