package domaingraph

import (
	"sync"

	"github.com/oahs/router/internal/obstacle"
)

// MultiDomainGraph assembles several per-domain Graphs plus transition
// edges into a single unified Graph for pathfinding, rebuilt lazily
// whenever the assembly goes stale (spec.md §4.6). Grounded on
// graph.py's MultiDomainGraph, generalized from a module-global
// networkx.Graph to a lvlath core.Graph-style owned type.
type MultiDomainGraph struct {
	mu sync.Mutex

	domains      map[string]*obstacle.RoutingDomain
	domainGraphs map[string]*Graph
	transitions  []TransitionEdge

	nextNodeID NodeID
	stale      bool
	unified    *Graph
	// nodeDomain maps every allocated NodeID to its owning domain, used
	// directly as the unified graph's node space (no remapping needed
	// since IDs are already globally unique).
	nodeDomain map[NodeID]string
}

// NewMultiDomainGraph returns an empty assembly.
func NewMultiDomainGraph() *MultiDomainGraph {
	return &MultiDomainGraph{
		domains:      make(map[string]*obstacle.RoutingDomain),
		domainGraphs: make(map[string]*Graph),
		nodeDomain:   make(map[NodeID]string),
		stale:        true,
	}
}

// AddDomain registers a routing domain and its empty per-domain graph.
func (m *MultiDomainGraph) AddDomain(d *obstacle.RoutingDomain) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.domains[d.ID]; exists {
		return ErrDomainExists
	}

	m.domains[d.ID] = d
	m.domainGraphs[d.ID] = NewGraph()
	m.stale = true

	return nil
}

// Domain returns the routing domain registered under id.
func (m *MultiDomainGraph) Domain(id string) (*obstacle.RoutingDomain, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.domains[id]
	return d, ok
}

// DomainGraph returns the per-domain graph for id, for callers (lattice
// builders) that populate it directly.
func (m *MultiDomainGraph) DomainGraph(id string) (*Graph, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.domainGraphs[id]
	return g, ok
}

// NewNodeID allocates a fresh globally-unique node ID and records its
// owning domain. Lattice builders call this directly so that wall and
// floor graphs share one ID space from the start (SPEC_FULL.md discrepancy
// #10), rather than being remapped during unification.
func (m *MultiDomainGraph) NewNodeID(domainID string) NodeID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextNodeID
	m.nextNodeID++
	m.nodeDomain[id] = domainID
	m.stale = true

	return id
}

// AddTransition registers a transition edge between two domains already
// present in the assembly.
func (m *MultiDomainGraph) AddTransition(t TransitionEdge) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.domains[t.FromDomain]; !ok {
		return ErrDomainMissing
	}
	if _, ok := m.domains[t.ToDomain]; !ok {
		return ErrDomainMissing
	}

	m.transitions = append(m.transitions, t)
	m.stale = true

	return nil
}

// Transitions returns every registered transition edge.
func (m *MultiDomainGraph) Transitions() []TransitionEdge {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]TransitionEdge, len(m.transitions))
	copy(out, m.transitions)
	return out
}

// MarkStale forces the next Unified call to rebuild, used after direct
// mutation of a per-domain graph returned by DomainGraph.
func (m *MultiDomainGraph) MarkStale() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stale = true
}

// NodeDomain returns the domain ID that owns a given unified node ID.
func (m *MultiDomainGraph) NodeDomain(id NodeID) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.nodeDomain[id]
	return d, ok
}

// Unified returns the assembled unified graph, rebuilding it first if
// any mutation has occurred since the last build.
func (m *MultiDomainGraph) Unified() *Graph {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.stale && m.unified != nil {
		return m.unified
	}

	u := NewGraph()
	for _, dg := range m.domainGraphs {
		for _, n := range dg.Nodes() {
			u.AddNode(n)
		}
	}
	// Each per-domain Graph keeps its own edge-ID counter, so IDs collide
	// across domains; the unified graph assigns fresh IDs here rather
	// than reusing the source ones.
	for _, dg := range m.domainGraphs {
		for _, e := range dg.Edges() {
			u.AddEdge(e.From, e.To, e.Weight, withCopiedMetadata(e))
		}
	}

	for _, t := range m.transitions {
		tagTransition := func(e *Edge) {
			e.IsTransition = true
			e.TransitionType = t.Type
			e.TransitionID = t.ID
		}

		if t.Bidirectional {
			u.AddEdge(t.FromNode, t.ToNode, t.Cost, tagTransition)
		} else {
			u.AddEdge(t.FromNode, t.ToNode, t.Cost, tagTransition, WithDirected())
		}
	}

	m.unified = u
	m.stale = false

	return u
}

func withCopiedMetadata(src *Edge) EdgeOption {
	return func(e *Edge) {
		e.IsTransition = src.IsTransition
		e.TransitionType = src.TransitionType
		e.TransitionID = src.TransitionID
		e.CrossesObstacle = src.CrossesObstacle
		e.ObstacleKind = src.ObstacleKind
		e.Direction = src.Direction
	}
}

// Statistics summarizes the assembly for reporting (spec.md §9 logging
// hooks).
type Statistics struct {
	NumDomains     int
	NumTransitions int
	PerDomain      map[string]DomainStats
}

// DomainStats counts nodes/edges for one domain's graph.
type DomainStats struct {
	NumNodes int
	NumEdges int
}

// Stats returns a snapshot of the assembly's size.
func (m *MultiDomainGraph) Stats() Statistics {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Statistics{
		NumDomains:     len(m.domains),
		NumTransitions: len(m.transitions),
		PerDomain:      make(map[string]DomainStats, len(m.domainGraphs)),
	}
	for id, g := range m.domainGraphs {
		s.PerDomain[id] = DomainStats{NumNodes: g.NodeCount(), NumEdges: g.EdgeCount()}
	}

	return s
}
