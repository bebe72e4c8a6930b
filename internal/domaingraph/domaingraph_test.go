package domaingraph

import (
	"testing"

	"github.com/oahs/router/internal/geometry"
	"github.com/oahs/router/internal/obstacle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphAddEdgeMirrorsUndirected(t *testing.T) {
	g := NewGraph()
	g.AddNode(&Node{ID: 0, DomainID: "wall_0"})
	g.AddNode(&Node{ID: 1, DomainID: "wall_0"})
	g.AddEdge(0, 1, 2.5)

	nbrs := g.Neighbors(1)
	require.Contains(t, nbrs, NodeID(0))
	assert.Equal(t, 2.5, nbrs[NodeID(0)].Weight)
}

func TestGraphDirectedEdgeIsOneWay(t *testing.T) {
	g := NewGraph()
	g.AddNode(&Node{ID: 0})
	g.AddNode(&Node{ID: 1})
	g.AddEdge(0, 1, 1.0, WithDirected())

	assert.Contains(t, g.Neighbors(0), NodeID(1))
	assert.NotContains(t, g.Neighbors(1), NodeID(0))
}

func TestMultiDomainGraphUnifiesAndRebuildsOnStale(t *testing.T) {
	mdg := NewMultiDomainGraph()
	bounds, err := geometry.NewRect(0, 0, 10, 8)
	require.NoError(t, err)
	wallA, _ := obstacle.NewRoutingDomain("wall_a", obstacle.DomainWallCavity, bounds, 0.292)
	wallB, _ := obstacle.NewRoutingDomain("wall_b", obstacle.DomainWallCavity, bounds, 0.292)
	require.NoError(t, mdg.AddDomain(wallA))
	require.NoError(t, mdg.AddDomain(wallB))

	a0 := mdg.NewNodeID("wall_a")
	a1 := mdg.NewNodeID("wall_a")
	b0 := mdg.NewNodeID("wall_b")

	ga, _ := mdg.DomainGraph("wall_a")
	ga.AddNode(&Node{ID: a0, DomainID: "wall_a", Location: [2]float64{0, 0}})
	ga.AddNode(&Node{ID: a1, DomainID: "wall_a", Location: [2]float64{1, 0}})
	ga.AddEdge(a0, a1, 1.0)

	gb, _ := mdg.DomainGraph("wall_b")
	gb.AddNode(&Node{ID: b0, DomainID: "wall_b", Location: [2]float64{0, 0}})

	require.NoError(t, mdg.AddTransition(TransitionEdge{
		ID: "t1", Type: TransitionWallToWall,
		FromDomain: "wall_a", FromNode: a1,
		ToDomain: "wall_b", ToNode: b0,
		Cost: WallToWallCost, Bidirectional: true,
	}))

	unified := mdg.Unified()
	assert.Equal(t, 3, unified.NodeCount())
	nbrs := unified.Neighbors(a1)
	assert.Contains(t, nbrs, b0)
	assert.Equal(t, WallToWallCost, nbrs[b0].Weight)
	assert.True(t, nbrs[b0].IsTransition)

	stats := mdg.Stats()
	assert.Equal(t, 2, stats.NumDomains)
	assert.Equal(t, 1, stats.NumTransitions)
}
