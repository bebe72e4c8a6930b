package pathfind

import (
	"math"
	"testing"

	"github.com/oahs/router/internal/domaingraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLineGraph(t *testing.T) (*domaingraph.Graph, []domaingraph.NodeID) {
	t.Helper()

	g := domaingraph.NewGraph()
	ids := make([]domaingraph.NodeID, 4)
	for i := 0; i < 4; i++ {
		id := domaingraph.NodeID(i + 1)
		ids[i] = id
		g.AddNode(&domaingraph.Node{ID: id, DomainID: "wall_0", Location: [2]float64{float64(i), 0}})
	}
	g.AddEdge(ids[0], ids[1], 1)
	g.AddEdge(ids[1], ids[2], 1)
	g.AddEdge(ids[2], ids[3], 1)

	return g, ids
}

func TestFindTrivialSourceEqualsTarget(t *testing.T) {
	g, ids := buildLineGraph(t)
	result := Find(g, ids[0], ids[0], Options{})

	require.True(t, result.Success)
	assert.Equal(t, []domaingraph.NodeID{ids[0]}, result.Path)
	assert.Equal(t, 0.0, result.Cost)
}

func TestFindShortestPathAlongLine(t *testing.T) {
	g, ids := buildLineGraph(t)
	result := Find(g, ids[0], ids[3], Options{})

	require.True(t, result.Success)
	assert.Equal(t, ids, result.Path)
	assert.InDelta(t, 3.0, result.Cost, 1e-9)
}

func TestFindRespectsBlockedNodes(t *testing.T) {
	g, ids := buildLineGraph(t)
	result := Find(g, ids[0], ids[3], Options{Blocked: map[domaingraph.NodeID]bool{ids[2]: true}})

	assert.False(t, result.Success)
}

func TestFindSkipsInfiniteWeightEdges(t *testing.T) {
	g := domaingraph.NewGraph()
	a := domaingraph.NodeID(1)
	b := domaingraph.NodeID(2)
	g.AddNode(&domaingraph.Node{ID: a, DomainID: "d"})
	g.AddNode(&domaingraph.Node{ID: b, DomainID: "d"})
	g.AddEdge(a, b, math.Inf(1))

	result := Find(g, a, b, Options{})
	assert.False(t, result.Success)
}

func TestToRouteSegmentsFlagsDomainTransition(t *testing.T) {
	g := domaingraph.NewGraph()
	a := domaingraph.NodeID(1)
	b := domaingraph.NodeID(2)
	g.AddNode(&domaingraph.Node{ID: a, DomainID: "wall_0", Location: [2]float64{0, 0}})
	g.AddNode(&domaingraph.Node{ID: b, DomainID: "floor_0", Location: [2]float64{1, 0}})
	g.AddEdge(a, b, 2, domaingraph.WithCrossesObstacle("stud"))

	segs := ToRouteSegments(g, []domaingraph.NodeID{a, b})
	require.Len(t, segs, 1)
	assert.Equal(t, true, segs[0].Metadata["is_transition"])
	assert.True(t, segs[0].CrossesObstacle)
	assert.Equal(t, "stud", segs[0].ObstacleKind)
}
