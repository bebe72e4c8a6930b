package hanan

import (
	"testing"

	"github.com/oahs/router/internal/geometry"
	"github.com/oahs/router/internal/obstacle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTerminalsBuildsRowMajorGrid(t *testing.T) {
	terminals := []geometry.Point2D{
		{U: 0, V: 0},
		{U: 4, V: 0},
		{U: 0, V: 3},
	}

	grid := FromTerminals(terminals, nil, 0)

	assert.Equal(t, []float64{0, 4}, grid.XCoords)
	assert.Equal(t, []float64{0, 3}, grid.YCoords)
	require.Len(t, grid.Points, 4)
	// Row-major: y=0 row first (x=0, then x=4), then y=3 row.
	assert.Equal(t, geometry.Point2D{U: 0, V: 0}, grid.Points[0])
	assert.Equal(t, geometry.Point2D{U: 4, V: 0}, grid.Points[1])
	assert.Equal(t, geometry.Point2D{U: 0, V: 3}, grid.Points[2])
	assert.Len(t, grid.TerminalIndices, 3)
}

func TestMarkObstaclesBlocksAndUpcosts(t *testing.T) {
	terminals := []geometry.Point2D{{U: 0, V: 0}, {U: 2, V: 0}, {U: 0, V: 2}}

	blockedBounds, err := geometry.NewRect(1.9, -0.1, 2.1, 0.1)
	require.NoError(t, err)
	blocked, err := obstacle.NewObstacle("b1", obstacle.KindStud, blockedBounds, false, 0)
	require.NoError(t, err)

	penetrableBounds, err := geometry.NewRect(-0.1, 1.9, 0.1, 2.1)
	require.NoError(t, err)
	penetrable, err := obstacle.NewObstacle("p1", obstacle.KindStud, penetrableBounds, true, 0.4)
	require.NoError(t, err)

	grid := FromTerminals(terminals, []obstacle.Obstacle{blocked, penetrable}, 0)

	idx, ok := grid.pointIndex[[2]float64{2, 0}]
	require.True(t, ok)
	assert.True(t, grid.Blocked[idx])

	pIdx, ok := grid.pointIndex[[2]float64{0, 2}]
	require.True(t, ok)
	assert.False(t, grid.Blocked[pIdx])
	assert.Equal(t, 5.0, grid.HighCost[pIdx])
}

func TestEdgeCostAppliesMaxMultiplierAndBlocksInf(t *testing.T) {
	terminals := []geometry.Point2D{{U: 0, V: 0}, {U: 1, V: 0}}
	grid := FromTerminals(terminals, nil, 0)

	idx0 := grid.pointIndex[[2]float64{0, 0}]
	idx1 := grid.pointIndex[[2]float64{1, 0}]

	grid.HighCost[idx1] = 5.0
	assert.InDelta(t, 5.0, grid.EdgeCost(idx0, idx1), 1e-9)

	grid.Blocked[idx1] = true
	assert.True(t, grid.EdgeCost(idx0, idx1) > 1e300)
}

func TestComputeMSTConnectsAllTerminalsAndPrunesSteinerTails(t *testing.T) {
	// An "L" of 3 terminals plus the implied corner Steiner point.
	terminals := []geometry.Point2D{{U: 0, V: 0}, {U: 4, V: 0}, {U: 4, V: 3}}
	grid := FromTerminals(terminals, nil, 0)

	edges := ComputeMST(grid, grid.TerminalIndices)
	require.NotEmpty(t, edges)

	adj := buildAdjacency(edges)
	for _, t1 := range grid.TerminalIndices {
		reached := bfsReachable(adj, t1)
		for _, t2 := range grid.TerminalIndices {
			assert.True(t, reached[t2], "terminal %d must reach terminal %d", t1, t2)
		}
	}

	// No non-terminal leaf should remain after pruning.
	terminalSet := make(map[int]bool)
	for _, idx := range grid.TerminalIndices {
		terminalSet[idx] = true
	}
	for node, neighbors := range adj {
		if !terminalSet[node] {
			assert.NotEqual(t, 1, len(neighbors), "non-terminal leaf %d should have been pruned", node)
		}
	}
}

func TestComputeMSTIsDeterministicAcrossRepeatCalls(t *testing.T) {
	// Two independent collinear chains are prunable at the same time
	// here; the merge order must not depend on map iteration.
	terminals := []geometry.Point2D{
		{U: 0, V: 0}, {U: 6, V: 0}, {U: 0, V: 5}, {U: 6, V: 5}, {U: 3, V: 2},
	}

	grid1 := FromTerminals(terminals, nil, 0)
	first := ComputeMST(grid1, grid1.TerminalIndices)

	for i := 0; i < 10; i++ {
		grid2 := FromTerminals(terminals, nil, 0)
		assert.Equal(t, first, ComputeMST(grid2, grid2.TerminalIndices))
	}
}

func TestToRouteSegmentsFlagsSteinerEndpoints(t *testing.T) {
	terminals := []geometry.Point2D{{U: 0, V: 0}, {U: 4, V: 0}, {U: 4, V: 3}}
	grid := FromTerminals(terminals, nil, 0)
	edges := ComputeMST(grid, grid.TerminalIndices)

	sourceIdx := grid.TerminalIndices[0]
	segments := ToRouteSegments(grid, edges, sourceIdx, "wall_0")
	require.NotEmpty(t, segments)

	for _, seg := range segments {
		assert.Equal(t, "wall_0", seg.DomainID)
		assert.Greater(t, seg.Cost, 0.0)
	}
}

func bfsReachable(adj map[int][]adjEntry, source int) map[int]bool {
	visited := map[int]bool{source: true}
	queue := []int{source}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range adj[cur] {
			if !visited[e.Neighbor] {
				visited[e.Neighbor] = true
				queue = append(queue, e.Neighbor)
			}
		}
	}

	return visited
}
