package latticegraph

import (
	"testing"

	"github.com/oahs/router/internal/domaingraph"
	"github.com/oahs/router/internal/geometry"
	"github.com/oahs/router/internal/obstacle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridDimensionUsesCeiling(t *testing.T) {
	// (10-0)/0.333 = 30.03 -> ceil = 31, +1 = 32 nodes, not 31 (truncation).
	assert.Equal(t, 32, gridDimension(0, 10, 0.333))
}

func TestBuildWallLatticeBlocksNonPenetrableEndStud(t *testing.T) {
	d, err := obstacle.NewWallDomain("wall_0", 4.0, 8.0, obstacle.DefaultWallDomainOptions())
	require.NoError(t, err)

	mdg := domaingraph.NewMultiDomainGraph()
	require.NoError(t, mdg.AddDomain(d))

	BuildWallLattice(mdg, d, DefaultWallLatticeOptions())

	g, _ := mdg.DomainGraph(d.ID)
	assert.Greater(t, g.NodeCount(), 0)
	assert.Greater(t, g.EdgeCount(), 0)

	// No edge may reach into the non-penetrable end stud.
	var endStud obstacle.Obstacle
	for _, o := range d.Obstacles {
		if o.ID == "wall_0_stud_end" {
			endStud = o
		}
	}
	require.Equal(t, "wall_0_stud_end", endStud.ID)
	for _, e := range g.Edges() {
		from, _ := g.Node(e.From)
		to, _ := g.Node(e.To)
		assert.False(t, endStud.IntersectsSegment(
			geometry.NewPoint2D(from.Location[0], from.Location[1]),
			geometry.NewPoint2D(to.Location[0], to.Location[1]),
		), "edge %v -> %v crosses the end stud", e.From, e.To)
	}
}

func TestBuildFloorLatticeWebOpeningHalvesCost(t *testing.T) {
	d, err := obstacle.NewFloorDomain("floor_0", 8.0, 8.0, obstacle.DefaultFloorDomainOptions())
	require.NoError(t, err)

	mdg := domaingraph.NewMultiDomainGraph()
	require.NoError(t, mdg.AddDomain(d))

	opts := DefaultFloorLatticeOptions()
	BuildFloorLattice(mdg, d, opts)

	withZone := DefaultFloorLatticeOptions()
	withZone.WebOpenings = []obstacle.WebOpeningZone{{MinX: 0, MaxX: 8, MinY: 0, MaxY: 8}}

	mdg2 := domaingraph.NewMultiDomainGraph()
	require.NoError(t, mdg2.AddDomain(d))
	BuildFloorLattice(mdg2, d, withZone)

	g1, _ := mdg.DomainGraph(d.ID)
	g2, _ := mdg2.DomainGraph(d.ID)

	var joistEdgeWeight1, joistEdgeWeight2 float64
	for _, e := range g1.Edges() {
		if e.CrossesObstacle {
			joistEdgeWeight1 = e.Weight
			break
		}
	}
	for _, e := range g2.Edges() {
		if e.CrossesObstacle {
			joistEdgeWeight2 = e.Weight
			break
		}
	}

	require.Greater(t, joistEdgeWeight1, 0.0)
	assert.InDelta(t, joistEdgeWeight1/2, joistEdgeWeight2, 1e-9)
}
