package oahs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oahs/router/internal/obstacle"
	"github.com/oahs/router/result"
)

func TestRouterRoutesSanitaryConnectorToWetWall(t *testing.T) {
	wall, err := obstacle.NewWallDomain("wall_1", 10, 8, obstacle.DefaultWallDomainOptions())
	require.NoError(t, err)

	r := NewRouter()
	require.NoError(t, r.AddWallDomain(wall))

	conn := ConnectorInfo{
		ID:         "c1",
		SystemType: "sanitary",
		WorldXYZ:   [3]float64{1.0, 1.0, 1.0},
		Elevation:  1.0,
		Diameter:   0.167,
		WallID:     wall.ID,
	}
	tgt := RoutingTarget{
		ID:        "t1",
		Kind:      KindWetWall,
		WorldXYZ:  [3]float64{8.0, 0.5, 0.5},
		DomainID:  wall.ID,
		PlaneUV:   [2]float64{8.0, 0.5},
		Capacity:  0.333,
		Available: true,
	}

	res := r.RouteAll([]ConnectorInfo{conn}, []RoutingTarget{tgt})

	require.Len(t, res.Routes, 1)
	assert.Empty(t, res.Failed)
	assert.True(t, res.IsComplete())
	assert.GreaterOrEqual(t, res.Statistics.RoutingTimeMs, 0.0)
}

func TestRouterRouteWallOnlyPartitionsResult(t *testing.T) {
	wall, err := obstacle.NewWallDomain("wall_1", 10, 8, obstacle.DefaultWallDomainOptions())
	require.NoError(t, err)

	r := NewRouter()
	require.NoError(t, r.AddWallDomain(wall))

	conn := ConnectorInfo{
		ID: "c1", SystemType: "power", WorldXYZ: [3]float64{1.0, 1.0, 1.0}, WallID: wall.ID,
	}
	tgt := RoutingTarget{
		ID: "t1", Kind: KindPanelBoundary, DomainID: wall.ID,
		WorldXYZ: [3]float64{8.0, 7.0, 1.0}, PlaneUV: [2]float64{8.0, 7.0},
		Capacity: 0.0625, Available: true,
	}

	wres := r.RouteWallOnly(wall.ID, []ConnectorInfo{conn}, []RoutingTarget{tgt}, result.ObstacleSourceDerived)

	require.Len(t, wres.WallRoutes, 1)
	assert.Equal(t, result.WallRoutingReady, wres.Status)
}

func TestRouterSteinerTreeConnectsAllTerminals(t *testing.T) {
	wall, err := obstacle.NewWallDomain("wall_1", 10, 8, obstacle.DefaultWallDomainOptions())
	require.NoError(t, err)

	r := NewRouter()
	require.NoError(t, r.AddWallDomain(wall))

	terminals := [][2]float64{{1.0, 6.0}, {5.0, 6.0}, {9.0, 6.0}, {5.0, 1.0}}
	route, ok := r.RouteSteinerTree("branch_drain", "sanitary", wall.ID, terminals)

	require.True(t, ok)
	require.NotEmpty(t, route.Segments)

	// Every terminal appears as a segment endpoint (grid coordinates are
	// rounded to the Hanan merge tolerance, so compare approximately).
	near := func(a, b [2]float64) bool {
		return math.Abs(a[0]-b[0]) < 1e-4 && math.Abs(a[1]-b[1]) < 1e-4
	}
	for _, term := range terminals {
		found := false
		for _, seg := range route.Segments {
			if near([2]float64{seg.Start.U, seg.Start.V}, term) ||
				near([2]float64{seg.End.U, seg.End.V}, term) {
				found = true
				break
			}
		}
		assert.True(t, found, "terminal %v missing from tree", term)
	}
}

func TestRouterSteinerTreeRejectsUnknownDomain(t *testing.T) {
	r := NewRouter()
	_, ok := r.RouteSteinerTree("x", "sanitary", "missing", [][2]float64{{0, 0}, {1, 1}})
	assert.False(t, ok)
}

func buildWallAndFloorRouter(t *testing.T) *Router {
	t.Helper()

	wall, err := obstacle.NewWallDomain("wall_1", 10, 8, obstacle.DefaultWallDomainOptions())
	require.NoError(t, err)
	floor, err := obstacle.NewFloorDomain("floor_1", 12, 12, obstacle.DefaultFloorDomainOptions())
	require.NoError(t, err)

	r := NewRouter()
	require.NoError(t, r.AddWallDomain(wall))
	require.NoError(t, r.AddFloorDomain(floor))

	return r
}

func TestConnectWallToFloorIsDeterministicAcrossIdenticalRouters(t *testing.T) {
	r1 := buildWallAndFloorRouter(t)
	r2 := buildWallAndFloorRouter(t)

	edges1 := r1.ConnectWallToFloor("wall_1", "floor_1", 0, [2]float64{0, 0}, [2]float64{1, 0})
	edges2 := r2.ConnectWallToFloor("wall_1", "floor_1", 0, [2]float64{0, 0}, [2]float64{1, 0})

	require.NotEmpty(t, edges1)
	assert.Equal(t, edges1, edges2)
}

func TestConnectWallToWallJoinsCornerNodes(t *testing.T) {
	wallA, err := obstacle.NewWallDomain("wall_a", 10, 8, obstacle.DefaultWallDomainOptions())
	require.NoError(t, err)
	wallB, err := obstacle.NewWallDomain("wall_b", 8, 8, obstacle.DefaultWallDomainOptions())
	require.NoError(t, err)

	r := NewRouter()
	require.NoError(t, r.AddWallDomain(wallA))
	require.NoError(t, r.AddWallDomain(wallB))

	edge, ok := r.ConnectWallToWall("wall_a", "wall_b", [2]float64{10, 0})

	require.True(t, ok)
	assert.Equal(t, "wall_a", edge.FromDomain)
	assert.Equal(t, "wall_b", edge.ToDomain)
	// Max-U end of wall A meets min-U end of wall B.
	assert.InDelta(t, 10.0, edge.FromLocation[0], 1e-9)
	assert.InDelta(t, 0.0, edge.ToLocation[0], 1e-9)
}

func TestConnectFloorToCeilingPairsMatchingNodes(t *testing.T) {
	floor, err := obstacle.NewFloorDomain("floor_1", 6, 6, obstacle.DefaultFloorDomainOptions())
	require.NoError(t, err)
	ceilBounds, err := obstacle.NewFloorDomain("ceiling_1", 6, 6, obstacle.DefaultFloorDomainOptions())
	require.NoError(t, err)
	ceilBounds.Kind = obstacle.DomainCeilingCavity

	r := NewRouter()
	require.NoError(t, r.AddFloorDomain(floor))
	require.NoError(t, r.AddFloorDomain(ceilBounds))

	edges := r.ConnectFloorToCeiling("floor_1", "ceiling_1")

	require.NotEmpty(t, edges)
	for _, e := range edges {
		// Identical grids pair each floor node with the ceiling node at
		// the same XY.
		assert.Equal(t, e.FromLocation, e.ToLocation)
	}
}

func TestRouterStatisticsReflectsDomainAndOccupancy(t *testing.T) {
	wall, err := obstacle.NewWallDomain("wall_1", 10, 8, obstacle.DefaultWallDomainOptions())
	require.NoError(t, err)

	r := NewRouter()
	require.NoError(t, r.AddWallDomain(wall))

	conn := ConnectorInfo{
		ID: "c1", SystemType: "sanitary", WorldXYZ: [3]float64{1.0, 1.0, 1.0},
		Elevation: 1.0, Diameter: 0.167, WallID: wall.ID,
	}
	tgt := RoutingTarget{
		ID: "t1", Kind: KindWetWall, DomainID: wall.ID,
		WorldXYZ: [3]float64{8.0, 0.5, 0.5}, PlaneUV: [2]float64{8.0, 0.5},
		Capacity: 0.333, Available: true,
	}

	r.RouteAll([]ConnectorInfo{conn}, []RoutingTarget{tgt})

	stats := r.Statistics()
	assert.Equal(t, 1, stats.Domains)
	assert.Greater(t, stats.OccupancySegments, 0)
}
