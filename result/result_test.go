package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oahs/router/connector"
	"github.com/oahs/router/internal/geometry"
	"github.com/oahs/router/internal/routeseg"
)

func newTestRoute(id, systemType, domainID string) *routeseg.Route {
	r := routeseg.NewRoute(id, systemType, geometry.NewPoint2D(0, 0), geometry.NewPoint2D(5, 0))
	r.AddSegment(routeseg.NewRouteSegment(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(5, 0), routeseg.WithDomainID(domainID)))
	return r
}

func TestNewRoutingResultStampsRunIDAndTimestamp(t *testing.T) {
	r1 := NewRoutingResult()
	r2 := NewRoutingResult()

	assert.NotEmpty(t, r1.RunID)
	assert.NotEmpty(t, r1.Timestamp)
	assert.NotEqual(t, r1.RunID, r2.RunID, "each call must mint a fresh run id")
}

func TestAddRouteUpdatesStatistics(t *testing.T) {
	res := NewRoutingResult()
	route := newTestRoute("route_1", "sanitary", "wall_1")

	res.AddRoute(route)

	assert.Equal(t, 1, res.Statistics.SuccessfulRoutes)
	assert.Equal(t, route.TotalLength, res.Statistics.TotalLength)
	assert.Equal(t, route.TotalCost, res.Statistics.TotalCost)
	assert.True(t, res.IsComplete())
}

func TestAddFailureUpdatesStatisticsAndIsComplete(t *testing.T) {
	res := NewRoutingResult()
	conn := connector.ConnectorInfo{ID: "c1", SystemType: "sanitary", WallID: "wall_1"}

	res.AddFailure(conn, "no path found to any candidate target", "NO_PATH", true, []string{"t1", "t2"})

	require.Len(t, res.Failed, 1)
	assert.Equal(t, 1, res.Statistics.FailedRoutes)
	assert.False(t, res.IsComplete())
	assert.Equal(t, []string{"t1", "t2"}, res.Failed[0].AttemptedTargets)
}

func TestSuccessRateZeroConnectors(t *testing.T) {
	var s RoutingStatistics
	assert.Equal(t, 0.0, s.SuccessRate())
}

func TestSuccessRate(t *testing.T) {
	s := RoutingStatistics{TotalConnectors: 4, SuccessfulRoutes: 3}
	assert.InDelta(t, 75.0, s.SuccessRate(), 1e-9)
}

func TestSealRecordsRoutingTime(t *testing.T) {
	res := NewRoutingResult()
	res.Seal(42.5)
	assert.Equal(t, 42.5, res.Statistics.RoutingTimeMs)
}

func TestRoutesBySystemAndInDomain(t *testing.T) {
	res := NewRoutingResult()
	res.AddRoute(newTestRoute("r1", "sanitary", "wall_1"))
	res.AddRoute(newTestRoute("r2", "power", "wall_2"))
	res.AddRoute(newTestRoute("r3", "sanitary", "wall_2"))

	assert.Len(t, res.RoutesBySystem("sanitary"), 2)
	assert.Len(t, res.RoutesBySystem("power"), 1)
	assert.Len(t, res.RoutesInDomain("wall_2"), 2)
	assert.Len(t, res.RoutesInDomain("wall_1"), 1)
}

func TestJSONRoundTripPreservesRoutesAndRunID(t *testing.T) {
	res := NewRoutingResult()
	res.AddRoute(newTestRoute("r1", "sanitary", "wall_1"))
	res.Seal(10)

	data, err := res.ToJSON(false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"is_complete":true`)

	round, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, res.RunID, round.RunID)
	require.Len(t, round.Routes, 1)
	assert.Equal(t, res.Routes[0].ID, round.Routes[0].ID)
	assert.Equal(t, res.Routes[0].Segments[0].Start, round.Routes[0].Segments[0].Start)
}

func TestYAMLRoundTrip(t *testing.T) {
	res := NewRoutingResult()
	res.AddFailure(connector.ConnectorInfo{ID: "c1", SystemType: "vent", WallID: "wall_1"}, "no targets", "NO_TARGETS", true, nil)

	data, err := res.ToYAML()
	require.NoError(t, err)

	round, err := FromYAML(data)
	require.NoError(t, err)
	require.Len(t, round.Failed, 1)
	assert.Equal(t, "c1", round.Failed[0].ConnectorID)
}
