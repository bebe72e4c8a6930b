package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oahs/router/connector"
)

func TestNewWallRoutingResultPartitionsWallOnlyRoutes(t *testing.T) {
	full := NewRoutingResult()
	full.AddRoute(newTestRoute("r_wall", "power", "wall_1"))

	crossing := newTestRoute("r_cross", "sanitary", "wall_1")
	crossing.DomainsCrossed = append(crossing.DomainsCrossed, "floor_1")
	full.AddRoute(crossing)

	w := NewWallRoutingResult(full, "wall_1", ObstacleSourceDerived)

	require.Len(t, w.WallRoutes, 1)
	assert.Equal(t, "r_wall", w.WallRoutes[0].ID)
	require.Len(t, w.ExitPoints, 1)
	require.Len(t, w.FloorPassthroughs, 1)
	assert.Equal(t, WallRoutingReady, w.Status)
	assert.Equal(t, ObstacleSourceDerived, w.ObstacleSource)
}

func TestNewWallRoutingResultNeedsInputWhenUnrouted(t *testing.T) {
	full := NewRoutingResult()
	full.AddFailure(connector.ConnectorInfo{ID: "c1", SystemType: "sanitary", WallID: "wall_1"}, "no path found", "NO_PATH", true, nil)

	w := NewWallRoutingResult(full, "wall_1", ObstacleSourceFraming)

	require.Len(t, w.Unrouted, 1)
	assert.Equal(t, "c1", w.Unrouted[0])
	assert.Equal(t, WallRoutingNeedsInput, w.Status)
	assert.NotEmpty(t, w.Needs)
}

func TestNewWallRoutingResultIgnoresRouteInOtherDomain(t *testing.T) {
	full := NewRoutingResult()
	full.AddRoute(newTestRoute("r_other", "power", "wall_2"))

	w := NewWallRoutingResult(full, "wall_1", ObstacleSourceDerived)

	assert.Empty(t, w.WallRoutes)
	assert.Empty(t, w.FloorPassthroughs)
}
