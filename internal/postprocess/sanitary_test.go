package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oahs/router/internal/geometry"
	"github.com/oahs/router/internal/routeseg"
	"github.com/oahs/router/result"
)

func horizontalRoute(systemType string) *routeseg.Route {
	r := routeseg.NewRoute("r1", systemType, geometry.Point2D{U: 0, V: 5}, geometry.Point2D{U: 10, V: 5})
	r.AddSegment(routeseg.NewRouteSegment(geometry.Point2D{U: 0, V: 5}, geometry.Point2D{U: 10, V: 5}))
	return r
}

func TestApplySlopeLowersEndBelowStart(t *testing.T) {
	cfg := DefaultConfig()
	route := horizontalRoute("sanitary")

	sloped := applySlope(route, cfg)

	require.Len(t, sloped.Segments, 1)
	seg := sloped.Segments[0]
	assert.Less(t, seg.End.V, seg.Start.V)
	assert.InDelta(t, 5-cfg.SlopePerFoot*10, seg.End.V, 1e-9)
	assert.NotContains(t, seg.Metadata, "geometry_violation")
}

func TestApplySlopeFlagsRisingSegment(t *testing.T) {
	cfg := DefaultConfig()
	route := routeseg.NewRoute("r_up", "sanitary", geometry.Point2D{U: 0, V: 0}, geometry.Point2D{U: 4, V: 2})
	route.AddSegment(routeseg.NewRouteSegment(geometry.Point2D{U: 0, V: 0}, geometry.Point2D{U: 4, V: 2}))

	sloped := applySlope(route, cfg)

	require.Len(t, sloped.Segments, 1)
	seg := sloped.Segments[0]
	assert.Equal(t, "upslope", seg.Metadata["geometry_violation"])
	// Flagged segments are retained unchanged, never re-routed.
	assert.Equal(t, 2.0, seg.End.V)
}

func TestApplySlopeKeepsSteeperDescent(t *testing.T) {
	cfg := DefaultConfig()
	route := routeseg.NewRoute("r_down", "sanitary", geometry.Point2D{U: 0, V: 5}, geometry.Point2D{U: 2, V: 1})
	route.AddSegment(routeseg.NewRouteSegment(geometry.Point2D{U: 0, V: 5}, geometry.Point2D{U: 2, V: 1}))

	sloped := applySlope(route, cfg)

	require.Len(t, sloped.Segments, 1)
	// Already descending faster than the minimum slope: left alone.
	assert.Equal(t, 1.0, sloped.Segments[0].End.V)
}

func TestProcessPassesThroughNonSanitaryRoutes(t *testing.T) {
	route := horizontalRoute("power")
	res := result.NewRoutingResult()
	res.AddRoute(route)

	out := Process(res, DefaultConfig())

	require.Len(t, out.Routes, 1)
	assert.Same(t, route, out.Routes[0])
}

func TestProcessTagsVentFlowDirectionReversed(t *testing.T) {
	route := horizontalRoute("vent")
	res := result.NewRoutingResult()
	res.AddRoute(route)

	out := Process(res, DefaultConfig())

	require.Len(t, out.Routes, 1)
	seg := out.Routes[0].Segments[0]
	assert.Equal(t, "end", seg.Metadata["upstream_end"])
	assert.Equal(t, "start", seg.Metadata["downstream_end"])

	// The original route's segment metadata must be untouched.
	assert.Nil(t, route.Segments[0].Metadata)
}

func TestOptimizeElbowsInsertsDiagonalAtRightAngleTurn(t *testing.T) {
	cfg := DefaultConfig()
	route := routeseg.NewRoute("r2", "sanitary", geometry.Point2D{U: 0, V: 0}, geometry.Point2D{U: 5, V: 5})
	route.AddSegment(routeseg.NewRouteSegment(geometry.Point2D{U: 0, V: 0}, geometry.Point2D{U: 5, V: 0}))
	route.AddSegment(routeseg.NewRouteSegment(geometry.Point2D{U: 5, V: 0}, geometry.Point2D{U: 5, V: 5}))

	optimized := optimizeElbows(route, cfg)

	require.Len(t, optimized.Segments, 3)
	assert.Equal(t, routeseg.Diagonal, optimized.Segments[1].Direction)
}

func TestOptimizeElbowsSkipsShortSegments(t *testing.T) {
	cfg := DefaultConfig()
	route := routeseg.NewRoute("r3", "sanitary", geometry.Point2D{U: 0, V: 0}, geometry.Point2D{U: 0.2, V: 0.2})
	route.AddSegment(routeseg.NewRouteSegment(geometry.Point2D{U: 0, V: 0}, geometry.Point2D{U: 0.2, V: 0}))
	route.AddSegment(routeseg.NewRouteSegment(geometry.Point2D{U: 0.2, V: 0}, geometry.Point2D{U: 0.2, V: 0.2}))

	optimized := optimizeElbows(route, cfg)

	require.Len(t, optimized.Segments, 2)
}
