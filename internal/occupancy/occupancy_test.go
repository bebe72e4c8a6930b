package occupancy

import (
	"testing"

	"github.com/oahs/router/internal/geometry"
	"github.com/stretchr/testify/assert"
)

func TestReserveAndIsAvailable(t *testing.T) {
	m := NewOccupancyMap()
	m.Reserve("wall_1", OccupiedSegment{
		RouteID:  "route_a",
		Start:    geometry.NewPoint2D(0, 0),
		End:      geometry.NewPoint2D(0, 5),
		Diameter: 0.333,
	})

	// Far away: available.
	ok, _ := m.IsAvailable("wall_1", geometry.NewPoint2D(5, 0), geometry.NewPoint2D(5, 5), 0.333, DefaultClearance)
	assert.True(t, ok)

	// Overlapping: not available, blocker reported.
	ok, blocker := m.IsAvailable("wall_1", geometry.NewPoint2D(0, 0), geometry.NewPoint2D(0, 5), 0.333, DefaultClearance)
	assert.False(t, ok)
	assert.Equal(t, "route_a", blocker)
}

func TestReleaseRemovesOnlyMatchingRoute(t *testing.T) {
	m := NewOccupancyMap()
	m.Reserve("wall_1", OccupiedSegment{RouteID: "a", Start: geometry.NewPoint2D(0, 0), End: geometry.NewPoint2D(1, 0), Diameter: 0.1})
	m.Reserve("wall_1", OccupiedSegment{RouteID: "b", Start: geometry.NewPoint2D(2, 0), End: geometry.NewPoint2D(3, 0), Diameter: 0.1})

	removed := m.Release("wall_1", "a")
	assert.Equal(t, 1, removed)

	ok, _ := m.IsAvailable("wall_1", geometry.NewPoint2D(0, 0), geometry.NewPoint2D(1, 0), 0.1, DefaultClearance)
	assert.True(t, ok)

	ok, blocker := m.IsAvailable("wall_1", geometry.NewPoint2D(2, 0), geometry.NewPoint2D(3, 0), 0.1, DefaultClearance)
	assert.False(t, ok)
	assert.Equal(t, "b", blocker)
}

func TestReleaseAllSpansDomains(t *testing.T) {
	m := NewOccupancyMap()
	m.Reserve("wall_1", OccupiedSegment{RouteID: "a", Start: geometry.NewPoint2D(0, 0), End: geometry.NewPoint2D(1, 0), Diameter: 0.1})
	m.Reserve("floor_1", OccupiedSegment{RouteID: "a", Start: geometry.NewPoint2D(0, 0), End: geometry.NewPoint2D(1, 0), Diameter: 0.1})

	removed := m.ReleaseAll("a")
	assert.Equal(t, 2, removed)
}

func TestGetConflictsReturnsAll(t *testing.T) {
	m := NewOccupancyMap()
	m.Reserve("wall_1", OccupiedSegment{RouteID: "a", Start: geometry.NewPoint2D(0, 0), End: geometry.NewPoint2D(0, 5), Diameter: 0.1})
	m.Reserve("wall_1", OccupiedSegment{RouteID: "b", Start: geometry.NewPoint2D(0, 1), End: geometry.NewPoint2D(0, 6), Diameter: 0.1})

	conflicts := m.GetConflicts("wall_1", geometry.NewPoint2D(0, 0), geometry.NewPoint2D(0, 5), 0.1, DefaultClearance)
	assert.Len(t, conflicts, 2)
}
