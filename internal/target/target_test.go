package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanServeSystemByKindTable(t *testing.T) {
	wetWall := RoutingTarget{Kind: KindWetWall, Available: true}
	panel := RoutingTarget{Kind: KindPanelBoundary, Available: true}

	assert.True(t, wetWall.CanServeSystem("sanitary"))
	assert.True(t, wetWall.CanServeSystem("Sanitary"))
	assert.True(t, wetWall.CanServeSystem("vent"))
	assert.False(t, wetWall.CanServeSystem("power"))

	assert.True(t, panel.CanServeSystem("power"))
	assert.True(t, panel.CanServeSystem("data"))
	assert.False(t, panel.CanServeSystem("sanitary"))
}

func TestExplicitSystemsServedOverridesKindTable(t *testing.T) {
	// A wet wall restricted to vent only: sanitary no longer allowed
	// even though the kind table would permit it.
	restricted := RoutingTarget{Kind: KindWetWall, SystemsServed: []string{"vent"}}

	assert.True(t, restricted.CanServeSystem("vent"))
	assert.True(t, restricted.CanServeSystem("Vent"))
	assert.False(t, restricted.CanServeSystem("sanitary"))
}

func TestCanFitPipe(t *testing.T) {
	tgt := RoutingTarget{Capacity: 0.333}

	assert.True(t, tgt.CanFitPipe(0.333))
	assert.True(t, tgt.CanFitPipe(0.167))
	assert.False(t, tgt.CanFitPipe(0.5))
}

func TestDistances(t *testing.T) {
	tgt := RoutingTarget{WorldXYZ: [3]float64{3, 4, 0}, PlaneUV: [2]float64{3, 4}}

	assert.InDelta(t, 5.0, tgt.DistanceTo([3]float64{0, 0, 0}), 1e-9)
	assert.InDelta(t, 5.0, tgt.PlaneDistanceTo(0, 0), 1e-9)
	assert.InDelta(t, 7.0, tgt.ManhattanDistanceTo(0, 0), 1e-9)
}

func TestSortCandidatesIsStable(t *testing.T) {
	candidates := []Candidate{
		{Target: RoutingTarget{ID: "b"}, Score: 2},
		{Target: RoutingTarget{ID: "a1"}, Score: 1},
		{Target: RoutingTarget{ID: "a2"}, Score: 1},
	}

	SortCandidates(candidates)

	require.Len(t, candidates, 3)
	assert.Equal(t, "a1", candidates[0].Target.ID)
	assert.Equal(t, "a2", candidates[1].Target.ID)
	assert.Equal(t, "b", candidates[2].Target.ID)
}

func TestFilterForSystem(t *testing.T) {
	targets := []RoutingTarget{
		{ID: "ww", Kind: KindWetWall, Available: true, Capacity: 0.333},
		{ID: "unavailable", Kind: KindWetWall, Available: false, Capacity: 0.333},
		{ID: "small", Kind: KindWetWall, Available: true, Capacity: 0.1},
		{ID: "panel", Kind: KindPanelBoundary, Available: true, Capacity: 0.333},
	}

	got := FilterForSystem(targets, "sanitary", 0.25)

	require.Len(t, got, 1)
	assert.Equal(t, "ww", got[0].ID)
}

func TestRankByDistanceFlagsFloorRouting(t *testing.T) {
	near := RoutingTarget{ID: "near", Kind: KindWetWall, WorldXYZ: [3]float64{1, 0, 0}}
	far := RoutingTarget{ID: "far", Kind: KindFloorPenetration, WorldXYZ: [3]float64{5, 0, 0}}

	ranked := RankByDistance([]RoutingTarget{far, near}, [3]float64{0, 0, 0})

	require.Len(t, ranked, 2)
	assert.Equal(t, "near", ranked[0].Target.ID)
	assert.False(t, ranked[0].RequiresFloorRouting)
	assert.True(t, ranked[1].RequiresFloorRouting)
}
