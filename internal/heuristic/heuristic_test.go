package heuristic

import (
	"math"
	"testing"

	"github.com/oahs/router/connector"
	"github.com/oahs/router/internal/target"
	"github.com/stretchr/testify/assert"
)

func TestSanitaryRejectsTargetsAboveElevation(t *testing.T) {
	h := NewSanitaryHeuristic()
	conn := connector.ConnectorInfo{SystemType: "sanitary", Elevation: 1.0, WorldXYZ: [3]float64{0, 0, 1.0}, Diameter: 0.167}
	above := target.RoutingTarget{Kind: target.KindWetWall, Available: true, Capacity: 0.333, WorldXYZ: [3]float64{0, 0, 3.0}}

	candidates := h.FindCandidates(conn, []target.RoutingTarget{above}, 5)
	assert.Empty(t, candidates)
}

func TestSanitaryRejectsSmallToiletTarget(t *testing.T) {
	h := NewSanitaryHeuristic()
	conn := connector.ConnectorInfo{SystemType: "sanitary", FixtureType: "Toilet", Elevation: 1.0, WorldXYZ: [3]float64{0, 0, 1.0}, Diameter: 0.167}
	small := target.RoutingTarget{Kind: target.KindWetWall, Available: true, Capacity: 0.2, WorldXYZ: [3]float64{0, 0, 0.5}}

	assert.True(t, math.IsInf(h.score(conn, small), 1))
}

func TestVentDoesNotRejectDownwardTargets(t *testing.T) {
	h := NewVentHeuristic()
	conn := connector.ConnectorInfo{SystemType: "vent", Elevation: 5.0, WorldXYZ: [3]float64{0, 0, 5.0}, Diameter: 0.167}
	downward := target.RoutingTarget{Kind: target.KindWetWall, Available: true, Capacity: 0.333, WorldXYZ: [3]float64{0, 0, 1.0}}

	candidates := h.FindCandidates(conn, []target.RoutingTarget{downward}, 5)
	assert.Len(t, candidates, 1)
}

func TestDataHeuristicAppliesCat6Overage(t *testing.T) {
	h := NewDataHeuristic()
	conn := connector.ConnectorInfo{SystemType: "data", WorldXYZ: [3]float64{0, 0, 0}, Diameter: 0.0625}
	near := target.RoutingTarget{Kind: target.KindPanelBoundary, Available: true, Capacity: 0.0625, WorldXYZ: [3]float64{100, 0, 0}, Metadata: map[string]interface{}{"panel_type": "data"}}
	far := target.RoutingTarget{Kind: target.KindPanelBoundary, Available: true, Capacity: 0.0625, WorldXYZ: [3]float64{400, 0, 0}, Metadata: map[string]interface{}{"panel_type": "data"}}

	candidates := h.FindCandidates(conn, []target.RoutingTarget{near, far}, 5)
	assert.Len(t, candidates, 2)
	// The near target ranks first.
	assert.Equal(t, near.WorldXYZ, candidates[0].Target.WorldXYZ)
	// The far target is 100 ft past the Cat6 limit: 400 (distance) - 10
	// (data panel bonus) + 2*(400-300) (overage) = 590.
	assert.InDelta(t, 590.0, candidates[1].Score, 1e-9)
}

func TestDefaultRegistryIncludesLightingAndSupply(t *testing.T) {
	r := NewDefaultRegistry()
	_, isLighting := r.Lookup("lighting").(LightingHeuristic)
	assert.True(t, isLighting)

	_, isSupply := r.Lookup("supply").(SupplyHeuristic)
	assert.True(t, isSupply)
}

func TestRegistryFallsBackForUnknownSystem(t *testing.T) {
	r := NewDefaultRegistry()
	_, isFallback := r.Lookup("refrigerant").(FallbackHeuristic)
	assert.True(t, isFallback)
}
