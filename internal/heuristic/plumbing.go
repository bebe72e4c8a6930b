package heuristic

import (
	"fmt"
	"math"

	"github.com/oahs/router/connector"
	"github.com/oahs/router/internal/target"
)

// ToiletMinCapacity is the minimum target capacity (ft) accepted for a
// connector whose fixture type names a toilet (spec.md §6.4).
const ToiletMinCapacity = 0.25

// SanitaryHeuristic scores targets for gravity-drained sanitary drain
// runs. Grounded on original_source's heuristics/plumbing.py
// SanitaryHeuristic.
type SanitaryHeuristic struct {
	WetWallBonus float64
	ShaftBonus   float64
}

// NewSanitaryHeuristic returns a SanitaryHeuristic with spec.md §4.3's
// default bonuses.
func NewSanitaryHeuristic() SanitaryHeuristic {
	return SanitaryHeuristic{WetWallBonus: -10.0, ShaftBonus: -5.0}
}

// SystemTypes implements TargetHeuristic.
func (h SanitaryHeuristic) SystemTypes() []string {
	return []string{"sanitary", "sanitary_drain", "drain"}
}

// PreferredKinds implements TargetHeuristic.
func (h SanitaryHeuristic) PreferredKinds() []target.Kind {
	return []target.Kind{target.KindWetWall, target.KindShaft, target.KindFloorPenetration}
}

// score returns the sanitary score for t, or +Inf if t must be rejected
// (above the connector's elevation, gravity; or too small for a toilet).
func (h SanitaryHeuristic) score(conn connector.ConnectorInfo, t target.RoutingTarget) float64 {
	if t.WorldXYZ[2] > conn.Elevation {
		return math.Inf(1)
	}

	if isToiletFixture(conn.FixtureType) && t.Capacity < ToiletMinCapacity {
		return math.Inf(1)
	}

	s, _ := baseScore(conn, t)
	switch t.Kind {
	case target.KindWetWall:
		s += h.WetWallBonus
	case target.KindShaft:
		s += h.ShaftBonus
	}

	horizontal := math.Abs(conn.WorldXYZ[0]-t.WorldXYZ[0]) + math.Abs(conn.WorldXYZ[1]-t.WorldXYZ[1])
	s += horizontal * 0.5 // slope-maintenance penalty

	return s
}

// FindCandidates implements TargetHeuristic.
func (h SanitaryHeuristic) FindCandidates(conn connector.ConnectorInfo, targets []target.RoutingTarget, maxCandidates int) []target.Candidate {
	filtered := filterAvailableAndFit(conn, targets, h.PreferredKinds())

	out := make([]target.Candidate, 0, len(filtered))
	for _, t := range filtered {
		if t.WorldXYZ[2] > conn.Elevation {
			continue
		}

		s := h.score(conn, t)
		if math.IsInf(s, 1) {
			continue
		}

		_, distance := baseScore(conn, t)
		out = append(out, target.Candidate{
			Target:   t,
			Score:    s,
			Distance: distance,
			DomainID: t.DomainID,
			Notes:    fmt.Sprintf("distance: %.2f ft, score: %.2f", distance, s),
		})
	}

	target.SortCandidates(out)
	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}

	return out
}

// VentHeuristic scores targets for sanitary vent runs: prefers upward
// targets but does not reject downward ones (trap loops). Grounded on
// original_source's heuristics/plumbing.py VentHeuristic.
type VentHeuristic struct {
	WetWallBonus   float64
	CeilingPenalty float64
}

// NewVentHeuristic returns a VentHeuristic with spec.md §4.3's default
// bonus/penalty.
func NewVentHeuristic() VentHeuristic {
	return VentHeuristic{WetWallBonus: -8.0, CeilingPenalty: 5.0}
}

// SystemTypes implements TargetHeuristic.
func (h VentHeuristic) SystemTypes() []string { return []string{"vent", "sanitary_vent"} }

// PreferredKinds implements TargetHeuristic.
func (h VentHeuristic) PreferredKinds() []target.Kind {
	return []target.Kind{target.KindWetWall, target.KindCeilingPenetration, target.KindShaft}
}

// FindCandidates implements TargetHeuristic.
func (h VentHeuristic) FindCandidates(conn connector.ConnectorInfo, targets []target.RoutingTarget, maxCandidates int) []target.Candidate {
	filtered := filterAvailableAndFit(conn, targets, h.PreferredKinds())

	out := make([]target.Candidate, 0, len(filtered))
	for _, t := range filtered {
		s, distance := baseScore(conn, t)

		switch t.Kind {
		case target.KindWetWall:
			s += h.WetWallBonus
		case target.KindCeilingPenetration:
			s += h.CeilingPenalty
		}

		// Soft penalty (not rejection) for downward targets — trap loops
		// tolerated.
		if t.WorldXYZ[2] < conn.Elevation {
			s += h.CeilingPenalty
		}

		out = append(out, target.Candidate{
			Target:   t,
			Score:    s,
			Distance: distance,
			DomainID: t.DomainID,
			Notes:    fmt.Sprintf("distance: %.2f ft, score: %.2f", distance, s),
		})
	}

	target.SortCandidates(out)
	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}

	return out
}

// SupplyHeuristic scores targets for domestic hot/cold water supply
// runs. Grounded on original_source's heuristics/plumbing.py
// SupplyHeuristic.
type SupplyHeuristic struct {
	WetWallBonus          float64
	HotWaterLengthPenalty float64
}

// NewSupplyHeuristic returns a SupplyHeuristic with spec.md §4.3's
// default bonus/penalty.
func NewSupplyHeuristic() SupplyHeuristic {
	return SupplyHeuristic{WetWallBonus: -5.0, HotWaterLengthPenalty: 0.3}
}

// SystemTypes implements TargetHeuristic.
func (h SupplyHeuristic) SystemTypes() []string {
	return []string{"supply", "domestic_hot_water", "domestic_cold_water", "dhw", "dcw"}
}

// PreferredKinds implements TargetHeuristic.
func (h SupplyHeuristic) PreferredKinds() []target.Kind {
	return []target.Kind{target.KindWetWall, target.KindCeilingPenetration, target.KindFloorPenetration, target.KindShaft}
}

// FindCandidates implements TargetHeuristic.
func (h SupplyHeuristic) FindCandidates(conn connector.ConnectorInfo, targets []target.RoutingTarget, maxCandidates int) []target.Candidate {
	filtered := filterAvailableAndFit(conn, targets, h.PreferredKinds())
	isHotWater := systemIn(conn.SystemType, []string{"domestic_hot_water", "dhw"})

	out := make([]target.Candidate, 0, len(filtered))
	for _, t := range filtered {
		s, distance := baseScore(conn, t)

		if t.Kind == target.KindWetWall {
			s += h.WetWallBonus
		}
		if isHotWater {
			s += h.HotWaterLengthPenalty * distance
		}

		out = append(out, target.Candidate{
			Target:   t,
			Score:    s,
			Distance: distance,
			DomainID: t.DomainID,
			Notes:    fmt.Sprintf("distance: %.2f ft, score: %.2f", distance, s),
		})
	}

	target.SortCandidates(out)
	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}

	return out
}
