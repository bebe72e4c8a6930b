package heuristic

import (
	"fmt"

	"github.com/oahs/router/connector"
	"github.com/oahs/router/internal/target"
)

// Cat6LengthLimit is the distance (ft) beyond which a Data run incurs an
// overage penalty (spec.md §6.4).
const Cat6LengthLimit = 300.0

// PowerHeuristic scores targets for power/electrical circuit runs.
// Grounded on original_source's heuristics/electrical.py PowerHeuristic.
type PowerHeuristic struct {
	PanelBoundaryBonus float64
	CeilingBonus       float64
	EquipmentPenalty   float64
}

// NewPowerHeuristic returns a PowerHeuristic with spec.md §4.3's default
// bonuses/penalty.
func NewPowerHeuristic() PowerHeuristic {
	return PowerHeuristic{PanelBoundaryBonus: -8.0, CeilingBonus: -3.0, EquipmentPenalty: 2.0}
}

// SystemTypes implements TargetHeuristic.
func (h PowerHeuristic) SystemTypes() []string { return []string{"power", "electrical"} }

// PreferredKinds implements TargetHeuristic.
func (h PowerHeuristic) PreferredKinds() []target.Kind {
	return []target.Kind{target.KindPanelBoundary, target.KindCeilingPenetration, target.KindEquipment}
}

// FindCandidates implements TargetHeuristic.
func (h PowerHeuristic) FindCandidates(conn connector.ConnectorInfo, targets []target.RoutingTarget, maxCandidates int) []target.Candidate {
	filtered := filterAvailableAndFit(conn, targets, h.PreferredKinds())

	out := make([]target.Candidate, 0, len(filtered))
	for _, t := range filtered {
		s, distance := baseScore(conn, t)

		switch t.Kind {
		case target.KindPanelBoundary:
			s += h.PanelBoundaryBonus
		case target.KindCeilingPenetration:
			s += h.CeilingBonus
		case target.KindEquipment:
			s += h.EquipmentPenalty
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

// DataHeuristic scores targets for low-voltage data/network runs.
// Grounded on original_source's heuristics/electrical.py DataHeuristic.
// The source's unused `separation_requirement` field (declared, never
// read by any method) is omitted — see SPEC_FULL.md discrepancy #11.
type DataHeuristic struct {
	PatchPanelBonus float64
	CeilingBonus    float64
}

// NewDataHeuristic returns a DataHeuristic with spec.md §4.3's default
// bonuses.
func NewDataHeuristic() DataHeuristic {
	return DataHeuristic{PatchPanelBonus: -10.0, CeilingBonus: -5.0}
}

// SystemTypes implements TargetHeuristic.
func (h DataHeuristic) SystemTypes() []string {
	return []string{"data", "network", "low_voltage"}
}

// PreferredKinds implements TargetHeuristic.
func (h DataHeuristic) PreferredKinds() []target.Kind {
	return []target.Kind{target.KindPanelBoundary, target.KindCeilingPenetration, target.KindEquipment}
}

// FindCandidates implements TargetHeuristic.
func (h DataHeuristic) FindCandidates(conn connector.ConnectorInfo, targets []target.RoutingTarget, maxCandidates int) []target.Candidate {
	filtered := filterAvailableAndFit(conn, targets, h.PreferredKinds())

	out := make([]target.Candidate, 0, len(filtered))
	for _, t := range filtered {
		s, distance := baseScore(conn, t)

		if t.Kind == target.KindPanelBoundary {
			bonus := h.PatchPanelBonus
			if panelType, ok := t.Metadata["panel_type"]; !ok || panelType != "data" {
				bonus *= 0.5
			}
			s += bonus
		}
		if t.Kind == target.KindCeilingPenetration {
			s += h.CeilingBonus
		}

		if distance > Cat6LengthLimit {
			s += 2.0 * (distance - Cat6LengthLimit)
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

// LightingHeuristic scores targets for lighting circuit runs. Grounded
// on original_source's heuristics/electrical.py LightingHeuristic — which
// exists there but is never registered in the default heuristic registry
// (an apparent oversight; see SPEC_FULL.md discrepancy #4). Registered here
// per spec.md §4.3, which lists Lighting as a first-class heuristic.
type LightingHeuristic struct {
	CeilingBonus    float64
	WallSwitchBonus float64
}

// NewLightingHeuristic returns a LightingHeuristic with spec.md §4.3's
// default bonuses.
func NewLightingHeuristic() LightingHeuristic {
	return LightingHeuristic{CeilingBonus: -10.0, WallSwitchBonus: -5.0}
}

// SystemTypes implements TargetHeuristic.
func (h LightingHeuristic) SystemTypes() []string { return []string{"lighting"} }

// PreferredKinds implements TargetHeuristic.
func (h LightingHeuristic) PreferredKinds() []target.Kind {
	return []target.Kind{target.KindCeilingPenetration, target.KindPanelBoundary, target.KindEquipment}
}

// FindCandidates implements TargetHeuristic.
func (h LightingHeuristic) FindCandidates(conn connector.ConnectorInfo, targets []target.RoutingTarget, maxCandidates int) []target.Candidate {
	filtered := filterAvailableAndFit(conn, targets, h.PreferredKinds())

	out := make([]target.Candidate, 0, len(filtered))
	for _, t := range filtered {
		s, distance := baseScore(conn, t)

		switch t.Kind {
		case target.KindCeilingPenetration:
			s += h.CeilingBonus
		case target.KindPanelBoundary:
			s += h.WallSwitchBonus
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
