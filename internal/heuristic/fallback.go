package heuristic

import (
	"fmt"

	"github.com/oahs/router/connector"
	"github.com/oahs/router/internal/target"
)

// allTargetKinds lists every recognized target kind, used by
// FallbackHeuristic as "accept any preferred kind".
var allTargetKinds = []target.Kind{
	target.KindWetWall,
	target.KindFloorPenetration,
	target.KindCeilingPenetration,
	target.KindShaft,
	target.KindPanelBoundary,
	target.KindEquipment,
	target.KindMainLine,
}

// FallbackHeuristic is used when no dedicated heuristic is registered
// for a connector's system type: pure distance plus priority, accepting
// any available, capacity-fitting, system-compatible target of any kind.
type FallbackHeuristic struct{}

// NewFallbackHeuristic returns the fallback heuristic.
func NewFallbackHeuristic() FallbackHeuristic { return FallbackHeuristic{} }

// SystemTypes implements TargetHeuristic: empty means "any system".
func (h FallbackHeuristic) SystemTypes() []string { return nil }

// PreferredKinds implements TargetHeuristic: every kind is acceptable.
func (h FallbackHeuristic) PreferredKinds() []target.Kind { return allTargetKinds }

// FindCandidates implements TargetHeuristic.
func (h FallbackHeuristic) FindCandidates(conn connector.ConnectorInfo, targets []target.RoutingTarget, maxCandidates int) []target.Candidate {
	filtered := filterAvailableAndFit(conn, targets, h.PreferredKinds())

	out := make([]target.Candidate, 0, len(filtered))
	for _, t := range filtered {
		s, distance := baseScore(conn, t)
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
