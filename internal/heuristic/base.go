// Package heuristic implements the per-system target-selection strategies
// of spec.md §4.3: a tagged registry of TargetHeuristic implementations,
// one per MEP system family, each scoring and filtering candidate targets
// for a given connector.
package heuristic

import (
	"strings"

	"github.com/oahs/router/connector"
	"github.com/oahs/router/internal/target"
)

// Base scoring weights shared by every heuristic unless overridden.
const (
	DefaultDistanceWeight     = 1.0
	DefaultPriorityWeight     = 0.1
	DefaultFloorChangePenalty = 10.0
)

// TargetHeuristic selects and ranks candidate targets for one connector.
type TargetHeuristic interface {
	// SystemTypes returns the lowercased system-type names this heuristic
	// handles. An empty slice means "matches any system as a last resort"
	// (used by Fallback).
	SystemTypes() []string

	// PreferredKinds returns the target kinds this heuristic prefers, in
	// preference order.
	PreferredKinds() []target.Kind

	// FindCandidates filters and scores targets for conn, returning at
	// most maxCandidates ranked ascending by score.
	FindCandidates(conn connector.ConnectorInfo, targets []target.RoutingTarget, maxCandidates int) []target.Candidate
}

// baseScore combines Manhattan 3D distance, a weighted target priority,
// and a per-elevation-delta penalty for inter-floor changes — the common
// scoring core every heuristic builds on (spec.md §4.3).
func baseScore(conn connector.ConnectorInfo, t target.RoutingTarget) (score, distance float64) {
	distance = manhattan3D(conn.WorldXYZ, t.WorldXYZ)
	elevationDelta := conn.Elevation - t.WorldXYZ[2]
	if elevationDelta < 0 {
		elevationDelta = -elevationDelta
	}

	score = DefaultDistanceWeight*distance +
		DefaultPriorityWeight*float64(t.Priority) +
		DefaultFloorChangePenalty*(elevationDelta/10.0)

	return score, distance
}

func manhattan3D(a, b [3]float64) float64 {
	return absF(a[0]-b[0]) + absF(a[1]-b[1]) + absF(a[2]-b[2])
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}

// filterAvailableAndFit keeps only targets that are available, fit the
// connector's pipe diameter, serve the connector's system type, and are
// one of the preferred kinds.
func filterAvailableAndFit(conn connector.ConnectorInfo, targets []target.RoutingTarget, preferredKinds []target.Kind) []target.RoutingTarget {
	preferred := make(map[target.Kind]struct{}, len(preferredKinds))
	for _, k := range preferredKinds {
		preferred[k] = struct{}{}
	}

	out := make([]target.RoutingTarget, 0, len(targets))
	for _, t := range targets {
		if !t.Available {
			continue
		}
		if !t.CanFitPipe(conn.Diameter) {
			continue
		}
		if !t.CanServeSystem(conn.SystemType) {
			continue
		}
		if _, ok := preferred[t.Kind]; !ok {
			continue
		}
		out = append(out, t)
	}

	return out
}

func isToiletFixture(fixtureType string) bool {
	return strings.Contains(strings.ToLower(fixtureType), "toilet")
}

func systemIn(systemType string, candidates []string) bool {
	s := strings.ToLower(systemType)
	for _, c := range candidates {
		if s == c {
			return true
		}
	}

	return false
}
