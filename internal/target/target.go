// Package target defines RoutingTarget — a valid destination a route may
// terminate at (wet wall, shaft, floor penetration, panel, ...) — plus
// the ranked Candidate wrapper and the built-in system/kind compatibility
// table (spec.md §3.5).
package target

import (
	"math"
	"sort"
	"strings"
)

// Kind enumerates the recognized routing-target kinds. Values serialize
// as their domain strings (spec.md §6.3).
type Kind string

// Recognized target kinds.
const (
	KindWetWall            Kind = "wet_wall"
	KindFloorPenetration   Kind = "floor_penetration"
	KindCeilingPenetration Kind = "ceiling_penetration"
	KindShaft              Kind = "shaft"
	KindPanelBoundary      Kind = "panel_boundary"
	KindEquipment          Kind = "equipment"
	KindMainLine           Kind = "main_line"
)

// DefaultCapacity is the capacity assumed when a target declares none:
// a 4" pipe.
const DefaultCapacity = 0.333

// systemCompatibility maps a lowercased system type to the target kinds
// that may serve it when the target declares no explicit SystemsServed
// list. Mirrors targets.py's SYSTEM_TARGET_COMPATIBILITY, keyed by the
// same lowercase alias sets the heuristic registry and the connector
// sequencer use.
var systemCompatibility = map[string][]Kind{
	"sanitary":       {KindWetWall, KindFloorPenetration, KindShaft},
	"sanitary_drain": {KindWetWall, KindFloorPenetration, KindShaft},
	"drain":          {KindWetWall, KindFloorPenetration, KindShaft},

	"vent":          {KindWetWall, KindCeilingPenetration, KindShaft},
	"sanitary_vent": {KindWetWall, KindCeilingPenetration, KindShaft},

	"supply":              {KindWetWall, KindFloorPenetration, KindCeilingPenetration, KindShaft},
	"domestic_hot_water":  {KindWetWall, KindFloorPenetration, KindCeilingPenetration, KindShaft},
	"dhw":                 {KindWetWall, KindFloorPenetration, KindCeilingPenetration, KindShaft},
	"hot_water":           {KindWetWall, KindFloorPenetration, KindCeilingPenetration, KindShaft},
	"domestic_cold_water": {KindWetWall, KindFloorPenetration, KindCeilingPenetration, KindShaft},
	"dcw":                 {KindWetWall, KindFloorPenetration, KindCeilingPenetration, KindShaft},
	"cold_water":          {KindWetWall, KindFloorPenetration, KindCeilingPenetration, KindShaft},

	"power":      {KindPanelBoundary, KindCeilingPenetration, KindEquipment},
	"electrical": {KindPanelBoundary, KindCeilingPenetration, KindEquipment},
	"lighting":   {KindCeilingPenetration, KindPanelBoundary},

	"data":        {KindPanelBoundary, KindCeilingPenetration, KindEquipment},
	"network":     {KindPanelBoundary, KindCeilingPenetration, KindEquipment},
	"low_voltage": {KindPanelBoundary, KindCeilingPenetration},

	"supply_air": {KindCeilingPenetration, KindShaft},
	"return_air": {KindCeilingPenetration, KindShaft},
	"exhaust":    {KindCeilingPenetration, KindShaft},
}

// CompatibleKinds returns the target kinds that may serve systemType,
// or nil for an unrecognized system. Case-insensitive.
func CompatibleKinds(systemType string) []Kind {
	return systemCompatibility[strings.ToLower(systemType)]
}

// RoutingTarget is a valid destination for MEP routes: a place where a
// pipe or conduit can terminate.
type RoutingTarget struct {
	ID            string                 `json:"id" yaml:"id"`
	Kind          Kind                   `json:"target_type" yaml:"target_type"`
	WorldXYZ      [3]float64             `json:"location" yaml:"location"`
	DomainID      string                 `json:"domain_id" yaml:"domain_id"`
	PlaneUV       [2]float64             `json:"plane_location" yaml:"plane_location"`
	SystemsServed []string               `json:"systems_served,omitempty" yaml:"systems_served,omitempty"`
	Capacity      float64                `json:"capacity" yaml:"capacity"`
	Priority      int                    `json:"priority" yaml:"priority"`
	Available     bool                   `json:"is_available" yaml:"is_available"`
	Metadata      map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// CanServeSystem reports whether this target may serve systemType. A
// target with an explicit SystemsServed list is governed by that list;
// otherwise the built-in compatibility table decides by kind.
func (t RoutingTarget) CanServeSystem(systemType string) bool {
	if len(t.SystemsServed) > 0 {
		for _, s := range t.SystemsServed {
			if strings.EqualFold(s, systemType) {
				return true
			}
		}
		return false
	}

	for _, k := range CompatibleKinds(systemType) {
		if k == t.Kind {
			return true
		}
	}

	return false
}

// CanFitPipe reports whether a pipe of the given diameter can connect
// to this target.
func (t RoutingTarget) CanFitPipe(diameter float64) bool {
	return diameter <= t.Capacity
}

// DistanceTo returns the 3D Euclidean distance from this target's world
// location to point.
func (t RoutingTarget) DistanceTo(point [3]float64) float64 {
	dx := t.WorldXYZ[0] - point[0]
	dy := t.WorldXYZ[1] - point[1]
	dz := t.WorldXYZ[2] - point[2]

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// PlaneDistanceTo returns the 2D Euclidean distance in domain-plane
// coordinates.
func (t RoutingTarget) PlaneDistanceTo(u, v float64) float64 {
	du := t.PlaneUV[0] - u
	dv := t.PlaneUV[1] - v

	return math.Hypot(du, dv)
}

// ManhattanDistanceTo returns the Manhattan distance in domain-plane
// coordinates.
func (t RoutingTarget) ManhattanDistanceTo(u, v float64) float64 {
	return math.Abs(t.PlaneUV[0]-u) + math.Abs(t.PlaneUV[1]-v)
}

// Candidate is a ranked candidate target for one connector, produced by
// a heuristic during target selection.
type Candidate struct {
	Target               RoutingTarget
	Score                float64
	Distance             float64
	DomainID             string
	RequiresFloorRouting bool
	Notes                string
}

// SortCandidates stable-sorts candidates ascending by score, so equal
// scores keep their insertion order (determinism, spec.md §5).
func SortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score < candidates[j].Score
	})
}

// FilterForSystem keeps only targets that are available, serve
// systemType, and accept at least minCapacity.
func FilterForSystem(targets []RoutingTarget, systemType string, minCapacity float64) []RoutingTarget {
	out := make([]RoutingTarget, 0, len(targets))
	for _, t := range targets {
		if !t.Available {
			continue
		}
		if !t.CanServeSystem(systemType) {
			continue
		}
		if !t.CanFitPipe(minCapacity) {
			continue
		}
		out = append(out, t)
	}

	return out
}

// RankByDistance ranks targets by Manhattan distance from a world point,
// scoring each as distance plus weighted priority. Floor penetrations
// are flagged as requiring floor routing.
func RankByDistance(targets []RoutingTarget, from [3]float64) []Candidate {
	out := make([]Candidate, 0, len(targets))
	for _, t := range targets {
		distance := math.Abs(from[0]-t.WorldXYZ[0]) +
			math.Abs(from[1]-t.WorldXYZ[1]) +
			math.Abs(from[2]-t.WorldXYZ[2])

		out = append(out, Candidate{
			Target:               t,
			Score:                distance + float64(t.Priority)*0.1,
			Distance:             distance,
			DomainID:             t.DomainID,
			RequiresFloorRouting: t.Kind == KindFloorPenetration,
		})
	}
	SortCandidates(out)

	return out
}
