// Package orchestrator implements the OAHS (Obstacle-Aware Hanan
// Sequential) routing algorithm of spec.md §4.8: a ConnectorSequencer
// orders connectors by priority, OAHSRouter routes them one at a time
// against the current OccupancyMap, and ConflictResolver offers a
// second pass against untried targets. Grounded on original_source's
// oahs_router.py.
package orchestrator

import (
	"math"
	"sort"
	"strings"

	"github.com/oahs/router/connector"
)

// defaultSystemPriority mirrors oahs_router.py's SYSTEM_PRIORITY, with
// fire_sprinkler/fire_standpipe added at priority 1 and the HVAC system
// names added at priority 4 (SPEC_FULL.md §12 item 1).
var defaultSystemPriority = map[string]int{
	"fire_sprinkler": 1,
	"fire_standpipe": 1,
	"sanitary_drain": 1,
	"sanitary":       1,
	"drain":          1,
	"sanitary_vent":  2,
	"vent":           2,

	"domestic_hot_water": 3,
	"dhw":                3,
	"hot_water":          3,

	"domestic_cold_water": 4,
	"dcw":                 4,
	"cold_water":          4,
	"supply":              4,
	"supply_air":          4,
	"return_air":          4,
	"exhaust":             4,

	"power":       5,
	"electrical":  5,
	"data":        6,
	"network":     6,
	"low_voltage": 6,
	"lighting":    7,
}

// defaultSystemPriorityFallback is assigned to any system type absent
// from defaultSystemPriority.
const defaultSystemPriorityFallback = 10

// ConnectorSequencer orders connectors for sequential routing: primarily
// by system priority (sanitary/fire protection first, data last), then
// by distance from a reference point to encourage nearby routes (spec.md
// §4.2, §4.8.1).
type ConnectorSequencer struct {
	referenceU, referenceV float64
	priority               map[string]int
}

// NewConnectorSequencer returns a ConnectorSequencer using the built-in
// priority table and the given reference point.
func NewConnectorSequencer(referenceU, referenceV float64) *ConnectorSequencer {
	return &ConnectorSequencer{
		referenceU: referenceU,
		referenceV: referenceV,
		priority:   defaultSystemPriority,
	}
}

// GetPriority returns the routing priority for systemType (lower routes
// first), falling back to defaultSystemPriorityFallback.
func (s *ConnectorSequencer) GetPriority(systemType string) int {
	if p, ok := s.priority[strings.ToLower(systemType)]; ok {
		return p
	}
	return defaultSystemPriorityFallback
}

// Sequence returns a stable-sorted copy of connectors, ordered by
// (priority, distance-from-reference).
func (s *ConnectorSequencer) Sequence(connectors []connector.ConnectorInfo) []connector.ConnectorInfo {
	out := make([]connector.ConnectorInfo, len(connectors))
	copy(out, connectors)

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := s.GetPriority(out[i].SystemType), s.GetPriority(out[j].SystemType)
		if pi != pj {
			return pi < pj
		}
		return s.distance(out[i]) < s.distance(out[j])
	})

	return out
}

func (s *ConnectorSequencer) distance(c connector.ConnectorInfo) float64 {
	du := c.WorldXYZ[0] - s.referenceU
	dv := c.WorldXYZ[1] - s.referenceV
	return math.Hypot(du, dv)
}

// GroupBySystem partitions connectors by their declared system type,
// using "unknown" for connectors that declare none.
func (s *ConnectorSequencer) GroupBySystem(connectors []connector.ConnectorInfo) map[string][]connector.ConnectorInfo {
	groups := make(map[string][]connector.ConnectorInfo)
	for _, c := range connectors {
		system := c.SystemType
		if system == "" {
			system = "unknown"
		}
		groups[system] = append(groups[system], c)
	}
	return groups
}
