// Package occupancy tracks which line segments of 2D space each routing
// domain has already reserved, and answers clearance queries against that
// reserved space. It is the single source of truth consulted before every
// new route is registered (spec.md §3.4, §4.1).
package occupancy

import (
	"sync"

	"github.com/oahs/router/internal/geometry"
)

// DefaultClearance is the default minimum gap (feet) enforced between two
// non-identical-route segments, beyond their half-diameters. ½ inch.
const DefaultClearance = 0.0417

// OccupiedSegment is a single reserved line segment within one domain.
type OccupiedSegment struct {
	RouteID    string
	SystemType string
	Trade      string
	Start      geometry.Point2D
	End        geometry.Point2D
	Diameter   float64
}

// OccupancyMap maps each domain to the list of segments reserved within
// it. All operations are total: none of them fail. A single OccupancyMap
// is owned exclusively by one routing call (spec.md §5).
type OccupancyMap struct {
	mu     sync.RWMutex
	planes map[string][]OccupiedSegment
}

// NewOccupancyMap constructs an empty OccupancyMap.
func NewOccupancyMap() *OccupancyMap {
	return &OccupancyMap{planes: make(map[string][]OccupiedSegment)}
}

// Reserve appends seg unconditionally to domainID's plane. Callers must
// have already validated availability via IsAvailable.
func (m *OccupancyMap) Reserve(domainID string, seg OccupiedSegment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.planes[domainID] = append(m.planes[domainID], seg)
}

// Release removes every segment tagged with routeID from domainID's
// plane, returning the number removed.
func (m *OccupancyMap) Release(domainID, routeID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	segs, ok := m.planes[domainID]
	if !ok {
		return 0
	}

	kept := segs[:0:0]
	removed := 0
	for _, s := range segs {
		if s.RouteID == routeID {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	m.planes[domainID] = kept

	return removed
}

// ReleaseAll removes every segment tagged with routeID across every
// domain, returning the total number removed.
func (m *OccupancyMap) ReleaseAll(routeID string) int {
	m.mu.Lock()
	domains := make([]string, 0, len(m.planes))
	for d := range m.planes {
		domains = append(domains, d)
	}
	m.mu.Unlock()

	total := 0
	for _, d := range domains {
		total += m.Release(d, routeID)
	}

	return total
}

// Segments returns every segment reserved in domainID's plane.
func (m *OccupancyMap) Segments(domainID string) []OccupiedSegment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]OccupiedSegment, len(m.planes[domainID]))
	copy(out, m.planes[domainID])

	return out
}

// conflicts returns every segment in domainID's plane whose distance to
// (start, end) is below the combined-radii-plus-clearance threshold.
func (m *OccupancyMap) conflicts(domainID string, start, end geometry.Point2D, diameter, clearance float64) []OccupiedSegment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []OccupiedSegment
	for _, s := range m.planes[domainID] {
		dist := geometry.SegmentToSegmentDistance(start, end, s.Start, s.End)
		threshold := diameter/2 + s.Diameter/2 + clearance
		if dist < threshold {
			out = append(out, s)
		}
	}

	return out
}

// IsAvailable reports whether the proposed segment (start, end) of the
// given diameter can be reserved in domainID without violating clearance
// against any existing segment. On conflict it also returns the route id
// of the first blocking segment found.
func (m *OccupancyMap) IsAvailable(domainID string, start, end geometry.Point2D, diameter, clearance float64) (bool, string) {
	blockers := m.conflicts(domainID, start, end, diameter, clearance)
	if len(blockers) == 0 {
		return true, ""
	}

	return false, blockers[0].RouteID
}

// GetConflicts returns the full list of conflicting segments (not
// short-circuited at the first one), for diagnostic reporting.
func (m *OccupancyMap) GetConflicts(domainID string, start, end geometry.Point2D, diameter, clearance float64) []OccupiedSegment {
	return m.conflicts(domainID, start, end, diameter, clearance)
}
