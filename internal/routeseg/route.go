package routeseg

import "github.com/oahs/router/internal/geometry"

// Route is an ordered sequence of segments realizing one connector-to-
// target path for a single MEP system.
type Route struct {
	ID             string           `json:"id" yaml:"id"`
	SystemType     string           `json:"system_type" yaml:"system_type"`
	Segments       []RouteSegment   `json:"segments" yaml:"segments"`
	Source         geometry.Point2D `json:"source" yaml:"source"`
	Target         geometry.Point2D `json:"target" yaml:"target"`
	TotalCost      float64          `json:"total_cost" yaml:"total_cost"`
	TotalLength    float64          `json:"total_length" yaml:"total_length"`
	DomainsCrossed []string         `json:"domains_crossed" yaml:"domains_crossed"`

	seenDomains map[string]struct{}
}

// NewRoute constructs an empty Route ready to accept segments via
// AddSegment.
func NewRoute(id, systemType string, source, target geometry.Point2D) *Route {
	return &Route{
		ID:          id,
		SystemType:  systemType,
		Source:      source,
		Target:      target,
		seenDomains: make(map[string]struct{}),
	}
}

// AddSegment appends seg and incrementally updates TotalCost,
// TotalLength, and DomainsCrossed (first-seen order, globally deduped —
// see SPEC_FULL.md discrepancy #7 for why this departs from one of the two
// inconsistent dedup strategies found in original_source).
func (r *Route) AddSegment(seg RouteSegment) {
	r.Segments = append(r.Segments, seg)
	r.TotalCost += seg.Cost
	r.TotalLength += seg.Length

	if r.seenDomains == nil {
		r.seenDomains = make(map[string]struct{})
		for _, d := range r.DomainsCrossed {
			r.seenDomains[d] = struct{}{}
		}
	}

	if seg.DomainID == "" {
		return
	}
	if _, ok := r.seenDomains[seg.DomainID]; ok {
		return
	}
	r.seenDomains[seg.DomainID] = struct{}{}
	r.DomainsCrossed = append(r.DomainsCrossed, seg.DomainID)
}
