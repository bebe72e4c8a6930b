// Package result defines the serializable outputs of a routing call:
// RoutingResult (spec.md §3.9, §6.2) and the Phase-2 WallRoutingResult
// view for in-wall-only scenarios. Grounded on original_source's
// routing_result.py, with a true round-trip (spec.md §8 invariant 6)
// where the Python source's from_dict was an explicitly "simplified
// version" that never reconstructed routes.
package result

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/oahs/router/connector"
	"github.com/oahs/router/internal/routeseg"
)

// FailedConnector records a connector that could not be routed (spec.md
// §6.2, §7).
type FailedConnector struct {
	ConnectorID      string     `json:"connector_id" yaml:"connector_id"`
	SystemType       string     `json:"system_type" yaml:"system_type"`
	Location         [3]float64 `json:"location" yaml:"location"`
	Reason           string     `json:"reason" yaml:"reason"`
	AttemptedTargets []string   `json:"attempted_targets" yaml:"attempted_targets"`
	ErrorCode        string     `json:"error_code" yaml:"error_code"`
	Recoverable      bool       `json:"recoverable" yaml:"recoverable"`
}

// RoutingStatistics summarizes one routing call (spec.md §3.9).
type RoutingStatistics struct {
	TotalConnectors   int     `json:"total_connectors" yaml:"total_connectors"`
	SuccessfulRoutes  int     `json:"successful_routes" yaml:"successful_routes"`
	FailedRoutes      int     `json:"failed_routes" yaml:"failed_routes"`
	TotalLength       float64 `json:"total_length" yaml:"total_length"`
	TotalCost         float64 `json:"total_cost" yaml:"total_cost"`
	RoutingTimeMs     float64 `json:"routing_time_ms" yaml:"routing_time_ms"`
	ConflictsResolved int     `json:"conflicts_resolved" yaml:"conflicts_resolved"`
	RerouteAttempts   int     `json:"reroute_attempts" yaml:"reroute_attempts"`
}

// SuccessRate returns the percentage of connectors successfully routed,
// 0 when there were none.
func (s RoutingStatistics) SuccessRate() float64 {
	if s.TotalConnectors == 0 {
		return 0
	}
	return float64(s.SuccessfulRoutes) / float64(s.TotalConnectors) * 100
}

// MarshalJSON appends the derived success_rate field alongside the
// stored counters (mirroring routing_result.py's to_dict).
func (s RoutingStatistics) MarshalJSON() ([]byte, error) {
	type alias RoutingStatistics
	return json.Marshal(struct {
		alias
		SuccessRate float64 `json:"success_rate"`
	}{alias(s), s.SuccessRate()})
}

// RoutingResult is the complete output of an OAHS routing call (spec.md
// §3.9, §6.2).
type RoutingResult struct {
	RunID      string                 `json:"run_id" yaml:"run_id"`
	Routes     []*routeseg.Route      `json:"routes" yaml:"routes"`
	Failed     []FailedConnector      `json:"failed" yaml:"failed"`
	Statistics RoutingStatistics      `json:"statistics" yaml:"statistics"`
	Timestamp  string                 `json:"timestamp" yaml:"timestamp"`
	Metadata   map[string]interface{} `json:"metadata" yaml:"metadata"`
}

// NewRoutingResult returns an empty RoutingResult stamped with the
// current time and a fresh RunID, so a caller can correlate this
// result's log lines (routelog.Logger output) across a distributed
// build pipeline without threading an ID through every call site.
func NewRoutingResult() *RoutingResult {
	return &RoutingResult{
		RunID:     uuid.NewString(),
		Metadata:  make(map[string]interface{}),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// IsComplete reports whether every connector routed successfully.
func (r RoutingResult) IsComplete() bool {
	return len(r.Failed) == 0
}

// MarshalJSON appends the derived is_complete field (spec.md §6.2).
func (r RoutingResult) MarshalJSON() ([]byte, error) {
	type alias RoutingResult
	return json.Marshal(struct {
		alias
		IsComplete bool `json:"is_complete"`
	}{alias(r), r.IsComplete()})
}

// AddRoute appends a successful route and updates Statistics.
func (r *RoutingResult) AddRoute(route *routeseg.Route) {
	r.Routes = append(r.Routes, route)
	r.Statistics.SuccessfulRoutes++
	r.Statistics.TotalLength += route.TotalLength
	r.Statistics.TotalCost += route.TotalCost
}

// AddFailure appends a failed connector and updates Statistics.
func (r *RoutingResult) AddFailure(conn connector.ConnectorInfo, reason, errorCode string, recoverable bool, attemptedTargets []string) {
	r.Failed = append(r.Failed, FailedConnector{
		ConnectorID:      conn.ID,
		SystemType:       conn.SystemType,
		Location:         conn.WorldXYZ,
		Reason:           reason,
		AttemptedTargets: attemptedTargets,
		ErrorCode:        errorCode,
		Recoverable:      recoverable,
	})
	r.Statistics.FailedRoutes++
}

// Seal records the elapsed wall-clock time of the routing call.
func (r *RoutingResult) Seal(elapsedMs float64) {
	r.Statistics.RoutingTimeMs = elapsedMs
}

// RoutesBySystem returns every route for the given system type.
func (r *RoutingResult) RoutesBySystem(systemType string) []*routeseg.Route {
	var out []*routeseg.Route
	for _, rt := range r.Routes {
		if rt.SystemType == systemType {
			out = append(out, rt)
		}
	}
	return out
}

// RoutesInDomain returns every route that crosses the given domain.
func (r *RoutingResult) RoutesInDomain(domainID string) []*routeseg.Route {
	var out []*routeseg.Route
	for _, rt := range r.Routes {
		for _, d := range rt.DomainsCrossed {
			if d == domainID {
				out = append(out, rt)
				break
			}
		}
	}
	return out
}

// ToJSON serializes r, indenting when requested.
func (r *RoutingResult) ToJSON(indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(r, "", "  ")
	}
	return json.Marshal(r)
}

// FromJSON deserializes a RoutingResult previously produced by ToJSON.
func FromJSON(data []byte) (*RoutingResult, error) {
	var r RoutingResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ToYAML serializes r as YAML, a convenience format alongside the
// authoritative JSON form (SPEC_FULL.md §11).
func (r *RoutingResult) ToYAML() ([]byte, error) {
	return yaml.Marshal(r)
}

// FromYAML deserializes a RoutingResult previously produced by ToYAML.
func FromYAML(data []byte) (*RoutingResult, error) {
	var r RoutingResult
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
