package heuristic

import "strings"

// Registry maps a lowercased system-type string to its TargetHeuristic.
// Lookup is case-insensitive throughout (SPEC_FULL.md discrepancy #6: the
// source was case-sensitive at the router's lookup site but
// case-insensitive at the sequencer's — this normalizes on the latter).
type Registry struct {
	byLowerSystem map[string]TargetHeuristic
	fallback      TargetHeuristic
}

// NewRegistry returns an empty Registry whose Lookup falls back to
// FallbackHeuristic for any unregistered system.
func NewRegistry() *Registry {
	return &Registry{
		byLowerSystem: make(map[string]TargetHeuristic),
		fallback:      NewFallbackHeuristic(),
	}
}

// Register binds h under every system name it declares via SystemTypes.
func (r *Registry) Register(h TargetHeuristic) {
	for _, s := range h.SystemTypes() {
		r.byLowerSystem[strings.ToLower(s)] = h
	}
}

// Lookup returns the heuristic registered for systemType, or
// FallbackHeuristic if none is registered.
func (r *Registry) Lookup(systemType string) TargetHeuristic {
	if h, ok := r.byLowerSystem[strings.ToLower(systemType)]; ok {
		return h
	}

	return r.fallback
}

// RegisteredSystems returns every system name with a dedicated
// heuristic, for introspection/statistics.
func (r *Registry) RegisteredSystems() []string {
	out := make([]string, 0, len(r.byLowerSystem))
	for s := range r.byLowerSystem {
		out = append(out, s)
	}

	return out
}

// NewDefaultRegistry returns a Registry pre-populated with every
// standard heuristic (Sanitary, Vent, Supply, Power, Data, Lighting),
// including the "supply" key (SPEC_FULL.md discrepancy #5: the source only
// mapped dhw/dcw to SupplyHeuristic, leaving the raw "supply" system
// name — present in the priority table — unmapped) and Lighting
// (SPEC_FULL.md discrepancy #4).
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewSanitaryHeuristic())
	r.Register(NewVentHeuristic())
	r.Register(NewSupplyHeuristic())
	r.Register(NewPowerHeuristic())
	r.Register(NewDataHeuristic())
	r.Register(NewLightingHeuristic())

	return r
}
