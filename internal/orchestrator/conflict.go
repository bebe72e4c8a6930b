package orchestrator

import (
	"github.com/oahs/router/connector"
	"github.com/oahs/router/internal/routeseg"
	"github.com/oahs/router/internal/target"
)

// MaxAlternativeTargets bounds how many untried candidates
// ConflictResolver.Resolve will attempt for a single connector, mirroring
// oahs_router.py's MAX_ALTERNATIVE_TARGETS.
const MaxAlternativeTargets = 3

// MaxRerouteAttempts bounds how many times Resolve may be invoked for the
// same connector across a caller's retry loop, mirroring
// oahs_router.py's MAX_REROUTE_ATTEMPTS. OAHSRouter does not enforce this
// itself; it is exposed for callers that want a bounded outer retry loop.
const MaxRerouteAttempts = 3

// ConflictResolver offers a second routing pass against targets an
// earlier attempt did not try, for callers that want more persistence
// than RouteAll's conservative default of failing a connector outright
// (spec.md §4.8.3). It is never invoked automatically by RouteAll.
type ConflictResolver struct {
	router *OAHSRouter
}

// NewConflictResolver binds a ConflictResolver to router.
func NewConflictResolver(router *OAHSRouter) *ConflictResolver {
	return &ConflictResolver{router: router}
}

// Resolve attempts conn against every target not already present in
// tried (keyed by target ID), up to MaxAlternativeTargets candidates,
// using the same heuristic-ranked candidate order RouteAll would use.
// tried is mutated with every target ID this call attempts.
func (c *ConflictResolver) Resolve(conn connector.ConnectorInfo, targets []target.RoutingTarget, tried map[string]bool) (*routeseg.Route, bool) {
	h := c.router.registry.Lookup(conn.SystemType)

	candidates := h.FindCandidates(conn, targets, len(targets))

	attempts := 0
	for _, cand := range candidates {
		if tried[cand.Target.ID] {
			continue
		}
		if attempts >= MaxAlternativeTargets {
			break
		}

		tried[cand.Target.ID] = true
		attempts++

		if route, ok := c.router.attemptRoute(conn, cand); ok {
			c.router.registerOccupancy(route, conn)
			return route, true
		}
	}

	return nil, false
}
