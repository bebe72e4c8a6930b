// Package oahs implements the Obstacle-Aware Hanan Sequential (OAHS)
// MEP router: a 2D multi-domain pathfinding engine that routes
// mechanical, electrical, and plumbing runs through the cavities of a
// framed building (wall stud-bays, floor joist-bays).
//
// Under the hood, everything is organized under internal/ subpackages:
//
//	internal/geometry/     — Point2D, Rect, segment distance & intersection
//	internal/obstacle/     — Obstacle, RoutingDomain, wall/floor factories
//	internal/occupancy/    — OccupancyMap: reserved-segment tracking & clearance
//	internal/target/       — RoutingTarget, Candidate, system/kind compatibility
//	internal/heuristic/    — per-system target-selection heuristics
//	internal/routeseg/     — RouteSegment, Route
//	internal/latticegraph/ — wall & floor grid-graph builders
//	internal/domaingraph/  — MultiDomainGraph, TransitionEdge, transition generators
//	internal/hanan/        — Hanan grid, MST, Steiner-point pruning
//	internal/pathfind/     — A* pathfinder, path reconstruction
//	internal/orchestrator/ — trade sequencing, the OAHSRouter main loop
//	internal/postprocess/  — sanitary slope/elbow/flow-direction pass
//	internal/config/       — RouterConfig and its YAML loader
//	internal/routelog/     — minimal logging interface
//
// Those packages are implementation details; this root package and the
// connector/result packages are the stable public surface (spec.md §6):
// construct a Router, add domains and transitions to it, then call
// RouteAll with a set of ConnectorInfo and RoutingTarget values.
//
//	r := oahs.NewRouter()
//	r.AddWallDomain(wallDomain)
//	res := r.RouteAll(connectors, targets)
package oahs
