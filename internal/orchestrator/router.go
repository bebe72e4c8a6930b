package orchestrator

import (
	"fmt"
	"time"

	"github.com/oahs/router/connector"
	"github.com/oahs/router/internal/config"
	"github.com/oahs/router/internal/domaingraph"
	"github.com/oahs/router/internal/geometry"
	"github.com/oahs/router/internal/heuristic"
	"github.com/oahs/router/internal/latticegraph"
	"github.com/oahs/router/internal/obstacle"
	"github.com/oahs/router/internal/occupancy"
	"github.com/oahs/router/internal/pathfind"
	"github.com/oahs/router/internal/routelog"
	"github.com/oahs/router/internal/routeseg"
	"github.com/oahs/router/internal/target"
	"github.com/oahs/router/result"
)

// OAHSRouter orchestrates the complete routing process of spec.md §4.8:
// sequence connectors by priority, route each against the current
// occupancy, and register its segments before the next connector is
// attempted. Grounded on original_source's oahs_router.py OAHSRouter.
type OAHSRouter struct {
	mdg       *domaingraph.MultiDomainGraph
	occupancy *occupancy.OccupancyMap
	registry  *heuristic.Registry
	sequencer *ConnectorSequencer

	wallResU, wallResV float64
	floorRes          float64
	maxCandidates     int
	clearance         float64
	perTradeClearance bool

	logger routelog.Logger
}

// Option configures an OAHSRouter at construction.
type Option func(*OAHSRouter)

// WithReferencePoint sets the sequencer's distance-ordering origin.
func WithReferencePoint(u, v float64) Option {
	return func(o *OAHSRouter) { o.sequencer = NewConnectorSequencer(u, v) }
}

// WithMaxCandidates overrides the number of candidate targets attempted
// per connector.
func WithMaxCandidates(n int) Option {
	return func(o *OAHSRouter) { o.maxCandidates = n }
}

// WithClearance overrides the flat clearance applied between segments.
func WithClearance(c float64) Option {
	return func(o *OAHSRouter) { o.clearance = c }
}

// WithLogger attaches l for diagnostic output; the default is
// routelog.NopLogger{}.
func WithLogger(l routelog.Logger) Option {
	return func(o *OAHSRouter) { o.logger = l }
}

// WithRouterConfig seeds grid resolutions, candidate limit, clearance,
// and the per-trade-clearance opt-in from cfg.
func WithRouterConfig(cfg config.RouterConfig) Option {
	return func(o *OAHSRouter) {
		o.wallResU, o.wallResV = cfg.WallResolutionU, cfg.WallResolutionV
		o.floorRes = cfg.FloorResolution
		o.maxCandidates = cfg.MaxCandidatesPerConnector
		o.clearance = cfg.DefaultClearance
		o.perTradeClearance = cfg.PerTradeClearance
	}
}

// NewOAHSRouter constructs an OAHSRouter over mdg. occ defaults to a
// fresh OccupancyMap and registry to heuristic.NewDefaultRegistry when
// nil.
func NewOAHSRouter(mdg *domaingraph.MultiDomainGraph, occ *occupancy.OccupancyMap, registry *heuristic.Registry, opts ...Option) *OAHSRouter {
	if occ == nil {
		occ = occupancy.NewOccupancyMap()
	}
	if registry == nil {
		registry = heuristic.NewDefaultRegistry()
	}

	cfg := config.DefaultRouterConfig()
	o := &OAHSRouter{
		mdg:           mdg,
		occupancy:     occ,
		registry:      registry,
		sequencer:     NewConnectorSequencer(0, 0),
		wallResU:      cfg.WallResolutionU,
		wallResV:      cfg.WallResolutionV,
		floorRes:      cfg.FloorResolution,
		maxCandidates: cfg.MaxCandidatesPerConnector,
		clearance:     cfg.DefaultClearance,
		logger:        routelog.NopLogger{},
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// RouteAll sequences connectors by priority and routes each in turn,
// registering its segments in the occupancy map before the next
// connector is attempted (spec.md §4.8.2).
func (o *OAHSRouter) RouteAll(connectors []connector.ConnectorInfo, targets []target.RoutingTarget) *result.RoutingResult {
	start := time.Now()
	res := result.NewRoutingResult()
	res.Statistics.TotalConnectors = len(connectors)

	if len(connectors) == 0 {
		o.logger.Debugf("no connectors to route")
		res.Seal(elapsedMs(start))
		return res
	}

	if len(targets) == 0 {
		o.logger.Warnf("no targets available for %d connectors", len(connectors))
		for _, c := range connectors {
			res.AddFailure(c, "no targets available", "NO_TARGETS", true, nil)
		}
		res.Seal(elapsedMs(start))
		return res
	}

	sequenced := o.sequencer.Sequence(connectors)
	o.logger.Debugf("routing %d connectors in priority order", len(sequenced))

	for i, conn := range sequenced {
		o.logger.Debugf("routing connector %d/%d: %s (%s)", i+1, len(sequenced), conn.ID, conn.SystemType)

		route, failure := o.routeConnector(conn, targets)
		if route != nil {
			o.registerOccupancy(route, conn)
			res.AddRoute(route)
			o.logger.Debugf("  -> success: %d segments", len(route.Segments))
			continue
		}

		res.AddFailure(conn, failure.reason, failure.code, failure.recoverable, failure.attempted)
		o.logger.Debugf("  -> failed: %s", failure.reason)
	}

	res.Seal(elapsedMs(start))
	return res
}

// elapsedMs returns the milliseconds elapsed since start, for sealing
// RoutingStatistics.RoutingTimeMs (spec.md §4.8.4).
func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

// RouteSingle routes one connector against targets, without touching
// occupancy or returning failure detail (spec.md §4.8.2's single-call
// entry point).
func (o *OAHSRouter) RouteSingle(conn connector.ConnectorInfo, targets []target.RoutingTarget) (*routeseg.Route, bool) {
	route, failure := o.routeConnector(conn, targets)
	return route, failure == nil
}

type routeFailure struct {
	reason      string
	code        string
	recoverable bool
	attempted   []string
}

// routeConnector implements one connector's routing attempt: domain
// validation, heuristic candidate ranking, and a per-candidate pathfind
// attempt, stopping at the first success (spec.md §4.8.2).
func (o *OAHSRouter) routeConnector(conn connector.ConnectorInfo, targets []target.RoutingTarget) (*routeseg.Route, *routeFailure) {
	if _, ok := o.mdg.Domain(conn.WallID); !ok {
		return nil, &routeFailure{
			reason:      fmt.Sprintf("domain %q not present in routing model", conn.WallID),
			code:        "DOMAIN_MISMATCH",
			recoverable: false,
		}
	}

	h := o.registry.Lookup(conn.SystemType)
	maxCandidates := o.maxCandidates
	if maxCandidates <= 0 {
		maxCandidates = config.DefaultRouterConfig().MaxCandidatesPerConnector
	}
	candidates := h.FindCandidates(conn, targets, maxCandidates)

	if len(candidates) == 0 {
		return nil, &routeFailure{
			reason:      "no compatible target for system type",
			code:        "NO_TARGETS",
			recoverable: true,
		}
	}

	var attempted []string
	for _, cand := range candidates {
		attempted = append(attempted, cand.Target.ID)

		route, ok := o.attemptRoute(conn, cand)
		if ok {
			return route, nil
		}
	}

	return nil, &routeFailure{
		reason:      "no path found to any candidate target",
		code:        "NO_PATH",
		recoverable: true,
		attempted:   attempted,
	}
}

// attemptRoute connects conn and cand.Target into the unified graph as
// exact-location terminal nodes (spec.md §4.4 step 5) and runs A* between
// them, rejecting the result if it would violate clearance against
// already-registered occupancy.
func (o *OAHSRouter) attemptRoute(conn connector.ConnectorInfo, cand target.Candidate) (*routeseg.Route, bool) {
	if _, ok := o.mdg.Domain(cand.Target.DomainID); !ok {
		return nil, false
	}

	sourceID, ok := o.connectTerminal(conn.WallID, conn.WorldXYZ[0], conn.WorldXYZ[1])
	if !ok {
		return nil, false
	}
	targetID, ok := o.connectTerminal(cand.Target.DomainID, cand.Target.PlaneUV[0], cand.Target.PlaneUV[1])
	if !ok {
		return nil, false
	}

	diameter := o.connectorDiameter(conn)
	clearance := o.clearanceFor(conn.SystemType)
	targetLoc := geometry.Point2D{U: cand.Target.PlaneUV[0], V: cand.Target.PlaneUV[1]}
	blocked := o.blockedNodes(diameter, clearance, targetLoc)

	pf := pathfind.Find(o.mdg.Unified(), sourceID, targetID, pathfind.Options{Blocked: blocked})
	if !pf.Success {
		return nil, false
	}

	segs := pathfind.ToRouteSegments(o.mdg.Unified(), pf.Path)
	if !o.segmentsClear(segs, diameter, clearance, targetLoc) {
		return nil, false
	}

	route := routeseg.NewRoute(
		fmt.Sprintf("route_%s_to_%s", conn.ID, cand.Target.ID),
		conn.SystemType,
		geometry.Point2D{U: conn.WorldXYZ[0], V: conn.WorldXYZ[1]},
		geometry.Point2D{U: cand.Target.PlaneUV[0], V: cand.Target.PlaneUV[1]},
	)
	for _, s := range segs {
		route.AddSegment(s)
	}

	return route, true
}

// connectTerminal wires an exact-location terminal node into domainID's
// grid, dispatching to the wall or floor lattice connector according to
// the domain's kind. Ceiling cavities and shafts share the floor
// connector's XY-grid convention (no dedicated lattice builder exists
// for them).
func (o *OAHSRouter) connectTerminal(domainID string, u, v float64) (domaingraph.NodeID, bool) {
	d, ok := o.mdg.Domain(domainID)
	if !ok {
		return 0, false
	}

	switch d.Kind {
	case obstacle.DomainWallCavity:
		return latticegraph.ConnectWallTerminal(o.mdg, domainID, u, v, o.wallResU, o.wallResV, d.Bounds.MinU, d.Bounds.MinV), true
	default:
		return latticegraph.ConnectFloorTerminal(o.mdg, domainID, u, v, o.floorRes, d.Bounds.MinU, d.Bounds.MinV), true
	}
}

// connectorDiameter returns conn's declared diameter, falling back to
// the per-system estimate table when the connector does not declare one.
func (o *OAHSRouter) connectorDiameter(conn connector.ConnectorInfo) float64 {
	if conn.Diameter > 0 {
		return conn.Diameter
	}
	return EstimatePipeDiameter(conn.SystemType)
}

// clearanceFor returns the clearance to enforce for a connector of the
// given system type: the per-trade table when RouterConfig.PerTradeClearance
// opted in, otherwise the flat configured default.
func (o *OAHSRouter) clearanceFor(systemType string) float64 {
	if o.perTradeClearance {
		return ClearanceFor(ClassifyTrade(systemType))
	}
	return o.clearance
}

// isJunctionSegment reports whether an occupied segment terminates at
// (or passes within the clearance threshold of) the candidate target's
// location. Several routes tie into the same stack or panel by design;
// clearance is not enforced against the shared junction itself, only
// against the runs approaching it.
func isJunctionSegment(seg occupancy.OccupiedSegment, targetLoc geometry.Point2D, threshold float64) bool {
	return geometry.PointToSegmentDistance(targetLoc, seg.Start, seg.End) < threshold
}

// blockedNodes returns every unified-graph node within diameter/2 plus
// clearance of an already-occupied segment in its own domain — the
// dynamic equivalent of latticegraph's build-time occupancy exclusion,
// recomputed per attempt since occupancy grows after every successful
// route (spec.md §4.8 invariant 2). Segments forming the junction at
// targetLoc are exempt.
func (o *OAHSRouter) blockedNodes(diameter, clearance float64, targetLoc geometry.Point2D) map[domaingraph.NodeID]bool {
	g := o.mdg.Unified()
	blocked := make(map[domaingraph.NodeID]bool)

	for _, n := range g.Nodes() {
		segs := o.occupancy.Segments(n.DomainID)
		if len(segs) == 0 {
			continue
		}

		loc := geometry.Point2D{U: n.Location[0], V: n.Location[1]}
		for _, seg := range segs {
			threshold := diameter/2 + seg.Diameter/2 + clearance
			if isJunctionSegment(seg, targetLoc, threshold) {
				continue
			}
			if geometry.PointToSegmentDistance(loc, seg.Start, seg.End) < threshold {
				blocked[n.ID] = true
				break
			}
		}
	}

	return blocked
}

// segmentsClear is the final safety net before a route is accepted: even
// with node-level blocking, a coarse grid can still produce an edge that
// passes closer to existing occupancy than clearance allows. Conflicts
// against junction segments at targetLoc are tolerated.
func (o *OAHSRouter) segmentsClear(segs []routeseg.RouteSegment, diameter, clearance float64, targetLoc geometry.Point2D) bool {
	for _, s := range segs {
		if s.DomainID == "" {
			continue
		}
		for _, conflict := range o.occupancy.GetConflicts(s.DomainID, s.Start, s.End, diameter, clearance) {
			threshold := diameter/2 + conflict.Diameter/2 + clearance
			if isJunctionSegment(conflict, targetLoc, threshold) {
				continue
			}
			return false
		}
	}
	return true
}

// registerOccupancy reserves every segment of route under its owning
// domain, tagged with the connector's diameter (connectorDiameter: the
// declared diameter, else the per-system estimate) and trade
// classification (spec.md §4.8.2 step 3).
func (o *OAHSRouter) registerOccupancy(route *routeseg.Route, conn connector.ConnectorInfo) {
	diameter := o.connectorDiameter(conn)
	trade := ClassifyTrade(route.SystemType)

	for _, seg := range route.Segments {
		if seg.DomainID == "" {
			continue
		}
		o.occupancy.Reserve(seg.DomainID, occupancy.OccupiedSegment{
			RouteID:    route.ID,
			SystemType: route.SystemType,
			Trade:      string(trade),
			Start:      seg.Start,
			End:        seg.End,
			Diameter:   diameter,
		})
	}
}

// Statistics summarizes the router's current domain/occupancy footprint
// (spec.md §9 logging hooks; oahs_router.py get_statistics).
type Statistics struct {
	Domains           int
	OccupancySegments int
	RegisteredSystems []string
}

// Statistics returns a snapshot of o's current state.
func (o *OAHSRouter) Statistics() Statistics {
	stats := o.mdg.Stats()

	total := 0
	for id := range stats.PerDomain {
		total += len(o.occupancy.Segments(id))
	}

	return Statistics{
		Domains:           stats.NumDomains,
		OccupancySegments: total,
		RegisteredSystems: o.registry.RegisteredSystems(),
	}
}
