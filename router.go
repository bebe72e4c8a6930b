package oahs

import (
	"github.com/oahs/router/connector"
	"github.com/oahs/router/internal/config"
	"github.com/oahs/router/internal/domaingraph"
	"github.com/oahs/router/internal/geometry"
	"github.com/oahs/router/internal/hanan"
	"github.com/oahs/router/internal/heuristic"
	"github.com/oahs/router/internal/latticegraph"
	"github.com/oahs/router/internal/obstacle"
	"github.com/oahs/router/internal/occupancy"
	"github.com/oahs/router/internal/orchestrator"
	"github.com/oahs/router/internal/postprocess"
	"github.com/oahs/router/internal/routelog"
	"github.com/oahs/router/internal/routeseg"
	"github.com/oahs/router/internal/target"
	"github.com/oahs/router/result"
)

// Re-exported model types, so callers depend only on the root package
// and connector/result rather than reaching into internal/.
type (
	// RoutingTarget is a valid destination for a route (spec.md §3.5).
	RoutingTarget = target.RoutingTarget
	// TargetKind enumerates RoutingTarget.Kind values.
	TargetKind = target.Kind
	// ConnectorInfo describes a fixture's pipe/wire terminal to be routed.
	ConnectorInfo = connector.ConnectorInfo
	// RoutingDomain is one routing plane: a wall cavity, floor cavity,
	// ceiling cavity, or shaft (spec.md §3.2).
	RoutingDomain = obstacle.RoutingDomain
	// Obstacle is a rectilinear obstruction inside a RoutingDomain
	// (spec.md §3.1).
	Obstacle = obstacle.Obstacle
	// FramingElement overrides a wall domain's default stud pattern with
	// caller-supplied timber members (spec.md §6.1).
	FramingElement = obstacle.FramingElement
	// WallDomainOptions configures NewWallDomain's stud spacing, width,
	// and plate thickness.
	WallDomainOptions = obstacle.WallDomainOptions
	// FloorDomainOptions configures NewFloorDomain's joist spacing and
	// web-opening allowance.
	FloorDomainOptions = obstacle.FloorDomainOptions
	// RoutingResult is the outcome of a RouteAll call (spec.md §4.8.4).
	RoutingResult = result.RoutingResult
	// WallRoutingResult partitions a RoutingResult by wall domain,
	// distinguishing fully-routed wall runs from floor passthroughs that
	// need the caller's floor model to complete (spec.md §7).
	WallRoutingResult = result.WallRoutingResult
	// Route is an ordered sequence of axis-aligned segments realizing one
	// connector-to-target path (spec.md §3.7).
	Route = routeseg.Route
	// RouteSegment is one straight run of a Route.
	RouteSegment = routeseg.RouteSegment
	// RouterConfig aggregates every tunable of spec.md §6.4.
	RouterConfig = config.RouterConfig
	// Logger is the diagnostic output surface a Router accepts.
	Logger = routelog.Logger
)

// Target kind constants, re-exported for callers building RoutingTarget
// values without importing internal/target directly.
const (
	KindWetWall            = target.KindWetWall
	KindFloorPenetration   = target.KindFloorPenetration
	KindCeilingPenetration = target.KindCeilingPenetration
	KindShaft              = target.KindShaft
	KindPanelBoundary      = target.KindPanelBoundary
	KindEquipment          = target.KindEquipment
	KindMainLine           = target.KindMainLine
)

// Router is the public entry point described in spec.md §6: add routing
// domains and the transitions between them, then call RouteAll with the
// connectors and targets to route. It owns the multi-domain graph, the
// occupancy map every successful route reserves against, and the
// per-system target-selection registry.
//
// A Router is not safe for concurrent use by multiple goroutines calling
// RouteAll simultaneously; its internal MultiDomainGraph and OccupancyMap
// serialize their own state but the orchestration sequence assumes a
// single caller, matching original_source's OAHSRouter.
type Router struct {
	mdg       *domaingraph.MultiDomainGraph
	occupancy *occupancy.OccupancyMap
	registry  *heuristic.Registry
	transGen  *domaingraph.TransitionGenerator
	core      *orchestrator.OAHSRouter
	cfg       config.RouterConfig
	logger    routelog.Logger
}

// Option configures a Router at construction.
type Option func(*Router)

// WithConfig seeds every tunable from cfg instead of config.DefaultRouterConfig.
func WithConfig(cfg config.RouterConfig) Option {
	return func(r *Router) { r.cfg = cfg }
}

// WithLogger attaches l for diagnostic output; the default discards
// everything.
func WithLogger(l Logger) Option {
	return func(r *Router) { r.logger = l }
}

// WithRegistry overrides the default per-system heuristic registry, for
// callers that need to register a heuristic.TargetHeuristic for a system
// type the built-ins don't cover.
func WithRegistry(reg *heuristic.Registry) Option {
	return func(r *Router) { r.registry = reg }
}

// NewRouter constructs an empty Router ready to accept domains.
func NewRouter(opts ...Option) *Router {
	r := &Router{
		mdg:       domaingraph.NewMultiDomainGraph(),
		occupancy: occupancy.NewOccupancyMap(),
		registry:  heuristic.NewDefaultRegistry(),
		transGen:  domaingraph.NewTransitionGenerator(),
		cfg:       config.DefaultRouterConfig(),
		logger:    routelog.NopLogger{},
	}

	for _, opt := range opts {
		opt(r)
	}

	r.core = orchestrator.NewOAHSRouter(r.mdg, r.occupancy, r.registry,
		orchestrator.WithRouterConfig(r.cfg),
		orchestrator.WithLogger(r.logger),
	)

	return r
}

// AddWallDomain registers a wall cavity domain and builds its grid
// lattice at the router's configured resolution (spec.md §4.3, §4.5).
func (r *Router) AddWallDomain(d *RoutingDomain) error {
	if err := r.mdg.AddDomain(d); err != nil {
		return err
	}

	latticegraph.BuildWallLattice(r.mdg, d, latticegraph.WallLatticeOptions{
		ResolutionU: r.cfg.WallResolutionU,
		ResolutionV: r.cfg.WallResolutionV,
		Occupancy:   r.occupancy,
	})

	return nil
}

// AddFloorDomain registers a floor or ceiling cavity domain and builds
// its grid lattice at the router's configured resolution (spec.md §4.3,
// §4.5).
func (r *Router) AddFloorDomain(d *RoutingDomain) error {
	if err := r.mdg.AddDomain(d); err != nil {
		return err
	}

	latticegraph.BuildFloorLattice(r.mdg, d, latticegraph.FloorLatticeOptions{
		Resolution: r.cfg.FloorResolution,
		Occupancy:  r.occupancy,
	})

	return nil
}

// ConnectWallToFloor wires a wall cavity's bottom plate to a floor
// cavity wherever the wall runs above it (spec.md §4.6).
func (r *Router) ConnectWallToFloor(wallDomainID, floorDomainID string, wallMinV float64, wallWorldOrigin, wallDirection [2]float64) []domaingraph.TransitionEdge {
	edges := r.transGen.GenerateWallToFloor(r.mdg, wallDomainID, floorDomainID, wallMinV, wallWorldOrigin, wallDirection)
	for _, e := range edges {
		_ = r.mdg.AddTransition(e)
	}
	return edges
}

// ConnectWallToWall wires two wall cavities that meet at a corner
// (spec.md §4.6).
func (r *Router) ConnectWallToWall(wallAID, wallBID string, cornerXY [2]float64) (domaingraph.TransitionEdge, bool) {
	e := r.transGen.GenerateWallToWall(r.mdg, wallAID, wallBID, cornerXY)
	if e == nil {
		return domaingraph.TransitionEdge{}, false
	}
	_ = r.mdg.AddTransition(*e)
	return *e, true
}

// ConnectFloorToCeiling wires a floor cavity to the ceiling cavity below
// it (spec.md §4.6).
func (r *Router) ConnectFloorToCeiling(floorDomainID, ceilingDomainID string) []domaingraph.TransitionEdge {
	edges := r.transGen.GenerateFloorToCeiling(r.mdg, floorDomainID, ceilingDomainID)
	for _, e := range edges {
		_ = r.mdg.AddTransition(e)
	}
	return edges
}

// RouteAll sequences connectors by priority and routes each against the
// current occupancy, then runs the sanitary post-processing pass over
// the result (spec.md §4.8, §5). This is the main entry point a caller
// reaches for once every domain and transition has been added.
func (r *Router) RouteAll(connectors []ConnectorInfo, targets []RoutingTarget) *RoutingResult {
	res := r.core.RouteAll(connectors, targets)

	ppCfg := postprocess.DefaultConfig()
	ppCfg.SlopePerFoot = r.cfg.SanitarySlopePerFoot
	ppCfg.MinSlopePerFoot = r.cfg.SanitaryMinSlopePerFoot

	return postprocess.Process(res, ppCfg)
}

// RouteSteinerTree connects two or more terminal points within one
// registered domain by a rectilinear Steiner tree over the Hanan grid
// (spec.md §4.7.3) — for branch runs serving several fixtures from a
// single stack, where per-connector A* would produce redundant parallel
// runs. The first terminal is treated as the tree's source. Returns
// false when the domain is unknown, fewer than two terminals are given,
// or the terminals cannot be connected.
func (r *Router) RouteSteinerTree(id, systemType, domainID string, terminals [][2]float64) (*Route, bool) {
	d, ok := r.mdg.Domain(domainID)
	if !ok {
		return nil, false
	}
	if len(terminals) < 2 {
		return nil, false
	}

	pts := make([]geometry.Point2D, len(terminals))
	for i, t := range terminals {
		pts[i] = geometry.Point2D{U: t[0], V: t[1]}
	}

	grid, edges := hanan.ComputeAndConvert(pts, d.Obstacles)
	if len(edges) == 0 || len(grid.TerminalIndices) < 2 {
		return nil, false
	}

	source := grid.TerminalIndices[0]
	sink := grid.TerminalIndices[len(grid.TerminalIndices)-1]
	route := hanan.ToRoute(grid, edges, id, systemType, source, sink, domainID)
	if len(route.Segments) == 0 {
		return nil, false
	}

	return route, true
}

// RouteWallOnly runs RouteAll and partitions the result for a single
// wall domain into fully-routed wall runs and floor passthroughs that
// still need a floor model to complete (spec.md §7).
func (r *Router) RouteWallOnly(wallDomainID string, connectors []ConnectorInfo, targets []RoutingTarget, source result.ObstacleSource) *WallRoutingResult {
	full := r.RouteAll(connectors, targets)
	return result.NewWallRoutingResult(full, wallDomainID, source)
}

// Statistics reports the router's current domain/occupancy footprint
// (spec.md §9 logging hooks).
func (r *Router) Statistics() orchestrator.Statistics {
	return r.core.Statistics()
}

// DefaultWallDomainOptions returns spec.md §3.3's default 16"-OC stud
// spacing, stud width, and plate thickness.
func DefaultWallDomainOptions() WallDomainOptions {
	return obstacle.DefaultWallDomainOptions()
}

// NewWallDomain builds a wall cavity RoutingDomain of the given length
// and height, with a regular stud pattern derived from opts (spec.md
// §3.3). Pass FramingElements explicitly via NewWallDomainFromFraming
// instead when the caller has actual framing geometry to override the
// default pattern with (spec.md §6.1).
func NewWallDomain(id string, length, height float64, opts WallDomainOptions) (*RoutingDomain, error) {
	return obstacle.NewWallDomain(id, length, height, opts)
}

// NewWallDomainFromFraming builds a wall cavity RoutingDomain whose
// obstacles come from caller-supplied elements instead of a regular
// stud-spacing pattern (spec.md §6.1).
func NewWallDomainFromFraming(id string, length, height, thickness float64, elements []FramingElement) (*RoutingDomain, error) {
	return obstacle.NewWallDomainFromFraming(id, length, height, thickness, elements)
}

// DefaultFloorDomainOptions returns spec.md §3.3's default joist
// spacing and web-opening allowance.
func DefaultFloorDomainOptions() FloorDomainOptions {
	return obstacle.DefaultFloorDomainOptions()
}

// NewFloorDomain builds a floor or ceiling cavity RoutingDomain of the
// given width and length, with a regular joist pattern derived from
// opts (spec.md §3.3).
func NewFloorDomain(id string, width, length float64, opts FloorDomainOptions) (*RoutingDomain, error) {
	return obstacle.NewFloorDomain(id, width, length, opts)
}
