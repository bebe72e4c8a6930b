// Package hanan builds the Hanan grid and computes a minimum rectilinear
// Steiner tree over a set of terminal points, for multi-terminal MEP
// trees (spec.md §4.7.3). Grounded on hanan_grid.py's HananGrid/HananMST/
// SteinerTreeBuilder, with the MST itself re-templated on lvlath's
// prim_kruskal/kruskal.go union-find.
package hanan

import (
	"math"
	"sort"

	"github.com/oahs/router/internal/geometry"
	"github.com/oahs/router/internal/obstacle"
)

var posInf = math.Inf(1)

// defaultTolerance is the coordinate rounding tolerance used to merge
// near-duplicate terminal coordinates into a single grid line.
const defaultTolerance = 1e-6

// penetrableCostMultiplier is the cost multiplier applied to a grid
// point that falls inside a penetrable obstacle (spec.md §4.7.3 step 2).
const penetrableCostMultiplier = 5.0

// Grid is the lattice formed by the axis-aligned lines through every
// terminal's (x, y) coordinate. Hanan's theorem guarantees it contains
// an optimal rectilinear Steiner tree connecting the terminals.
type Grid struct {
	XCoords []float64
	YCoords []float64

	// Points is row-major: for each y in YCoords, for each x in XCoords.
	Points []geometry.Point2D

	pointIndex      map[[2]float64]int
	TerminalIndices []int

	Blocked  map[int]bool
	HighCost map[int]float64
}

func roundTo(v, tolerance float64) float64 {
	if tolerance == 0 {
		return v
	}

	return round(v/tolerance) * tolerance
}

func round(x float64) float64 {
	if x >= 0 {
		return float64(int64(x + 0.5))
	}

	return float64(int64(x - 0.5))
}

// FromTerminals builds a Grid from terminal (x, y) points, optionally
// marking grid points blocked or high-cost per obstacles (spec.md
// §4.7.3 steps 1-2).
func FromTerminals(terminals []geometry.Point2D, obstacles []obstacle.Obstacle, tolerance float64) *Grid {
	if tolerance == 0 {
		tolerance = defaultTolerance
	}

	g := &Grid{
		pointIndex: make(map[[2]float64]int),
		Blocked:    make(map[int]bool),
		HighCost:   make(map[int]float64),
	}

	if len(terminals) == 0 {
		return g
	}

	xSet := make(map[float64]bool)
	ySet := make(map[float64]bool)
	for _, t := range terminals {
		xSet[roundTo(t.U, tolerance)] = true
		ySet[roundTo(t.V, tolerance)] = true
	}

	g.XCoords = sortedKeys(xSet)
	g.YCoords = sortedKeys(ySet)

	g.Points = make([]geometry.Point2D, 0, len(g.XCoords)*len(g.YCoords))
	for _, y := range g.YCoords {
		for _, x := range g.XCoords {
			idx := len(g.Points)
			pt := geometry.Point2D{U: x, V: y}
			g.Points = append(g.Points, pt)
			g.pointIndex[[2]float64{x, y}] = idx
		}
	}

	for _, t := range terminals {
		key := [2]float64{roundTo(t.U, tolerance), roundTo(t.V, tolerance)}
		if idx, ok := g.pointIndex[key]; ok {
			g.TerminalIndices = append(g.TerminalIndices, idx)
		}
	}

	if len(obstacles) > 0 {
		g.markObstacles(obstacles)
	}

	return g
}

func sortedKeys(set map[float64]bool) []float64 {
	out := make([]float64, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Float64s(out)

	return out
}

// markObstacles marks each grid point blocked (non-penetrable) or
// high-cost (penetrable, 5.0 multiplier) per spec.md §4.7.3 step 2.
func (g *Grid) markObstacles(obstacles []obstacle.Obstacle) {
	for idx, p := range g.Points {
		for _, obs := range obstacles {
			if !obs.ContainsPoint(p) {
				continue
			}
			if !obs.Penetrable {
				g.Blocked[idx] = true
			} else {
				current := g.HighCost[idx]
				if current == 0 {
					current = 1.0
				}
				if penetrableCostMultiplier > current {
					current = penetrableCostMultiplier
				}
				g.HighCost[idx] = current
			}
		}
	}
}

// IsTerminal reports whether pointIdx is one of the original terminals.
func (g *Grid) IsTerminal(pointIdx int) bool {
	for _, idx := range g.TerminalIndices {
		if idx == pointIdx {
			return true
		}
	}

	return false
}

func (g *Grid) xIndex(x float64) (int, bool) {
	i := sort.SearchFloat64s(g.XCoords, x)
	if i < len(g.XCoords) && g.XCoords[i] == x {
		return i, true
	}

	return 0, false
}

func (g *Grid) yIndex(y float64) (int, bool) {
	i := sort.SearchFloat64s(g.YCoords, y)
	if i < len(g.YCoords) && g.YCoords[i] == y {
		return i, true
	}

	return 0, false
}

// Neighbors returns the up-to-four 4-neighborhood grid point indices
// adjacent to pointIdx (spec.md §4.7.3 step 3).
func (g *Grid) Neighbors(pointIdx int) []int {
	if pointIdx < 0 || pointIdx >= len(g.Points) {
		return nil
	}

	p := g.Points[pointIdx]
	xi, ok := g.xIndex(p.U)
	if !ok {
		return nil
	}
	yi, ok := g.yIndex(p.V)
	if !ok {
		return nil
	}

	var out []int
	if xi > 0 {
		if idx, ok := g.pointIndex[[2]float64{g.XCoords[xi-1], p.V}]; ok {
			out = append(out, idx)
		}
	}
	if xi < len(g.XCoords)-1 {
		if idx, ok := g.pointIndex[[2]float64{g.XCoords[xi+1], p.V}]; ok {
			out = append(out, idx)
		}
	}
	if yi > 0 {
		if idx, ok := g.pointIndex[[2]float64{p.U, g.YCoords[yi-1]}]; ok {
			out = append(out, idx)
		}
	}
	if yi < len(g.YCoords)-1 {
		if idx, ok := g.pointIndex[[2]float64{p.U, g.YCoords[yi+1]}]; ok {
			out = append(out, idx)
		}
	}

	return out
}

// EdgeCost returns the Manhattan-distance cost between adjacent points
// fromIdx/toIdx, scaled by the max cost-multiplier of its two
// endpoints, or +Inf if either endpoint is blocked (spec.md §4.7.3
// step 3).
func (g *Grid) EdgeCost(fromIdx, toIdx int) float64 {
	if g.Blocked[fromIdx] || g.Blocked[toIdx] {
		return posInf
	}

	p1 := g.Points[fromIdx]
	p2 := g.Points[toIdx]
	base := absF(p1.U-p2.U) + absF(p1.V-p2.V)

	multiplier := 1.0
	if m, ok := g.HighCost[fromIdx]; ok && m > multiplier {
		multiplier = m
	}
	if m, ok := g.HighCost[toIdx]; ok && m > multiplier {
		multiplier = m
	}

	return base * multiplier
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}

// weightedEdge is one (from, to, cost) edge in the grid.
type weightedEdge struct {
	From, To int
	Cost     float64
}

// AllEdges returns every finite-cost edge in the grid, deduplicated by
// endpoint pair (spec.md §4.7.3 step 3).
func (g *Grid) AllEdges() []weightedEdge {
	var edges []weightedEdge
	seen := make(map[[2]int]bool)

	for idx := range g.Points {
		for _, nbr := range g.Neighbors(idx) {
			key := [2]int{idx, nbr}
			if idx > nbr {
				key = [2]int{nbr, idx}
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			cost := g.EdgeCost(idx, nbr)
			if cost < posInf {
				edges = append(edges, weightedEdge{From: idx, To: nbr, Cost: cost})
			}
		}
	}

	return edges
}
