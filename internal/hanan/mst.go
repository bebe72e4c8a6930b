package hanan

import "sort"

// unionFind is a path-compressed, union-by-rank disjoint-set over grid
// point indices, templated on prim_kruskal/kruskal.go's inline DSU.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}

	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}

	return x
}

func (uf *unionFind) union(x, y int) {
	rx, ry := uf.find(x), uf.find(y)
	if rx == ry {
		return
	}

	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
}

// Edge is one edge of a computed Steiner tree.
type Edge struct {
	From, To int
	Cost     float64
}

// ComputeMST connects terminalIndices through grid's lattice using
// Kruskal's algorithm with union-find, stopping as soon as every
// terminal is in one component, then prunes non-terminal leaves and
// collinear degree-2 Steiner pass-throughs (spec.md §4.7.3 steps 3-5).
func ComputeMST(grid *Grid, terminalIndices []int) []Edge {
	if len(terminalIndices) < 2 {
		return nil
	}

	allEdges := grid.AllEdges()
	sort.SliceStable(allEdges, func(i, j int) bool {
		return allEdges[i].Cost < allEdges[j].Cost
	})

	uf := newUnionFind(len(grid.Points))
	terminalSet := make(map[int]bool, len(terminalIndices))
	for _, t := range terminalIndices {
		terminalSet[t] = true
	}

	var mst []Edge
	for _, e := range allEdges {
		if uf.find(e.From) == uf.find(e.To) {
			continue
		}

		uf.union(e.From, e.To)
		mst = append(mst, Edge{From: e.From, To: e.To, Cost: e.Cost})

		if allTerminalsConnected(uf, terminalIndices) {
			break
		}
	}

	mst = pruneLeaves(mst, terminalSet)
	mst = pruneCollinearSteiner(grid, mst, terminalSet)

	return mst
}

func allTerminalsConnected(uf *unionFind, terminalIndices []int) bool {
	if len(terminalIndices) == 0 {
		return true
	}

	root := uf.find(terminalIndices[0])
	for _, t := range terminalIndices[1:] {
		if uf.find(t) != root {
			return false
		}
	}

	return true
}

type adjEntry struct {
	Neighbor int
	Cost     float64
}

func buildAdjacency(edges []Edge) map[int][]adjEntry {
	adj := make(map[int][]adjEntry)
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], adjEntry{Neighbor: e.To, Cost: e.Cost})
		adj[e.To] = append(adj[e.To], adjEntry{Neighbor: e.From, Cost: e.Cost})
	}

	return adj
}

// pruneLeaves iteratively removes non-terminal degree-1 nodes until
// stable (spec.md §4.7.3 step 4 — removes "tails" not leading to a
// terminal).
func pruneLeaves(edges []Edge, terminalSet map[int]bool) []Edge {
	adj := buildAdjacency(edges)

	changed := true
	for changed {
		changed = false
		for node, neighbors := range adj {
			if terminalSet[node] || len(neighbors) != 1 {
				continue
			}

			nbr := neighbors[0].Neighbor
			adj[nbr] = removeNeighbor(adj[nbr], node)
			delete(adj, node)
			changed = true
		}
	}

	var pruned []Edge
	seen := make(map[[2]int]bool)
	for _, e := range edges {
		if _, okF := adj[e.From]; !okF {
			continue
		}
		if _, okT := adj[e.To]; !okT {
			continue
		}

		key := [2]int{e.From, e.To}
		if e.From > e.To {
			key = [2]int{e.To, e.From}
		}
		if seen[key] {
			continue
		}

		if hasNeighbor(adj[e.From], e.To) {
			pruned = append(pruned, e)
			seen[key] = true
		}
	}

	return pruned
}

func removeNeighbor(entries []adjEntry, node int) []adjEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.Neighbor != node {
			out = append(out, e)
		}
	}

	return out
}

func hasNeighbor(entries []adjEntry, node int) bool {
	for _, e := range entries {
		if e.Neighbor == node {
			return true
		}
	}

	return false
}

// pruneCollinearSteiner removes any degree-2 non-terminal whose two
// neighbors are collinear (same x or same y), replacing the pair of
// edges with one direct edge summing their costs; repeats to a fixed
// point (spec.md §4.7.3 step 5).
func pruneCollinearSteiner(grid *Grid, edges []Edge, terminalSet map[int]bool) []Edge {
	for {
		adj := buildAdjacency(edges)

		// One node per pass: pruning two adjacent pass-throughs in the
		// same sweep would bridge to nodes removed in that sweep. The
		// lowest prunable index is taken so repeat calls merge chains in
		// the same order and emit identical edge slices (spec.md §8
		// invariant 5); a map range here would leak its iteration order
		// into the returned segment order.
		prunable := -1
		for node, neighbors := range adj {
			if terminalSet[node] || len(neighbors) != 2 {
				continue
			}

			p := grid.Points[node]
			p1 := grid.Points[neighbors[0].Neighbor]
			p2 := grid.Points[neighbors[1].Neighbor]

			const epsilon = 1e-6
			sameX := absF(p.U-p1.U) < epsilon && absF(p.U-p2.U) < epsilon
			sameY := absF(p.V-p1.V) < epsilon && absF(p.V-p2.V) < epsilon
			if (sameX || sameY) && (prunable < 0 || node < prunable) {
				prunable = node
			}
		}

		if prunable < 0 {
			return edges
		}

		var next []Edge
		for _, e := range edges {
			if e.From != prunable && e.To != prunable {
				next = append(next, e)
			}
		}

		neighbors := adj[prunable]
		next = append(next, Edge{
			From: neighbors[0].Neighbor,
			To:   neighbors[1].Neighbor,
			Cost: neighbors[0].Cost + neighbors[1].Cost,
		})

		edges = next
	}
}
