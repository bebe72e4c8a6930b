// Package routecheck property-tests the quantified invariants of
// spec.md §8 with pgregory.net/rapid, the generator library the
// dshills-dungo pack member uses for its own graph-construction tests
// (SPEC_FULL.md §10.5).
package routecheck

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/oahs/router/internal/geometry"
	"github.com/oahs/router/internal/hanan"
)

type adjEntry struct {
	to   int
	cost float64
}

func buildAdjacency(edges []hanan.Edge) map[int][]adjEntry {
	adj := make(map[int][]adjEntry)
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], adjEntry{to: e.To, cost: e.Cost})
		adj[e.To] = append(adj[e.To], adjEntry{to: e.From, cost: e.Cost})
	}
	return adj
}

func bfsReachable(adj map[int][]adjEntry, source int) map[int]bool {
	visited := map[int]bool{source: true}
	queue := []int{source}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, e := range adj[cur] {
			if !visited[e.to] {
				visited[e.to] = true
				queue = append(queue, e.to)
			}
		}
	}

	return visited
}

// TestHananMSTConnectsAllTerminals is spec.md §8 invariant 7: for any
// generated terminal set, a BFS from any one terminal in the returned
// MST edge set reaches every other terminal.
func TestHananMSTConnectsAllTerminals(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 12).Draw(t, "terminalCount")

		terminals := make([]geometry.Point2D, n)
		seen := make(map[[2]float64]bool)
		for i := 0; i < n; i++ {
			var u, v float64
			for {
				u = rapid.Float64Range(0, 20).Draw(t, fmt.Sprintf("u_%d", i))
				v = rapid.Float64Range(0, 20).Draw(t, fmt.Sprintf("v_%d", i))
				key := [2]float64{u, v}
				if !seen[key] {
					seen[key] = true
					break
				}
			}
			terminals[i] = geometry.Point2D{U: u, V: v}
		}

		grid := hanan.FromTerminals(terminals, nil, 1e-6)
		if len(grid.TerminalIndices) < 2 {
			return
		}

		edges := hanan.ComputeMST(grid, grid.TerminalIndices)
		adj := buildAdjacency(edges)

		root := grid.TerminalIndices[0]
		reached := bfsReachable(adj, root)
		for _, idx := range grid.TerminalIndices {
			if !reached[idx] {
				t.Fatalf("terminal index %d unreachable from root %d (terminals=%v)", idx, root, terminals)
			}
		}
	})
}
