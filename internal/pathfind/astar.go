// Package pathfind implements A* search over a unified domaingraph.Graph
// and reconstructs the resulting node sequence into routeseg.RouteSegments
// (spec.md §4.7.1, §4.7.2). Structurally templated on dijkstra/dijkstra.go's
// heap runner with lazy decrease-key, extended with an h(n) heuristic and
// a monotonic tie-break counter.
package pathfind

import (
	"container/heap"
	"math"
	"sort"

	"github.com/oahs/router/internal/domaingraph"
)

// Result bundles the outcome of a Find call (spec.md §4.7.1).
type Result struct {
	Path           []domaingraph.NodeID
	Cost           float64
	VisitedCount   int
	DomainsCrossed []string
	Success        bool
}

// Options configures a Find call.
type Options struct {
	// Blocked is a set of nodes that are never popped/expanded.
	Blocked map[domaingraph.NodeID]bool
}

// Find runs A* from source to target over g, using Manhattan distance
// between node locations as the heuristic (falling back to 0, i.e.
// Dijkstra, when either endpoint lacks location data) (spec.md §4.7.1).
func Find(g *domaingraph.Graph, source, target domaingraph.NodeID, opts Options) Result {
	if source == target {
		return Result{Path: []domaingraph.NodeID{source}, Cost: 0, Success: true}
	}

	targetNode, hasTarget := g.Node(target)

	dist := map[domaingraph.NodeID]float64{source: 0}
	prev := map[domaingraph.NodeID]domaingraph.NodeID{}
	visited := map[domaingraph.NodeID]bool{}

	pq := make(nodePQ, 0, g.NodeCount())
	heap.Init(&pq)
	heap.Push(&pq, &nodeItem{id: source, f: heuristic(g, source, targetNode, hasTarget)})

	counter := 0
	visitedCount := 0

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*nodeItem)
		u := item.id

		if visited[u] {
			continue
		}
		if opts.Blocked != nil && opts.Blocked[u] {
			continue
		}

		visited[u] = true
		visitedCount++

		if u == target {
			break
		}

		// Expand in ascending node-ID order so equal-f ties resolve the
		// same way on every run (spec.md §5's determinism guarantee);
		// map iteration order would otherwise leak into the path choice.
		nbrs := g.Neighbors(u)
		order := make([]domaingraph.NodeID, 0, len(nbrs))
		for v := range nbrs {
			order = append(order, v)
		}
		sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

		for _, v := range order {
			edge := nbrs[v]
			if edge.Directed && edge.From != u {
				continue
			}
			if visited[v] {
				continue
			}
			if opts.Blocked != nil && opts.Blocked[v] {
				continue
			}
			if math.IsInf(edge.Weight, 1) {
				continue
			}

			newDist := dist[u] + edge.Weight
			if existing, ok := dist[v]; ok && newDist >= existing {
				continue
			}

			dist[v] = newDist
			prev[v] = u

			counter++
			heap.Push(&pq, &nodeItem{
				id:     v,
				f:      newDist + heuristic(g, v, targetNode, hasTarget),
				tiebrk: counter,
			})
		}
	}

	if !visited[target] {
		return Result{Success: false, VisitedCount: visitedCount}
	}

	path := reconstructPath(prev, source, target)
	domainsCrossed := domainsCrossedFor(g, path)

	return Result{
		Path:           path,
		Cost:           dist[target],
		VisitedCount:   visitedCount,
		DomainsCrossed: domainsCrossed,
		Success:        true,
	}
}

func heuristic(g *domaingraph.Graph, id domaingraph.NodeID, target *domaingraph.Node, hasTarget bool) float64 {
	if !hasTarget {
		return 0
	}

	n, ok := g.Node(id)
	if !ok {
		return 0
	}

	return math.Abs(n.Location[0]-target.Location[0]) + math.Abs(n.Location[1]-target.Location[1])
}

func reconstructPath(prev map[domaingraph.NodeID]domaingraph.NodeID, source, target domaingraph.NodeID) []domaingraph.NodeID {
	path := []domaingraph.NodeID{target}
	cur := target
	for cur != source {
		p, ok := prev[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
	}

	// Reverse into source-to-target order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

func domainsCrossedFor(g *domaingraph.Graph, path []domaingraph.NodeID) []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range path {
		n, ok := g.Node(id)
		if !ok || n.DomainID == "" || seen[n.DomainID] {
			continue
		}
		seen[n.DomainID] = true
		out = append(out, n.DomainID)
	}

	return out
}

// nodeItem is a (node, f-score) pair with a monotonic tie-breaker,
// ordered by f ascending then tiebrk ascending (spec.md §4.7.1).
type nodeItem struct {
	id     domaingraph.NodeID
	f      float64
	tiebrk int
}

type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}

	return pq[i].tiebrk < pq[j].tiebrk
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
