package services

import (
	"container/heap"
	"sort"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

// Route finds the shortest path from start to goal using Dijkstra's algorithm.
// Returns false if goal is unreachable or either endpoint is not on the map.
// When several paths share the minimum distance, the one discovered first wins.
func Route(m *domain.CampusMap, start, goal domain.LocationID) (domain.Route, bool) {
	if m == nil || !m.Has(start) || !m.Has(goal) {
		return domain.Route{}, false
	}

	pq := &routeQueue{}
	var seq uint64
	heap.Push(pq, &routeEntry{distance: 0, seq: seq, path: domain.Path{start}})

	visited := make(map[domain.LocationID]bool)
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*routeEntry)
		node := cur.path.Goal()
		if visited[node] {
			continue
		}
		visited[node] = true

		if node == goal {
			return domain.Route{Path: cur.path, Distance: cur.distance}, true
		}

		// Sorted iteration keeps tie-breaking deterministic across runs.
		neighbors := m.Neighbors(node)
		for _, next := range sortedTargets(neighbors) {
			if visited[next] {
				continue
			}
			seq++
			path := make(domain.Path, len(cur.path), len(cur.path)+1)
			copy(path, cur.path)
			heap.Push(pq, &routeEntry{
				distance: cur.distance + neighbors[next].Distance,
				seq:      seq,
				path:     append(path, next),
			})
		}
	}

	return domain.Route{}, false
}

func sortedTargets(edges map[domain.LocationID]domain.Edge) []domain.LocationID {
	out := make([]domain.LocationID, 0, len(edges))
	for to := range edges {
		out = append(out, to)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// routeEntry is a queued partial path.
type routeEntry struct {
	distance float64
	seq      uint64
	path     domain.Path
}

// routeQueue is a min-heap ordered by distance, then insertion order.
type routeQueue []*routeEntry

func (q routeQueue) Len() int { return len(q) }

func (q routeQueue) Less(i, j int) bool {
	if q[i].distance != q[j].distance {
		return q[i].distance < q[j].distance
	}
	return q[i].seq < q[j].seq
}

func (q routeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *routeQueue) Push(x any) { *q = append(*q, x.(*routeEntry)) }

func (q *routeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
