package aoc

import (
	"context"
	"math"

	"golang.org/x/exp/maps"

	"github.com/maisem/aoc2024/search"
)

// Graph is an undirected graph with integer edge weights.
type Graph[K comparable] struct {
	Nodes map[K]bool
	Edges map[K]map[K]int
}

func (g *Graph[K]) Clone() *Graph[K] {
	var out Graph[K]
	out.Nodes = maps.Clone(g.Nodes)
	out.Edges = maps.Clone(g.Edges)
	for k, e := range g.Edges {
		out.Edges[k] = maps.Clone(e)
	}
	return &out
}

func (g *Graph[K]) AddNode(a K) {
	InitMap(&g.Nodes)
	g.Nodes[a] = true
}

func (g *Graph[K]) RemoveNode(a K) {
	for e := range g.Edges[a] {
		delete(g.Edges[e], a)
	}
	delete(g.Edges, a)
	delete(g.Nodes, a)
}

func (g *Graph[K]) AddEdge(a, b K, dist int) {
	InitMap(&g.Edges)
	InitMap(&g.Nodes)
	if g.Edges[a] == nil {
		g.Edges[a] = make(map[K]int)
	}
	if g.Edges[b] == nil {
		g.Edges[b] = make(map[K]int)
	}
	g.Edges[a][b] = dist
	g.Edges[b][a] = dist
	g.Nodes[a] = true
	g.Nodes[b] = true
}

func (g *Graph[K]) RemoveEdge(a, b K) {
	delete(g.Edges[a], b)
	delete(g.Edges[b], a)
}

// Neighbors returns the edges leaving a, in the form the search engine
// consumes.
func (g *Graph[K]) Neighbors(a K) []search.Edge[K, int] {
	out := make([]search.Edge[K, int], 0, len(g.Edges[a]))
	for k, d := range g.Edges[a] {
		out = append(out, search.Edge[K, int]{To: k, Cost: d})
	}
	return out
}

// ShortestPath returns the cheapest route from start to end.
func (g *Graph[K]) ShortestPath(ctx context.Context, start, end K, opts ...search.Option) (search.Result[K, int], error) {
	return search.Shortest(ctx, search.Problem[K, K, int]{
		Start:     start,
		IsGoal:    func(k K) bool { return k == end },
		Neighbors: g.Neighbors,
		Key:       search.Identity[K](),
	}, opts...)
}

// AllShortestPaths returns the distance between every pair of nodes using
// Floyd–Warshall. Unconnected pairs are absent.
func (g *Graph[K]) AllShortestPaths() map[Edge[K]]int {
	type key = Edge[K]
	dist := map[key]int{}
	for k1 := range g.Nodes {
		for k2 := range g.Nodes {
			if k1 == k2 {
				dist[key{k1, k1}] = 0
			} else if v, ok := g.Edges[k1][k2]; ok {
				dist[key{k1, k2}] = v
				dist[key{k2, k1}] = v
			} else {
				dist[key{k1, k2}] = math.MaxInt
				dist[key{k2, k1}] = math.MaxInt
			}
		}
	}
	for k2 := range g.Nodes {
		for k1 := range g.Nodes {
			for k3 := range g.Nodes {
				e12 := dist[key{k1, k2}]
				e23 := dist[key{k2, k3}]
				e13 := dist[key{k1, k3}]
				if e12 == math.MaxInt || e23 == math.MaxInt {
					continue
				}
				if e := e12 + e23; e < e13 {
					dist[key{k1, k3}] = e
				}
			}
		}
	}
	maps.DeleteFunc(dist, func(_ key, d int) bool { return d == math.MaxInt })
	return dist
}

func (g *Graph[K]) ReachableNodes(a K) map[K]bool {
	visited := make(map[K]bool)
	var q Queue[K]
	q.Push(a)
	q.While(func(v K) bool {
		if visited[v] {
			return true
		}
		visited[v] = true
		for k := range g.Edges[v] {
			q.Push(k)
		}
		return true
	})
	return visited
}

type Edge[T comparable] struct {
	A, B T
}
