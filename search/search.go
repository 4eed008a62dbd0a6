package search

import (
	"context"
	"fmt"

	"github.com/maisem/aoc2024/pqueue"
)

// node is the single record kept per canonical key. preds holds every
// settled state that reaches it at cost; in Cheapest mode without WithPath
// it stays nil.
type node[S any, C Cost] struct {
	state   S
	cost    C
	settled bool
	preds   []*node[S, C]
}

// entry is a frontier item. An entry whose cost is above its node's cost,
// or whose node is already settled, is stale.
type entry[S any, C Cost] struct {
	n    *node[S, C]
	cost C
}

type engine[S any, K comparable, C Cost] struct {
	p     Problem[S, K, C]
	o     options
	track bool

	nodes map[K]*node[S, C]
	front *pqueue.Queue[entry[S, C], C]
	stats Stats
}

func newEngine[S any, K comparable, C Cost](p Problem[S, K, C], o options) *engine[S, K, C] {
	e := &engine[S, K, C]{
		p:     p,
		o:     o,
		track: o.path || o.mode == AllOptimal,
		nodes: make(map[K]*node[S, C]),
		front: pqueue.New(func(en entry[S, C]) C { return en.cost }),
	}
	start := &node[S, C]{state: p.Start}
	e.nodes[p.Key(p.Start)] = start
	e.push(start, 0)
	return e
}

func (e *engine[S, K, C]) push(n *node[S, C], cost C) {
	e.front.Push(entry[S, C]{n: n, cost: cost})
	e.stats.Pushed++
}

// pop returns the next live node from the frontier, or nil once the
// frontier is exhausted.
func (e *engine[S, K, C]) pop(ctx context.Context) (*node[S, C], error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}
		en, ok := e.front.Pop()
		if !ok {
			return nil, nil
		}
		e.stats.Popped++
		if en.n.settled || en.cost > en.n.cost {
			e.stats.Stale++
			continue
		}
		return en.n, nil
	}
}

// expand settles cur and relaxes its outgoing edges.
func (e *engine[S, K, C]) expand(cur *node[S, C]) error {
	e.stats.Expanded++
	for _, ed := range e.p.Neighbors(cur.state) {
		if ed.Cost < 0 {
			return fmt.Errorf("%w: %v from %v to %v", ErrNegativeCost, ed.Cost, cur.state, ed.To)
		}
		cost := cur.cost + ed.Cost
		k := e.p.Key(ed.To)
		m, ok := e.nodes[k]
		switch {
		case !ok:
			m = &node[S, C]{state: ed.To, cost: cost}
			if e.track {
				m.preds = []*node[S, C]{cur}
			}
			e.nodes[k] = m
			e.push(m, cost)
		case m.settled:
			// Only reachable through a zero-cost edge; keeping the
			// predecessor graph acyclic matters more than that path.
		case cost < m.cost:
			m.state, m.cost = ed.To, cost
			if e.track {
				m.preds = append(m.preds[:0], cur)
			}
			e.push(m, cost)
		case cost == m.cost && e.o.mode == AllOptimal:
			// Parallel edges from cur would record the same route twice.
			if n := len(m.preds); n == 0 || m.preds[n-1] != cur {
				m.preds = append(m.preds, cur)
			}
		}
	}
	return nil
}

// Solve runs the search described by p.
func Solve[S any, K comparable, C Cost](ctx context.Context, p Problem[S, K, C], opts ...Option) (Result[S, C], error) {
	if err := p.validate(true); err != nil {
		return Result[S, C]{}, err
	}
	o := newOptions(opts)
	e := newEngine(p, o)
	o.logger.Debug("search started", "mode", o.mode)

	var goals []*node[S, C]
	for {
		cur, err := e.pop(ctx)
		if err != nil {
			return Result[S, C]{Stats: e.stats}, err
		}
		if cur == nil {
			break
		}
		if len(goals) > 0 && cur.cost > goals[0].cost {
			// Every entry left costs more than the best goal.
			break
		}
		cur.settled = true
		if p.IsGoal(cur.state) {
			if len(goals) == 0 {
				o.logger.Debug("goal reached", "cost", cur.cost, "state", cur.state)
			}
			goals = append(goals, cur)
			if o.mode == Cheapest {
				break
			}
			continue
		}
		if err := e.expand(cur); err != nil {
			return Result[S, C]{Stats: e.stats}, err
		}
	}

	res := Result[S, C]{Stats: e.stats}
	if len(goals) == 0 {
		o.logger.Debug("goal unreachable", "expanded", e.stats.Expanded, "states", len(e.nodes))
		return res, nil
	}
	res.Reachable = true
	res.Cost = goals[0].cost
	switch {
	case o.mode == AllOptimal:
		res.States = optimalStates(goals)
		res.Paths = optimalPaths(goals, o.maxPaths)
	case o.path:
		res.Paths = [][]S{firstPath(goals[0])}
	}
	o.logger.Debug("search finished",
		"cost", res.Cost,
		"goals", len(goals),
		"pushed", e.stats.Pushed,
		"popped", e.stats.Popped,
		"stale", e.stats.Stale,
		"expanded", e.stats.Expanded,
	)
	return res, nil
}

// Shortest is Solve in Cheapest mode.
func Shortest[S any, K comparable, C Cost](ctx context.Context, p Problem[S, K, C], opts ...Option) (Result[S, C], error) {
	return Solve(ctx, p, append(opts, WithMode(Cheapest))...)
}

// AllShortest is Solve in AllOptimal mode.
func AllShortest[S any, K comparable, C Cost](ctx context.Context, p Problem[S, K, C], opts ...Option) (Result[S, C], error) {
	return Solve(ctx, p, append(opts, WithMode(AllOptimal))...)
}

// Distances settles every state reachable from start and returns the
// minimum cost to each, by key.
func Distances[S any, K comparable, C Cost](ctx context.Context, start S, neighbors func(S) []Edge[S, C], key func(S) K, opts ...Option) (map[K]C, error) {
	p := Problem[S, K, C]{Start: start, Neighbors: neighbors, Key: key}
	if err := p.validate(false); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	o.mode, o.path = Cheapest, false
	e := newEngine(p, o)
	for {
		cur, err := e.pop(ctx)
		if err != nil {
			return nil, err
		}
		if cur == nil {
			break
		}
		cur.settled = true
		if err := e.expand(cur); err != nil {
			return nil, err
		}
	}
	dist := make(map[K]C, len(e.nodes))
	for k, n := range e.nodes {
		dist[k] = n.cost
	}
	o.logger.Debug("distances settled", "states", len(dist), "expanded", e.stats.Expanded)
	return dist, nil
}

func firstPath[S any, C Cost](n *node[S, C]) []S {
	var path []S
	for ; n != nil; n = first(n.preds) {
		path = append(path, n.state)
	}
	reverse(path)
	return path
}

func first[T any](s []T) T {
	if len(s) == 0 {
		var zero T
		return zero
	}
	return s[0]
}

// optimalStates walks the predecessor graph back from goals and returns
// each node on it once.
func optimalStates[S any, C Cost](goals []*node[S, C]) []S {
	seen := make(map[*node[S, C]]bool)
	var out []S
	q := append([]*node[S, C](nil), goals...)
	for len(q) > 0 {
		n := q[0]
		q = q[1:]
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n.state)
		q = append(q, n.preds...)
	}
	return out
}

// optimalPaths enumerates start-to-goal paths through the predecessor
// graph, stopping after limit paths when limit > 0.
func optimalPaths[S any, C Cost](goals []*node[S, C], limit int) [][]S {
	var (
		out   [][]S
		stack []*node[S, C]
		walk  func(*node[S, C]) bool
	)
	walk = func(n *node[S, C]) bool {
		stack = append(stack, n)
		defer func() { stack = stack[:len(stack)-1] }()
		if len(n.preds) == 0 {
			path := make([]S, len(stack))
			for i, m := range stack {
				path[len(stack)-1-i] = m.state
			}
			out = append(out, path)
			return limit <= 0 || len(out) < limit
		}
		for _, pr := range n.preds {
			if !walk(pr) {
				return false
			}
		}
		return true
	}
	for _, g := range goals {
		if !walk(g) {
			break
		}
	}
	return out
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
