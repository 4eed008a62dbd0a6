package search_test

import (
	"bytes"
	"context"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tailscale.com/util/deephash"

	"github.com/maisem/aoc2024/search"
)

type graph map[string][]search.Edge[string, int]

func (g graph) problem(start, goal string) search.Problem[string, string, int] {
	return search.Problem[string, string, int]{
		Start:     start,
		IsGoal:    func(s string) bool { return s == goal },
		Neighbors: func(s string) []search.Edge[string, int] { return g[s] },
		Key:       search.Identity[string](),
	}
}

func e(to string, cost int) search.Edge[string, int] {
	return search.Edge[string, int]{To: to, Cost: cost}
}

type cell struct{ x, y int }

func openGrid(w, h int) func(cell) []search.Edge[cell, int] {
	return func(c cell) []search.Edge[cell, int] {
		var out []search.Edge[cell, int]
		for _, d := range []cell{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			n := cell{c.x + d.x, c.y + d.y}
			if n.x < 0 || n.y < 0 || n.x >= w || n.y >= h {
				continue
			}
			out = append(out, search.Edge[cell, int]{To: n, Cost: 1})
		}
		return out
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestShortestOpenGrid(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		start, goal cell
	}{
		{cell{0, 0}, cell{6, 6}},
		{cell{3, 3}, cell{3, 3}},
		{cell{6, 0}, cell{0, 5}},
		{cell{2, 4}, cell{5, 1}},
	}
	for _, tt := range tests {
		res, err := search.Shortest(ctx, search.Problem[cell, cell, int]{
			Start:     tt.start,
			IsGoal:    func(c cell) bool { return c == tt.goal },
			Neighbors: openGrid(7, 7),
			Key:       search.Identity[cell](),
		})
		require.NoError(t, err)
		require.True(t, res.Reachable)
		want := abs(tt.start.x-tt.goal.x) + abs(tt.start.y-tt.goal.y)
		assert.Equal(t, want, res.Cost, "%v -> %v", tt.start, tt.goal)
	}
}

func TestShortestWithPath(t *testing.T) {
	g := graph{
		"A": {e("B", 1), e("C", 4)},
		"B": {e("C", 1), e("D", 5)},
		"C": {e("D", 1)},
	}
	res, err := search.Shortest(context.Background(), g.problem("A", "D"), search.WithPath())
	require.NoError(t, err)
	require.True(t, res.Reachable)
	assert.Equal(t, 3, res.Cost)
	require.Len(t, res.Paths, 1)
	assert.Equal(t, []string{"A", "B", "C", "D"}, res.Paths[0])
	assert.Empty(t, res.States)

	res, err = search.Shortest(context.Background(), g.problem("A", "D"))
	require.NoError(t, err)
	assert.Empty(t, res.Paths, "paths are only built on request")
}

func TestStartIsGoal(t *testing.T) {
	g := graph{"A": {e("B", 1)}}
	res, err := search.Shortest(context.Background(), g.problem("A", "A"), search.WithPath())
	require.NoError(t, err)
	assert.True(t, res.Reachable)
	assert.Zero(t, res.Cost)
	assert.Equal(t, [][]string{{"A"}}, res.Paths)
}

func TestUnreachable(t *testing.T) {
	g := graph{
		"A": {e("B", 1)},
		"B": {e("A", 1)},
		"C": {e("D", 1)},
	}
	for i := 0; i < 2; i++ {
		res, err := search.Shortest(context.Background(), g.problem("A", "D"))
		require.NoError(t, err)
		assert.False(t, res.Reachable)
		assert.Zero(t, res.Cost)
		assert.Equal(t, 2, res.Stats.Expanded)

		res, err = search.AllShortest(context.Background(), g.problem("A", "D"))
		require.NoError(t, err)
		assert.False(t, res.Reachable)
		assert.Empty(t, res.Paths)
		assert.Empty(t, res.States)
	}
}

func TestZeroCostEdges(t *testing.T) {
	g := graph{
		"A": {e("B", 0)},
		"B": {e("A", 0), e("C", 0)},
		"C": {e("B", 0), e("D", 2)},
	}
	res, err := search.Shortest(context.Background(), g.problem("A", "D"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Cost)

	res, err = search.AllShortest(context.Background(), g.problem("A", "D"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Cost)
	assert.Equal(t, [][]string{{"A", "B", "C", "D"}}, res.Paths)
}

func TestNegativeCostRejected(t *testing.T) {
	g := graph{
		"A": {e("B", 2), e("C", 5)},
		"B": {e("D", 4)},
		"C": {e("B", -4)},
		"D": {e("E", 1)},
	}
	_, err := search.Shortest(context.Background(), g.problem("A", "E"))
	require.ErrorIs(t, err, search.ErrNegativeCost)

	_, err = search.AllShortest(context.Background(), g.problem("A", "E"))
	require.ErrorIs(t, err, search.ErrNegativeCost)

	_, err = search.Distances(context.Background(), "A", g.problem("A", "E").Neighbors, search.Identity[string]())
	require.ErrorIs(t, err, search.ErrNegativeCost)
}

func TestMissingCallbacks(t *testing.T) {
	ctx := context.Background()
	p := graph{}.problem("A", "B")

	noNeighbors := p
	noNeighbors.Neighbors = nil
	_, err := search.Shortest(ctx, noNeighbors)
	assert.ErrorIs(t, err, search.ErrNoNeighbors)

	noGoal := p
	noGoal.IsGoal = nil
	_, err = search.Shortest(ctx, noGoal)
	assert.ErrorIs(t, err, search.ErrNoGoal)

	noKey := p
	noKey.Key = nil
	_, err = search.Shortest(ctx, noKey)
	assert.ErrorIs(t, err, search.ErrNoKey)
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := search.Shortest(ctx, search.Problem[cell, cell, int]{
		Start:     cell{0, 0},
		IsGoal:    func(c cell) bool { return c == cell{69, 69} },
		Neighbors: openGrid(70, 70),
		Key:       search.Identity[cell](),
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCancelMidSearch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	expanded := 0
	grid := openGrid(70, 70)
	_, err := search.Shortest(ctx, search.Problem[cell, cell, int]{
		Start:  cell{0, 0},
		IsGoal: func(c cell) bool { return false },
		Neighbors: func(c cell) []search.Edge[cell, int] {
			expanded++
			if expanded == 100 {
				cancel()
			}
			return grid(c)
		},
		Key: search.Identity[cell](),
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 100, expanded)
}

func TestAllOptimalDiamond(t *testing.T) {
	// Two parallel routes of cost 2 and one of cost 3.
	g := graph{
		"S": {e("A", 1), e("B", 1), e("C", 1)},
		"A": {e("G", 1)},
		"B": {e("G", 1)},
		"C": {e("G", 2)},
	}
	res, err := search.AllShortest(context.Background(), g.problem("S", "G"))
	require.NoError(t, err)
	require.True(t, res.Reachable)
	assert.Equal(t, 2, res.Cost)
	assert.ElementsMatch(t, [][]string{{"S", "A", "G"}, {"S", "B", "G"}}, res.Paths)
	assert.ElementsMatch(t, []string{"S", "A", "B", "G"}, res.States)
}

func TestAllOptimalParallelEdges(t *testing.T) {
	g := graph{
		"A": {e("B", 1), e("B", 1), e("C", 1)},
		"B": {e("D", 1)},
		"C": {e("D", 1), e("D", 1)},
	}
	res, err := search.AllShortest(context.Background(), g.problem("A", "D"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Cost)
	assert.ElementsMatch(t, [][]string{{"A", "B", "D"}, {"A", "C", "D"}}, res.Paths)
	assert.ElementsMatch(t, []string{"A", "B", "C", "D"}, res.States)

	res, err = search.AllShortest(context.Background(), graph{"A": {e("B", 1), e("B", 1)}}.problem("A", "B"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B"}}, res.Paths)
}

func TestAllOptimalSharedPrefix(t *testing.T) {
	// S-X is shared, then the route splits twice: 4 optimal paths.
	g := graph{
		"S":  {e("X", 1)},
		"X":  {e("A1", 1), e("B1", 1)},
		"A1": {e("M", 1)},
		"B1": {e("M", 1)},
		"M":  {e("A2", 1), e("B2", 1), e("Z", 5)},
		"A2": {e("G", 1)},
		"B2": {e("G", 1)},
		"Z":  {e("G", 1)},
	}
	res, err := search.AllShortest(context.Background(), g.problem("S", "G"))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Cost)
	assert.Len(t, res.Paths, 4)
	assert.ElementsMatch(t, []string{"S", "X", "A1", "B1", "M", "A2", "B2", "G"}, res.States)

	res, err = search.AllShortest(context.Background(), g.problem("S", "G"), search.WithMaxPaths(3))
	require.NoError(t, err)
	assert.Len(t, res.Paths, 3)
	assert.Len(t, res.States, 8, "states do not depend on the path limit")
}

func TestAllOptimalMultipleGoals(t *testing.T) {
	type st struct {
		name string
		tag  int
	}
	// Two distinct goal states share the name "G" and the minimum cost.
	adj := map[string][]search.Edge[st, int]{
		"S": {{To: st{"G", 1}, Cost: 3}, {To: st{"G", 2}, Cost: 3}, {To: st{"G", 3}, Cost: 4}},
	}
	res, err := search.AllShortest(context.Background(), search.Problem[st, st, int]{
		Start:     st{"S", 0},
		IsGoal:    func(s st) bool { return s.name == "G" },
		Neighbors: func(s st) []search.Edge[st, int] { return adj[s.name] },
		Key:       search.Identity[st](),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Cost)
	assert.Len(t, res.Paths, 2)
	assert.Len(t, res.States, 3)
}

func TestFloatCosts(t *testing.T) {
	adj := map[string][]search.Edge[string, float64]{
		"a": {{To: "b", Cost: 0.5}, {To: "c", Cost: 2.25}},
		"b": {{To: "c", Cost: 0.5}},
	}
	res, err := search.Shortest(context.Background(), search.Problem[string, string, float64]{
		Start:     "a",
		IsGoal:    func(s string) bool { return s == "c" },
		Neighbors: func(s string) []search.Edge[string, float64] { return adj[s] },
		Key:       search.Identity[string](),
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Cost, 1e-9)
}

// bruteForce returns the cheapest simple path cost from start to goal by
// enumerating every simple path.
func bruteForce(g graph, start, goal string) (int, bool) {
	best, found := 0, false
	visited := map[string]bool{}
	var dfs func(n string, cost int)
	dfs = func(n string, cost int) {
		if n == goal {
			if !found || cost < best {
				best, found = cost, true
			}
			return
		}
		visited[n] = true
		defer delete(visited, n)
		for _, ed := range g[n] {
			if !visited[ed.To] {
				dfs(ed.To, cost+ed.Cost)
			}
		}
	}
	dfs(start, 0)
	return best, found
}

// bruteForceAll returns the number of minimum-cost simple paths.
func bruteForceAll(g graph, start, goal string, best int) int {
	count := 0
	visited := map[string]bool{}
	var dfs func(n string, cost int)
	dfs = func(n string, cost int) {
		if cost > best {
			return
		}
		if n == goal {
			if cost == best {
				count++
			}
			return
		}
		visited[n] = true
		defer delete(visited, n)
		for _, ed := range g[n] {
			if !visited[ed.To] {
				dfs(ed.To, cost+ed.Cost)
			}
		}
	}
	dfs(start, 0)
	return count
}

func randomGraph(rng *rand.Rand, n int) graph {
	names := "ABCDEFGH"[:n]
	g := graph{}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || rng.Intn(3) != 0 {
				continue
			}
			from, to := string(names[i]), string(names[j])
			g[from] = append(g[from], e(to, 1+rng.Intn(9)))
		}
	}
	return g
}

func TestMatchesBruteForce(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(16))
	for round := 0; round < 300; round++ {
		g := randomGraph(rng, 2+rng.Intn(6))
		want, reachable := bruteForce(g, "A", "B")

		res, err := search.Shortest(ctx, g.problem("A", "B"), search.WithPath())
		require.NoError(t, err)
		require.Equal(t, reachable, res.Reachable, "round %d: %v", round, g)
		if !reachable {
			continue
		}
		require.Equal(t, want, res.Cost, "round %d: %v", round, g)
		require.Len(t, res.Paths, 1)
		require.Equal(t, want, pathCost(t, g, res.Paths[0]))

		all, err := search.AllShortest(ctx, g.problem("A", "B"))
		require.NoError(t, err)
		require.Equal(t, want, all.Cost)
		require.Len(t, all.Paths, bruteForceAll(g, "A", "B", want), "round %d: %v", round, g)
		for _, p := range all.Paths {
			require.Equal(t, want, pathCost(t, g, p))
		}
	}
}

func pathCost(t *testing.T, g graph, path []string) int {
	t.Helper()
	total := 0
	for i := 1; i < len(path); i++ {
		idx := slices.IndexFunc(g[path[i-1]], func(ed search.Edge[string, int]) bool {
			return ed.To == path[i]
		})
		require.NotEqual(t, -1, idx, "no edge %s->%s", path[i-1], path[i])
		total += g[path[i-1]][idx].Cost
	}
	return total
}

func TestDistances(t *testing.T) {
	g := graph{
		"A": {e("B", 4), e("C", 1)},
		"C": {e("B", 2), e("D", 7)},
		"B": {e("D", 1)},
		"X": {e("A", 1)},
	}
	dist, err := search.Distances(context.Background(), "A", func(s string) []search.Edge[string, int] { return g[s] }, search.Identity[string]())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 0, "B": 3, "C": 1, "D": 4}, dist)
}

func TestHashKey(t *testing.T) {
	type board struct {
		cells []int
		turn  int
	}
	key := search.HashKey[board]()
	a := board{cells: []int{1, 2, 3}, turn: 1}
	b := board{cells: []int{1, 2, 3}, turn: 1}
	c := board{cells: []int{1, 2, 4}, turn: 1}
	assert.Equal(t, key(a), key(b))
	assert.NotEqual(t, key(a), key(c))

	// Swap two adjacent values per move; find the cheapest sort of [3 1 2].
	res, err := search.Shortest(context.Background(), search.Problem[board, deephash.Sum, int]{
		Start:  board{cells: []int{3, 1, 2}},
		IsGoal: func(b board) bool { return slices.IsSorted(b.cells) },
		Neighbors: func(b board) []search.Edge[board, int] {
			var out []search.Edge[board, int]
			for i := 0; i+1 < len(b.cells); i++ {
				next := slices.Clone(b.cells)
				next[i], next[i+1] = next[i+1], next[i]
				out = append(out, search.Edge[board, int]{To: board{cells: next}, Cost: 1})
			}
			return out
		},
		Key: key,
	}, search.WithPath())
	require.NoError(t, err)
	require.True(t, res.Reachable)
	assert.Equal(t, 2, res.Cost)
	assert.Equal(t, []int{1, 2, 3}, res.Paths[0][2].cells)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	g := graph{"A": {e("B", 1)}}
	_, err := search.Shortest(context.Background(), g.problem("A", "B"), search.WithLogger(logger))
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "search finished"), buf.String())
}
