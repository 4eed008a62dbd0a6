// Package day16 solves the reindeer maze: moving forward costs 1 point,
// turning 90 degrees in place costs 1000. The reindeer starts on S facing
// east and must reach E.
package day16

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/maisem/aoc2024"
	"github.com/maisem/aoc2024/search"
)

const (
	StepCost = 1
	TurnCost = 1000
)

// ErrNoPath is returned when E cannot be reached from S.
var ErrNoPath = errors.New("day16: no path from start to end")

type Maze struct {
	Grid       aoc.Grid[byte]
	Start, End aoc.Pt
}

func Parse(in []byte) (Maze, error) {
	g, err := aoc.ParseGrid(in)
	if err != nil {
		return Maze{}, fmt.Errorf("day16: %w", err)
	}
	m := Maze{Grid: g}
	var ok bool
	if m.Start, ok = aoc.Find(g, 'S'); !ok {
		return Maze{}, errors.New("day16: no start tile")
	}
	if m.End, ok = aoc.Find(g, 'E'); !ok {
		return Maze{}, errors.New("day16: no end tile")
	}
	return m, nil
}

// neighbors moves the reindeer forward if the next tile is open, or turns
// it either way.
func (m Maze) neighbors(s aoc.Path) []search.Edge[aoc.Path, int] {
	out := make([]search.Edge[aoc.Path, int], 0, 3)
	if n, ok := m.Grid.Move(s); ok && m.Grid.At(n.Pt) != '#' {
		out = append(out, search.Edge[aoc.Path, int]{To: n, Cost: StepCost})
	}
	for _, right := range []bool{true, false} {
		out = append(out, search.Edge[aoc.Path, int]{
			To:   aoc.Path{Pt: s.Pt, Dir: s.Dir.Turn(right)},
			Cost: TurnCost,
		})
	}
	return out
}

func (m Maze) problem() search.Problem[aoc.Path, aoc.Path, int] {
	return search.Problem[aoc.Path, aoc.Path, int]{
		Start:     aoc.Path{Pt: m.Start, Dir: aoc.Right},
		IsGoal:    func(s aoc.Path) bool { return s.Pt == m.End },
		Neighbors: m.neighbors,
		Key:       search.Identity[aoc.Path](),
	}
}

// LowestScore returns the cheapest score from S to E.
func LowestScore(ctx context.Context, m Maze, opts ...search.Option) (int, error) {
	res, err := search.Shortest(ctx, m.problem(), opts...)
	if err != nil {
		return 0, err
	}
	if !res.Reachable {
		return 0, ErrNoPath
	}
	return res.Cost, nil
}

// BestTiles returns every tile that is part of at least one lowest-score
// route, along with that score.
func BestTiles(ctx context.Context, m Maze, opts ...search.Option) (map[aoc.Pt]bool, int, error) {
	// Only the states are needed; skip enumerating the individual routes.
	opts = append(opts, search.WithMaxPaths(1))
	res, err := search.AllShortest(ctx, m.problem(), opts...)
	if err != nil {
		return nil, 0, err
	}
	if !res.Reachable {
		return nil, 0, ErrNoPath
	}
	tiles := make(map[aoc.Pt]bool)
	for _, s := range res.States {
		tiles[s.Pt] = true
	}
	return tiles, res.Cost, nil
}

var (
	styleWall = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleTile = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
)

// Render draws the maze with the open tiles in tiles marked O.
func Render(m Maze, tiles map[aoc.Pt]bool) string {
	return m.Grid.Render(func(p aoc.Pt, b byte) string {
		switch {
		case b == '#':
			return styleWall.Render("#")
		case b == '.' && tiles[p]:
			return styleTile.Render("O")
		}
		return string(b)
	})
}
