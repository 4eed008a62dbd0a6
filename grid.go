package aoc

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
	"tailscale.com/util/deephash"
)

// Grid is a rectangular grid stored row-major in a single slice. Cells are
// addressed by Pt (X is the column, Y the row).
type Grid[T any] struct {
	W, H  int
	Cells []T
}

func MakeGrid[T any](w, h int) Grid[T] {
	return Grid[T]{W: w, H: h, Cells: make([]T, w*h)}
}

// ParseGrid parses lines of text into a byte grid. Blank leading and
// trailing lines are ignored; all rows must have the same width.
func ParseGrid(in []byte) (Grid[byte], error) {
	lines := strings.Split(strings.TrimSpace(strings.ReplaceAll(string(in), "\r\n", "\n")), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return Grid[byte]{}, fmt.Errorf("empty grid")
	}
	g := MakeGrid[byte](len(lines[0]), len(lines))
	for y, line := range lines {
		if len(line) != g.W {
			return Grid[byte]{}, fmt.Errorf("row %d has width %d; want %d", y, len(line), g.W)
		}
		copy(g.Cells[y*g.W:], line)
	}
	return g, nil
}

func (g Grid[T]) Size() Pt {
	return Pt{g.W, g.H}
}

func (g Grid[T]) In(p Pt) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.W && p.Y < g.H
}

// Index returns the offset of p in Cells. p must be in bounds.
func (g Grid[T]) Index(p Pt) int {
	return p.Y*g.W + p.X
}

// Pt is the inverse of Index.
func (g Grid[T]) Pt(i int) Pt {
	return Pt{i % g.W, i / g.W}
}

func (g Grid[T]) At(p Pt) T {
	return g.Cells[g.Index(p)]
}

func (g Grid[T]) Set(p Pt, v T) {
	g.Cells[g.Index(p)] = v
}

func (g Grid[T]) AtOk(p Pt) (T, bool) {
	if !g.In(p) {
		var zero T
		return zero, false
	}
	return g.Cells[g.Index(p)], true
}

// Clone returns a grid with its own copy of the cells.
func (g Grid[T]) Clone() Grid[T] {
	g.Cells = append([]T(nil), g.Cells...)
	return g
}

// Hash returns a hash of the grid contents.
func (g Grid[T]) Hash() deephash.Sum {
	return deephash.Hash(&g)
}

// Steps returns the in-bounds orthogonal neighbors of p whose cells are not
// blocked.
func (g Grid[T]) Steps(p Pt, blocked func(T) bool) []Pt {
	out := make([]Pt, 0, 4)
	for _, d := range Directions {
		n := p.Step(d)
		if v, ok := g.AtOk(n); ok && !blocked(v) {
			out = append(out, n)
		}
	}
	return out
}

// Render draws the grid one row per line, using cell to format each cell.
func (g Grid[T]) Render(cell func(Pt, T) string) string {
	var buf bytes.Buffer
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			p := Pt{x, y}
			buf.WriteString(cell(p, g.At(p)))
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

// Find returns the first point holding v, scanning row by row.
func Find[T comparable](g Grid[T], v T) (Pt, bool) {
	for i, c := range g.Cells {
		if c == v {
			return g.Pt(i), true
		}
	}
	return Pt{}, false
}

// ToGraph converts the cells reachable from start into a graph with unit
// edges between orthogonal neighbors. If allowDiagonals is true, then
// diagonal neighbors are included. Cells for which disallowed returns true
// are left out.
func (grid Grid[T]) ToGraph(start Pt, allowDiagonals bool, disallowed func(T) bool) Graph[Pt] {
	var g Graph[Pt]
	g.Nodes = make(map[Pt]bool)
	g.Edges = make(map[Pt]map[Pt]int)
	if v, ok := grid.AtOk(start); !ok || disallowed(v) {
		return g
	}

	fn := Pt.ForImmediateNeighbors
	if allowDiagonals {
		fn = Pt.ForNeighbors
	}

	// AddEdge marks both ends as nodes, so expansion is tracked apart
	// from g.Nodes.
	visited := make(map[Pt]bool)
	g.AddNode(start)
	q := NewQueue[Pt](start)
	q.While(func(p1 Pt) bool {
		if visited[p1] {
			return true
		}
		visited[p1] = true
		fn(p1, func(p2 Pt) (keepGoing bool) {
			if v, ok := grid.AtOk(p2); !ok || disallowed(v) {
				return true
			}
			if visited[p2] {
				return true // edge added when p2 was expanded
			}
			q.Push(p2)
			g.AddEdge(p1, p2, 1)
			return true
		})
		return true
	})
	return g
}

// Path is a point and a direction.
type Path struct {
	Pt  Pt
	Dir Direction
}

// Move steps p one cell in its direction. It reports false if that leaves
// the grid.
func (g Grid[T]) Move(p Path) (Path, bool) {
	p.Pt = p.Pt.Step(p.Dir)
	if !g.In(p.Pt) {
		return Path{}, false
	}
	return p, true
}

type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists the four headings clockwise from Up.
var Directions = [...]Direction{Up, Right, Down, Left}

func (d Direction) Turn(right bool) Direction {
	if right {
		return (d + 1) % 4
	}
	return (d + 3) % 4
}

// Delta is the unit step for d, with Y growing downwards.
func (d Direction) Delta() Pt {
	switch d {
	case Up:
		return Pt{0, -1}
	case Right:
		return Pt{1, 0}
	case Down:
		return Pt{0, 1}
	case Left:
		return Pt{-1, 0}
	}
	panic(fmt.Sprintf("bad direction %d", int(d)))
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "<"
	case Right:
		return ">"
	case Up:
		return "^"
	case Down:
		return "v"
	}
	return ""
}

type Pt = Pt2[int]

type Pt2[T constraints.Signed] struct {
	X, Y T
}

func (p Pt2[T]) Add(q Pt2[T]) Pt2[T] {
	return Pt2[T]{p.X + q.X, p.Y + q.Y}
}

// Step moves p one cell towards d.
func (p Pt2[T]) Step(d Direction) Pt2[T] {
	dp := d.Delta()
	return Pt2[T]{p.X + T(dp.X), p.Y + T(dp.Y)}
}

func (p Pt2[T]) ForImmediateNeighbors(f func(Pt2[T]) (keepGoing bool)) {
	p.ForNeighbors(func(n Pt2[T]) bool {
		if p.X == n.X || p.Y == n.Y {
			return f(n)
		}
		return true
	})
}

func (p Pt2[T]) ForNeighbors(f func(Pt2[T]) (keepGoing bool)) {
	for y := T(-1); y <= 1; y++ {
		for x := T(-1); x <= 1; x++ {
			if x == 0 && y == 0 {
				continue
			}
			if !f(Pt2[T]{p.X + x, p.Y + y}) {
				return
			}
		}
	}
}

// MDist returns the manhattan distance between a and b.
func (a Pt2[T]) MDist(b Pt2[T]) T {
	return AbsDiff[T](a.X, b.X) + AbsDiff[T](a.Y, b.Y)
}
