// Package day18 solves the falling-bytes memory space: bytes land one at a
// time on a square grid, corrupting their cell, and a walker must get from
// the top-left corner to the bottom-right one.
package day18

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/maisem/aoc2024"
	"github.com/maisem/aoc2024/search"
)

// ErrNeverBlocked is returned by FirstBlocking when the exit stays
// reachable after every byte has fallen.
var ErrNeverBlocked = errors.New("day18: exit never blocked")

// Parse reads one X,Y byte position per line.
func Parse(in []byte) ([]aoc.Pt, error) {
	var out []aoc.Pt
	for i, line := range strings.Split(strings.TrimSpace(string(in)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var p aoc.Pt
		if _, err := fmt.Sscanf(line, "%d,%d", &p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("day18: line %d: %q: %w", i+1, line, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Space is the memory grid. Size is the largest coordinate, so the grid is
// Size+1 cells on a side.
type Space struct {
	Size  int
	Bytes []aoc.Pt
}

// Corrupt returns the grid after the first n bytes have fallen.
func (s Space) Corrupt(n int) aoc.Grid[bool] {
	g := aoc.MakeGrid[bool](s.Size+1, s.Size+1)
	for _, p := range s.Bytes[:min(n, len(s.Bytes))] {
		if g.In(p) {
			g.Set(p, true)
		}
	}
	return g
}

func corrupted(b bool) bool { return b }

// Steps finds the shortest walk to the exit after n bytes have fallen.
func (s Space) Steps(ctx context.Context, n int, opts ...search.Option) (search.Result[aoc.Pt, int], error) {
	g := s.Corrupt(n)
	exit := aoc.Pt{X: s.Size, Y: s.Size}
	if g.At(aoc.Pt{}) {
		return search.Result[aoc.Pt, int]{}, nil
	}
	return search.Shortest(ctx, search.Problem[aoc.Pt, aoc.Pt, int]{
		Start:  aoc.Pt{},
		IsGoal: func(p aoc.Pt) bool { return p == exit },
		Neighbors: func(p aoc.Pt) []search.Edge[aoc.Pt, int] {
			steps := g.Steps(p, corrupted)
			out := make([]search.Edge[aoc.Pt, int], len(steps))
			for i, q := range steps {
				out[i] = search.Edge[aoc.Pt, int]{To: q, Cost: 1}
			}
			return out
		},
		Key: search.Identity[aoc.Pt](),
	}, opts...)
}

// FirstBlocking returns the first byte whose landing cuts the exit off.
func (s Space) FirstBlocking(ctx context.Context, opts ...search.Option) (aoc.Pt, error) {
	n, err := search.FirstFalse(ctx, 0, len(s.Bytes)+1, func(ctx context.Context, n int) (bool, error) {
		res, err := s.Steps(ctx, n, opts...)
		return res.Reachable, err
	})
	if err != nil {
		return aoc.Pt{}, err
	}
	if n > len(s.Bytes) {
		return aoc.Pt{}, ErrNeverBlocked
	}
	if n == 0 {
		return aoc.Pt{}, errors.New("day18: exit unreachable before any byte falls")
	}
	return s.Bytes[n-1], nil
}

// Format prints p the way the puzzle expects the answer.
func Format(p aoc.Pt) string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}
