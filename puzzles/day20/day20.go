// Package day20 solves the race condition track: a program races from S to
// E along a single track and may, once, pass through walls for a limited
// number of picoseconds.
package day20

import (
	"context"
	"errors"
	"fmt"

	"github.com/maisem/aoc2024"
	"github.com/maisem/aoc2024/search"
)

var ErrNoPath = errors.New("day20: no path from start to end")

type Track struct {
	Grid       aoc.Grid[byte]
	Start, End aoc.Pt
}

func Parse(in []byte) (Track, error) {
	g, err := aoc.ParseGrid(in)
	if err != nil {
		return Track{}, fmt.Errorf("day20: %w", err)
	}
	t := Track{Grid: g}
	var ok bool
	if t.Start, ok = aoc.Find(g, 'S'); !ok {
		return Track{}, errors.New("day20: no start tile")
	}
	if t.End, ok = aoc.Find(g, 'E'); !ok {
		return Track{}, errors.New("day20: no end tile")
	}
	return t, nil
}

func wall(b byte) bool { return b == '#' }

// distances returns the honest distance from S and from E to every track
// cell connected to S.
func (t Track) distances(ctx context.Context, opts ...search.Option) (fromStart, fromEnd map[aoc.Pt]int, err error) {
	g := t.Grid.ToGraph(t.Start, false, wall)
	if !g.Nodes[t.End] {
		return nil, nil, ErrNoPath
	}
	key := search.Identity[aoc.Pt]()
	if fromStart, err = search.Distances(ctx, t.Start, g.Neighbors, key, opts...); err != nil {
		return nil, nil, err
	}
	if fromEnd, err = search.Distances(ctx, t.End, g.Neighbors, key, opts...); err != nil {
		return nil, nil, err
	}
	return fromStart, fromEnd, nil
}

// Savings returns, for each positive number of picoseconds saved, how many
// distinct cheats of at most maxCheat picoseconds save that much. A cheat
// is identified by its start and end positions.
func Savings(ctx context.Context, t Track, maxCheat int, opts ...search.Option) (map[int]int, error) {
	fromStart, fromEnd, err := t.distances(ctx, opts...)
	if err != nil {
		return nil, err
	}
	honest := fromStart[t.End]
	out := make(map[int]int)
	for p, ds := range fromStart {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for dy := -maxCheat; dy <= maxCheat; dy++ {
			span := maxCheat - aoc.AbsDiff(dy, 0)
			for dx := -span; dx <= span; dx++ {
				q := p.Add(aoc.Pt{X: dx, Y: dy})
				de, ok := fromEnd[q]
				if !ok {
					continue
				}
				if saved := honest - (ds + p.MDist(q) + de); saved > 0 {
					out[saved]++
				}
			}
		}
	}
	return out, nil
}

// Cheats counts the cheats of at most maxCheat picoseconds that save at
// least minSave.
func Cheats(ctx context.Context, t Track, maxCheat, minSave int, opts ...search.Option) (int, error) {
	savings, err := Savings(ctx, t, maxCheat, opts...)
	if err != nil {
		return 0, err
	}
	var counts []int
	for saved, count := range savings {
		if saved >= minSave {
			counts = append(counts, count)
		}
	}
	return aoc.Sum(counts...), nil
}
