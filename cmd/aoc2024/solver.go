package main

import (
	_ "embed"

	"github.com/maisem/aoc2024"
	"github.com/maisem/aoc2024/puzzles/day16"
	"github.com/maisem/aoc2024/puzzles/day18"
	"github.com/maisem/aoc2024/puzzles/day20"
	"github.com/maisem/aoc2024/search"
)

//go:embed solver.go
var source []byte

type solver struct {
	*aoc.Puzzle
}

func (s solver) searchOpts() []search.Option {
	return []search.Option{search.WithLogger(s.Logger())}
}

/*
want=7036

###############
#.......#....E#
#.#.###.#.###.#
#.....#.#...#.#
#.###.#####.#.#
#.#.#.......#.#
#.#.#####.###.#
#...........#.#
###.#.#####.#.#
#...#.....#.#.#
#.#.#.###.#.#.#
#.....#...#.#.#
#.###.#.#.#.#.#
#S..#.....#...#
###############
*/
func (s solver) D16p1() any {
	m := aoc.MustGet(day16.Parse(s.Input()))
	return aoc.MustGet(day16.LowestScore(s.Context(), m, s.searchOpts()...))
}

// want=45
func (s solver) D16p2() any {
	m := aoc.MustGet(day16.Parse(s.Input()))
	tiles, _, err := day16.BestTiles(s.Context(), m, s.searchOpts()...)
	aoc.MustDo(err)
	s.Debugf("%s", day16.Render(m, tiles))
	return len(tiles)
}

func (s solver) space() day18.Space {
	sp := day18.Space{Size: 70, Bytes: aoc.MustGet(day18.Parse(s.Input()))}
	if s.SampleMode {
		sp.Size = 6
	}
	return sp
}

/*
want=22

5,4
4,2
4,5
3,0
2,1
6,3
2,4
1,5
0,6
3,3
2,6
5,1
1,2
5,5
2,5
6,5
1,4
0,4
6,4
1,1
6,1
1,0
0,5
1,6
2,0
*/
func (s solver) D18p1() any {
	fallen := 1024
	if s.SampleMode {
		fallen = 12
	}
	res := aoc.MustGet(s.space().Steps(s.Context(), fallen, s.searchOpts()...))
	if !res.Reachable {
		return "unreachable"
	}
	return res.Cost
}

// want=6,1
func (s solver) D18p2() any {
	sp := s.space()
	p := aoc.MustGet(sp.FirstBlocking(s.Context(), s.searchOpts()...))
	s.Debug("first blocking byte", day18.Format(p), "of", len(sp.Bytes))
	return day18.Format(p)
}

// minSave is how much a counted cheat must save. The sample is too short
// for the real threshold.
func (s solver) minSave(sample int) int {
	if s.SampleMode {
		return sample
	}
	return 100
}

/*
want=44

###############
#...#...#.....#
#.#.#.#.#.###.#
#S#...#.#.#...#
#######.#.#.###
#######.#.#...#
#######.#.###.#
###..E#...#...#
###.#######.###
#...###...#...#
#.#####.#.###.#
#.#...#.#.#...#
#.#.#.#.#.#.###
#...#...#...###
###############
*/
func (s solver) D20p1() any {
	t := aoc.MustGet(day20.Parse(s.Input()))
	return aoc.MustGet(day20.Cheats(s.Context(), t, 2, s.minSave(1), s.searchOpts()...))
}

// want=285
func (s solver) D20p2() any {
	t := aoc.MustGet(day20.Parse(s.Input()))
	return aoc.MustGet(day20.Cheats(s.Context(), t, 20, s.minSave(50), s.searchOpts()...))
}
