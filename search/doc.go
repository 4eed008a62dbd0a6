// Package search is a Dijkstra engine over arbitrary state spaces.
//
// A state can be anything the caller wants: a grid cell, a cell plus a
// heading, a whole board. The caller describes the space with a Problem:
//
//	Start      the initial state
//	IsGoal     reports whether a state ends the search
//	Neighbors  the outgoing transitions of a state and their costs
//	Key        a canonical, comparable key for a state
//
// Key must be injective over the reachable states. Two different states
// that map to the same key are treated as one and the engine cannot detect
// it.
//
// Two modes are supported. Cheapest (the default) stops at the first goal
// popped from the frontier and returns its cost, optionally with the path
// that reached it. AllOptimal keeps every predecessor that reaches a state
// at its best cost, drains the frontier until the best goal cost has been
// fully explored and reports every state on any optimal path.
//
// Costs must be non-negative. A negative edge makes Solve return
// ErrNegativeCost. An unreachable goal is not an error: the Result has
// Reachable set to false.
//
// Every call allocates its own frontier and cost map; nothing is shared
// between calls and the engine runs on the calling goroutine. The context
// is checked once per iteration.
//
// Example:
//
//	res, err := search.Shortest(ctx, search.Problem[aoc.Pt, aoc.Pt, int]{
//		Start:     start,
//		IsGoal:    func(p aoc.Pt) bool { return p == end },
//		Neighbors: neighbors,
//		Key:       search.Identity[aoc.Pt](),
//	})
package search
