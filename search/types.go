package search

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/constraints"
)

// Sentinel errors returned by Solve and Distances.
var (
	// ErrNegativeCost is returned when Neighbors yields an edge with a
	// negative cost.
	ErrNegativeCost = errors.New("search: negative edge cost")

	// ErrNoNeighbors is returned when Problem.Neighbors is nil.
	ErrNoNeighbors = errors.New("search: nil neighbors function")

	// ErrNoGoal is returned when Problem.IsGoal is nil.
	ErrNoGoal = errors.New("search: nil goal predicate")

	// ErrNoKey is returned when Problem.Key is nil.
	ErrNoKey = errors.New("search: nil key function")
)

// Cost is the set of numeric types usable as edge costs.
type Cost interface {
	constraints.Integer | constraints.Float
}

// Edge is a transition to To costing Cost.
type Edge[S any, C Cost] struct {
	To   S
	Cost C
}

// Problem describes a search space. S is the state, K its canonical key
// and C the cost type.
type Problem[S any, K comparable, C Cost] struct {
	Start     S
	IsGoal    func(S) bool
	Neighbors func(S) []Edge[S, C]
	Key       func(S) K
}

func (p Problem[S, K, C]) validate(needGoal bool) error {
	switch {
	case p.Neighbors == nil:
		return ErrNoNeighbors
	case p.Key == nil:
		return ErrNoKey
	case needGoal && p.IsGoal == nil:
		return ErrNoGoal
	}
	return nil
}

// Mode selects what Solve computes.
type Mode int

const (
	// Cheapest stops at the first goal reached.
	Cheapest Mode = iota
	// AllOptimal finds every minimum-cost path to any goal.
	AllOptimal
)

func (m Mode) String() string {
	switch m {
	case Cheapest:
		return "cheapest"
	case AllOptimal:
		return "all-optimal"
	}
	return "unknown"
}

// Stats counts the work done by one search.
type Stats struct {
	Pushed   int // entries pushed on the frontier
	Popped   int // entries popped from the frontier
	Stale    int // popped entries that were superseded
	Expanded int // states whose neighbors were generated
}

// Result is the outcome of a search.
type Result[S any, C Cost] struct {
	// Reachable reports whether a goal was reached. When false, Cost is
	// zero and Paths and States are empty.
	Reachable bool
	// Cost is the minimum cost to reach a goal.
	Cost C
	// Paths holds start-to-goal state sequences. In Cheapest mode it holds
	// the winning path only when WithPath was given. In AllOptimal mode it
	// holds every optimal path, up to the WithMaxPaths limit.
	Paths [][]S
	// States holds, in AllOptimal mode, each distinct state (by key) that
	// lies on at least one optimal path.
	States []S
	Stats  Stats
}

// Option configures a search.
type Option func(*options)

type options struct {
	mode     Mode
	path     bool
	maxPaths int
	logger   *log.Logger
}

func newOptions(opts []Option) options {
	o := options{
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMode sets the search mode. The default is Cheapest.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithPath makes a Cheapest search reconstruct the path to the goal.
func WithPath() Option {
	return func(o *options) { o.path = true }
}

// WithMaxPaths caps how many optimal paths an AllOptimal search
// enumerates. Zero or negative means no limit. States is always complete.
func WithMaxPaths(n int) Option {
	return func(o *options) { o.maxPaths = n }
}

// WithLogger sets the logger used for debug events.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
