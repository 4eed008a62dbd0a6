// Package pqueue is a binary min-heap ordered by a caller supplied
// priority function.
//
// Priorities are computed once when an element is pushed and cached next to
// it, so the priority function must be side-effect free and must not depend
// on state that changes while the element sits in the queue. The queue does
// no deduplication: the same logical item may be pushed any number of times.
package pqueue

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

// Priority is the set of types a priority function may return.
type Priority interface {
	constraints.Integer | constraints.Float
}

// Queue is a min-heap of T. The zero value is not usable; use New.
type Queue[T any, P Priority] struct {
	h items[T, P]
}

// New returns an empty queue ordered by priority, lowest first.
func New[T any, P Priority](priority func(T) P) *Queue[T, P] {
	return &Queue[T, P]{h: items[T, P]{priority: priority}}
}

// Push adds v to the queue.
func (q *Queue[T, P]) Push(v T) {
	heap.Push(&q.h, item[T, P]{v: v, p: q.h.priority(v)})
}

// Pop removes and returns the element with the lowest priority. It reports
// false if the queue is empty.
func (q *Queue[T, P]) Pop() (T, bool) {
	if len(q.h.q) == 0 {
		var zero T
		return zero, false
	}
	return heap.Pop(&q.h).(item[T, P]).v, true
}

// Peek returns the element Pop would return without removing it.
func (q *Queue[T, P]) Peek() (T, bool) {
	if len(q.h.q) == 0 {
		var zero T
		return zero, false
	}
	return q.h.q[0].v, true
}

func (q *Queue[T, P]) Len() int { return len(q.h.q) }

func (q *Queue[T, P]) Empty() bool { return len(q.h.q) == 0 }

// Reset drops all elements but keeps the backing storage.
func (q *Queue[T, P]) Reset() {
	clear(q.h.q)
	q.h.q = q.h.q[:0]
}

type item[T any, P Priority] struct {
	v T
	p P
}

// items implements heap.Interface. container/heap only swaps a child with
// its parent when Less is strictly true, and prefers the left child unless
// the right one is strictly smaller, which keeps pop order deterministic
// for a given push sequence.
type items[T any, P Priority] struct {
	q        []item[T, P]
	priority func(T) P
}

func (h items[T, P]) Len() int { return len(h.q) }

func (h items[T, P]) Less(i, j int) bool { return h.q[i].p < h.q[j].p }

func (h items[T, P]) Swap(i, j int) { h.q[i], h.q[j] = h.q[j], h.q[i] }

func (h *items[T, P]) Push(x any) {
	h.q = append(h.q, x.(item[T, P]))
}

func (h *items[T, P]) Pop() any {
	old := h.q
	n := len(old)
	it := old[n-1]
	var zero item[T, P]
	old[n-1] = zero // avoid memory leak
	h.q = old[:n-1]
	return it
}
