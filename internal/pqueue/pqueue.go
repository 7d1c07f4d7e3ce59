// Package pqueue is a minimum priority queue keyed on an ordered priority,
// used by the key cache (package keycache) to find its oldest entry for
// FIFO eviction. Ported from the teacher's std/types/priority_queue, with
// a Remove method added so an arbitrary item can be taken out of the
// queue, not only the minimum.
package pqueue

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

type Item[V any, P constraints.Ordered] struct {
	object   V
	priority P
	index    int
}

type wrapper[V any, P constraints.Ordered] []*Item[V, P]

// Queue is a priority queue with MINIMUM priority at the top.
type Queue[V any, P constraints.Ordered] struct {
	pq wrapper[V, P]
}

func (pq *wrapper[V, P]) Len() int { return len(*pq) }

func (pq *wrapper[V, P]) Less(i, j int) bool {
	return (*pq)[i].priority < (*pq)[j].priority
}

func (pq *wrapper[V, P]) Swap(i, j int) {
	(*pq)[i], (*pq)[j] = (*pq)[j], (*pq)[i]
	(*pq)[i].index = i
	(*pq)[j].index = j
}

func (pq *wrapper[V, P]) Push(x any) {
	item := x.(*Item[V, P])
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *wrapper[V, P]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[0 : n-1]
	return item
}

// Len returns the number of items currently queued.
func (pq *Queue[V, P]) Len() int {
	return pq.pq.Len()
}

// Push adds value to the queue under priority and returns a handle usable
// with Update/UpdatePriority/Remove.
func (pq *Queue[V, P]) Push(value V, priority P) *Item[V, P] {
	ret := &Item[V, P]{object: value, priority: priority}
	heap.Push(&pq.pq, ret)
	return ret
}

// Peek returns the minimum element without removing it.
func (pq *Queue[V, P]) Peek() V {
	return pq.pq[0].object
}

// PeekPriority returns the minimum element's priority.
func (pq *Queue[V, P]) PeekPriority() P {
	return pq.pq[0].priority
}

// Pop removes and returns the minimum element.
func (pq *Queue[V, P]) Pop() V {
	return heap.Pop(&pq.pq).(*Item[V, P]).object
}

// Update replaces both the value and priority of item in place.
func (pq *Queue[V, P]) Update(item *Item[V, P], value V, priority P) {
	item.object = value
	pq.UpdatePriority(item, priority)
}

// UpdatePriority replaces the priority of item in place.
func (pq *Queue[V, P]) UpdatePriority(item *Item[V, P], priority P) {
	item.priority = priority
	heap.Fix(&pq.pq, item.index)
}

// Remove takes item out of the queue before it would naturally be popped.
// A no-op if item has already been removed (index == -1).
func (pq *Queue[V, P]) Remove(item *Item[V, P]) {
	if item.index < 0 {
		return
	}
	heap.Remove(&pq.pq, item.index)
}

// Value returns the value held by item.
func (item *Item[V, P]) Value() V {
	return item.object
}

// New creates an empty priority queue. Not required to call; the zero
// value of Queue is usable directly.
func New[V any, P constraints.Ordered]() Queue[V, P] {
	return Queue[V, P]{wrapper[V, P]{}}
}
