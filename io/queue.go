// Package io provides the integer streams that connect machines to each
// other and to their harness.
//
// A Queue is an unbounded first-in-first-out sequence of integers. A single
// Queue may be referenced by several machines at once: the output queue of
// one machine is frequently the input queue of the next. A Tape converts a
// Queue to and from a text stream.
package io

import (
	"iter"
	"slices"
	"sync"
)

// Queue is an unbounded FIFO of machine integers.
//
// The zero value is an empty queue. Queues are shared by pointer, and all
// methods are safe for use by multiple goroutines.
type Queue struct {
	mutex sync.Mutex
	data  []int64
}

// NewQueue creates a queue holding the given values, first value at the front.
func NewQueue(values ...int64) (q *Queue) {
	q = &Queue{}
	q.Push(values...)
	return
}

// Push appends values to the back of the queue.
func (q *Queue) Push(values ...int64) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	q.data = append(q.data, values...)
}

// Pop removes and returns the value at the front of the queue.
func (q *Queue) Pop() (value int64, ok bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if len(q.data) == 0 {
		return
	}

	value = q.data[0]
	ok = true
	q.data = q.data[1:]
	if len(q.data) == 0 {
		// Release the consumed prefix.
		q.data = nil
	}

	return
}

// Peek returns the value at the front of the queue without removing it.
func (q *Queue) Peek() (value int64, ok bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if len(q.data) == 0 {
		return
	}

	return q.data[0], true
}

// Len returns the number of queued values.
func (q *Queue) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	return len(q.data)
}

// Empty returns true if nothing is queued.
func (q *Queue) Empty() bool {
	return q.Len() == 0
}

// Drain removes and returns every queued value, in order.
func (q *Queue) Drain() (values []int64) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	values = q.data
	q.data = nil

	return
}

// Values returns an iterator over a snapshot of the queued values.
// The queue is not modified.
func (q *Queue) Values() iter.Seq[int64] {
	q.mutex.Lock()
	snapshot := slices.Clone(q.data)
	q.mutex.Unlock()

	return slices.Values(snapshot)
}

// Reset discards all queued values.
func (q *Queue) Reset() {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	q.data = nil
}
