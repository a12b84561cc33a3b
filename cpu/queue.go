// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"iter"
)

// Queue is an unbounded FIFO of values awaiting rcv.
type Queue struct {
	ReadIndex int
	Data      []int64
}

// Push appends a value to the back of the queue.
func (q *Queue) Push(value int64) {
	// Reclaim consumed space once it dominates the buffer.
	if q.ReadIndex > 0 && q.ReadIndex >= len(q.Data)/2 {
		n := copy(q.Data, q.Data[q.ReadIndex:])
		q.Data = q.Data[:n]
		q.ReadIndex = 0
	}
	q.Data = append(q.Data, value)
}

// Pop removes the value at the front of the queue.
func (q *Queue) Pop() (value int64, ok bool) {
	value, ok = q.Peek()
	if ok {
		q.ReadIndex++
	}
	return
}

// Peek returns the value at the front of the queue, without removing it.
func (q *Queue) Peek() (value int64, ok bool) {
	if q.Empty() {
		return
	}

	return q.Data[q.ReadIndex], true
}

func (q *Queue) Empty() bool {
	return q.Len() == 0
}

// Len is the count of pending values.
func (q *Queue) Len() int {
	return len(q.Data) - q.ReadIndex
}

// Pending iterates the queued values in order, without consuming them.
func (q *Queue) Pending() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for _, value := range q.Data[q.ReadIndex:] {
			if !yield(value) {
				return
			}
		}
	}
}

func (q *Queue) Reset() {
	q.ReadIndex = 0
	if len(q.Data) > 0 {
		q.Data = q.Data[:0]
	}
}
