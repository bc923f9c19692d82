// Package baseline provides reference queue implementations the
// benchmark suite compares the lock-free ring against.
//
// Both implementations satisfy spsc.Queue and share its non-blocking
// contract, but unlike the ring they are safe for any number of
// producers and consumers: the comparison deliberately pits the
// specialized SPSC design against general-purpose alternatives.
package baseline

import (
	"sync"

	eq "github.com/eapache/queue"
)

// Channel wraps a buffered channel as a queue.
//
// This is the standard library approach. Each operation performs a
// non-blocking channel send/receive via select with default.
type Channel[T any] struct {
	ch chan T
}

// NewChannel creates a Channel holding up to capacity-1 values, so its
// usable capacity matches a ring of the same nominal size.
func NewChannel[T any](capacity int) *Channel[T] {
	if capacity < 2 {
		panic("baseline: capacity must be >= 2")
	}
	return &Channel[T]{ch: make(chan T, capacity-1)}
}

// TryEnqueue appends v. Returns false if the channel buffer is full.
func (q *Channel[T]) TryEnqueue(v T) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// TryDequeue removes and returns the oldest value.
// Returns false if the buffer is empty.
func (q *Channel[T]) TryDequeue() (T, bool) {
	select {
	case v := <-q.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Len returns the number of buffered values.
func (q *Channel[T]) Len() int { return len(q.ch) }

// Cap returns the nominal capacity (usable capacity plus one, matching
// the ring's sacrificial-slot accounting).
func (q *Channel[T]) Cap() int { return cap(q.ch) + 1 }

// Locked is a mutex-guarded bounded queue over eapache's dynamically
// sized ring. It represents the straightforward locking design most
// codebases reach for first.
type Locked[T any] struct {
	mu       sync.Mutex
	q        *eq.Queue
	capacity int
}

// NewLocked creates a Locked queue holding up to capacity-1 values.
func NewLocked[T any](capacity int) *Locked[T] {
	if capacity < 2 {
		panic("baseline: capacity must be >= 2")
	}
	return &Locked[T]{q: eq.New(), capacity: capacity}
}

// TryEnqueue appends v. Returns false if the queue is at capacity.
func (q *Locked[T]) TryEnqueue(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.q.Length() >= q.capacity-1 {
		return false
	}
	q.q.Add(v)
	return true
}

// TryDequeue removes and returns the oldest value.
// Returns false if the queue is empty.
func (q *Locked[T]) TryDequeue() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.q.Length() == 0 {
		var zero T
		return zero, false
	}
	return q.q.Remove().(T), true
}

// Len returns the number of buffered values.
func (q *Locked[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.q.Length()
}

// Cap returns the nominal capacity.
func (q *Locked[T]) Cap() int { return q.capacity }
