// Package spsc provides a fixed-capacity, lock-free SPSC queue for
// low-latency hand-off between exactly two goroutines.
//
// The queue is a ring buffer with two wrapping cursors. The producer
// owns the write cursor, the consumer owns the read cursor, and each
// side only ever reads the other's cursor. One slot is sacrificed to
// tell full apart from empty, so a queue built with capacity C holds
// at most C-1 values.
//
// # SPSC contract (IMPORTANT)
//
// Exactly ONE goroutine may call TryEnqueue and exactly ONE goroutine
// may call TryDequeue. There are no runtime guards: violating the
// contract is undefined behavior, as is releasing the queue while
// either side can still touch it. The caller owns teardown ordering.
//
// # Layout variants
//
// Cache-line isolation of the cursors, software prefetch hints,
// remote-cursor snapshot caching and the wraparound arithmetic are all
// selected statically through type parameters, so each configuration
// compiles to specialized code with no flag branches on the hot path.
// Use the Builder to pick a configuration, or New for the fast
// default (isolated cursors, cached snapshots, power-of-two capacity).
package spsc

// Queue is the producer/consumer interface shared by every layout
// variant and by the comparison queues in the benchmark suite.
//
// Implementations are non-blocking: TryEnqueue returns false when
// full, TryDequeue returns false when empty. Neither call sleeps,
// yields or allocates; retry and backoff are the caller's concern.
type Queue[T any] interface {
	// TryEnqueue appends v to the queue.
	// Returns false, with no side effects, if the queue is full.
	TryEnqueue(v T) bool

	// TryDequeue removes and returns the oldest value.
	// Returns the zero value and false, with no side effects, if the
	// queue is empty.
	TryDequeue() (T, bool)

	// Cap returns the number of slots, including the sacrificial one.
	// At most Cap()-1 values are ever held.
	Cap() int
}

// New creates a queue with the fast default layout: cache-line
// isolated cursors, cached remote-cursor snapshots, no prefetch, and
// masked wraparound. Capacity must be a power of two and >= 2.
func New[T any](capacity int) *Default[T] {
	return newRing[T, Isolated, *Isolated, Pow2, Cached, NoPrefetch](capacity)
}

// Default is the layout produced by New.
type Default[T any] = Ring[T, Isolated, *Isolated, Pow2, Cached, NoPrefetch]
