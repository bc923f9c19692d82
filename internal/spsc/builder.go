package spsc

// Builder selects a queue layout with fluent configuration, then
// dispatches to the matching Ring instantiation. The selection runs
// once at construction; the returned queue carries no layout flags.
//
// Example:
//
//	q := spsc.Build[uint64](spsc.Configure(1024).
//		CachelineIsolated().
//		CachedViews().
//		PowerOfTwo())
//
// Defaults are the minimal layout: packed cursors, no prefetch, fresh
// remote loads on every call, conditional-reset wraparound.
type Builder struct {
	capacity int
	isolate  bool
	prefetch bool
	cached   bool
	pow2     bool
}

// Configure starts a builder for the given capacity.
// Capacity is validated at Build time, against the selected policies.
func Configure(capacity int) *Builder {
	return &Builder{capacity: capacity}
}

// CachelineIsolated pads each cursor to a private cache line,
// eliminating false sharing between producer and consumer.
func (b *Builder) CachelineIsolated() *Builder {
	b.isolate = true
	return b
}

// Prefetch issues a software prefetch for the slot immediately before
// each access (write intent on enqueue, read intent on dequeue).
func (b *Builder) Prefetch() *Builder {
	b.prefetch = true
	return b
}

// CachedViews keeps a local snapshot of the remote cursor and reloads
// it only when the snapshot would fail the operation, trading a branch
// for fewer cross-core loads.
func (b *Builder) CachedViews() *Builder {
	b.cached = true
	return b
}

// PowerOfTwo switches wraparound to bitmask arithmetic. Build panics
// if the capacity is not a power of two.
func (b *Builder) PowerOfTwo() *Builder {
	b.pow2 = true
	return b
}

// Build creates the queue for the configured layout.
//
// Panics on misconfiguration: capacity < 2, a non-power-of-two
// capacity with PowerOfTwo selected, or a non-trivially-copyable
// element type.
func Build[T any](b *Builder) Queue[T] {
	if b.isolate {
		return buildGate[T, Isolated, *Isolated](b)
	}
	return buildGate[T, Compact, *Compact](b)
}

func buildGate[T any, L any, PL lanesOf[L]](b *Builder) Queue[T] {
	if b.cached {
		return buildHint[T, L, PL, Cached](b)
	}
	return buildHint[T, L, PL, Direct](b)
}

func buildHint[T any, L any, PL lanesOf[L], G gatePolicy](b *Builder) Queue[T] {
	if b.prefetch {
		return buildWrap[T, L, PL, G, Prefetch](b)
	}
	return buildWrap[T, L, PL, G, NoPrefetch](b)
}

func buildWrap[T any, L any, PL lanesOf[L], G gatePolicy, H hintPolicy](b *Builder) Queue[T] {
	if b.pow2 {
		return newRing[T, L, PL, Pow2, G, H](b.capacity)
	}
	return newRing[T, L, PL, AnyCap, G, H](b.capacity)
}
