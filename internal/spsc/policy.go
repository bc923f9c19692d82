package spsc

import (
	"sync/atomic"
	"unsafe"
)

// wrapPolicy advances a cursor with wraparound. Both policies agree on
// the result for every capacity they accept; Pow2 is just the cheaper
// arithmetic, valid only for power-of-two capacities.
type wrapPolicy interface {
	advance(i, capacity, mask uint64) uint64
}

// Pow2 wraps with a bitmask. Construction rejects capacities that are
// not a power of two.
type Pow2 struct{}

func (Pow2) advance(i, _, mask uint64) uint64 { return (i + 1) & mask }

// AnyCap wraps with a conditional reset and accepts every capacity >= 2.
type AnyCap struct{}

func (AnyCap) advance(i, capacity, _ uint64) uint64 {
	if i+1 == capacity {
		return 0
	}
	return i + 1
}

// gatePolicy is the availability check. writable reports whether the
// producer may advance to next; readable reports whether the consumer
// has a value at cur. Both take the remote cursor and the local
// snapshot of it.
type gatePolicy interface {
	writable(next uint64, remote *atomic.Uint64, view *uint64) bool
	readable(cur uint64, remote *atomic.Uint64, view *uint64) bool
}

// Cached consults the local snapshot first and reloads the remote
// cursor only when the snapshot says the operation would fail. The
// snapshot is always at or behind the true cursor, so staleness can
// only produce a spurious full/empty report, never a spurious success.
type Cached struct{}

func (Cached) writable(next uint64, remote *atomic.Uint64, view *uint64) bool {
	if next != *view {
		return true
	}
	*view = remote.Load()
	return next != *view
}

func (Cached) readable(cur uint64, remote *atomic.Uint64, view *uint64) bool {
	if cur != *view {
		return true
	}
	*view = remote.Load()
	return cur != *view
}

// Direct reloads the remote cursor on every call.
type Direct struct{}

func (Direct) writable(next uint64, remote *atomic.Uint64, _ *uint64) bool {
	return next != remote.Load()
}

func (Direct) readable(cur uint64, remote *atomic.Uint64, _ *uint64) bool {
	return cur != remote.Load()
}

// hintPolicy optionally warms the cache for the slot about to be
// touched. Hints never affect observable behavior.
type hintPolicy interface {
	beforeWrite(addr unsafe.Pointer)
	beforeRead(addr unsafe.Pointer)
}

// Prefetch issues a write-intent hint before a store and a read-intent
// hint before a load. No-op on architectures without the intrinsic.
type Prefetch struct{}

func (Prefetch) beforeWrite(addr unsafe.Pointer) { prefetchWrite(addr) }
func (Prefetch) beforeRead(addr unsafe.Pointer)  { prefetchRead(addr) }

// NoPrefetch skips the hints.
type NoPrefetch struct{}

func (NoPrefetch) beforeWrite(unsafe.Pointer) {}
func (NoPrefetch) beforeRead(unsafe.Pointer)  {}
