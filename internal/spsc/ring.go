package spsc

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Ring is the SPSC ring buffer, specialized per layout:
//
//	L/PL: cursor layout (Isolated or Compact)
//	W:    wraparound arithmetic (Pow2 or AnyCap)
//	G:    availability check (Cached or Direct)
//	H:    slot prefetch hint (Prefetch or NoPrefetch)
//
// All policy values are zero-size, so the policy method calls compile
// to the specialized code of each variant.
//
// A Ring must not be copied after first use.
type Ring[T any, L any, PL lanesOf[L], W wrapPolicy, G gatePolicy, H hintPolicy] struct {
	noCopy noCopy

	// Cursor block first: the Isolated layout's trailing pads then keep
	// the read-only fields below off the cursor lines.
	cursors L

	slots    []T
	capacity uint64
	mask     uint64
}

// newRing is the single construction path for every variant. It
// validates the element type and the capacity against the selected
// wraparound policy; misconfiguration is a programmer error and
// panics rather than returning a crippled queue.
func newRing[T any, L any, PL lanesOf[L], W wrapPolicy, G gatePolicy, H hintPolicy](capacity int) *Ring[T, L, PL, W, G, H] {
	if err := checkCopyable[T](); err != nil {
		panic(err)
	}
	if capacity < 2 {
		panic(fmt.Sprintf("spsc: capacity must be >= 2, got %d", capacity))
	}
	var w W
	if _, masked := any(w).(Pow2); masked && capacity&(capacity-1) != 0 {
		panic(fmt.Sprintf("spsc: masked wraparound requires a power-of-two capacity, got %d", capacity))
	}

	return &Ring[T, L, PL, W, G, H]{
		slots:    make([]T, capacity),
		capacity: uint64(capacity),
		mask:     uint64(capacity) - 1,
	}
}

// TryEnqueue appends v. Returns false, with no side effects, if the
// queue is full. Producer side only.
func (q *Ring[T, L, PL, W, G, H]) TryEnqueue(v T) bool {
	var (
		wrap W
		gate G
		hint H
	)
	cur := PL(&q.cursors)

	// Own cursor: only this side stores it, so the load needs no
	// ordering beyond what sync/atomic already gives.
	w := cur.wr().Load()
	next := wrap.advance(w, q.capacity, q.mask)

	// Full when advancing would land on the consumer's cursor. The
	// authoritative reload inside the gate is the acquire that lets us
	// observe the consumer's finished dequeue before reusing its slot.
	if !gate.writable(next, cur.rd(), cur.rdView()) {
		return false
	}

	hint.beforeWrite(unsafe.Pointer(&q.slots[w]))
	q.slots[w] = v

	// Release: publishes the slot write together with the cursor.
	cur.wr().Store(next)
	return true
}

// TryDequeue removes and returns the oldest value. Returns the zero
// value and false, with no side effects, if the queue is empty.
// Consumer side only.
func (q *Ring[T, L, PL, W, G, H]) TryDequeue() (T, bool) {
	var (
		wrap W
		gate G
		hint H
	)
	cur := PL(&q.cursors)

	r := cur.rd().Load()

	// Empty when both cursors meet.
	if !gate.readable(r, cur.wr(), cur.wrView()) {
		var zero T
		return zero, false
	}

	hint.beforeRead(unsafe.Pointer(&q.slots[r]))
	v := q.slots[r]

	// Release: hands the slot back to the producer.
	cur.rd().Store(wrap.advance(r, q.capacity, q.mask))
	return v, true
}

// Len returns the number of buffered values. The two cursors are read
// independently, so the result may be slightly stale.
func (q *Ring[T, L, PL, W, G, H]) Len() int {
	cur := PL(&q.cursors)
	w := cur.wr().Load()
	r := cur.rd().Load()
	return int((w + q.capacity - r) % q.capacity)
}

// Cap returns the slot count. One slot disambiguates full from empty,
// so at most Cap()-1 values are held.
func (q *Ring[T, L, PL, W, G, H]) Cap() int {
	return int(q.capacity)
}

// checkCopyable rejects element types the queue cannot hand off as raw
// bit patterns. Anything reachable through the value that carries its
// own ownership (pointers, slices, strings, maps, chans, funcs,
// interfaces) is refused at construction.
func checkCopyable[T any]() error {
	return copyableType(reflect.TypeFor[T]())
}

func copyableType(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return copyableType(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if err := copyableType(t.Field(i).Type); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("spsc: element type %v is not trivially copyable (%v field)", t, t.Kind())
	}
}

// noCopy triggers `go vet -copylocks` when a queue is copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
