package spsc_test

import (
	"testing"
	"unsafe"

	"github.com/quietlab/spscbench/internal/spsc"
)

// layouts enumerates every builder combination once, so the property
// tests can assert that all of them behave identically.
type layout struct {
	name     string
	isolate  bool
	prefetch bool
	cached   bool
	pow2     bool
}

func allLayouts() []layout {
	var out []layout
	for _, isolate := range []bool{false, true} {
		for _, prefetch := range []bool{false, true} {
			for _, cached := range []bool{false, true} {
				for _, pow2 := range []bool{false, true} {
					name := "compact"
					if isolate {
						name = "isolated"
					}
					if cached {
						name += "+cached"
					}
					if prefetch {
						name += "+prefetch"
					}
					if pow2 {
						name += "+pow2"
					}
					out = append(out, layout{name, isolate, prefetch, cached, pow2})
				}
			}
		}
	}
	return out
}

func (l layout) build(t *testing.T, capacity int) spsc.Queue[uint64] {
	t.Helper()

	b := spsc.Configure(capacity)
	if l.isolate {
		b.CachelineIsolated()
	}
	if l.prefetch {
		b.Prefetch()
	}
	if l.cached {
		b.CachedViews()
	}
	if l.pow2 {
		b.PowerOfTwo()
	}
	return spsc.Build[uint64](b)
}

func testBasics(t *testing.T, q spsc.Queue[uint64], name string) {
	t.Helper()

	// Empty queue returns false
	if _, ok := q.TryDequeue(); ok {
		t.Errorf("%s: expected TryDequeue() = false on empty queue", name)
	}

	// Enqueue succeeds
	if !q.TryEnqueue(42) {
		t.Errorf("%s: expected TryEnqueue() = true", name)
	}

	// Dequeue returns the value
	got, ok := q.TryDequeue()
	if !ok {
		t.Errorf("%s: expected TryDequeue() = true after TryEnqueue()", name)
	}
	if got != 42 {
		t.Errorf("%s: expected 42, got %d", name, got)
	}

	// Queue is empty again
	if _, ok := q.TryDequeue(); ok {
		t.Errorf("%s: expected TryDequeue() = false after draining", name)
	}
}

func TestRing_Basics(t *testing.T) {
	testBasics(t, spsc.New[uint64](8), "Default")
}

func TestRing_FIFO(t *testing.T) {
	q := spsc.New[uint64](16)

	for i := uint64(0); i < 10; i++ {
		if !q.TryEnqueue(i) {
			t.Fatalf("expected TryEnqueue(%d) = true", i)
		}
	}

	for i := uint64(0); i < 10; i++ {
		got, ok := q.TryDequeue()
		if !ok {
			t.Fatalf("expected TryDequeue() = true for item %d", i)
		}
		if got != i {
			t.Errorf("FIFO violation: expected %d, got %d", i, got)
		}
	}
}

func TestRing_CapacityBound(t *testing.T) {
	// One slot is sacrificed: capacity 8 holds 7 values.
	q := spsc.New[uint64](8)

	for i := uint64(0); i < 7; i++ {
		if !q.TryEnqueue(i) {
			t.Fatalf("expected TryEnqueue(%d) = true", i)
		}
	}
	if q.TryEnqueue(7) {
		t.Error("expected TryEnqueue() = false on full queue")
	}
	if q.Len() != 7 {
		t.Errorf("expected Len() = 7 after failed enqueue, got %d", q.Len())
	}
}

func TestRing_IdempotentFailure(t *testing.T) {
	q := spsc.New[uint64](4)

	for i := uint64(0); i < 3; i++ {
		q.TryEnqueue(i)
	}

	// Repeated failure on a full queue changes nothing.
	for i := 0; i < 10; i++ {
		if q.TryEnqueue(99) {
			t.Fatal("expected TryEnqueue() = false on full queue")
		}
	}
	if q.Len() != 3 {
		t.Errorf("expected Len() = 3, got %d", q.Len())
	}

	// Drain, then repeated failure on an empty queue changes nothing.
	for i := uint64(0); i < 3; i++ {
		got, ok := q.TryDequeue()
		if !ok || got != i {
			t.Fatalf("expected TryDequeue() = (%d, true), got (%d, %v)", i, got, ok)
		}
	}
	for i := 0; i < 10; i++ {
		if _, ok := q.TryDequeue(); ok {
			t.Fatal("expected TryDequeue() = false on empty queue")
		}
	}
	if q.Len() != 0 {
		t.Errorf("expected Len() = 0, got %d", q.Len())
	}
}

// TestRing_Scenario walks the canonical capacity-4 sequence: three
// usable slots, full at three, one freed slot readmits exactly one.
func TestRing_Scenario(t *testing.T) {
	for _, l := range allLayouts() {
		t.Run(l.name, func(t *testing.T) {
			q := l.build(t, 4)
			const a, b, c, d = 1, 2, 3, 4

			for _, v := range []uint64{a, b, c} {
				if !q.TryEnqueue(v) {
					t.Fatalf("expected TryEnqueue(%d) = true", v)
				}
			}
			if q.TryEnqueue(d) {
				t.Fatal("expected TryEnqueue(d) = false on full queue")
			}

			got, ok := q.TryDequeue()
			if !ok || got != a {
				t.Fatalf("expected TryDequeue() = (a, true), got (%d, %v)", got, ok)
			}
			if !q.TryEnqueue(d) {
				t.Fatal("expected TryEnqueue(d) = true after one dequeue")
			}

			for _, want := range []uint64{b, c, d} {
				got, ok := q.TryDequeue()
				if !ok || got != want {
					t.Fatalf("expected TryDequeue() = (%d, true), got (%d, %v)", want, got, ok)
				}
			}
			if _, ok := q.TryDequeue(); ok {
				t.Fatal("expected TryDequeue() = false on drained queue")
			}
		})
	}
}

// TestRing_LayoutEquivalence runs the same FIFO workload through every
// layout; only throughput may differ between them, never behavior.
func TestRing_LayoutEquivalence(t *testing.T) {
	for _, l := range allLayouts() {
		t.Run(l.name, func(t *testing.T) {
			q := l.build(t, 8)
			testBasics(t, q, l.name)

			// Interleave partial fills and drains across the wrap point.
			next, expect := uint64(0), uint64(0)
			for round := 0; round < 50; round++ {
				for i := 0; i < 5; i++ {
					if !q.TryEnqueue(next) {
						t.Fatalf("round %d: unexpected full queue", round)
					}
					next++
				}
				for i := 0; i < 5; i++ {
					got, ok := q.TryDequeue()
					if !ok {
						t.Fatalf("round %d: unexpected empty queue", round)
					}
					if got != expect {
						t.Fatalf("round %d: expected %d, got %d", round, expect, got)
					}
					expect++
				}
			}
		})
	}
}

func TestRing_ArbitraryCapacity(t *testing.T) {
	// Conditional-reset wraparound takes any capacity >= 2.
	for _, capacity := range []int{2, 3, 5, 6, 7, 100} {
		q := spsc.Build[uint64](spsc.Configure(capacity).CachelineIsolated().CachedViews())
		if q.Cap() != capacity {
			t.Errorf("expected Cap() = %d, got %d", capacity, q.Cap())
		}
		usable := 0
		for q.TryEnqueue(uint64(usable)) {
			usable++
		}
		if usable != capacity-1 {
			t.Errorf("capacity %d: expected %d usable slots, got %d", capacity, capacity-1, usable)
		}
	}
}

func TestRing_LenCap(t *testing.T) {
	q := spsc.New[uint64](8)

	if q.Len() != 0 {
		t.Errorf("expected Len() = 0, got %d", q.Len())
	}
	if q.Cap() != 8 {
		t.Errorf("expected Cap() = 8, got %d", q.Cap())
	}

	q.TryEnqueue(1)
	q.TryEnqueue(2)

	if q.Len() != 2 {
		t.Errorf("expected Len() = 2, got %d", q.Len())
	}
}

func expectPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	f()
}

func TestRing_ConstructionFailures(t *testing.T) {
	expectPanic(t, "capacity 1", func() {
		spsc.New[uint64](1)
	})
	expectPanic(t, "capacity 0", func() {
		spsc.Build[uint64](spsc.Configure(0))
	})
	expectPanic(t, "non-power-of-two with masked wrap", func() {
		spsc.New[uint64](6)
	})
	expectPanic(t, "non-power-of-two via builder", func() {
		spsc.Build[uint64](spsc.Configure(100).PowerOfTwo())
	})

	// Builder without PowerOfTwo accepts the same capacity.
	q := spsc.Build[uint64](spsc.Configure(100))
	if q.Cap() != 100 {
		t.Errorf("expected Cap() = 100, got %d", q.Cap())
	}
}

func TestRing_RejectsNonCopyableElements(t *testing.T) {
	expectPanic(t, "pointer element", func() {
		spsc.New[*uint64](8)
	})
	expectPanic(t, "string element", func() {
		spsc.New[string](8)
	})
	expectPanic(t, "struct with slice field", func() {
		type record struct {
			ID   uint64
			Tags []byte
		}
		spsc.New[record](8)
	})

	// Flat structs and arrays pass.
	type sample struct {
		Seq     uint64
		Payload [16]byte
	}
	q := spsc.New[sample](8)
	if !q.TryEnqueue(sample{Seq: 7}) {
		t.Error("expected TryEnqueue() = true for flat struct")
	}
}

// The padded layout promises one full cache line per cursor field.
func TestIsolatedLayoutSize(t *testing.T) {
	if got := unsafe.Sizeof(spsc.Isolated{}); got != 4*spsc.CacheLineSize {
		t.Errorf("expected Isolated to span 4 cache lines (%d bytes), got %d", 4*spsc.CacheLineSize, got)
	}
}
