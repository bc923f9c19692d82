package spsc

import "sync/atomic"

// CacheLineSize is the coherence granule the padded layout isolates
// cursors to. 64 bytes covers amd64 and most arm64 server parts.
const CacheLineSize = 64

// lanes is the cursor block of a queue. The two concrete layouts
// differ only in whether the four fields share cache lines.
//
// wr is the producer's cursor (next slot to write), rd the consumer's
// (next slot to read). rdView is the producer's snapshot of rd and
// wrView the consumer's snapshot of wr; each snapshot is plain memory
// because only its owning side touches it.
type lanes interface {
	wr() *atomic.Uint64
	rd() *atomic.Uint64
	rdView() *uint64
	wrView() *uint64
}

// lanesOf ties a lanes implementation to its pointer type so Ring can
// embed the layout by value and still reach the atomics.
type lanesOf[L any] interface {
	*L
	lanes
}

// Isolated gives each cursor and each snapshot a full cache line, so
// producer and consumer writes never collide on a shared line.
type Isolated struct {
	write     atomic.Uint64
	_         [CacheLineSize - 8]byte
	readSnap  uint64
	_         [CacheLineSize - 8]byte
	read      atomic.Uint64
	_         [CacheLineSize - 8]byte
	writeSnap uint64
	_         [CacheLineSize - 8]byte
}

func (l *Isolated) wr() *atomic.Uint64 { return &l.write }
func (l *Isolated) rd() *atomic.Uint64 { return &l.read }
func (l *Isolated) rdView() *uint64    { return &l.readSnap }
func (l *Isolated) wrView() *uint64    { return &l.writeSnap }

// Compact packs the cursors with no padding, trading false-sharing
// traffic for a 192-byte smaller footprint.
type Compact struct {
	write     atomic.Uint64
	readSnap  uint64
	read      atomic.Uint64
	writeSnap uint64
}

func (l *Compact) wr() *atomic.Uint64 { return &l.write }
func (l *Compact) rd() *atomic.Uint64 { return &l.read }
func (l *Compact) rdView() *uint64    { return &l.readSnap }
func (l *Compact) wrView() *uint64    { return &l.writeSnap }
