package bench

import "sync/atomic"

// Stop is an abort flag polled inside the producer/consumer retry
// loops. A channel select in those loops would cost more than the
// queue operation being measured; a single atomic load does not.
type Stop struct {
	flag atomic.Bool
}

// NewStop creates an untriggered Stop.
func NewStop() *Stop {
	return &Stop{}
}

// Trigger requests that running trials wind down.
// Safe to call from any goroutine, any number of times.
func (s *Stop) Trigger() {
	s.flag.Store(true)
}

// Stopped reports whether Trigger has been called.
func (s *Stop) Stopped() bool {
	return s.flag.Load()
}
