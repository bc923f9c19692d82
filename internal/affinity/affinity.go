// Package affinity pins benchmark threads to CPUs.
//
// Pinning the producer and consumer to fixed cores keeps the scheduler
// from migrating them mid-trial, which otherwise adds enough cache and
// NUMA noise to swamp the layout effects the benchmarks measure.
//
// Only Linux is supported; other platforms report ErrUnsupported and
// the harness falls back to unpinned threads.
package affinity

import "errors"

// ErrUnsupported is returned where thread pinning is not implemented.
var ErrUnsupported = errors.New("affinity: thread pinning not supported on this platform")

// Pin binds the calling OS thread to the given logical CPU.
//
// The caller must hold the thread with runtime.LockOSThread() for the
// pin to mean anything; the affinity follows the thread, not the
// goroutine.
func Pin(cpu int) error {
	if cpu < 0 {
		return errors.New("affinity: cpu must be >= 0")
	}
	return pin(cpu)
}
