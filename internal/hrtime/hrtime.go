// Package hrtime reads the CPU's timestamp counter for cycle-level
// trial measurements.
//
// Wall-clock timing via time.Now is accurate enough for whole trials;
// the TSC path exists to report per-item cycle costs without the
// clock-read overhead distorting short runs. It is amd64 only; other
// architectures get ErrUnsupported and the harness reports wall time
// alone.
package hrtime

import (
	"errors"
	"time"
)

// ErrUnsupported is returned where no timestamp counter is available.
var ErrUnsupported = errors.New("hrtime: timestamp counter requires amd64")

// Counter converts raw TSC readings into durations using a measured
// cycles-per-nanosecond ratio.
//
// The ratio is approximate: frequency scaling, power states and
// thermal throttling all move it. For stable numbers, run on a
// warmed-up CPU with the performance governor.
type Counter struct {
	cyclesPerNs float64
}

// Calibrate measures cycles-per-nanosecond over ~10ms of wall time and
// returns a ready Counter. Returns ErrUnsupported off amd64.
func Calibrate() (Counter, error) {
	return calibrate()
}

// Supported reports whether TSC measurement is available.
func Supported() bool {
	return supported
}

// Now returns the current raw counter value.
func (c Counter) Now() uint64 {
	return now()
}

// CyclesPerNs returns the calibrated ratio.
func (c Counter) CyclesPerNs() float64 {
	return c.cyclesPerNs
}

// Duration converts a start/end counter pair into wall time.
func (c Counter) Duration(start, end uint64) time.Duration {
	if c.cyclesPerNs <= 0 {
		return 0
	}
	return time.Duration(float64(end-start) / c.cyclesPerNs)
}
