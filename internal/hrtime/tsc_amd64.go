//go:build amd64

package hrtime

import "time"

const supported = true

// rdtsc reads the CPU's Time Stamp Counter.
// Implemented in tsc_amd64.s.
func rdtsc() uint64

func now() uint64 { return rdtsc() }

// calibrate compares TSC ticks against the wall clock across a short
// sleep. The sleep length trades calibration time for accuracy; 10ms
// keeps the error well under the run-to-run noise of the benchmarks.
func calibrate() (Counter, error) {
	// Warm up the TSC path
	rdtsc()
	rdtsc()

	start := rdtsc()
	t1 := time.Now()
	time.Sleep(10 * time.Millisecond)
	end := rdtsc()
	t2 := time.Now()

	cycles := float64(end - start)
	nanos := float64(t2.Sub(t1).Nanoseconds())
	if nanos <= 0 || cycles <= 0 {
		return Counter{}, ErrUnsupported
	}

	return Counter{cyclesPerNs: cycles / nanos}, nil
}
