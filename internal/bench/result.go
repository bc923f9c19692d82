package bench

import "time"

// Trial is one timed producer/consumer run.
type Trial struct {
	Elapsed time.Duration
	// Cycles is the TSC delta for the trial, 0 when unavailable.
	Cycles uint64
}

// Result aggregates the trials of one queue configuration.
type Result struct {
	Name     string
	Capacity int
	Items    uint64
	Trials   []Trial
}

// Mean returns the average trial duration.
func (r Result) Mean() time.Duration {
	if len(r.Trials) == 0 {
		return 0
	}
	var total time.Duration
	for _, t := range r.Trials {
		total += t.Elapsed
	}
	return total / time.Duration(len(r.Trials))
}

// Min returns the fastest trial.
func (r Result) Min() time.Duration {
	if len(r.Trials) == 0 {
		return 0
	}
	min := r.Trials[0].Elapsed
	for _, t := range r.Trials[1:] {
		if t.Elapsed < min {
			min = t.Elapsed
		}
	}
	return min
}

// Max returns the slowest trial.
func (r Result) Max() time.Duration {
	if len(r.Trials) == 0 {
		return 0
	}
	max := r.Trials[0].Elapsed
	for _, t := range r.Trials[1:] {
		if t.Elapsed > max {
			max = t.Elapsed
		}
	}
	return max
}

// ItemsPerSec returns mean throughput in items per second.
func (r Result) ItemsPerSec() float64 {
	mean := r.Mean()
	if mean <= 0 {
		return 0
	}
	return float64(r.Items) / mean.Seconds()
}

// NsPerItem returns the mean hand-off cost in nanoseconds.
func (r Result) NsPerItem() float64 {
	if r.Items == 0 {
		return 0
	}
	return float64(r.Mean().Nanoseconds()) / float64(r.Items)
}

// MeanCycles returns the average TSC delta, 0 when not measured.
func (r Result) MeanCycles() uint64 {
	if len(r.Trials) == 0 {
		return 0
	}
	var total uint64
	for _, t := range r.Trials {
		total += t.Cycles
	}
	return total / uint64(len(r.Trials))
}
