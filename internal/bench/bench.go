// Package bench drives producer/consumer trials against a queue and
// aggregates their timings.
//
// Each trial constructs a fresh queue, spawns one producer goroutine
// enqueueing 0..Items-1 and one consumer goroutine dequeueing the same
// count, each in a yield-and-spin retry loop, joins both and records
// the wall-clock elapsed time. Repeating trials and reporting the mean
// smooths scheduler noise.
package bench

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/quietlab/spscbench/internal/affinity"
	"github.com/quietlab/spscbench/internal/hrtime"
	"github.com/quietlab/spscbench/internal/spsc"
)

// ErrAborted is returned when Stop is triggered mid-run.
var ErrAborted = errors.New("bench: run aborted")

// Config shapes a benchmark run. The zero value is not usable; fill
// Items and Trials at minimum and leave the CPUs negative to skip
// pinning.
type Config struct {
	// Items is the number of values pushed through the queue per trial.
	Items uint64
	// Trials is the number of timed repetitions.
	Trials int
	// ProducerCPU / ConsumerCPU pin the respective thread when >= 0.
	ProducerCPU int
	ConsumerCPU int
	// Verify makes the consumer check FIFO order. It adds a compare
	// per item, so leave it off when measuring.
	Verify bool
	// Cycles enables per-trial TSC measurement when available.
	Cycles bool
	// Stop aborts in-flight trials when triggered. Optional.
	Stop *Stop
}

// Run times cfg.Trials trials of the queue produced by factory.
// The factory runs once per trial so each trial starts empty and cold.
func (cfg Config) Run(name string, factory func() spsc.Queue[uint64]) (Result, error) {
	if cfg.Items == 0 {
		return Result{}, errors.New("bench: Items must be > 0")
	}
	if cfg.Trials <= 0 {
		return Result{}, errors.New("bench: Trials must be > 0")
	}

	var counter hrtime.Counter
	useCycles := false
	if cfg.Cycles {
		if c, err := hrtime.Calibrate(); err == nil {
			counter = c
			useCycles = true
		}
	}

	res := Result{Name: name, Items: cfg.Items, Trials: make([]Trial, 0, cfg.Trials)}
	for i := 0; i < cfg.Trials; i++ {
		if cfg.Stop != nil && cfg.Stop.Stopped() {
			return res, ErrAborted
		}

		q := factory()
		res.Capacity = q.Cap()

		trial, err := cfg.trial(q, counter, useCycles)
		if err != nil {
			return res, err
		}
		res.Trials = append(res.Trials, trial)
	}
	return res, nil
}

func (cfg Config) trial(q spsc.Queue[uint64], counter hrtime.Counter, useCycles bool) (Trial, error) {
	stop := cfg.Stop
	if stop == nil {
		stop = NewStop()
	}

	errc := make(chan error, 2)
	done := make(chan struct{})

	start := time.Now()
	var startCycles uint64
	if useCycles {
		startCycles = counter.Now()
	}

	// Producer (single goroutine - SPSC contract)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		if cfg.ProducerCPU >= 0 {
			if err := affinity.Pin(cfg.ProducerCPU); err != nil {
				errc <- fmt.Errorf("bench: pin producer to cpu %d: %w", cfg.ProducerCPU, err)
				return
			}
		}

		for i := uint64(0); i < cfg.Items; i++ {
			for !q.TryEnqueue(i) {
				if stop.Stopped() {
					errc <- ErrAborted
					return
				}
				runtime.Gosched()
			}
		}
		errc <- nil
	}()

	// Consumer (single goroutine - SPSC contract)
	go func() {
		defer close(done)
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		if cfg.ConsumerCPU >= 0 {
			if err := affinity.Pin(cfg.ConsumerCPU); err != nil {
				errc <- fmt.Errorf("bench: pin consumer to cpu %d: %w", cfg.ConsumerCPU, err)
				return
			}
		}

		expected := uint64(0)
		for expected < cfg.Items {
			v, ok := q.TryDequeue()
			if !ok {
				if stop.Stopped() {
					errc <- ErrAborted
					return
				}
				runtime.Gosched()
				continue
			}
			if cfg.Verify && v != expected {
				errc <- fmt.Errorf("bench: FIFO violation at item %d: got %d", expected, v)
				return
			}
			expected++
		}
		errc <- nil
	}()

	err1 := <-errc
	if err1 != nil {
		// Unblock the other side before collecting it.
		stop.Trigger()
	}
	err2 := <-errc
	<-done

	elapsed := time.Since(start)
	var cycles uint64
	if useCycles {
		cycles = counter.Now() - startCycles
	}

	if err1 != nil {
		return Trial{}, err1
	}
	if err2 != nil {
		return Trial{}, err2
	}
	return Trial{Elapsed: elapsed, Cycles: cycles}, nil
}
