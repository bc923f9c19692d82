// Command spscbench measures SPSC queue throughput across layout
// variants and against general-purpose baselines.
//
// Usage:
//
//	go run ./cmd/spscbench -n 5000000 -size 128 -trials 10
//	go run ./cmd/spscbench -variants isolated+cached,compact -json
//	go run ./cmd/spscbench -compare -pin-producer 2 -pin-consumer 4 -db bench.db
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/quietlab/spscbench/internal/baseline"
	"github.com/quietlab/spscbench/internal/bench"
	"github.com/quietlab/spscbench/internal/results"
	"github.com/quietlab/spscbench/internal/spsc"
)

type variant struct {
	name  string
	build func(capacity int) spsc.Queue[uint64]
}

// layoutVariants covers the padding × prefetch × caching matrix with
// masked wraparound, plus one conditional-reset configuration.
var layoutVariants = []variant{
	{"compact", func(c int) spsc.Queue[uint64] {
		return spsc.Build[uint64](spsc.Configure(c).PowerOfTwo())
	}},
	{"compact+prefetch", func(c int) spsc.Queue[uint64] {
		return spsc.Build[uint64](spsc.Configure(c).Prefetch().PowerOfTwo())
	}},
	{"compact+cached", func(c int) spsc.Queue[uint64] {
		return spsc.Build[uint64](spsc.Configure(c).CachedViews().PowerOfTwo())
	}},
	{"isolated", func(c int) spsc.Queue[uint64] {
		return spsc.Build[uint64](spsc.Configure(c).CachelineIsolated().PowerOfTwo())
	}},
	{"isolated+prefetch", func(c int) spsc.Queue[uint64] {
		return spsc.Build[uint64](spsc.Configure(c).CachelineIsolated().Prefetch().PowerOfTwo())
	}},
	{"isolated+cached", func(c int) spsc.Queue[uint64] {
		return spsc.Build[uint64](spsc.Configure(c).CachelineIsolated().CachedViews().PowerOfTwo())
	}},
	{"isolated+cached+prefetch", func(c int) spsc.Queue[uint64] {
		return spsc.Build[uint64](spsc.Configure(c).CachelineIsolated().CachedViews().Prefetch().PowerOfTwo())
	}},
	{"isolated+cached+modwrap", func(c int) spsc.Queue[uint64] {
		return spsc.Build[uint64](spsc.Configure(c).CachelineIsolated().CachedViews())
	}},
}

var baselineVariants = []variant{
	{"channel", func(c int) spsc.Queue[uint64] { return baseline.NewChannel[uint64](c) }},
	{"locked", func(c int) spsc.Queue[uint64] { return baseline.NewLocked[uint64](c) }},
}

func main() {
	items := flag.Uint64("n", 5_000_000, "items pushed through the queue per trial")
	size := flag.Int("size", 128, "queue capacity (power of two)")
	trials := flag.Int("trials", 10, "timed repetitions per variant")
	names := flag.String("variants", "all", "comma-separated variant names, or 'all'")
	compare := flag.Bool("compare", false, "also run the channel and mutex baselines")
	pinProducer := flag.Int("pin-producer", -1, "pin the producer thread to this CPU (-1 disables)")
	pinConsumer := flag.Int("pin-consumer", -1, "pin the consumer thread to this CPU (-1 disables)")
	verify := flag.Bool("verify", false, "check FIFO order during runs (adds per-item cost)")
	cycles := flag.Bool("cycles", false, "measure trials in TSC cycles where available")
	jsonOut := flag.Bool("json", false, "emit results as JSON instead of a table")
	dbPath := flag.String("db", "", "append results to this SQLite history database")
	list := flag.Bool("list", false, "list variant names and exit")
	flag.Parse()

	if *list {
		for _, v := range append(append([]variant{}, layoutVariants...), baselineVariants...) {
			fmt.Println(v.name)
		}
		return
	}

	selected, err := selectVariants(*names, *compare)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	stop := bench.NewStop()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		stop.Trigger()
	}()

	cfg := bench.Config{
		Items:       *items,
		Trials:      *trials,
		ProducerCPU: *pinProducer,
		ConsumerCPU: *pinConsumer,
		Verify:      *verify,
		Cycles:      *cycles,
		Stop:        stop,
	}

	if !*jsonOut {
		fmt.Printf("Benchmarking SPSC queue layouts (%d items, size=%d, %d trials)\n",
			*items, *size, *trials)
		fmt.Println("────────────────────────────────────────────────────────────────")
	}

	var recs []results.Record
	var resList []bench.Result
	for _, v := range selected {
		res, err := cfg.Run(v.name, func() spsc.Queue[uint64] { return v.build(*size) })
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", v.name, err)
			os.Exit(1)
		}
		resList = append(resList, res)
		recs = append(recs, results.FromResult(res))
		if !*jsonOut {
			printResult(res)
		}
	}

	if !*jsonOut {
		printSummary(resList)
	} else if err := results.WriteJSON(os.Stdout, recs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *dbPath != "" {
		store, err := results.OpenStore(*dbPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer store.Close()
		if err := store.Append(recs); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func selectVariants(names string, compare bool) ([]variant, error) {
	pool := append([]variant{}, layoutVariants...)
	if compare {
		pool = append(pool, baselineVariants...)
	}

	if names == "all" {
		return pool, nil
	}

	byName := make(map[string]variant, len(pool)+len(baselineVariants))
	for _, v := range append(pool, baselineVariants...) {
		byName[v.name] = v
	}

	var out []variant
	for _, n := range strings.Split(names, ",") {
		n = strings.TrimSpace(n)
		v, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("unknown variant %q (use -list)", n)
		}
		out = append(out, v)
	}
	return out, nil
}

func printResult(r bench.Result) {
	line := fmt.Sprintf("  %-26s mean=%-12v min=%-12v max=%-12v %7.2f M items/sec",
		r.Name, r.Mean(), r.Min(), r.Max(), r.ItemsPerSec()/1e6)
	if c := r.MeanCycles(); c > 0 {
		line += fmt.Sprintf("  %.1f cycles/item", float64(c)/float64(r.Items))
	}
	fmt.Println(line)
}

func printSummary(resList []bench.Result) {
	if len(resList) < 2 {
		return
	}
	sorted := append([]bench.Result{}, resList...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Mean() < sorted[j].Mean() })

	fastest, slowest := sorted[0], sorted[len(sorted)-1]
	fmt.Println("────────────────────────────────────────────────────────────────")
	fmt.Printf("Fastest: %s (%v)\n", fastest.Name, fastest.Mean())
	if fastest.Mean() > 0 {
		fmt.Printf("Spread:  %.2fx (%s slowest at %v)\n",
			float64(slowest.Mean())/float64(fastest.Mean()), slowest.Name, slowest.Mean())
	}
}
