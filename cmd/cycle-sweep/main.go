// Command cycle-sweep checks extrapolated heights against a direct
// simulation for a list of drop counts.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"rockfall/internal/cycle"
	"rockfall/internal/jets"
	"rockfall/internal/playfield"
)

type sampleResult struct {
	drops    int64
	direct   int64
	extrap   int64
	cycle    *cycle.Info
	duration time.Duration
	err      error
}

func (r sampleResult) ok() bool { return r.err == nil && r.direct == r.extrap }

func main() {
	input := flag.String("input", "", "jet file; empty uses the built-in sample")
	samples := flag.String("samples", "1,100,2022,2500,3333,5000,7777,10000,15000,20000", "comma separated drop counts")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	compact := flag.Bool("compact", true, "discard sealed rows below the surface")
	flag.Parse()

	log := logrus.New()

	seq := jets.MustParse(jets.Sample)
	if *input != "" {
		loaded, err := jets.Load(*input)
		if err != nil {
			log.WithError(err).Fatal("cannot read jets")
		}
		seq = loaded
	}
	counts, err := parseCounts(*samples)
	if err != nil {
		log.WithError(err).Fatal("bad -samples")
	}

	var opts []cycle.Option
	if !*compact {
		opts = append(opts, cycle.WithPlayfield(playfield.WithoutCompaction()))
	}

	fmt.Printf("Sweeping %d drop counts (%d workers, %d jets)\n", len(counts), *workers, len(seq))
	start := time.Now()
	results, err := sweep(seq, counts, *workers, opts...)
	if err != nil {
		log.WithError(err).Fatal("reference run failed")
	}

	failed := 0
	for _, res := range results {
		status := "ok"
		if !res.ok() {
			status = "MISMATCH"
			failed++
		}
		period := "-"
		if res.cycle != nil {
			period = fmt.Sprintf("%d drops/+%d rows", res.cycle.DropDelta, res.cycle.HeightDelta)
		}
		fmt.Printf("%12d direct=%-14d extrapolated=%-14d cycle=%-22s %8s %s\n",
			res.drops, res.direct, res.extrap, period, res.duration.Round(time.Microsecond), status)
		if res.err != nil {
			log.WithError(res.err).WithField("drops", res.drops).Error("sample failed")
		}
	}
	fmt.Printf("\n%d/%d agree (elapsed %s)\n", len(results)-failed, len(results), time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		os.Exit(1)
	}
}

func parseCounts(s string) ([]int64, error) {
	var counts []int64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.ParseInt(strings.ReplaceAll(field, "_", ""), 10, 64)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("drop count %d is not positive", n)
		}
		counts = append(counts, n)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("no drop counts in %q", s)
	}
	return counts, nil
}

// sweep runs one direct simulation up to the largest count, recording every
// height, and then extrapolates each count from scratch on the workers.
func sweep(seq jets.Sequence, counts []int64, workers int, opts ...cycle.Option) ([]sampleResult, error) {
	if workers <= 0 {
		workers = 1
	}
	largest := counts[0]
	for _, n := range counts {
		largest = max(largest, n)
	}

	history := cycle.NewHistory(int(largest))
	ref, err := cycle.New(seq, append(opts, cycle.WithHistory(history))...)
	if err != nil {
		return nil, err
	}
	ref.RunTo(largest)
	if history.Last() != largest {
		return nil, fmt.Errorf("reference run stopped at %d of %d drops", history.Last(), largest)
	}

	jobs := make(chan int64)
	results := make(chan sampleResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range jobs {
				results <- runSample(seq, n, history, opts)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, n := range counts {
			jobs <- n
		}
		close(jobs)
	}()

	var all []sampleResult
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].drops < all[j].drops })
	return all, nil
}

func runSample(seq jets.Sequence, n int64, history *cycle.History, opts []cycle.Option) sampleResult {
	res := sampleResult{drops: n}
	direct, ok := history.At(n)
	if !ok {
		res.err = fmt.Errorf("no reference height for %d drops", n)
		return res
	}
	res.direct = direct

	start := time.Now()
	res.extrap, res.cycle, res.err = cycle.HeightAfter(seq, n, true, opts...)
	res.duration = time.Since(start)
	return res
}
