// internal/batch/pool.go
package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tmcalc/core/melting"
	"tmcalc/core/trace"
)

// Computer runs one computation; *melting.Engine implements it.
type Computer interface {
	Compute(o melting.Options, tr *trace.Trace) (*melting.Report, error)
}

// Config controls the worker pool.
type Config struct {
	Threads int          // number of worker goroutines (>=1)
	Logger  *slog.Logger // mirrors every run's trace; nil records only
}

// Job is one computation request.
type Job struct {
	ID      string
	Options melting.Options
}

// Outcome is the result of one Job. Exactly one of Report and Err is set.
type Outcome struct {
	Index   int
	ID      string
	Report  *melting.Report
	Err     error
	Elapsed time.Duration
}

// ForEach computes every job on cfg.Threads workers and calls visit once
// per job, in input order, from a single goroutine. A failed computation is
// an Outcome, not an error: ForEach returns the first error of visit or the
// context's error, and stops feeding new jobs after either.
func ForEach(ctx context.Context, cfg Config, jobs []Job, comp Computer, visit func(Outcome) error) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type work struct {
		index int
		job   Job
	}
	in := make(chan work, cfg.Threads*2)
	results := make(chan Outcome, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case wk, ok := <-in:
					if !ok {
						return
					}
					start := time.Now()
					rep, err := comp.Compute(wk.job.Options, trace.New(cfg.Logger))
					out := Outcome{Index: wk.index, ID: wk.job.ID, Report: rep, Err: err, Elapsed: time.Since(start)}
					select {
					case results <- out:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: reorders by index.
	var (
		verr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := map[int]Outcome{}
		next := 0
		for o := range results {
			pending[o.Index] = o
			for {
				p, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if verr != nil {
					continue
				}
				if err := visit(p); err != nil {
					verr = err
					cancel()
				}
			}
		}
	}()

	// Feed work
feed:
	for i, j := range jobs {
		select {
		case <-ctx.Done():
			break feed
		case in <- work{index: i, job: j}:
		}
	}

	close(in)
	wg.Wait()
	close(results)
	cwg.Wait()

	if verr != nil {
		return verr
	}
	return ctx.Err()
}
