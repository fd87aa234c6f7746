package tmapp

import (
	"context"
	"fmt"

	"tmcalc/core/melting"
	"tmcalc/internal/batch"
	"tmcalc/internal/cmdutil"
	"tmcalc/internal/config"
	"tmcalc/internal/metrics"
	"tmcalc/internal/writers"
)

func (a *app) batch(ctx context.Context, c config.Config, path string) error {
	log, err := a.logger(c)
	if err != nil {
		return err
	}
	if err := checkOutput(c); err != nil {
		return err
	}
	rows, err := batch.Load(path)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrConfig, err)
	}

	// Rows whose options cannot be built fail up front; the rest go to the
	// pool. failedAt keeps their errors in input order with the computed ones.
	var (
		jobs     []batch.Job
		failedAt = map[int]error{}
		jobRow   []int
	)
	for i, row := range rows {
		rc := c
		rc.Sequence, rc.Complementary = row.Sequence, row.Complementary
		o, err := rc.Options()
		if err != nil {
			failedAt[i] = err
			continue
		}
		jobs = append(jobs, batch.Job{ID: row.ID, Options: o})
		jobRow = append(jobRow, i)
	}

	m := metrics.New()
	out, done := writers.Start(a.stdout, c.Output, writerOptions(c), 0)
	failed := 0
	report := func(id string, err error) {
		failed++
		_, _ = fmt.Fprintf(a.stderr, "ERROR: %s: %v\n", id, err)
	}
	next := 0
	flushFailed := func(upTo int) {
		for ; next < upTo; next++ {
			if err, ok := failedAt[next]; ok {
				report(rows[next].ID, err)
			}
		}
	}

	engine := melting.NewEngine(c.DataDir)
	runErr := batch.ForEach(ctx, batch.Config{Threads: c.Threads, Logger: traceLogger(log)}, jobs, engine,
		func(o batch.Outcome) error {
			row := jobRow[o.Index]
			flushFailed(row)
			next = row + 1
			m.Observe(jobs[o.Index].Options.Mode, o.Report, o.Err, o.Elapsed)
			if o.Err != nil {
				report(o.ID, o.Err)
				return nil
			}
			v := writers.ToAPIResult(o.ID, o.Report, c.Trace)
			if c.Output != "text" {
				cmdutil.Warnings(a.stderr, c.Quiet, o.ID, v.Warnings)
			}
			out <- v
			return nil
		})
	flushFailed(len(rows))
	close(out)
	werr := <-done

	if runErr != nil {
		return runErr
	}
	if werr != nil {
		return &outputError{werr}
	}
	if err := a.writeMetrics(c, m, log); err != nil {
		return err
	}
	log.Info("batch done", "rows", len(rows), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errRowsFailed, failed, len(rows))
	}
	return nil
}
