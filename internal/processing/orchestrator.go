// Package processing runs inspection over a batch of files.
package processing

import (
	"context"
	"fmt"
	"time"

	coreerrors "github.com/five82/mediameta/internal/errors"
	"github.com/five82/mediameta/internal/logging"
	"github.com/five82/mediameta/internal/metadata"
	"github.com/five82/mediameta/internal/reporter"
	"github.com/five82/mediameta/internal/worker"
)

// Options controls a batch run.
type Options struct {
	// Inspect selects the optional computations for every file.
	Inspect metadata.Options
	// Jobs is the number of files inspected at once; values below 1 mean 1.
	Jobs int
}

// Result is the outcome of one file. Exactly one of File and Err is set.
type Result struct {
	Path     string
	File     *metadata.MediaFile
	Err      error
	Duration time.Duration

	skipped bool
}

// Failed returns the number of results carrying an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// InspectFiles inspects every path and reports each outcome in input order.
// A failing file never stops the batch. The returned error is non-nil only
// when ctx was cancelled; files not started by then carry a cancelled error.
func InspectFiles(
	ctx context.Context,
	builder *metadata.Builder,
	paths []string,
	opts Options,
	rep reporter.Reporter,
) ([]Result, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	start := time.Now()
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	if jobs > len(paths) && len(paths) > 0 {
		jobs = len(paths)
	}

	rep.BatchStarted(reporter.BatchStartInfo{
		TotalFiles: len(paths),
		FileList:   paths,
	})
	logging.Debug("Starting batch", "files", len(paths), "jobs", jobs)

	results := make([]Result, len(paths))
	done := make(chan int, len(paths))
	go dispatch(ctx, builder, paths, opts.Inspect, jobs, results, done)

	// Emit in input order as soon as each prefix of the batch is complete.
	ready := make([]bool, len(paths))
	next := 0
	for i := range done {
		ready[i] = true
		for next < len(paths) && ready[next] {
			emit(results[next], next, rep)
			next++
		}
	}

	if skipped := notStarted(results); skipped > 0 {
		rep.Warning(fmt.Sprintf("Inspection cancelled: %d file(s) not inspected", skipped))
	}

	summary := reporter.BatchSummary{
		TotalFiles:    len(paths),
		TotalDuration: time.Since(start),
	}
	for _, r := range results {
		if r.Err != nil {
			summary.FailedFiles = append(summary.FailedFiles, r.Path)
		} else {
			summary.SuccessfulCount++
		}
	}
	rep.BatchComplete(summary)

	if ctx.Err() != nil {
		return results, coreerrors.NewCancelledError()
	}
	return results, nil
}

// dispatch starts one goroutine per file, at most jobs at a time, and sends
// each finished index on done. It closes done when every file is accounted
// for. Reporter calls stay on the caller's goroutine.
func dispatch(
	ctx context.Context,
	builder *metadata.Builder,
	paths []string,
	opts metadata.Options,
	jobs int,
	results []Result,
	done chan<- int,
) {
	sem := worker.NewSemaphore(jobs)
	finished := make(chan struct{}, len(paths))

	started := 0
	for i, path := range paths {
		if err := sem.Acquire(ctx); err != nil {
			break
		}
		started++
		go func(i int, path string) {
			defer func() { finished <- struct{}{} }()
			defer sem.Release()
			results[i] = inspect(ctx, builder, path, opts)
			done <- i
		}(i, path)
	}

	if started < len(paths) {
		logging.Debug("Batch cancelled", "started", started, "total", len(paths))
		for i := started; i < len(paths); i++ {
			results[i] = Result{Path: paths[i], Err: coreerrors.NewCancelledError(), skipped: true}
			done <- i
		}
	}

	for i := 0; i < started; i++ {
		<-finished
	}
	close(done)
}

func inspect(ctx context.Context, builder *metadata.Builder, path string, opts metadata.Options) Result {
	start := time.Now()
	m, err := builder.Build(ctx, path, opts)
	elapsed := time.Since(start)

	if err != nil {
		if coreerrors.IsInvalidPath(err) {
			logging.Debug("Skipping invalid path", "path", path, "error", err)
		} else {
			logging.Info("Inspection failed", "path", path, "error", err)
		}
		return Result{Path: path, Err: err, Duration: elapsed}
	}
	logging.Debug("Inspected file", "path", path, "elapsed", elapsed, "streams", len(m.Streams))
	return Result{Path: path, File: m, Duration: elapsed}
}

func emit(r Result, position int, rep reporter.Reporter) {
	if r.Err != nil {
		if coreerrors.IsCancelled(r.Err) {
			return
		}
		rep.Error(reporter.ReporterError{Path: r.Path, Message: r.Err.Error()})
		return
	}
	rep.Verbose(fmt.Sprintf("Inspected %s in %s", r.Path, r.Duration.Round(time.Millisecond)))
	rep.FileReport(reporter.FileReport{Position: position, File: r.File})
}

// notStarted counts the files that were never handed to a worker.
func notStarted(results []Result) int {
	n := 0
	for _, r := range results {
		if r.skipped {
			n++
		}
	}
	return n
}
