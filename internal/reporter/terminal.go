package reporter

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"github.com/five82/mediameta/internal/util"
)

// TerminalReporter writes errors, warnings and the batch summary to stderr.
// Reports themselves go through the format reporter.
type TerminalReporter struct {
	writer  io.Writer
	verbose bool
	mu      sync.Mutex
	green   *color.Color
	yellow  *color.Color
	red     *color.Color
	faint   *color.Color
	bold    *color.Color
}

// NewTerminalReporter creates a terminal reporter writing to stderr.
func NewTerminalReporter(verbose bool) *TerminalReporter {
	return NewTerminalReporterWithWriter(os.Stderr, verbose)
}

// NewTerminalReporterWithWriter creates a terminal reporter with a custom writer.
func NewTerminalReporterWithWriter(w io.Writer, verbose bool) *TerminalReporter {
	return &TerminalReporter{
		writer:  w,
		verbose: verbose,
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		faint:   color.New(color.Faint),
		bold:    color.New(color.Bold),
	}
}

func (r *TerminalReporter) BatchStarted(info BatchStartInfo) {
	if !r.verbose || info.TotalFiles < 2 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.faint.Fprintf(r.writer, "Inspecting %d files\n", info.TotalFiles)
}

func (r *TerminalReporter) FileReport(FileReport) {}

func (r *TerminalReporter) Error(err ReporterError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.red.Fprint(r.writer, "Error:")
	_, _ = fmt.Fprintf(r.writer, " %s\n", err.Message)
}

func (r *TerminalReporter) Warning(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.yellow.Fprintf(r.writer, "Warning: %s\n", message)
}

func (r *TerminalReporter) Verbose(message string) {
	if !r.verbose {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.faint.Fprintln(r.writer, message)
}

// BatchComplete prints a summary when more than one file was inspected.
func (r *TerminalReporter) BatchComplete(summary BatchSummary) {
	if summary.TotalFiles < 2 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	status := r.green
	if summary.SuccessfulCount < summary.TotalFiles {
		status = r.red
	}
	_, _ = status.Fprintf(r.writer, "%d of %d files inspected", summary.SuccessfulCount, summary.TotalFiles)
	_, _ = fmt.Fprintf(r.writer, " in %s\n", util.FormatSeconds(summary.TotalDuration.Seconds()))

	for _, path := range summary.FailedFiles {
		_, _ = fmt.Fprintf(r.writer, "  %s %s\n", r.red.Sprint("✗"), r.bold.Sprint(path))
	}
}
