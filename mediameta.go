// Package mediameta provides a Go library for inspecting media files.
//
// Mediameta probes a file with ffprobe and reports a normalized summary: the
// container format, duration, bit rate, one line per stream, the scan type of
// the main video stream, container and stream tags, and optionally a SHA-256
// digest of the file.
//
// Basic usage:
//
//	inspector, err := mediameta.New(
//	    mediameta.WithChecksum(),
//	    mediameta.WithTags(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	file, err := inspector.Inspect(ctx, "input.mkv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%s: %s, %s\n", file.FileName, file.ContainerFormat, file.Duration)
package mediameta

import (
	"context"
	"fmt"

	"github.com/five82/mediameta/internal/config"
	"github.com/five82/mediameta/internal/discovery"
	"github.com/five82/mediameta/internal/ffprobe"
	"github.com/five82/mediameta/internal/media"
	"github.com/five82/mediameta/internal/metadata"
	"github.com/five82/mediameta/internal/processing"
	"github.com/five82/mediameta/internal/reporter"
)

// Re-exported result types.
type (
	MediaFile = metadata.MediaFile
	Result    = processing.Result
	Reporter  = reporter.Reporter
)

// Inspector is the main entry point for media inspection.
type Inspector struct {
	config   *config.Config
	opener   media.Opener
	reporter reporter.Reporter
}

// BatchResult contains the result of a batch inspection.
type BatchResult struct {
	Results         []Result
	SuccessfulCount int
	TotalFiles      int
}

// Option configures the inspector.
type Option func(*Inspector)

// New creates a new Inspector with the given options.
func New(opts ...Option) (*Inspector, error) {
	i := &Inspector{config: config.NewConfig()}

	for _, opt := range opts {
		opt(i)
	}

	i.config.Normalize()
	if err := i.config.Validate(); err != nil {
		return nil, err
	}

	if i.opener == nil {
		i.opener = ffprobe.NewOpener(i.config.FFprobePath)
	}
	if i.reporter == nil {
		i.reporter = reporter.NullReporter{}
	}

	return i, nil
}

// WithChecksum computes the SHA-256 digest of every file.
func WithChecksum() Option {
	return func(i *Inspector) {
		i.config.IncludeChecksum = true
	}
}

// WithTags includes container and stream tags, minus housekeeping tags.
func WithTags() Option {
	return func(i *Inspector) {
		i.config.IncludeTags = true
	}
}

// WithAllTags includes every container and stream tag. It implies WithTags.
func WithAllTags() Option {
	return func(i *Inspector) {
		i.config.IncludeAllTags = true
	}
}

// WithDecodeFrames decodes video frames when the stream header does not
// state its field order.
func WithDecodeFrames() Option {
	return func(i *Inspector) {
		i.config.DecodeFrames = true
	}
}

// WithFFprobe sets the ffprobe executable.
func WithFFprobe(path string) Option {
	return func(i *Inspector) {
		i.config.FFprobePath = path
	}
}

// WithJobs sets how many files InspectFiles inspects at once.
func WithJobs(n int) Option {
	return func(i *Inspector) {
		i.config.Jobs = n
	}
}

// WithReporter receives the events of InspectFiles.
func WithReporter(r Reporter) Option {
	return func(i *Inspector) {
		i.reporter = r
	}
}

// withOpener replaces the ffprobe engine.
func withOpener(o media.Opener) Option {
	return func(i *Inspector) {
		i.opener = o
	}
}

func (i *Inspector) builder() *metadata.Builder {
	return metadata.NewBuilder(i.opener)
}

// Inspect inspects a single file.
func (i *Inspector) Inspect(ctx context.Context, path string) (*MediaFile, error) {
	return i.builder().Build(ctx, path, i.config.InspectOptions())
}

// InspectFiles inspects multiple files. A file that fails is recorded in its
// Result and does not stop the batch.
func (i *Inspector) InspectFiles(ctx context.Context, paths []string) (*BatchResult, error) {
	results, err := processing.InspectFiles(ctx, i.builder(), paths, processing.Options{
		Inspect: i.config.InspectOptions(),
		Jobs:    i.config.Jobs,
	}, i.reporter)

	batch := &BatchResult{
		Results:         results,
		TotalFiles:      len(paths),
		SuccessfulCount: len(results) - processing.Failed(results),
	}
	return batch, err
}

// Inspect inspects path with a one-off Inspector.
func Inspect(ctx context.Context, path string, opts ...Option) (*MediaFile, error) {
	i, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return i.Inspect(ctx, path)
}

// InspectFiles inspects paths with a one-off Inspector.
func InspectFiles(ctx context.Context, paths []string, opts ...Option) (*BatchResult, error) {
	i, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return i.InspectFiles(ctx, paths)
}

// FindMediaFiles finds media files below a directory, sorted by path.
func FindMediaFiles(dir string) ([]string, error) {
	files, _, err := discovery.FindMediaFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	return files, nil
}
