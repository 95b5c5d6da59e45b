// Package metadata assembles the per-file metadata record from the codec
// facade, the stream builders and the scan classifier.
package metadata

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	coreerrors "github.com/five82/mediameta/internal/errors"
	"github.com/five82/mediameta/internal/logging"
	"github.com/five82/mediameta/internal/media"
	"github.com/five82/mediameta/internal/names"
	"github.com/five82/mediameta/internal/scan"
	"github.com/five82/mediameta/internal/stream"
	"github.com/five82/mediameta/internal/tags"
	"github.com/five82/mediameta/internal/util"
)

// Options records which optional computations were requested.
type Options struct {
	IncludeChecksum bool `json:"include_checksum" yaml:"include_checksum"`
	IncludeTags     bool `json:"include_tags" yaml:"include_tags"`
	IncludeAllTags  bool `json:"include_all_tags" yaml:"include_all_tags"`
	DecodeFrames    bool `json:"decode_frames" yaml:"decode_frames"`
}

// StreamTags is the tag list of one stream.
type StreamTags struct {
	Index int        `json:"index" yaml:"index"`
	Tags  media.Tags `json:"tags" yaml:"tags"`
}

// ProgressFunc returns a writer that observes the bytes read while hashing a
// file of the given size. The writer is closed when hashing ends.
type ProgressFunc func(path string, size int64) io.WriteCloser

// MediaFile is the metadata record of one file. Fields documented as
// optional are zero when unavailable.
type MediaFile struct {
	Options Options `json:"options" yaml:"options"`

	Path           string `json:"path" yaml:"path"`
	FileName       string `json:"file_name" yaml:"file_name"`
	FileSize       uint64 `json:"file_size" yaml:"file_size"`
	FileSizeBase10 string `json:"file_size_base10" yaml:"file_size_base10"`
	FileSizeBase2  string `json:"file_size_base2" yaml:"file_size_base2"`
	// Hash is the SHA-256 hex digest, empty until the checksum is included.
	Hash string `json:"hash,omitempty" yaml:"hash,omitempty"`

	Title           string `json:"title,omitempty" yaml:"title,omitempty"`
	ContainerFormat string `json:"container_format" yaml:"container_format"`

	HasDuration     bool    `json:"-" yaml:"-"`
	DurationSeconds float64 `json:"-" yaml:"-"`
	Duration        string  `json:"duration,omitempty" yaml:"duration,omitempty"`

	// Best video stream projection; HasVideo is false when there is none.
	HasVideo           bool           `json:"-" yaml:"-"`
	Width              int            `json:"width,omitempty" yaml:"width,omitempty"`
	Height             int            `json:"height,omitempty" yaml:"height,omitempty"`
	PixelDimensions    string         `json:"pixel_dimensions,omitempty" yaml:"pixel_dimensions,omitempty"`
	SAR                media.Rational `json:"-" yaml:"-"`
	SampleAspectRatio  string         `json:"sample_aspect_ratio,omitempty" yaml:"sample_aspect_ratio,omitempty"`
	DAR                media.Rational `json:"-" yaml:"-"`
	DisplayAspectRatio string         `json:"display_aspect_ratio,omitempty" yaml:"display_aspect_ratio,omitempty"`
	FrameRateRatio     media.Rational `json:"-" yaml:"-"`
	FrameRate          string         `json:"frame_rate,omitempty" yaml:"frame_rate,omitempty"`

	// Scan is zero when the file has no video stream.
	Scan     scan.Type `json:"-" yaml:"-"`
	ScanType string    `json:"scan_type,omitempty" yaml:"scan_type,omitempty"`

	BitRateBPS       int64  `json:"-" yaml:"-"`
	BitRateEstimated bool   `json:"-" yaml:"-"`
	BitRate          string `json:"bit_rate,omitempty" yaml:"bit_rate,omitempty"`

	Streams []stream.Metadata `json:"-" yaml:"-"`

	Tags                media.Tags   `json:"tags" yaml:"tags"`
	FilteredTags        media.Tags   `json:"filtered_tags" yaml:"filtered_tags"`
	StreamsTags         []StreamTags `json:"streams_tags" yaml:"streams_tags"`
	StreamsFilteredTags []StreamTags `json:"streams_filtered_tags" yaml:"streams_filtered_tags"`

	builder *Builder
}

// Builder constructs MediaFile records through a media.Opener.
type Builder struct {
	opener   media.Opener
	progress ProgressFunc
}

// NewBuilder returns a Builder using opener.
func NewBuilder(opener media.Opener) *Builder {
	return &Builder{opener: opener}
}

// WithProgress sets the checksum progress hook.
func (b *Builder) WithProgress(fn ProgressFunc) *Builder {
	b.progress = fn
	return b
}

// Build is shorthand for NewBuilder(opener).Build(ctx, path, opts).
func Build(ctx context.Context, opener media.Opener, path string, opts Options) (*MediaFile, error) {
	return NewBuilder(opener).Build(ctx, path, opts)
}

// CheckPath verifies that path names an existing regular file.
func CheckPath(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, coreerrors.NewNotFoundError(path)
		}
		return nil, coreerrors.NewIOError("cannot stat "+path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, coreerrors.NewNotAFileError(path)
	}
	return info, nil
}

// Build inspects path and returns its metadata. Any stream failure aborts the
// whole file; there is no partial record.
func (b *Builder) Build(ctx context.Context, path string, opts Options) (*MediaFile, error) {
	info, err := CheckPath(path)
	if err != nil {
		return nil, err
	}

	c, err := b.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()

	m := &MediaFile{
		Path:     path,
		FileName: util.GetFilename(path),
		FileSize: uint64(info.Size()),
		builder:  b,
	}
	m.FileSizeBase10 = util.HumanSize(m.FileSize, util.Base10)
	m.FileSizeBase2 = util.HumanSize(m.FileSize, util.Base2)
	m.ContainerFormat = names.ContainerName(c.FormatName(), c.FormatLongName(), util.GetExtension(path))

	if d, ok := c.Duration(); ok && d >= 0 {
		m.HasDuration = true
		m.DurationSeconds = float64(d) / media.TimeBase
		m.Duration = util.FormatSeconds(m.DurationSeconds)
	}

	for _, s := range c.Streams() {
		sm, err := stream.Build(s)
		if err != nil {
			return nil, err
		}
		m.Streams = append(m.Streams, sm)
		m.StreamsTags = append(m.StreamsTags, StreamTags{Index: s.Index(), Tags: tags.Extract(s.Tags())})
	}
	for _, st := range m.StreamsTags {
		m.StreamsFilteredTags = append(m.StreamsFilteredTags, StreamTags{Index: st.Index, Tags: tags.Filter(st.Tags)})
	}

	m.setBitRate(c.BitRate())

	if best, ok := c.BestStream(media.Video); ok {
		if sm, ok := stream.Find(m.Streams, best.Index()); ok {
			m.project(sm)
		}
	}

	if err := m.classify(ctx, c, opts.DecodeFrames); err != nil {
		return nil, err
	}

	m.Tags = tags.Extract(c.Tags())
	if title, ok := m.Tags.Lookup("title", "TITLE"); ok {
		m.Title = title
	}
	m.FilteredTags = tags.Filter(m.Tags)

	m.IncludeTags(opts.IncludeTags)
	if opts.IncludeAllTags {
		m.IncludeAllTags(true)
	}
	if err := m.IncludeChecksum(opts.IncludeChecksum); err != nil {
		return nil, err
	}

	logging.Debug("Built metadata", "path", path, "streams", len(m.Streams), "format", m.ContainerFormat)
	return m, nil
}

func (b *Builder) open(ctx context.Context, path string) (media.Container, error) {
	c, err := b.opener.Open(ctx, path)
	if err == nil {
		return c, nil
	}
	var coreErr *coreerrors.CoreError
	if errors.As(err, &coreErr) {
		return nil, err
	}
	return nil, coreerrors.NewUnrecognizedContainerError(path, err)
}

// setBitRate prefers the container's own bit rate and otherwise estimates it
// from the file size and duration.
func (m *MediaFile) setBitRate(containerBPS int64) {
	switch {
	case containerBPS > 0:
		m.BitRateBPS = containerBPS
		m.BitRate = util.FormatBitRate(float64(containerBPS))
	case m.HasDuration && m.DurationSeconds > 0:
		bps := float64(m.FileSize) * 8 / m.DurationSeconds
		m.BitRateBPS = int64(bps)
		m.BitRateEstimated = true
		m.BitRate = util.FormatBitRate(bps)
		logging.Debug("Estimated bit rate from file size", "path", m.Path, "bit_rate", m.BitRate)
	}
}

// project promotes the best video stream's geometry to the top level.
func (m *MediaFile) project(sm stream.Metadata) {
	switch v := sm.(type) {
	case *stream.Video:
		m.HasVideo = true
		m.Width = v.Width
		m.Height = v.Height
		m.PixelDimensions = v.PixelDimensions
		m.SAR = v.SAR
		m.SampleAspectRatio = v.SampleAspectRatio
		m.DAR = v.DAR
		m.DisplayAspectRatio = v.DisplayAspectRatio
		m.FrameRateRatio = v.FrameRateRatio
		m.FrameRate = v.FrameRate
	case *stream.Audio, *stream.Subtitle, *stream.Data, *stream.Attachment, *stream.Unknown:
		logging.Warn("Best video stream is not a video stream", "path", m.Path, "stream", stream.IndexOf(sm))
	default:
		panic("metadata: unexpected stream metadata type")
	}
}

func (m *MediaFile) classify(ctx context.Context, c media.Container, decodeFrames bool) error {
	t, ok, err := scan.Classify(ctx, c, decodeFrames)
	if err != nil {
		return err
	}
	m.Options.DecodeFrames = decodeFrames
	if !ok {
		m.Scan = 0
		m.ScanType = ""
		return nil
	}
	m.Scan = t
	m.ScanType = t.String()
	return nil
}

// IncludeChecksum turns the checksum on or off. Turning it on hashes the file
// unless a digest is already held; turning it off drops the digest.
func (m *MediaFile) IncludeChecksum(on bool) error {
	if !on {
		m.Options.IncludeChecksum = false
		m.Hash = ""
		return nil
	}
	if m.Hash == "" {
		hash, err := m.checksum()
		if err != nil {
			return coreerrors.NewIOError("cannot compute checksum of "+m.Path, err)
		}
		m.Hash = hash
	}
	m.Options.IncludeChecksum = true
	return nil
}

func (m *MediaFile) checksum() (string, error) {
	if m.builder == nil || m.builder.progress == nil {
		return util.SHA256File(m.Path, nil)
	}
	w := m.builder.progress(m.Path, int64(m.FileSize))
	defer func() { _ = w.Close() }()
	return util.SHA256File(m.Path, w)
}

// IncludeTags sets whether filtered tags are shown.
func (m *MediaFile) IncludeTags(on bool) {
	m.Options.IncludeTags = on
}

// IncludeAllTags sets whether unfiltered tags are shown. Turning it on also
// turns on IncludeTags; turning it off leaves IncludeTags alone.
func (m *MediaFile) IncludeAllTags(on bool) {
	if on {
		m.Options.IncludeTags = true
	}
	m.Options.IncludeAllTags = on
}

// DecodeFrames reopens the file and reruns the scan classifier with frame
// decoding on or off. Only the scan type and the option flag change.
func (m *MediaFile) DecodeFrames(ctx context.Context, on bool) error {
	if m.builder == nil {
		return coreerrors.NewIOError("cannot reopen "+m.Path, errors.New("record has no opener"))
	}
	c, err := m.builder.open(ctx, m.Path)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()
	return m.classify(ctx, c, on)
}

// VisibleTags returns the container and per-stream tags allowed by the
// current options: unfiltered with IncludeAllTags, filtered with
// IncludeTags, none otherwise.
func (m *MediaFile) VisibleTags() (media.Tags, []StreamTags) {
	switch {
	case m.Options.IncludeAllTags:
		return m.Tags, m.StreamsTags
	case m.Options.IncludeTags:
		return m.FilteredTags, m.StreamsFilteredTags
	default:
		return nil, nil
	}
}

// VisibleHash returns the digest when the checksum is included.
func (m *MediaFile) VisibleHash() string {
	if !m.Options.IncludeChecksum {
		return ""
	}
	return m.Hash
}
