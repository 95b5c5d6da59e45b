package reporter

import (
	"github.com/five82/mediameta/internal/media"
	"github.com/five82/mediameta/internal/metadata"
	"github.com/five82/mediameta/internal/stream"
)

// Document is the rendered view of one file. Checksum and tags are present
// only when the record's options make them visible.
type Document struct {
	Path            string `json:"path" yaml:"path"`
	FileName        string `json:"file_name" yaml:"file_name"`
	Title           string `json:"title,omitempty" yaml:"title,omitempty"`
	FileSize        uint64 `json:"file_size" yaml:"file_size"`
	FileSizeBase10  string `json:"file_size_base10" yaml:"file_size_base10"`
	FileSizeBase2   string `json:"file_size_base2" yaml:"file_size_base2"`
	Hash            string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
	ContainerFormat string `json:"container_format" yaml:"container_format"`

	Duration        string   `json:"duration,omitempty" yaml:"duration,omitempty"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty" yaml:"duration_seconds,omitempty"`

	PixelDimensions    string `json:"pixel_dimensions,omitempty" yaml:"pixel_dimensions,omitempty"`
	SampleAspectRatio  string `json:"sample_aspect_ratio,omitempty" yaml:"sample_aspect_ratio,omitempty"`
	DisplayAspectRatio string `json:"display_aspect_ratio,omitempty" yaml:"display_aspect_ratio,omitempty"`
	ScanType           string `json:"scan_type,omitempty" yaml:"scan_type,omitempty"`
	FrameRate          string `json:"frame_rate,omitempty" yaml:"frame_rate,omitempty"`

	BitRate          string `json:"bit_rate,omitempty" yaml:"bit_rate,omitempty"`
	BitRateBPS       int64  `json:"bit_rate_bps,omitempty" yaml:"bit_rate_bps,omitempty"`
	BitRateEstimated bool   `json:"bit_rate_estimated,omitempty" yaml:"bit_rate_estimated,omitempty"`

	Streams []StreamDocument `json:"streams" yaml:"streams"`

	Tags        media.Tags            `json:"tags,omitempty" yaml:"tags,omitempty"`
	StreamsTags []metadata.StreamTags `json:"streams_tags,omitempty" yaml:"streams_tags,omitempty"`
}

// StreamDocument pairs a stream's one-line summary with its typed fields.
type StreamDocument struct {
	Type    media.Medium    `json:"type" yaml:"type"`
	Summary string          `json:"summary" yaml:"summary"`
	Details stream.Metadata `json:"details" yaml:"details"`
}

// NewDocument builds the rendered view of m.
func NewDocument(m *metadata.MediaFile) Document {
	doc := Document{
		Path:               m.Path,
		FileName:           m.FileName,
		Title:              m.Title,
		FileSize:           m.FileSize,
		FileSizeBase10:     m.FileSizeBase10,
		FileSizeBase2:      m.FileSizeBase2,
		Hash:               m.VisibleHash(),
		ContainerFormat:    m.ContainerFormat,
		Duration:           m.Duration,
		PixelDimensions:    m.PixelDimensions,
		SampleAspectRatio:  m.SampleAspectRatio,
		DisplayAspectRatio: m.DisplayAspectRatio,
		ScanType:           m.ScanType,
		FrameRate:          m.FrameRate,
		BitRate:            m.BitRate,
		BitRateBPS:         m.BitRateBPS,
		BitRateEstimated:   m.BitRateEstimated,
		Streams:            make([]StreamDocument, 0, len(m.Streams)),
	}
	if m.HasDuration {
		secs := m.DurationSeconds
		doc.DurationSeconds = &secs
	}

	for _, sm := range m.Streams {
		doc.Streams = append(doc.Streams, StreamDocument{
			Type:    stream.MediumOf(sm),
			Summary: stream.Describe(sm),
			Details: sm,
		})
	}

	doc.Tags, doc.StreamsTags = m.VisibleTags()
	return doc
}
