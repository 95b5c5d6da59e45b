// Package media defines the contract between mediameta and the demuxing and
// decoding engine that inspects a container file.
//
// The engine is an external collaborator. The ffprobe package provides the
// production implementation; mediatest provides an in-memory one for tests.
package media

import (
	"context"
	"errors"
)

// TimeBase is the number of Container.Duration units per second.
const TimeBase = 1_000_000

// ErrFrameUndecodable is returned by FrameReader.Next for a packet that was
// consumed but produced no usable frame. It is not terminal.
var ErrFrameUndecodable = errors.New("frame could not be decoded")

// Opener opens a file as a demuxed container.
type Opener interface {
	Open(ctx context.Context, path string) (Container, error)
}

// Container exposes container-level facts and the ordered stream list.
// Callers must Close it.
type Container interface {
	// FormatName is the raw demuxer identifier, e.g. "matroska,webm".
	FormatName() string
	// FormatLongName is the demuxer's own human description.
	FormatLongName() string
	// Duration in TimeBase units; ok is false when unknown.
	Duration() (duration int64, ok bool)
	// BitRate in bits per second; 0 means unknown.
	BitRate() int64
	Tags() Tags
	Streams() []Stream
	// BestStream returns the stream the engine ranks as primary for a medium.
	BestStream(m Medium) (Stream, bool)
	Close() error
}

// CodecParameters are the stream's codec identification fields.
type CodecParameters struct {
	// ID is the short codec name, e.g. "h264".
	ID string
	// LongName is the engine's own description of the codec.
	LongName string
	// Profile is the engine's profile name, empty when not reported.
	Profile string
	// Level is the raw codec level, negative or zero when unknown.
	Level int
}

// Stream is one elementary stream of a container.
type Stream interface {
	// Index is the zero-based position in the container.
	Index() int
	Medium() Medium
	Parameters() CodecParameters
	// AvgFrameRate may have a zero denominator when unknown.
	AvgFrameRate() Rational
	Tags() Tags
	VideoDecoder() (VideoDecoder, error)
	AudioDecoder() (AudioDecoder, error)
}

// VideoDecoder exposes codec-intrinsic properties of a video stream.
type VideoDecoder interface {
	Width() int
	Height() int
	// AspectRatio is the sample aspect ratio; a zero numerator means unspecified.
	AspectRatio() Rational
	FieldOrder() FieldOrder
	// Color and pixel format names are empty when unspecified.
	PixelFormat() string
	ColorRange() string
	ColorSpace() string
	ColorPrimaries() string
	ColorTransfer() string
	BitRate() int64
	// Frames starts decoding the stream from the beginning of the file.
	Frames(ctx context.Context) (FrameReader, error)
}

// AudioDecoder exposes codec-intrinsic properties of an audio stream.
type AudioDecoder interface {
	SampleRate() int
	Channels() int
	// ChannelLayout is the channel bitmask, 0 when unspecified.
	ChannelLayout() uint64
	// DescribeChannelLayout returns the engine's name for the layout.
	DescribeChannelLayout() string
	BitRate() int64
}

// Frame is a decoded video frame sample.
type Frame struct {
	Interlaced bool
}

// FrameReader is a finite, non-restartable sequence of decode attempts.
// Next returns io.EOF once the stream is exhausted.
type FrameReader interface {
	Next() (Frame, error)
	Close() error
}
