// Package mediatest provides an in-memory media.Opener for tests.
package mediatest

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/five82/mediameta/internal/media"
)

// Opener serves containers registered by path.
type Opener struct {
	mu         sync.Mutex
	containers map[string]*Container
	opens      map[string]int
}

// NewOpener returns an empty Opener.
func NewOpener() *Opener {
	return &Opener{
		containers: make(map[string]*Container),
		opens:      make(map[string]int),
	}
}

// Add registers c under path.
func (o *Opener) Add(path string, c *Container) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.containers[path] = c
}

// Opens returns how many times path was opened.
func (o *Opener) Opens(path string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opens[path]
}

// Open implements media.Opener.
func (o *Opener) Open(_ context.Context, path string) (media.Container, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	c, ok := o.containers[path]
	if !ok {
		return nil, fmt.Errorf("mediatest: no container registered for %q", path)
	}
	o.opens[path]++
	c.closed = false
	return c, nil
}

// Container is a fake media.Container. Unset Best falls back to the first
// stream of the requested medium.
type Container struct {
	Name       string
	LongName   string
	DurationUS int64
	HasDur     bool
	Rate       int64
	TagList    media.Tags
	StreamList []*Stream
	Best       map[media.Medium]int

	closed bool
	closes int
}

func (c *Container) FormatName() string     { return c.Name }
func (c *Container) FormatLongName() string { return c.LongName }
func (c *Container) BitRate() int64         { return c.Rate }
func (c *Container) Tags() media.Tags       { return c.TagList }

func (c *Container) Duration() (int64, bool) {
	return c.DurationUS, c.HasDur
}

func (c *Container) Streams() []media.Stream {
	out := make([]media.Stream, len(c.StreamList))
	for i, s := range c.StreamList {
		out[i] = s
	}
	return out
}

func (c *Container) BestStream(m media.Medium) (media.Stream, bool) {
	if idx, ok := c.Best[m]; ok {
		for _, s := range c.StreamList {
			if s.Idx == idx {
				return s, true
			}
		}
	}
	for _, s := range c.StreamList {
		if s.Kind == m {
			return s, true
		}
	}
	return nil, false
}

func (c *Container) Close() error {
	c.closed = true
	c.closes++
	return nil
}

// Closed reports whether the container was closed after its last Open.
func (c *Container) Closed() bool { return c.closed }

// Closes returns the number of Close calls.
func (c *Container) Closes() int { return c.closes }

// Stream is a fake media.Stream.
type Stream struct {
	Idx       int
	Kind      media.Medium
	Params    media.CodecParameters
	FrameRate media.Rational
	TagList   media.Tags
	Video     *VideoDecoder
	Audio     *AudioDecoder
	// DecoderErr is returned from VideoDecoder and AudioDecoder when set.
	DecoderErr error
}

func (s *Stream) Index() int                        { return s.Idx }
func (s *Stream) Medium() media.Medium              { return s.Kind }
func (s *Stream) Parameters() media.CodecParameters { return s.Params }
func (s *Stream) AvgFrameRate() media.Rational      { return s.FrameRate }
func (s *Stream) Tags() media.Tags                  { return s.TagList }

func (s *Stream) VideoDecoder() (media.VideoDecoder, error) {
	if s.DecoderErr != nil {
		return nil, s.DecoderErr
	}
	if s.Video == nil {
		return nil, fmt.Errorf("mediatest: stream #%d has no video decoder", s.Idx)
	}
	return s.Video, nil
}

func (s *Stream) AudioDecoder() (media.AudioDecoder, error) {
	if s.DecoderErr != nil {
		return nil, s.DecoderErr
	}
	if s.Audio == nil {
		return nil, fmt.Errorf("mediatest: stream #%d has no audio decoder", s.Idx)
	}
	return s.Audio, nil
}

// VideoDecoder is a fake media.VideoDecoder. FrameList is replayed by Frames.
type VideoDecoder struct {
	W, H      int
	SAR       media.Rational
	Order     media.FieldOrder
	PixFmt    string
	Range     string
	Space     string
	Primaries string
	Transfer  string
	Rate      int64
	FrameList []FrameResult
	FramesErr error

	mu       sync.Mutex
	attempts int
}

// FrameResult is one scripted decode attempt.
type FrameResult struct {
	Interlaced bool
	// Undecodable makes the attempt return media.ErrFrameUndecodable.
	Undecodable bool
}

func (d *VideoDecoder) Width() int                   { return d.W }
func (d *VideoDecoder) Height() int                  { return d.H }
func (d *VideoDecoder) AspectRatio() media.Rational  { return d.SAR }
func (d *VideoDecoder) FieldOrder() media.FieldOrder { return d.Order }
func (d *VideoDecoder) PixelFormat() string          { return d.PixFmt }
func (d *VideoDecoder) ColorRange() string           { return d.Range }
func (d *VideoDecoder) ColorSpace() string           { return d.Space }
func (d *VideoDecoder) ColorPrimaries() string       { return d.Primaries }
func (d *VideoDecoder) ColorTransfer() string        { return d.Transfer }
func (d *VideoDecoder) BitRate() int64               { return d.Rate }

// Attempts returns the total number of Next calls across all readers.
func (d *VideoDecoder) Attempts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attempts
}

func (d *VideoDecoder) Frames(_ context.Context) (media.FrameReader, error) {
	if d.FramesErr != nil {
		return nil, d.FramesErr
	}
	return &frameReader{dec: d}, nil
}

type frameReader struct {
	dec    *VideoDecoder
	pos    int
	closed bool
}

func (r *frameReader) Next() (media.Frame, error) {
	if r.closed || r.pos >= len(r.dec.FrameList) {
		return media.Frame{}, io.EOF
	}
	f := r.dec.FrameList[r.pos]
	r.pos++
	r.dec.mu.Lock()
	r.dec.attempts++
	r.dec.mu.Unlock()
	if f.Undecodable {
		return media.Frame{}, media.ErrFrameUndecodable
	}
	return media.Frame{Interlaced: f.Interlaced}, nil
}

func (r *frameReader) Close() error {
	r.closed = true
	return nil
}

// AudioDecoder is a fake media.AudioDecoder.
type AudioDecoder struct {
	Rate       int
	Chans      int
	Layout     uint64
	LayoutName string
	Bits       int64
}

func (d *AudioDecoder) SampleRate() int               { return d.Rate }
func (d *AudioDecoder) Channels() int                 { return d.Chans }
func (d *AudioDecoder) ChannelLayout() uint64         { return d.Layout }
func (d *AudioDecoder) DescribeChannelLayout() string { return d.LayoutName }
func (d *AudioDecoder) BitRate() int64                { return d.Bits }

// Frames returns n scripted frames with the same interlace flag.
func Frames(n int, interlaced bool) []FrameResult {
	out := make([]FrameResult, n)
	for i := range out {
		out[i].Interlaced = interlaced
	}
	return out
}
