// Package ffprobe implements the media engine on top of the ffprobe binary.
//
// Container and stream facts come from a single JSON probe of the file.
// Frame sampling for the deep scan runs a second ffprobe process that streams
// per-frame interlace flags.
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	coreerrors "github.com/five82/mediameta/internal/errors"
	"github.com/five82/mediameta/internal/logging"
	"github.com/five82/mediameta/internal/media"
)

// DefaultBinary is the ffprobe executable looked up on PATH.
const DefaultBinary = "ffprobe"

// Opener opens files by probing them with ffprobe.
type Opener struct {
	binary string
}

// NewOpener returns an Opener that runs binary. An empty binary means
// DefaultBinary.
func NewOpener(binary string) *Opener {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Opener{binary: binary}
}

// Binary returns the ffprobe executable this opener runs.
func (o *Opener) Binary() string {
	return o.binary
}

// Open probes path and returns its container.
func (o *Opener) Open(ctx context.Context, path string) (media.Container, error) {
	data, err := o.run(ctx, path)
	if err != nil {
		return nil, err
	}

	probe, err := parseOutput(data)
	if err != nil {
		return nil, err
	}
	if probe.Format.FormatName == "" {
		return nil, coreerrors.NewUnrecognizedContainerError(path, errors.New("no format reported"))
	}

	return newContainer(o, path, probe), nil
}

// run executes the JSON probe and returns stdout.
func (o *Opener) run(ctx context.Context, path string) ([]byte, error) {
	args := []string{
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}
	logging.Debug("Running ffprobe", "binary", o.binary, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, o.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, coreerrors.NewCancelledError()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// ffprobe exits non-zero when no demuxer accepts the file.
			return nil, coreerrors.NewUnrecognizedContainerError(path,
				coreerrors.WrapExecError(o.binary, err, strings.TrimSpace(stderr.String())))
		}
		return nil, coreerrors.NewCommandStartError(o.binary, err)
	}

	return stdout.Bytes(), nil
}

// ffprobeOutput represents the JSON output from ffprobe.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName     string  `json:"format_name"`
	FormatLongName string  `json:"format_long_name"`
	Duration       string  `json:"duration"`
	BitRate        string  `json:"bit_rate"`
	Tags           tagList `json:"tags"`
}

type ffprobeStream struct {
	Index             int               `json:"index"`
	CodecType         string            `json:"codec_type"`
	CodecName         string            `json:"codec_name"`
	CodecLongName     string            `json:"codec_long_name"`
	Profile           string            `json:"profile"`
	Level             *int              `json:"level"`
	Width             int               `json:"width"`
	Height            int               `json:"height"`
	SampleAspectRatio string            `json:"sample_aspect_ratio"`
	PixFmt            string            `json:"pix_fmt"`
	ColorRange        string            `json:"color_range"`
	ColorSpace        string            `json:"color_space"`
	ColorPrimaries    string            `json:"color_primaries"`
	ColorTransfer     string            `json:"color_transfer"`
	FieldOrder        string            `json:"field_order"`
	SampleRate        string            `json:"sample_rate"`
	Channels          int               `json:"channels"`
	ChannelLayout     string            `json:"channel_layout"`
	AvgFrameRate      string            `json:"avg_frame_rate"`
	BitRate           string            `json:"bit_rate"`
	Disposition       StreamDisposition `json:"disposition"`
	Tags              tagList           `json:"tags"`
}

// StreamDisposition contains stream disposition flags.
type StreamDisposition struct {
	Default         int `json:"default"`
	Forced          int `json:"forced"`
	HearingImpaired int `json:"hearing_impaired"`
	VisualImpaired  int `json:"visual_impaired"`
	AttachedPic     int `json:"attached_pic"`
}

// parseOutput decodes the JSON probe.
func parseOutput(data []byte) (*ffprobeOutput, error) {
	var result ffprobeOutput
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, coreerrors.NewJSONParseError("failed to parse ffprobe output", err)
	}
	return &result, nil
}

// tagList decodes a JSON object into tags, keeping the key order of the
// document.
type tagList media.Tags

func (t *tagList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*t = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("tags: expected object, got %v", tok)
	}

	var out tagList
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("tags: unexpected key %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		out = append(out, media.Tag{Key: key, Value: tagValue(value)})
	}
	*t = out
	return nil
}

func tagValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// parseDuration converts ffprobe's seconds string to media.TimeBase units.
func parseDuration(s string) (int64, bool) {
	if s == "" || s == "N/A" {
		return 0, false
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, false
	}
	return int64(math.Round(secs * media.TimeBase)), true
}

// parseInt parses ffprobe's numeric strings, returning 0 for N/A.
func parseInt(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseRatio parses "num/den" or "num:den", returning the zero Rational when
// the value is missing.
func parseRatio(s string) media.Rational {
	r, err := media.ParseRational(s)
	if err != nil {
		return media.Rational{}
	}
	return r
}

// colorName drops the placeholder names ffprobe prints for unset color axes.
func colorName(s string) string {
	switch s {
	case "unknown", "unspecified", "reserved":
		return ""
	default:
		return s
	}
}

// container implements media.Container over a parsed probe.
type container struct {
	opener  *Opener
	path    string
	format  ffprobeFormat
	streams []*stream
}

func newContainer(o *Opener, path string, probe *ffprobeOutput) *container {
	c := &container{opener: o, path: path, format: probe.Format}
	for i := range probe.Streams {
		c.streams = append(c.streams, &stream{c: c, raw: probe.Streams[i]})
	}
	return c
}

func (c *container) FormatName() string     { return c.format.FormatName }
func (c *container) FormatLongName() string { return c.format.FormatLongName }
func (c *container) BitRate() int64         { return parseInt(c.format.BitRate) }
func (c *container) Tags() media.Tags       { return media.Tags(c.format.Tags) }
func (c *container) Close() error           { return nil }

func (c *container) Duration() (int64, bool) {
	return parseDuration(c.format.Duration)
}

func (c *container) Streams() []media.Stream {
	out := make([]media.Stream, len(c.streams))
	for i, s := range c.streams {
		out[i] = s
	}
	return out
}

// BestStream ranks the streams of medium m and returns the first. Attached
// pictures rank last, then default streams first, then streams without an
// impaired-audience disposition, then higher bit rate and larger frames. Ties
// go to the lowest index.
func (c *container) BestStream(m media.Medium) (media.Stream, bool) {
	var candidates []*stream
	for _, s := range c.streams {
		if s.Medium() == m {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].rank(), candidates[j].rank()
		for k := range a {
			if a[k] != b[k] {
				return a[k] > b[k]
			}
		}
		return candidates[i].raw.Index < candidates[j].raw.Index
	})
	return candidates[0], true
}

// stream implements media.Stream over one probed stream.
type stream struct {
	c   *container
	raw ffprobeStream
}

func (s *stream) Index() int                   { return s.raw.Index }
func (s *stream) Medium() media.Medium         { return media.ParseMedium(s.raw.CodecType) }
func (s *stream) AvgFrameRate() media.Rational { return parseRatio(s.raw.AvgFrameRate) }
func (s *stream) Tags() media.Tags             { return media.Tags(s.raw.Tags) }

func (s *stream) Parameters() media.CodecParameters {
	level := -99
	if s.raw.Level != nil {
		level = *s.raw.Level
	}
	return media.CodecParameters{
		ID:       s.raw.CodecName,
		LongName: s.raw.CodecLongName,
		Profile:  s.raw.Profile,
		Level:    level,
	}
}

func (s *stream) rank() [5]int64 {
	d := s.raw.Disposition
	var notAttached, isDefault, notImpaired int64
	if d.AttachedPic == 0 {
		notAttached = 1
	}
	if d.Default != 0 {
		isDefault = 1
	}
	if d.HearingImpaired == 0 && d.VisualImpaired == 0 {
		notImpaired = 1
	}
	return [5]int64{
		notAttached,
		isDefault,
		notImpaired,
		parseInt(s.raw.BitRate),
		int64(s.raw.Width) * int64(s.raw.Height),
	}
}

func (s *stream) VideoDecoder() (media.VideoDecoder, error) {
	if s.Medium() != media.Video {
		return nil, coreerrors.NewCodecInitError(s.raw.Index, "not a video stream")
	}
	if s.raw.CodecName == "" {
		return nil, coreerrors.NewCodecInitError(s.raw.Index, "no decoder for codec")
	}
	return &videoDecoder{s: s}, nil
}

func (s *stream) AudioDecoder() (media.AudioDecoder, error) {
	if s.Medium() != media.Audio {
		return nil, coreerrors.NewCodecInitError(s.raw.Index, "not an audio stream")
	}
	if s.raw.CodecName == "" {
		return nil, coreerrors.NewCodecInitError(s.raw.Index, "no decoder for codec")
	}
	return &audioDecoder{s: s}, nil
}

type videoDecoder struct {
	s *stream
}

func (d *videoDecoder) Width() int                   { return d.s.raw.Width }
func (d *videoDecoder) Height() int                  { return d.s.raw.Height }
func (d *videoDecoder) AspectRatio() media.Rational  { return parseRatio(d.s.raw.SampleAspectRatio) }
func (d *videoDecoder) FieldOrder() media.FieldOrder { return media.ParseFieldOrder(d.s.raw.FieldOrder) }
func (d *videoDecoder) PixelFormat() string          { return colorName(d.s.raw.PixFmt) }
func (d *videoDecoder) ColorRange() string           { return colorName(d.s.raw.ColorRange) }
func (d *videoDecoder) ColorSpace() string           { return colorName(d.s.raw.ColorSpace) }
func (d *videoDecoder) ColorPrimaries() string       { return colorName(d.s.raw.ColorPrimaries) }
func (d *videoDecoder) ColorTransfer() string        { return colorName(d.s.raw.ColorTransfer) }
func (d *videoDecoder) BitRate() int64               { return parseInt(d.s.raw.BitRate) }

func (d *videoDecoder) Frames(ctx context.Context) (media.FrameReader, error) {
	r, err := startFrameReader(ctx, d.s.c.opener.binary, d.s.c.path, d.s.raw.Index)
	if err != nil {
		return nil, err
	}
	return r, nil
}

type audioDecoder struct {
	s *stream
}

func (d *audioDecoder) SampleRate() int { return int(parseInt(d.s.raw.SampleRate)) }
func (d *audioDecoder) Channels() int   { return d.s.raw.Channels }
func (d *audioDecoder) BitRate() int64  { return parseInt(d.s.raw.BitRate) }

func (d *audioDecoder) ChannelLayout() uint64 {
	return channelMask(d.s.raw.ChannelLayout)
}

func (d *audioDecoder) DescribeChannelLayout() string {
	return describeChannelLayout(d.s.raw.ChannelLayout, d.s.raw.Channels)
}
