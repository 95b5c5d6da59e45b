// Package stream builds typed per-stream metadata from the codec facade.
package stream

import (
	"fmt"
	"strings"

	coreerrors "github.com/five82/mediameta/internal/errors"
	"github.com/five82/mediameta/internal/logging"
	"github.com/five82/mediameta/internal/media"
	"github.com/five82/mediameta/internal/names"
	"github.com/five82/mediameta/internal/util"
)

// Metadata is one of *Video, *Audio, *Subtitle, *Data, *Attachment or
// *Unknown. The set is closed; switches over it panic on anything else.
type Metadata interface {
	streamMetadata()
}

// Video describes a video stream.
type Video struct {
	Index int `json:"index" yaml:"index"`

	Codec     media.CodecParameters `json:"-" yaml:"-"`
	CodecDesc string                `json:"codec_desc" yaml:"codec_desc"`

	PixelFormat    string `json:"pixel_fmt,omitempty" yaml:"pixel_fmt,omitempty"`
	ColorRange     string `json:"color_range,omitempty" yaml:"color_range,omitempty"`
	ColorSpace     string `json:"color_space,omitempty" yaml:"color_space,omitempty"`
	ColorPrimaries string `json:"color_primaries,omitempty" yaml:"color_primaries,omitempty"`
	ColorTransfer  string `json:"color_trc,omitempty" yaml:"color_trc,omitempty"`
	// ColorSpec is empty when no color property is known.
	ColorSpec string `json:"color_spec_str,omitempty" yaml:"color_spec_str,omitempty"`

	Width           int    `json:"width" yaml:"width"`
	Height          int    `json:"height" yaml:"height"`
	PixelDimensions string `json:"pixel_dimensions" yaml:"pixel_dimensions"`

	SAR               media.Rational `json:"-" yaml:"-"`
	SampleAspectRatio string         `json:"sample_aspect_ratio" yaml:"sample_aspect_ratio"`
	// DAR is invalid when the height is zero.
	DAR                media.Rational `json:"-" yaml:"-"`
	DisplayAspectRatio string         `json:"display_aspect_ratio,omitempty" yaml:"display_aspect_ratio,omitempty"`

	// FrameRateRatio is invalid when the frame rate is unavailable.
	FrameRateRatio media.Rational `json:"-" yaml:"-"`
	FrameRate      string         `json:"frame_rate,omitempty" yaml:"frame_rate,omitempty"`

	BitRateBPS int64  `json:"-" yaml:"-"`
	BitRate    string `json:"bit_rate,omitempty" yaml:"bit_rate,omitempty"`
}

// Audio describes an audio stream.
type Audio struct {
	Index    int    `json:"index" yaml:"index"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	Codec     media.CodecParameters `json:"-" yaml:"-"`
	CodecDesc string                `json:"codec_desc" yaml:"codec_desc"`

	SampleRateHz int    `json:"-" yaml:"-"`
	SampleRate   string `json:"sample_rate" yaml:"sample_rate"`

	ChannelLayoutMask uint64 `json:"-" yaml:"-"`
	Channels          int    `json:"-" yaml:"-"`
	ChannelLayout     string `json:"channel_layout" yaml:"channel_layout"`

	BitRateBPS int64  `json:"-" yaml:"-"`
	BitRate    string `json:"bit_rate,omitempty" yaml:"bit_rate,omitempty"`
}

// Subtitle describes a subtitle stream.
type Subtitle struct {
	Index    int    `json:"index" yaml:"index"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	Codec     media.CodecParameters `json:"-" yaml:"-"`
	CodecDesc string                `json:"codec_desc" yaml:"codec_desc"`
}

// Data describes a data stream.
type Data struct {
	Index int `json:"index" yaml:"index"`
}

// Attachment describes an attachment stream.
type Attachment struct {
	Index int `json:"index" yaml:"index"`
}

// Unknown describes a stream of unknown medium.
type Unknown struct {
	Index int `json:"index" yaml:"index"`
}

func (*Video) streamMetadata()      {}
func (*Audio) streamMetadata()      {}
func (*Subtitle) streamMetadata()   {}
func (*Data) streamMetadata()       {}
func (*Attachment) streamMetadata() {}
func (*Unknown) streamMetadata()    {}

// Build dispatches on the stream's medium. It fails only when a video or
// audio decoder cannot be constructed.
func Build(s media.Stream) (Metadata, error) {
	index := s.Index()
	logging.Debug("Building stream metadata", "stream", index, "medium", s.Medium())
	switch s.Medium() {
	case media.Video:
		dec, err := s.VideoDecoder()
		if err != nil {
			return nil, codecInitError(index, err)
		}
		return NewVideo(index, s.Parameters(), s.AvgFrameRate(), dec), nil
	case media.Audio:
		dec, err := s.AudioDecoder()
		if err != nil {
			return nil, codecInitError(index, err)
		}
		return NewAudio(index, s.Parameters(), s.Tags(), dec), nil
	case media.Subtitle:
		return NewSubtitle(index, s.Parameters(), s.Tags()), nil
	case media.Data:
		return &Data{Index: index}, nil
	case media.Attachment:
		return &Attachment{Index: index}, nil
	default:
		return &Unknown{Index: index}, nil
	}
}

func codecInitError(index int, err error) error {
	if coreerrors.IsKind(err, coreerrors.KindCodecInit) {
		return err
	}
	return coreerrors.NewCodecInitError(index, err.Error())
}

// NewVideo derives video metadata from decoder properties.
func NewVideo(index int, params media.CodecParameters, avgFrameRate media.Rational, dec media.VideoDecoder) *Video {
	v := &Video{
		Index:          index,
		Codec:          params,
		CodecDesc:      names.CodecDescription(params),
		PixelFormat:    dec.PixelFormat(),
		ColorRange:     dec.ColorRange(),
		ColorSpace:     dec.ColorSpace(),
		ColorPrimaries: dec.ColorPrimaries(),
		ColorTransfer:  dec.ColorTransfer(),
		Width:          dec.Width(),
		Height:         dec.Height(),
	}
	v.ColorSpec = ColorSpec(v.ColorRange, v.ColorSpace, v.ColorPrimaries, v.ColorTransfer)
	v.PixelDimensions = fmt.Sprintf("%dx%d", v.Width, v.Height)

	// An unspecified aspect ratio comes through as 0:N and means square pixels.
	v.SAR = dec.AspectRatio()
	if v.SAR.Num == 0 || !v.SAR.Valid() {
		v.SAR = media.NewRational(1, 1)
	} else {
		v.SAR = v.SAR.Reduce()
	}
	v.SampleAspectRatio = v.SAR.String()

	// width/height * SAR = DAR
	v.DAR = v.SAR.Mul(media.NewRational(int64(v.Width), int64(v.Height)))
	if v.DAR.Valid() {
		v.DisplayAspectRatio = v.DAR.String()
	}

	if text, ok := FormatFrameRate(avgFrameRate); ok {
		v.FrameRateRatio = avgFrameRate.Reduce()
		v.FrameRate = text
	}

	if br := dec.BitRate(); br > 0 {
		v.BitRateBPS = br
		v.BitRate = util.FormatBitRate(float64(br))
	}
	return v
}

// NewAudio derives audio metadata from decoder properties and stream tags.
func NewAudio(index int, params media.CodecParameters, tags media.Tags, dec media.AudioDecoder) *Audio {
	a := &Audio{
		Index:             index,
		Language:          Language(tags),
		Codec:             params,
		CodecDesc:         names.CodecDescription(params),
		SampleRateHz:      dec.SampleRate(),
		SampleRate:        util.FormatSampleRate(dec.SampleRate()),
		ChannelLayoutMask: dec.ChannelLayout(),
		Channels:          dec.Channels(),
		ChannelLayout:     truncateAtNUL(dec.DescribeChannelLayout()),
	}
	if br := dec.BitRate(); br > 0 {
		a.BitRateBPS = br
		a.BitRate = util.FormatBitRate(float64(br))
	}
	return a
}

// NewSubtitle derives subtitle metadata.
func NewSubtitle(index int, params media.CodecParameters, tags media.Tags) *Subtitle {
	return &Subtitle{
		Index:     index,
		Language:  Language(tags),
		Codec:     params,
		CodecDesc: names.CodecDescription(params),
	}
}

// Language returns the stream language from the "language" tag, falling back
// to "LANGUAGE". Empty values count as absent.
func Language(tags media.Tags) string {
	for _, key := range []string{"language", "LANGUAGE"} {
		if v, ok := tags.Get(key); ok && v != "" {
			return v
		}
	}
	return ""
}

// ColorSpec summarizes the color properties as "range, descriptor". The
// descriptor is the color space alone when space, primaries and transfer
// agree, otherwise "space/primaries/transfer" with "unknown" for missing
// parts. It is omitted when all three are missing.
func ColorSpec(colorRange, space, primaries, transfer string) string {
	var parts []string
	if colorRange != "" {
		parts = append(parts, colorRange)
	}
	if space != "" || primaries != "" || transfer != "" {
		if space == primaries && space == transfer {
			parts = append(parts, space)
		} else {
			parts = append(parts, fmt.Sprintf("%s/%s/%s", orUnknown(space), orUnknown(primaries), orUnknown(transfer)))
		}
	}
	return strings.Join(parts, ", ")
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// FormatFrameRate formats an average frame rate. ok is false when the
// denominator is zero.
func FormatFrameRate(r media.Rational) (string, bool) {
	if !r.Valid() {
		return "", false
	}
	r = r.Reduce()
	if r.Den == 1 {
		return fmt.Sprintf("%d fps", r.Num), true
	}
	return fmt.Sprintf("%.2f fps", r.Float64()), true
}

func truncateAtNUL(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

// IndexOf returns the container index of any metadata variant.
func IndexOf(m Metadata) int {
	switch v := m.(type) {
	case *Video:
		return v.Index
	case *Audio:
		return v.Index
	case *Subtitle:
		return v.Index
	case *Data:
		return v.Index
	case *Attachment:
		return v.Index
	case *Unknown:
		return v.Index
	default:
		panic(fmt.Sprintf("stream: unexpected metadata type %T", m))
	}
}

// MediumOf returns the medium of any metadata variant.
func MediumOf(m Metadata) media.Medium {
	switch m.(type) {
	case *Video:
		return media.Video
	case *Audio:
		return media.Audio
	case *Subtitle:
		return media.Subtitle
	case *Data:
		return media.Data
	case *Attachment:
		return media.Attachment
	case *Unknown:
		return media.Unknown
	default:
		panic(fmt.Sprintf("stream: unexpected metadata type %T", m))
	}
}

// Find returns the metadata with the given container index.
func Find(streams []Metadata, index int) (Metadata, bool) {
	for _, m := range streams {
		if IndexOf(m) == index {
			return m, true
		}
	}
	return nil, false
}
