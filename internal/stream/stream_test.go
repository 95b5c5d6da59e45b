package stream

import (
	"errors"
	"testing"

	coreerrors "github.com/five82/mediameta/internal/errors"
	"github.com/five82/mediameta/internal/media"
	"github.com/five82/mediameta/internal/media/mediatest"
)

func videoStream(w, h int, sar, fps media.Rational) *mediatest.Stream {
	return &mediatest.Stream{
		Idx:       0,
		Kind:      media.Video,
		Params:    media.CodecParameters{ID: "h264", Profile: "High", Level: 40},
		FrameRate: fps,
		Video: &mediatest.VideoDecoder{
			W: w, H: h,
			SAR:    sar,
			Order:  media.FieldProgressive,
			PixFmt: "yuv420p",
		},
	}
}

func TestVideoAspectRatios(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		sar     media.Rational
		wantSAR string
		wantDAR string
	}{
		{"square 1080p", 1920, 1080, media.NewRational(1, 1), "1:1", "16:9"},
		{"unspecified sar", 1920, 1080, media.NewRational(0, 1), "1:1", "16:9"},
		{"ntsc anamorphic", 720, 480, media.NewRational(32, 27), "32:27", "16:9"},
		{"ntsc 4:3", 720, 480, media.NewRational(8, 9), "8:9", "4:3"},
		{"unreduced sar", 720, 576, media.NewRational(128, 120), "16:15", "4:3"},
		{"cinemascope", 1920, 800, media.NewRational(1, 1), "1:1", "12:5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Build(videoStream(tt.w, tt.h, tt.sar, media.NewRational(25, 1)))
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			v, ok := m.(*Video)
			if !ok {
				t.Fatalf("Build() = %T, want *Video", m)
			}
			if v.SampleAspectRatio != tt.wantSAR {
				t.Errorf("SAR = %q, want %q", v.SampleAspectRatio, tt.wantSAR)
			}
			if v.DisplayAspectRatio != tt.wantDAR {
				t.Errorf("DAR = %q, want %q", v.DisplayAspectRatio, tt.wantDAR)
			}
			if v.SAR.Num == 0 {
				t.Error("SAR numerator must never be 0")
			}
			// width/height * SAR = DAR
			geom := media.NewRational(int64(v.Width), int64(v.Height))
			if !geom.Mul(v.SAR).Equal(v.DAR) {
				t.Errorf("%v * %v != %v", geom, v.SAR, v.DAR)
			}
		})
	}
}

func TestVideoZeroHeight(t *testing.T) {
	m, err := Build(videoStream(1920, 0, media.NewRational(1, 1), media.NewRational(25, 1)))
	if err != nil {
		t.Fatal(err)
	}
	v := m.(*Video)
	if v.DAR.Valid() || v.DisplayAspectRatio != "" {
		t.Errorf("DAR = %v %q, want unavailable", v.DAR, v.DisplayAspectRatio)
	}
	want := "#0: Video, H.264 (High Profile level 4), yuv420p, 1920x0 (SAR 1:1), 25 fps"
	if got := Describe(v); got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestFormatFrameRate(t *testing.T) {
	tests := []struct {
		rate   media.Rational
		want   string
		wantOk bool
	}{
		{media.NewRational(24000, 1001), "23.98 fps", true},
		{media.NewRational(30000, 1001), "29.97 fps", true},
		{media.NewRational(25, 1), "25 fps", true},
		{media.NewRational(50, 2), "25 fps", true},
		{media.NewRational(0, 1), "0 fps", true},
		{media.NewRational(25, 0), "", false},
		{media.NewRational(0, 0), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.rate.String(), func(t *testing.T) {
			got, ok := FormatFrameRate(tt.rate)
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("FormatFrameRate(%v) = %q, %v, want %q, %v", tt.rate, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestVideoFrameRateUnavailable(t *testing.T) {
	m, err := Build(videoStream(640, 480, media.NewRational(1, 1), media.NewRational(0, 0)))
	if err != nil {
		t.Fatal(err)
	}
	v := m.(*Video)
	if v.FrameRate != "" || v.FrameRateRatio.Valid() {
		t.Errorf("frame rate = %q %v, want unavailable", v.FrameRate, v.FrameRateRatio)
	}
}

func TestColorSpec(t *testing.T) {
	tests := []struct {
		name                              string
		rng, space, primaries, transfer string
		want                              string
	}{
		{"all agree", "tv", "bt709", "bt709", "bt709", "tv, bt709"},
		{"mixed", "tv", "bt2020nc", "bt2020", "smpte2084", "tv, bt2020nc/bt2020/smpte2084"},
		{"missing axis", "", "bt709", "", "bt709", "bt709/unknown/bt709"},
		{"range only", "pc", "", "", "", "pc"},
		{"nothing", "", "", "", "", ""},
		{"descriptor only", "", "smpte170m", "smpte170m", "smpte170m", "smpte170m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColorSpec(tt.rng, tt.space, tt.primaries, tt.transfer)
			if got != tt.want {
				t.Errorf("ColorSpec() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBitRate(t *testing.T) {
	s := videoStream(1920, 1080, media.NewRational(1, 1), media.NewRational(25, 1))
	s.Video.Rate = 4000499
	m, _ := Build(s)
	if got := m.(*Video).BitRate; got != "4000 kb/s" {
		t.Errorf("BitRate = %q, want 4000 kb/s", got)
	}

	s.Video.Rate = 0
	m, _ = Build(s)
	if got := m.(*Video).BitRate; got != "" {
		t.Errorf("zero bit rate should be unavailable, got %q", got)
	}
}

func TestBuildAudio(t *testing.T) {
	s := &mediatest.Stream{
		Idx:     1,
		Kind:    media.Audio,
		Params:  media.CodecParameters{ID: "aac", Profile: "LC"},
		TagList: media.Tags{{Key: "LANGUAGE", Value: "ger"}, {Key: "language", Value: "eng"}},
		Audio: &mediatest.AudioDecoder{
			Rate: 48000, Chans: 2, Layout: 0x3, LayoutName: "stereo\x00\x00junk", Bits: 128000,
		},
	}

	m, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	a := m.(*Audio)
	if a.Language != "eng" {
		t.Errorf("Language = %q, want eng", a.Language)
	}
	if a.ChannelLayout != "stereo" {
		t.Errorf("ChannelLayout = %q, want stereo", a.ChannelLayout)
	}
	if a.SampleRate != "48000 Hz" {
		t.Errorf("SampleRate = %q", a.SampleRate)
	}
	want := "#1: Audio (eng), AAC (LC), 48000 Hz, stereo, 128 kb/s"
	if got := Describe(a); got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestBuildSubtitleAndOthers(t *testing.T) {
	tests := []struct {
		stream *mediatest.Stream
		want   string
		medium media.Medium
	}{
		{&mediatest.Stream{Idx: 2, Kind: media.Subtitle, Params: media.CodecParameters{ID: "subrip"}}, "#2: Subtitle (und), SubRip", media.Subtitle},
		{&mediatest.Stream{Idx: 3, Kind: media.Subtitle, Params: media.CodecParameters{ID: "ass"}, TagList: media.Tags{{Key: "LANGUAGE", Value: "fre"}}}, "#3: Subtitle (fre), Advanced SubStation Alpha (ASS)", media.Subtitle},
		{&mediatest.Stream{Idx: 4, Kind: media.Data}, "#4: Data", media.Data},
		{&mediatest.Stream{Idx: 5, Kind: media.Attachment}, "#5: Attachment", media.Attachment},
		{&mediatest.Stream{Idx: 6, Kind: media.Unknown}, "#6: Unknown", media.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			m, err := Build(tt.stream)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got := Describe(m); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
			if IndexOf(m) != tt.stream.Idx {
				t.Errorf("IndexOf() = %d, want %d", IndexOf(m), tt.stream.Idx)
			}
			if MediumOf(m) != tt.medium {
				t.Errorf("MediumOf() = %v, want %v", MediumOf(m), tt.medium)
			}
		})
	}
}

func TestDescribeVideo(t *testing.T) {
	s := videoStream(1920, 1080, media.NewRational(1, 1), media.NewRational(25, 1))
	s.Video.Range = "tv"
	s.Video.Space = "bt709"
	s.Video.Primaries = "bt709"
	s.Video.Transfer = "bt709"
	s.Video.Rate = 4000000

	m, err := Build(s)
	if err != nil {
		t.Fatal(err)
	}
	want := "#0: Video, H.264 (High Profile level 4), yuv420p (tv, bt709), 1920x1080 (SAR 1:1, DAR 16:9), 25 fps, 4000 kb/s"
	if got := Describe(m); got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}

	s.Video.PixFmt = ""
	m, _ = Build(s)
	want = "#0: Video, H.264 (High Profile level 4), 1920x1080 (SAR 1:1, DAR 16:9), 25 fps, 4000 kb/s"
	if got := Describe(m); got != want {
		t.Errorf("Describe() without pixel format = %q, want %q", got, want)
	}
}

func TestBuildDecoderFailure(t *testing.T) {
	tests := []struct {
		name string
		kind media.Medium
		err  error
	}{
		{"video plain error", media.Video, errors.New("no decoder")},
		{"audio plain error", media.Audio, errors.New("no decoder")},
		{"already classified", media.Video, coreerrors.NewCodecInitError(7, "unsupported")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(&mediatest.Stream{Idx: 7, Kind: tt.kind, DecoderErr: tt.err})
			if !coreerrors.IsKind(err, coreerrors.KindCodecInit) {
				t.Errorf("Build() error = %v, want codec init error", err)
			}
		})
	}
}

func TestFind(t *testing.T) {
	streams := []Metadata{&Audio{Index: 0}, &Video{Index: 1}, &Data{Index: 2}}
	m, ok := Find(streams, 1)
	if !ok {
		t.Fatal("Find() did not find index 1")
	}
	if _, isVideo := m.(*Video); !isVideo {
		t.Errorf("Find() = %T, want *Video", m)
	}
	if _, ok := Find(streams, 9); ok {
		t.Error("Find() found a missing index")
	}
}
