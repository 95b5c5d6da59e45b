package stream

import (
	"fmt"
	"strings"
)

// Describe renders a one-line summary in the style of ffprobe's stream lines,
// e.g. "#0: Video, H.264 (High Profile level 4), yuv420p, 1920x1080 (SAR 1:1, DAR 16:9), 25 fps".
func Describe(m Metadata) string {
	switch v := m.(type) {
	case *Video:
		return describeVideo(v)
	case *Audio:
		var b strings.Builder
		fmt.Fprintf(&b, "#%d: Audio (%s), %s, %s, %s", v.Index, languageOrUnd(v.Language), v.CodecDesc, v.SampleRate, v.ChannelLayout)
		if v.BitRate != "" {
			b.WriteString(", " + v.BitRate)
		}
		return b.String()
	case *Subtitle:
		return fmt.Sprintf("#%d: Subtitle (%s), %s", v.Index, languageOrUnd(v.Language), v.CodecDesc)
	case *Data:
		return fmt.Sprintf("#%d: Data", v.Index)
	case *Attachment:
		return fmt.Sprintf("#%d: Attachment", v.Index)
	case *Unknown:
		return fmt.Sprintf("#%d: Unknown", v.Index)
	default:
		panic(fmt.Sprintf("stream: unexpected metadata type %T", m))
	}
}

func describeVideo(v *Video) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d: Video, %s", v.Index, v.CodecDesc)
	if v.PixelFormat != "" {
		b.WriteString(", " + v.PixelFormat)
		if v.ColorSpec != "" {
			fmt.Fprintf(&b, " (%s)", v.ColorSpec)
		}
	}
	fmt.Fprintf(&b, ", %s (SAR %s", v.PixelDimensions, v.SampleAspectRatio)
	if v.DisplayAspectRatio != "" {
		fmt.Fprintf(&b, ", DAR %s", v.DisplayAspectRatio)
	}
	b.WriteString(")")
	if v.FrameRate != "" {
		b.WriteString(", " + v.FrameRate)
	}
	if v.BitRate != "" {
		b.WriteString(", " + v.BitRate)
	}
	return b.String()
}

func languageOrUnd(lang string) string {
	if lang == "" {
		return "und"
	}
	return lang
}
