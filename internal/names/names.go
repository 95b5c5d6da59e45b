// Package names maps raw demuxer and codec identifiers to the display names
// shown to users. Formats and codecs that are not listed keep the engine's
// own long name, capitalized.
package names

import (
	"fmt"
	"strings"

	"github.com/five82/mediameta/internal/media"
	"github.com/five82/mediameta/internal/util"
)

// The engine's long name is noted after entries that differ from it.
var containerNames = map[string]string{
	"aac":        "Raw ADTS AAC",                                      // raw ADTS AAC (Advanced Audio Coding)
	"aiff":       "Audio Interchange File Format (AIFF)",              // Audio IFF
	"asf":        "Advanced Systems Format (ASF)",                     // ASF (Advanced / Active Streaming Format)
	"ass":        "Advanced SubStation Alpha (ASS)",                   // SSA (SubStation Alpha) subtitle
	"flv":        "Flash Video (FLV)",                                 // FLV (Flash Video)
	"jpeg_pipe":  "JPEG",                                              // piped jpeg sequence
	"mp3":        "MP3",                                               // MP2/3 (MPEG audio layer 2/3)
	"mpeg":       "MPEG-2 Program Stream (MPEG-PS)",                   // MPEG-PS (MPEG-2 Program Stream)
	"mpegts":     "MPEG-2 Transport Stream (MPEG-TS)",                 // MPEG-TS (MPEG-2 Transport Stream)
	"png_pipe":   "PNG",                                               // piped png sequence
	"realtext":   "RealText",                                          // RealText subtitle format
	"sami":       "Synchronized Accessible Media Interchange (SAMI)", // SAMI subtitle format
	"srt":        "SubRip",                                            // SubRip subtitle
	"subviewer":  "SubViewer",                                         // SubViewer subtitle format
	"subviewer1": "SubViewer v1",                                      // SubViewer v1 subtitle format
	"wav":        "Waveform Audio (WAV)",                              // WAV / WAVE (Waveform Audio)
	"webvtt":     "WebVTT",                                            // WebVTT subtitle
}

var codecNames = map[string]string{
	// Video
	"h264":  "H.264",
	"hevc":  "HEVC",
	"mpeg4": "MPEG-4 Part 2",
	"png":   "PNG",
	"vp8":   "VP8",
	"vp9":   "VP9",

	// Audio
	"aac":    "AAC",
	"ac3":    "Dolby AC-3",
	"cook":   "Cook (RealAudio G2)",
	"flac":   "FLAC",
	"mp3":    "MP3",
	"opus":   "Opus",
	"ra_144": "RealAudio 1.0",
	"ra_288": "RealAudio 2.0",

	// Subtitle
	"ass":        "Advanced SubStation Alpha (ASS)",
	"realtext":   "RealText",
	"sami":       "Synchronized Accessible Media Interchange (SAMI)",
	"srt":        "SubRip",
	"ssa":        "SubStation Alpha (SSA)",
	"subrip":     "SubRip",
	"subviewer":  "SubViewer",
	"subviewer1": "SubViewer v1",
	"webvtt":     "WebVTT",
}

// ContainerName returns the display name of a container format. ext is the
// file extension with or without the leading dot, in any case.
func ContainerName(formatID, longName, ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	switch formatID {
	case "matroska,webm":
		if ext == "webm" {
			return "WebM"
		}
		return "Matroska (MKV)"
	case "mov,mp4,m4a,3gp,3g2,mj2":
		switch ext {
		case "mov", "qt":
			return "QuickTime File Format"
		case "3gp":
			return "3GPP"
		case "3g2":
			return "3GPP2"
		case "mj2", "mjp2":
			return "Motion JPEG 2000"
		default:
			return fmt.Sprintf("MPEG-4 Part 14 (%s)", strings.ToUpper(ext))
		}
	}

	if name, ok := containerNames[formatID]; ok {
		return name
	}
	return util.Capitalize(longName)
}

// CodecName returns the display name of a codec.
func CodecName(codecID, longName string) string {
	if name, ok := codecNames[codecID]; ok {
		return name
	}
	return util.Capitalize(longName)
}

const unknownProfile = "Unknown Profile"

var h264Profiles = map[string]string{
	"constrained":           "Constrained Profile",
	"intra":                 "Intra Profile",
	"baseline":              "Baseline Profile",
	"constrained baseline":  "Constrained Baseline Profile",
	"main":                  "Main Profile",
	"extended":              "Extended Profile",
	"high":                  "High Profile",
	"high 10":               "High 10 Profile",
	"high 10 intra":         "High 10 Intra Profile",
	"high 4:2:2":            "High 4:2:2 Profile",
	"high 4:2:2 intra":      "High 4:2:2 Intra Profile",
	"high 4:4:4":            "High 4:4:4 Profile",
	"high 4:4:4 predictive": "High 4:4:4 Predictive Profile",
	"high 4:4:4 intra":      "High 4:4:4 Intra Profile",
	"cavlc 4:4:4":           "CAVLC 4:4:4 Profile",
	"cavlc 4:4:4 intra":     "CAVLC 4:4:4 Profile",
}

var hevcProfiles = map[string]string{
	"main":               "Main Profile",
	"main 10":            "Main 10 Profile",
	"main still picture": "Main Still Picture Profile",
	"rext":               "Range Extension (RExt)",
}

var vp9Profiles = map[string]string{
	"profile 0": "Profile 0",
	"profile 1": "Profile 1",
	"profile 2": "Profile 2",
	"profile 3": "Profile 3",
}

var aacProfiles = map[string]string{
	"main":          "Main Profile",
	"lc":            "LC",
	"ssr":           "SSR",
	"ltp":           "LTP",
	"he-aac":        "HE-AAC",
	"he-aacv2":      "HE-AAC v2",
	"he-aac v2":     "HE-AAC v2",
	"ld":            "LD",
	"eld":           "ELD",
	"mpeg-2 lc":     "MPEG-2 LC",
	"mpeg-2 he-aac": "MPEG-2 HE-AAC",
}

func profileName(table map[string]string, profile string) string {
	if name, ok := table[strings.ToLower(strings.TrimSpace(profile))]; ok {
		return name
	}
	return unknownProfile
}

// FormatLevel renders level/divisor as an integer when evenly divisible,
// otherwise with one decimal place.
func FormatLevel(level, divisor int) string {
	if level%divisor == 0 {
		return fmt.Sprintf("%d", level/divisor)
	}
	return fmt.Sprintf("%.1f", float64(level)/float64(divisor))
}

func withLevel(name, profile string, level, divisor int) string {
	if level <= 0 {
		return fmt.Sprintf("%s (%s)", name, profile)
	}
	return fmt.Sprintf("%s (%s level %s)", name, profile, FormatLevel(level, divisor))
}

// CodecDescription returns the codec display name qualified by profile and
// level for H.264, HEVC, VP9 and AAC. Other codecs get the plain name.
func CodecDescription(p media.CodecParameters) string {
	name := CodecName(p.ID, p.LongName)
	switch p.ID {
	case "h264":
		return withLevel(name, profileName(h264Profiles, p.Profile), p.Level, 10)
	case "hevc":
		return withLevel(name, profileName(hevcProfiles, p.Profile), p.Level, 30)
	case "vp9":
		// The engine does not report a usable VP9 level.
		return fmt.Sprintf("%s (%s)", name, profileName(vp9Profiles, p.Profile))
	case "aac":
		return fmt.Sprintf("%s (%s)", name, profileName(aacProfiles, p.Profile))
	default:
		return name
	}
}
