package ffprobe

import "fmt"

// Speaker position bits, matching libavutil's channel masks.
const (
	chFL  uint64 = 0x1
	chFR  uint64 = 0x2
	chFC  uint64 = 0x4
	chLFE uint64 = 0x8
	chBL  uint64 = 0x10
	chBR  uint64 = 0x20
	chBC  uint64 = 0x100
	chSL  uint64 = 0x200
	chSR  uint64 = 0x400
)

var channelLayouts = map[string]uint64{
	"mono":       chFC,
	"stereo":     chFL | chFR,
	"2.1":        chFL | chFR | chLFE,
	"3.0":        chFL | chFR | chFC,
	"3.0(back)":  chFL | chFR | chBC,
	"4.0":        chFL | chFR | chFC | chBC,
	"quad":       chFL | chFR | chBL | chBR,
	"quad(side)": chFL | chFR | chSL | chSR,
	"3.1":        chFL | chFR | chFC | chLFE,
	"5.0":        chFL | chFR | chFC | chBL | chBR,
	"5.0(side)":  chFL | chFR | chFC | chSL | chSR,
	"4.1":        chFL | chFR | chFC | chLFE | chBC,
	"5.1":        chFL | chFR | chFC | chLFE | chBL | chBR,
	"5.1(side)":  chFL | chFR | chFC | chLFE | chSL | chSR,
	"6.0":        chFL | chFR | chFC | chBC | chSL | chSR,
	"6.1":        chFL | chFR | chFC | chLFE | chBC | chSL | chSR,
	"7.0":        chFL | chFR | chFC | chBL | chBR | chSL | chSR,
	"7.1":        chFL | chFR | chFC | chLFE | chBL | chBR | chSL | chSR,
}

// channelMask returns the speaker mask of a named layout, 0 when the name is
// unknown or empty.
func channelMask(name string) uint64 {
	return channelLayouts[name]
}

// describeChannelLayout returns ffprobe's layout name, or a channel count
// when the layout is unspecified.
func describeChannelLayout(name string, channels int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%d channels", channels)
}
