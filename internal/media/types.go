package media

import "strings"

// Medium is the category of a stream.
type Medium int

const (
	Unknown Medium = iota
	Video
	Audio
	Subtitle
	Data
	Attachment
)

// ParseMedium maps an engine codec type name to a Medium.
func ParseMedium(s string) Medium {
	switch strings.ToLower(s) {
	case "video":
		return Video
	case "audio":
		return Audio
	case "subtitle":
		return Subtitle
	case "data":
		return Data
	case "attachment":
		return Attachment
	default:
		return Unknown
	}
}

func (m Medium) String() string {
	switch m {
	case Video:
		return "video"
	case Audio:
		return "audio"
	case Subtitle:
		return "subtitle"
	case Data:
		return "data"
	case Attachment:
		return "attachment"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Medium) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// FieldOrder describes how the fields of a frame are stored.
type FieldOrder int

const (
	FieldUnknown FieldOrder = iota
	FieldProgressive
	// FieldTT is top coded first, top displayed first.
	FieldTT
	// FieldBB is bottom coded first, bottom displayed first.
	FieldBB
	// FieldTB is top coded first, bottom displayed first.
	FieldTB
	// FieldBT is bottom coded first, top displayed first.
	FieldBT
)

// ParseFieldOrder maps an engine field order name to a FieldOrder.
func ParseFieldOrder(s string) FieldOrder {
	switch strings.ToLower(s) {
	case "progressive":
		return FieldProgressive
	case "tt":
		return FieldTT
	case "bb":
		return FieldBB
	case "tb":
		return FieldTB
	case "bt":
		return FieldBT
	default:
		return FieldUnknown
	}
}

func (f FieldOrder) String() string {
	switch f {
	case FieldProgressive:
		return "progressive"
	case FieldTT:
		return "tt"
	case FieldBB:
		return "bb"
	case FieldTB:
		return "tb"
	case FieldBT:
		return "bt"
	default:
		return "unknown"
	}
}

// Interlaced reports whether the field order is one of the interlaced orders.
func (f FieldOrder) Interlaced() bool {
	switch f {
	case FieldTT, FieldBB, FieldTB, FieldBT:
		return true
	}
	return false
}

// Tag is a single metadata entry.
type Tag struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Tags is an ordered tag dictionary.
type Tags []Tag

// Get returns the value of the first entry with exactly the given key.
func (t Tags) Get(key string) (string, bool) {
	for _, tag := range t {
		if tag.Key == key {
			return tag.Value, true
		}
	}
	return "", false
}

// Lookup returns the value of the first key present among keys, tried in order.
func (t Tags) Lookup(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := t.Get(k); ok {
			return v, true
		}
	}
	return "", false
}
