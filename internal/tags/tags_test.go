package tags

import (
	"reflect"
	"testing"

	"github.com/five82/mediameta/internal/media"
)

func TestIsBoring(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"encoder", true},
		{"ENCODER", true},
		{"major_brand", true},
		{"minor_version", true},
		{"compatible_brands", true},
		{"creation_time", true},
		{"handler_name", true},
		{"_STATISTICS_WRITING_APP", true},
		{"_", true},
		{"com.apple.quicktime.author", true},
		{"COM.apple.quicktime.player.movie.audio.gain", true},
		{"ARTIST", false},
		{"title", false},
		{"language", false},
		{"encoder_settings", false},
		{"my_encoder", false},
		{"dotcom.example", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := IsBoring(tt.key); got != tt.want {
				t.Errorf("IsBoring(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestExtractDropsEmptyValues(t *testing.T) {
	raw := media.Tags{
		{Key: "title", Value: "Sintel"},
		{Key: "comment", Value: ""},
		{Key: "ARTIST", Value: "Blender"},
	}
	want := media.Tags{
		{Key: "title", Value: "Sintel"},
		{Key: "ARTIST", Value: "Blender"},
	}

	if got := Extract(raw); !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	in := media.Tags{
		{Key: "major_brand", Value: "isom"},
		{Key: "title", Value: "Sintel"},
		{Key: "_STATISTICS_TAGS", Value: "BPS"},
		{Key: "ARTIST", Value: "Blender"},
		{Key: "com.apple.quicktime.author", Value: "x"},
		{Key: "comment", Value: "open movie"},
	}
	want := media.Tags{
		{Key: "title", Value: "Sintel"},
		{Key: "ARTIST", Value: "Blender"},
		{Key: "comment", Value: "open movie"},
	}

	got := Filter(in)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
	if len(in) != 6 {
		t.Error("Filter() must not modify its input")
	}
}

func TestFilterEmpty(t *testing.T) {
	if got := Filter(nil); len(got) != 0 {
		t.Errorf("Filter(nil) = %v, want empty", got)
	}
}
