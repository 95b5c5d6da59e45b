package mediameta

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/mediameta/internal/config"
	coreerrors "github.com/five82/mediameta/internal/errors"
	"github.com/five82/mediameta/internal/media"
	"github.com/five82/mediameta/internal/media/mediatest"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{name: "defaults"},
		{name: "jobs", opts: []Option{WithJobs(8)}},
		{name: "zero jobs", opts: []Option{WithJobs(0)}, wantErr: config.ErrInvalidJobs},
		{name: "too many jobs", opts: []Option{WithJobs(config.MaxJobs + 1)}, wantErr: config.ErrInvalidJobs},
		{name: "empty ffprobe", opts: []Option{WithFFprobe(" ")}, wantErr: config.ErrEmptyFFprobePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("New() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAllTagsImpliesTags(t *testing.T) {
	i, err := New(WithAllTags())
	if err != nil {
		t.Fatal(err)
	}
	opts := i.config.InspectOptions()
	if !opts.IncludeTags || !opts.IncludeAllTags {
		t.Errorf("InspectOptions() = %+v, want tags and all tags", opts)
	}
}

func newFixture(t *testing.T) (*mediatest.Opener, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("not really an mp4"), 0644); err != nil {
		t.Fatal(err)
	}

	opener := mediatest.NewOpener()
	opener.Add(path, &mediatest.Container{
		Name:    "mov,mp4,m4a,3gp,3g2,mj2",
		TagList: media.Tags{{Key: "title", Value: "Clip"}, {Key: "major_brand", Value: "isom"}},
		StreamList: []*mediatest.Stream{
			{
				Idx:   0,
				Kind:  media.Audio,
				Audio: &mediatest.AudioDecoder{Rate: 44100, Chans: 1, Layout: 0x4, LayoutName: "mono"},
			},
		},
	})
	return opener, path
}

func TestInspect(t *testing.T) {
	opener, path := newFixture(t)

	file, err := Inspect(context.Background(), path, withOpener(opener), WithChecksum(), WithTags())
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if file.Title != "Clip" {
		t.Errorf("Title = %q, want %q", file.Title, "Clip")
	}
	if file.ContainerFormat != "MPEG-4 Part 14 (MP4)" {
		t.Errorf("ContainerFormat = %q", file.ContainerFormat)
	}
	if file.VisibleHash() == "" {
		t.Error("expected a checksum")
	}
	if file.HasVideo {
		t.Error("audio-only file reported video")
	}
	if tags, _ := file.VisibleTags(); len(tags) != 1 {
		t.Errorf("VisibleTags() = %v, want only the title", tags)
	}
}

func TestInspectFiles(t *testing.T) {
	opener, path := newFixture(t)
	missing := filepath.Join(filepath.Dir(path), "missing.mkv")

	batch, err := InspectFiles(context.Background(), []string{missing, path}, withOpener(opener), WithJobs(2))
	if err != nil {
		t.Fatalf("InspectFiles() error = %v", err)
	}
	if batch.TotalFiles != 2 || batch.SuccessfulCount != 1 {
		t.Errorf("batch = %+v", batch)
	}
	if !coreerrors.IsKind(batch.Results[0].Err, coreerrors.KindNotFound) {
		t.Errorf("Results[0].Err = %v, want not found", batch.Results[0].Err)
	}
	if batch.Results[1].File == nil {
		t.Error("Results[1] has no metadata")
	}
}

func TestFindMediaFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mkv", "a.MP4", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := FindMediaFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.MP4"), filepath.Join(dir, "b.mkv")}
	if len(files) != len(want) || files[0] != want[0] || files[1] != want[1] {
		t.Errorf("FindMediaFiles() = %v, want %v", files, want)
	}
}
