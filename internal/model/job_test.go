package model

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		source string
		format Format
		want   string
	}{
		{"a.wav", FormatMP3, "c_a.mp3"},
		{"b.wav", FormatFLAC, "c_b.flac"},
		{"/music/song.flac", FormatOGG, "/music/c_song.ogg"},
		{"/music/archive.tar.gz", FormatAAC, "/music/c_archive.tar.aac"},
		{"/music/noext", FormatWAV, "/music/c_noext.wav"},
		{"/music/.hidden.wav", FormatMP3, "/music/c_.hidden.mp3"},
		{"/music/Track.WAV", Format("MP3"), "/music/c_Track.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			want := filepath.FromSlash(tt.want)
			if got := OutputPath(filepath.FromSlash(tt.source), tt.format); got != want {
				t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.source, tt.format, got, want)
			}
		})
	}
}

func TestNewJob_FormatCasing(t *testing.T) {
	for _, in := range []string{"mp3", "MP3", "Mp3", ".mp3"} {
		job, err := NewJob("/music/a.wav", in, "192k")
		if err != nil {
			t.Fatalf("NewJob(format=%q) error = %v", in, err)
		}
		if job.Format() != FormatMP3 {
			t.Errorf("Format() = %q, want mp3", job.Format())
		}
		if got, want := job.OutputPath(), filepath.FromSlash("/music/c_a.mp3"); got != want {
			t.Errorf("OutputPath() = %q, want %q", got, want)
		}
	}
}

func TestNewJob_LosslessDropsBitrate(t *testing.T) {
	for _, f := range []string{"flac", "wav"} {
		job, err := NewJob("a.mp3", f, "320k")
		if err != nil {
			t.Fatalf("NewJob(%s) error = %v", f, err)
		}
		if b, ok := job.Bitrate(); ok {
			t.Errorf("%s job kept bitrate %q", f, b)
		}
	}
}

func TestNewJob_BitrateNAIsAbsent(t *testing.T) {
	job, err := NewJob("a.wav", "mp3", BitrateNA)
	if err != nil {
		t.Fatalf("NewJob() error = %v", err)
	}
	if _, ok := job.Bitrate(); ok {
		t.Error("N/A bitrate should be treated as absent")
	}
}

func TestNewJob_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		format  string
		bitrate string
		wantErr error
	}{
		{"unknown format", "a.wav", "opus", "", ErrUnsupportedFormat},
		{"bitrate not in presets", "a.wav", "ogg", "320k", ErrInvalidBitrate},
		{"garbage bitrate", "a.wav", "mp3", "loud", ErrInvalidBitrate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJob(tt.source, tt.format, tt.bitrate)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewJob() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := NewJob("  ", "mp3", ""); err == nil {
		t.Error("expected error for empty source")
	}
}

func TestFormat_BitrateChoices(t *testing.T) {
	tests := []struct {
		format Format
		want   []string
	}{
		{FormatMP3, []string{"128k", "192k", "256k", "320k"}},
		{FormatAAC, []string{"96k", "128k", "160k", "192k", "256k"}},
		{FormatOGG, []string{"64k", "96k", "128k", "160k", "192k"}},
		{FormatFLAC, []string{BitrateNA}},
		{FormatWAV, []string{BitrateNA}},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			got := tt.format.BitrateChoices()
			if len(got) != len(tt.want) {
				t.Fatalf("BitrateChoices() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("BitrateChoices()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFormat_PresetsReturnsCopy(t *testing.T) {
	p := FormatMP3.Presets()
	p[0] = "999k"
	if FormatMP3.Presets()[0] != "128k" {
		t.Error("Presets() must not expose the internal slice")
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a.wav", "a"},
		{"/x/y/song.name.flac", "song.name"},
		{"noext", "noext"},
		{".hidden", ".hidden"},
	}
	for _, tt := range tests {
		if got := Stem(tt.in); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
