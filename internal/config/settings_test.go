package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xangelkai/audioconv/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.EncoderPath != "ffmpeg" {
		t.Errorf("EncoderPath = %q, want ffmpeg", s.EncoderPath)
	}
	if s.PollInterval != 100*time.Millisecond {
		t.Errorf("PollInterval = %v, want 100ms", s.PollInterval)
	}
	if s.MaxConcurrentJobs < 1 {
		t.Errorf("MaxConcurrentJobs = %d, want >= 1", s.MaxConcurrentJobs)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing", "config.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.TargetFormat != "mp3" || s.Bitrate != "192k" {
		t.Errorf("settings = %+v, want defaults", s)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	if _, err := Load(""); err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `{
		"encoder_path": "/opt/ffmpeg",
		"max_concurrent_jobs": 3,
		"target_format": "OGG",
		"bitrate": "96k",
		"poll_interval": "250ms",
		"tag_outputs": true
	}`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.EncoderPath != "/opt/ffmpeg" {
		t.Errorf("EncoderPath = %q", s.EncoderPath)
	}
	if s.MaxConcurrentJobs != 3 {
		t.Errorf("MaxConcurrentJobs = %d, want 3", s.MaxConcurrentJobs)
	}
	if s.TargetFormat != "ogg" {
		t.Errorf("TargetFormat = %q, want ogg", s.TargetFormat)
	}
	if s.PollInterval != 250*time.Millisecond {
		t.Errorf("PollInterval = %v, want 250ms", s.PollInterval)
	}
	if !s.TagOutputs {
		t.Error("TagOutputs = false, want true")
	}
	if s.TerminationGrace != 5*time.Second {
		t.Errorf("TerminationGrace = %v, want default 5s", s.TerminationGrace)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `{"max_concurrent_jobs": 3}`)
	t.Setenv("AUDIOCONV_MAX_CONCURRENT_JOBS", "7")
	t.Setenv("AUDIOCONV_ENCODER_PATH", "/usr/local/bin/ffmpeg")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.MaxConcurrentJobs != 7 {
		t.Errorf("MaxConcurrentJobs = %d, want 7 from env", s.MaxConcurrentJobs)
	}
	if s.EncoderPath != "/usr/local/bin/ffmpeg" {
		t.Errorf("EncoderPath = %q", s.EncoderPath)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	if _, err := Load(writeConfig(t, "{not-json")); err == nil {
		t.Fatal("expected json parse error")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero jobs", `{"max_concurrent_jobs": 0}`},
		{"unknown format", `{"target_format": "opus"}`},
		{"bitrate not in presets", `{"target_format": "aac", "bitrate": "320k"}`},
		{"empty encoder", `{"encoder_path": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_LosslessIgnoresBitrate(t *testing.T) {
	s := DefaultSettings()
	s.TargetFormat = "flac"
	s.Bitrate = "320k"
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_BitrateError(t *testing.T) {
	s := DefaultSettings()
	s.Bitrate = "64k"
	if err := s.Validate(); !errors.Is(err, model.ErrInvalidBitrate) {
		t.Errorf("Validate() error = %v, want ErrInvalidBitrate", err)
	}
}

func TestSettings_NewJobs(t *testing.T) {
	s := DefaultSettings()
	s.TargetFormat = "wav"

	jobs, err := s.NewJobs([]string{"a.mp3", "b.ogg"})
	if err != nil {
		t.Fatalf("NewJobs() error = %v", err)
	}
	if len(jobs) != 2 || jobs[1].OutputPath() != "c_b.wav" {
		t.Errorf("jobs = %v", jobs)
	}
	if _, ok := jobs[0].Bitrate(); ok {
		t.Error("wav job should carry no bitrate")
	}
}

func TestSettings_EncoderOptions(t *testing.T) {
	s := DefaultSettings()
	s.EncoderPath = "/bin/encoder"
	s.TagOutputs = true

	opts := s.EncoderOptions()
	if opts.EncoderPath != "/bin/encoder" || opts.PollInterval != s.PollInterval {
		t.Errorf("options = %+v", opts)
	}
	if opts.Tagger == nil {
		t.Error("Tagger should be set when TagOutputs is enabled")
	}

	s.TagOutputs = false
	if s.EncoderOptions().Tagger != nil {
		t.Error("Tagger should be nil when TagOutputs is disabled")
	}
}

func TestSettings_ControllerOptions(t *testing.T) {
	s := DefaultSettings()
	if n := len(s.ControllerOptions()); n != 0 {
		t.Errorf("got %d options without playlist", n)
	}
	s.PlaylistPath = "/tmp/out.m3u"
	if n := len(s.ControllerOptions()); n != 1 {
		t.Errorf("got %d options with playlist, want 1", n)
	}
}
