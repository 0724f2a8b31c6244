package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputPrefix is prepended to the source stem to name converted files.
const OutputPrefix = "c_"

// Job is one source-file-to-target-format conversion request.
//
// A Job is immutable once created via NewJob. Its fields are only exposed
// through accessors so a Job can be shared between the controller and the
// executors without copying concerns.
//
// Example:
//
//	job, err := model.NewJob("/music/a.wav", "mp3", "192k")
//	// job.OutputPath() == "/music/c_a.mp3"
type Job struct {
	source  string
	format  Format
	bitrate string
}

// NewJob validates the parameters and creates a Job.
//
// The format is parsed case-insensitively. For lossless formats any
// supplied bitrate is dropped. For lossy formats the bitrate must be empty,
// BitrateNA or one of the format's presets; BitrateNA is stored as empty.
func NewJob(source, format, bitrate string) (Job, error) {
	if strings.TrimSpace(source) == "" {
		return Job{}, fmt.Errorf("source path is empty")
	}

	f, err := ParseFormat(format)
	if err != nil {
		return Job{}, err
	}

	bitrate = strings.TrimSpace(bitrate)
	if bitrate == BitrateNA || f.Lossless() {
		bitrate = ""
	}
	if !f.ValidBitrate(bitrate) {
		return Job{}, fmt.Errorf("%w: %s does not accept %q (presets: %s)",
			ErrInvalidBitrate, f, bitrate, strings.Join(f.Presets(), ", "))
	}

	return Job{source: source, format: f, bitrate: bitrate}, nil
}

// Source returns the input file path.
func (j Job) Source() string {
	return j.source
}

// Format returns the target format.
func (j Job) Format() Format {
	return j.format
}

// Bitrate returns the target bitrate and whether one is set.
func (j Job) Bitrate() (string, bool) {
	return j.bitrate, j.bitrate != ""
}

// OutputPath returns the derived output file path of the job.
func (j Job) OutputPath() string {
	return OutputPath(j.source, j.format)
}

// String implements fmt.Stringer.
func (j Job) String() string {
	if j.bitrate == "" {
		return fmt.Sprintf("%s -> %s", j.source, j.format)
	}
	return fmt.Sprintf("%s -> %s@%s", j.source, j.format, j.bitrate)
}

// OutputPath derives where a conversion of source to format is written:
// the source directory, the file name prefixed with "c_" and the extension
// replaced by the format.
//
//	OutputPath("/music/song.wav", FormatMP3) // "/music/c_song.mp3"
//	OutputPath("a.wav", FormatFLAC)          // "c_a.flac"
func OutputPath(source string, format Format) string {
	dir := filepath.Dir(source)
	name := OutputPrefix + Stem(source) + "." + strings.ToLower(string(format))
	return filepath.Join(dir, name)
}

// Stem returns the base name of path without its extension. Leading dots
// are part of the name, so ".hidden" has the stem ".hidden" and
// ".hidden.wav" has the stem ".hidden".
func Stem(path string) string {
	base := filepath.Base(path)
	trimmed := strings.TrimLeft(base, ".")
	ext := filepath.Ext(trimmed)
	return base[:len(base)-len(ext)]
}
