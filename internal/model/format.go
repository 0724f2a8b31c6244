package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat is returned when a target format is not one of the
// supported Format values.
var ErrUnsupportedFormat = errors.New("unsupported target format")

// ErrInvalidBitrate is returned when a bitrate is not in the preset list of
// the target format.
var ErrInvalidBitrate = errors.New("invalid bitrate for format")

// BitrateNA is the placeholder offered by front ends for formats that take
// no bitrate. A job carrying it behaves as if no bitrate was given.
const BitrateNA = "N/A"

// Format is a conversion target. The value doubles as the output file
// extension.
type Format string

const (
	FormatMP3  Format = "mp3"
	FormatAAC  Format = "aac"
	FormatOGG  Format = "ogg"
	FormatFLAC Format = "flac"
	FormatWAV  Format = "wav"
)

// presets lists the selectable bitrates per format. Lossless formats have
// none.
var presets = map[Format][]string{
	FormatMP3:  {"128k", "192k", "256k", "320k"},
	FormatAAC:  {"96k", "128k", "160k", "192k", "256k"},
	FormatOGG:  {"64k", "96k", "128k", "160k", "192k"},
	FormatFLAC: {},
	FormatWAV:  {},
}

// Formats returns all supported formats in menu order.
func Formats() []Format {
	return []Format{FormatMP3, FormatAAC, FormatOGG, FormatFLAC, FormatWAV}
}

// ParseFormat converts user input into a Format. Matching is
// case-insensitive and ignores a leading dot, so "MP3" and ".mp3" both
// yield FormatMP3.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	if _, ok := presets[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	return f, nil
}

// String implements fmt.Stringer.
func (f Format) String() string {
	return string(f)
}

// Lossless reports whether the format never carries a bitrate.
func (f Format) Lossless() bool {
	return f == FormatFLAC || f == FormatWAV
}

// Presets returns a copy of the bitrate presets for the format.
// The result is empty for lossless or unknown formats.
func (f Format) Presets() []string {
	return append([]string(nil), presets[f]...)
}

// BitrateChoices returns what a front end should offer for the format:
// its presets, or the single entry BitrateNA when it has none.
func (f Format) BitrateChoices() []string {
	p := f.Presets()
	if len(p) == 0 {
		return []string{BitrateNA}
	}
	return p
}

// ValidBitrate reports whether bitrate may be used with the format.
// An empty or BitrateNA bitrate is always valid.
func (f Format) ValidBitrate(bitrate string) bool {
	if bitrate == "" || bitrate == BitrateNA {
		return true
	}
	for _, p := range presets[f] {
		if p == bitrate {
			return true
		}
	}
	return false
}
