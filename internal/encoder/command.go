package encoder

import (
	"strings"

	"github.com/xangelkai/audioconv/internal/model"
)

// DefaultEncoder is the program invoked when no encoder path is configured.
const DefaultEncoder = "ffmpeg"

// BuildArgs returns the full argv, program first, that converts job.
func BuildArgs(encoder string, job model.Job) []string {
	if encoder == "" {
		encoder = DefaultEncoder
	}

	args := []string{encoder, "-i", job.Source(), "-y"}
	if bitrate, ok := job.Bitrate(); ok && bitrate != model.BitrateNA && !job.Format().Lossless() {
		args = append(args, "-b:a", bitrate)
	}
	return append(args, job.OutputPath())
}

// CommandLine joins argv for display.
func CommandLine(args []string) string {
	return strings.Join(args, " ")
}
