package config

import (
	"github.com/xangelkai/audioconv/internal/audio"
	"github.com/xangelkai/audioconv/internal/batch"
	"github.com/xangelkai/audioconv/internal/encoder"
)

// EncoderOptions converts settings to executor options.
func (s *Settings) EncoderOptions() encoder.Options {
	opts := encoder.Options{
		EncoderPath:      s.EncoderPath,
		PollInterval:     s.PollInterval,
		TerminationGrace: s.TerminationGrace,
	}
	if s.TagOutputs {
		opts.Tagger = audio.NewTagger()
	}
	return opts
}

// ControllerOptions converts settings to batch controller options.
func (s *Settings) ControllerOptions() []batch.Option {
	var opts []batch.Option
	if s.PlaylistPath != "" {
		opts = append(opts, batch.WithPlaylist(s.PlaylistPath))
	}
	return opts
}

// NewController builds a batch controller that runs the configured encoder
// and reports to sink.
func (s *Settings) NewController(sink batch.Sink) *batch.Controller {
	exec := encoder.NewExecutor(s.EncoderOptions())
	return batch.NewController(exec, sink, s.ControllerOptions()...)
}
