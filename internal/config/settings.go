package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/xangelkai/audioconv/internal/model"
)

// EnvPrefix prefixes environment variables that override settings, for
// example AUDIOCONV_MAX_CONCURRENT_JOBS=2.
const EnvPrefix = "AUDIOCONV"

// Settings holds all configuration options.
type Settings struct {
	// Encoder settings
	EncoderPath      string        `json:"encoder_path" mapstructure:"encoder_path" validate:"required"`
	PollInterval     time.Duration `json:"poll_interval" mapstructure:"poll_interval" validate:"gt=0"`
	TerminationGrace time.Duration `json:"termination_grace" mapstructure:"termination_grace" validate:"gt=0"`

	// Batch settings
	MaxConcurrentJobs int `json:"max_concurrent_jobs" mapstructure:"max_concurrent_jobs" validate:"min=1,max=64"`

	// Conversion defaults
	TargetFormat string `json:"target_format" mapstructure:"target_format" validate:"required,oneof=mp3 aac ogg flac wav"`
	Bitrate      string `json:"bitrate" mapstructure:"bitrate"`

	// Post-processing
	TagOutputs   bool   `json:"tag_outputs" mapstructure:"tag_outputs"`
	PlaylistPath string `json:"playlist_path" mapstructure:"playlist_path"`

	// Output
	Verbose bool `json:"verbose" mapstructure:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	jobs := runtime.NumCPU()
	if jobs > 64 {
		jobs = 64
	}
	return &Settings{
		EncoderPath:      "ffmpeg",
		PollInterval:     100 * time.Millisecond,
		TerminationGrace: 5 * time.Second,

		MaxConcurrentJobs: jobs,

		TargetFormat: string(model.FormatMP3),
		Bitrate:      "192k",

		TagOutputs:   false,
		PlaylistPath: "",

		Verbose: false,
	}
}

// Load reads settings from a JSON file and applies AUDIOCONV_* environment
// overrides on top. An empty path or a missing file yields the defaults
// (plus environment overrides). The result is validated.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v, DefaultSettings())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("json")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func setDefaults(v *viper.Viper, d *Settings) {
	v.SetDefault("encoder_path", d.EncoderPath)
	v.SetDefault("poll_interval", d.PollInterval)
	v.SetDefault("termination_grace", d.TerminationGrace)
	v.SetDefault("max_concurrent_jobs", d.MaxConcurrentJobs)
	v.SetDefault("target_format", d.TargetFormat)
	v.SetDefault("bitrate", d.Bitrate)
	v.SetDefault("tag_outputs", d.TagOutputs)
	v.SetDefault("playlist_path", d.PlaylistPath)
	v.SetDefault("verbose", d.Verbose)
}

var validate = validator.New()

// Validate checks field constraints and that the bitrate is one of the
// target format's presets. Lossless formats accept any bitrate since it is
// ignored for them.
func (s *Settings) Validate() error {
	s.TargetFormat = strings.ToLower(strings.TrimSpace(s.TargetFormat))
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	format := model.Format(s.TargetFormat)
	if !format.Lossless() && !format.ValidBitrate(s.Bitrate) {
		return fmt.Errorf("invalid settings: %w: %q not in %s presets %v",
			model.ErrInvalidBitrate, s.Bitrate, format, format.Presets())
	}
	return nil
}

// NewJob creates a job for source using the configured format and bitrate.
func (s *Settings) NewJob(source string) (model.Job, error) {
	return model.NewJob(source, s.TargetFormat, s.Bitrate)
}

// NewJobs creates jobs for all sources, stopping at the first invalid one.
func (s *Settings) NewJobs(sources []string) ([]model.Job, error) {
	jobs := make([]model.Job, 0, len(sources))
	for _, src := range sources {
		job, err := s.NewJob(src)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
