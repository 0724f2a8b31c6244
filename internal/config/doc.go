// Package config provides configuration management for audioconv.
//
// This package handles:
//   - Default configuration values
//   - Loading settings from a JSON file with environment overrides
//   - Validation of settings before a batch is built from them
//
// Settings are read-only: nothing here writes them back to disk.
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// ffmpeg as encoder, mp3 at 192k
//	// one concurrent job per CPU
//	// cancel flag polled every 100ms
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // invalid JSON or a setting that failed validation
//	}
//
// A missing file is not an error and yields the defaults. Every key can be
// overridden from the environment with the AUDIOCONV_ prefix:
//
//	AUDIOCONV_ENCODER_PATH=/opt/ffmpeg/bin/ffmpeg
//	AUDIOCONV_MAX_CONCURRENT_JOBS=2
//	AUDIOCONV_POLL_INTERVAL=250ms
//
// # Configuration Options
//
// Settings includes options for:
//   - Encoder program, poll interval and termination grace period
//   - Concurrent job limit
//   - Default target format and bitrate
//   - ID3 tagging of mp3 outputs
//   - Playlist generation
package config
