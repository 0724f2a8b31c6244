// Package model defines the core data structures shared by the executor,
// the worker pool and the batch controller.
//
// # Job
//
// Job describes one conversion. It is created through NewJob, which checks
// the target format and bitrate, and is immutable afterwards:
//
//	job, err := model.NewJob("/music/a.wav", "MP3", "192k")
//	fmt.Println(job.OutputPath()) // "/music/c_a.mp3"
//
// # Formats and Bitrates
//
// Supported formats are mp3, aac, ogg, flac and wav. Each lossy format has
// a fixed preset list of bitrates; flac and wav never carry a bitrate:
//
//	model.FormatMP3.Presets()         // [128k 192k 256k 320k]
//	model.FormatFLAC.BitrateChoices() // [N/A]
//
// # Outcome
//
// Outcome is the terminal result of one job: succeeded, failed or canceled,
// with a detail string for display.
package model
