package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xangelkai/audioconv/internal/batch"
	"github.com/xangelkai/audioconv/internal/config"
	"github.com/xangelkai/audioconv/internal/encoder"
	ioutils "github.com/xangelkai/audioconv/internal/io"
	"github.com/xangelkai/audioconv/internal/model"
)

func main() {
	// Command line flags
	var (
		formatFlag   = flag.String("format", "", "Target format: mp3, aac, ogg, flac, wav (overrides config)")
		bitrateFlag  = flag.String("bitrate", "", "Bitrate preset, e.g. 192k (ignored for lossless formats)")
		jobsFlag     = flag.Int("jobs", 0, "Maximum concurrent conversions (overrides config)")
		encoderFlag  = flag.String("encoder", "", "Path to the encoder executable (overrides config)")
		configFlag   = flag.String("config", "", "Path to config file")
		playlistFlag = flag.String("playlist", "", "Write converted files to this playlist (.m3u, .pls, .wpl, .zpl)")
		tagFlag      = flag.Bool("tag", false, "Write ID3 tags to converted mp3 files")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag   = flag.Bool("dry-run", false, "Print encoder commands without running them")
	)

	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("Audio Converter - Batch-convert audio files with ffmpeg")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  audioconv [options] <file|folder|pattern>...")
		fmt.Println()
		fmt.Println("For interactive mode, use: audioconv-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Apply flags
	if *formatFlag != "" {
		settings.TargetFormat = *formatFlag
	}
	if *bitrateFlag != "" {
		settings.Bitrate = *bitrateFlag
	}
	if *jobsFlag != 0 {
		settings.MaxConcurrentJobs = *jobsFlag
	}
	if *encoderFlag != "" {
		settings.EncoderPath = *encoderFlag
	}
	if *playlistFlag != "" {
		settings.PlaylistPath = *playlistFlag
	}
	if *tagFlag {
		settings.TagOutputs = true
	}
	if *verboseFlag {
		settings.Verbose = true
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid options: %v\n", err)
		os.Exit(1)
	}

	files, err := ioutils.ExpandInputs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading inputs: %v\n", err)
		os.Exit(1)
	}

	jobs, err := settings.NewJobs(files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating jobs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("🎵 Audio Converter")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	if *dryRunFlag {
		for _, job := range jobs {
			fmt.Println(encoder.CommandLine(encoder.BuildArgs(settings.EncoderPath, job)))
		}
		fmt.Printf("\n[Dry run - %d file(s), nothing converted]\n", len(jobs))
		return
	}

	sink := batch.SinkFuncs{
		OnLog: func(entry model.LogEntry) {
			if entry.Level == model.LevelVerbose && !settings.Verbose {
				return
			}
			fmt.Println(levelPrefix(entry.Level) + entry.Message)
		},
	}
	controller := settings.NewController(sink)

	run, err := controller.Start(jobs, settings.MaxConcurrentJobs)
	if err != nil {
		if errors.Is(err, batch.ErrNothingToConvert) {
			fmt.Println(levelPrefix(model.LevelWarning) + "No files selected for conversion!")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error starting conversion: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Println("\nInterrupted, canceling...")
			_ = controller.Cancel()
		case <-run.Done():
		}
	}()

	summary := run.Wait()

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Converted %d/%d files (%d failed, %d canceled) in %s\n",
		summary.Succeeded, summary.Total, summary.Failed, summary.Canceled,
		summary.Elapsed.Round(100*time.Millisecond))
	fmt.Println(levelPrefix(model.LevelVerbose) + "Run " + summary.RunID)

	switch {
	case summary.State == batch.StateCanceled:
		os.Exit(130)
	case summary.Failed > 0:
		os.Exit(2)
	}
}

func levelPrefix(level model.ProgressLevel) string {
	switch level {
	case model.LevelError:
		return "❌ "
	case model.LevelWarning:
		return "⚠️  "
	case model.LevelSuccess:
		return "✅ "
	case model.LevelInfo:
		return "ℹ️  "
	default:
		return "   "
	}
}
