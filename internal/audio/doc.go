// Package audio provides optional post-processing of converted files:
// ID3 tagging of MP3 outputs and playlist generation.
//
// # ID3 Tagging
//
// Use the Tagger to stamp converted MP3 files:
//
//	tagger := audio.NewTagger()
//	err := tagger.TagOutput(job)
//
// The tagger only writes:
//   - Title, when the output has none (taken from the source file name)
//   - A comment naming the source file
//   - Front cover art from a cover image next to the source, when the
//     output has no picture
//
// # Playlist Generation
//
// Generate a playlist of converted files:
//
//	err := audio.WritePlaylist("/music/converted.m3u", summary.OutputPaths())
//
// The format is chosen by extension:
//   - M3U (extended, default)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
