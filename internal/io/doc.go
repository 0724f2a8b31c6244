// Package ioutils provides file system helpers used by the front ends to
// turn user input into conversion jobs.
//
// # Input Lists
//
// SplitInputList accepts free-form text such as the contents of a text
// field:
//
//	paths := ioutils.SplitInputList("/music/a.wav, /music/b.wav")
//
// # Expansion
//
// ExpandInputs resolves directories and glob patterns:
//
//	files, err := ioutils.ExpandInputs([]string{"/music/album", "/music/*.flac"})
//	// files contains every regular file directly inside /music/album
//	// followed by the matching .flac files, without duplicates
//
// # Cover Art
//
// FindCoverArt looks for a cover image (cover.jpg, folder.png, ...) in a
// directory and LoadCoverArt scales it down to JPEG for embedding.
package ioutils
