package audio

import (
	"fmt"
	"path/filepath"

	"github.com/bogem/id3v2"
	ioutils "github.com/xangelkai/audioconv/internal/io"
	"github.com/xangelkai/audioconv/internal/model"
)

// DefaultCoverSize is the default maximum edge length of embedded cover art.
const DefaultCoverSize = 500

// Tagger writes a small set of ID3 frames to converted MP3 files.
//
// Encoders usually carry the source metadata over. Tagger only fills the
// gaps:
//   - Title (TIT2) is set to the source file stem when the output has none
//   - A comment (COMM) frame records the source file name
//   - Cover art (APIC) is embedded from a cover image next to the source
//     (see ioutils.CoverArtNames) when the output has no picture yet
//
// Example:
//
//	tagger := NewTagger()
//	if err := tagger.TagOutput(job); err != nil {
//	    log.Printf("Failed to tag %s: %v", job.OutputPath(), err)
//	}
type Tagger struct {
	// CommentDescription is the description of the comment frame written
	// by TagOutput.
	CommentDescription string

	// CoverSize is the maximum width and height of embedded cover art.
	// Zero disables cover art.
	CoverSize int
}

// NewTagger creates a Tagger with default settings.
func NewTagger() *Tagger {
	return &Tagger{
		CommentDescription: "audioconv",
		CoverSize:          DefaultCoverSize,
	}
}

// TagOutput tags the output file of job. Files without an ID3 tag get a
// new one.
func (t *Tagger) TagOutput(job model.Job) error {
	tag, err := id3v2.Open(job.OutputPath(), id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open %s: %w", job.OutputPath(), err)
	}
	defer tag.Close()

	if tag.Title() == "" {
		tag.SetTitle(model.Stem(job.Source()))
	}

	// Comment frames are keyed by language and description, so re-tagging
	// replaces our earlier comment.
	tag.AddCommentFrame(id3v2.CommentFrame{
		Encoding:    id3v2.EncodingUTF8,
		Language:    "eng",
		Description: t.CommentDescription,
		Text:        "Converted from " + filepath.Base(job.Source()),
	})

	if err := t.updateArtwork(tag, filepath.Dir(job.Source())); err != nil {
		return err
	}

	return tag.Save()
}

// updateArtwork embeds the cover image of dir as front cover unless the tag
// already carries a picture.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, dir string) error {
	if t.CoverSize <= 0 {
		return nil
	}
	if len(tag.GetFrames(tag.CommonID("Attached picture"))) > 0 {
		return nil
	}

	path, ok := ioutils.FindCoverArt(dir)
	if !ok {
		return nil
	}
	artwork, err := ioutils.LoadCoverArt(path, t.CoverSize)
	if err != nil {
		return fmt.Errorf("cover art %s: %w", path, err)
	}

	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	})
	return nil
}
