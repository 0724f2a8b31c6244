package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xangelkai/audioconv/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
//   - ZPL: XML format, Zune/Groove Music
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines carrying a title per entry.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL

	// FormatZPL creates .zpl files (Zune/Groove Music).
	FormatZPL
)

// PlaylistFormatFromPath picks the format from the file extension.
// Unknown extensions fall back to M3U.
func PlaylistFormatFromPath(path string) PlaylistFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pls":
		return FormatPLS
	case ".wpl":
		return FormatWPL
	case ".zpl":
		return FormatZPL
	default:
		return FormatM3U
	}
}

// PlaylistCreator generates playlist content for a list of converted
// files.
//
// Entry paths are written relative to the playlist's directory when
// possible, so a playlist placed next to the files only lists file names.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist("/music/batch.m3u", []string{"/music/c_a.mp3"})
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,c_a
//	// c_a.mp3
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended only affects M3U output.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// WritePlaylist writes an extended playlist of files to path, choosing the
// format from the extension. Parent directories are created.
func WritePlaylist(path string, files []string) error {
	creator := NewPlaylistCreator(PlaylistFormatFromPath(path), true)
	content := creator.CreatePlaylist(path, files)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// CreatePlaylist generates playlist content for files, to be stored at
// playlistPath.
func (p *PlaylistCreator) CreatePlaylist(playlistPath string, files []string) string {
	entries := make([]playlistEntry, len(files))
	base := filepath.Dir(playlistPath)
	for i, f := range files {
		entries[i] = playlistEntry{
			location: relativeTo(base, f),
			title:    model.Stem(f),
		}
	}

	switch p.format {
	case FormatPLS:
		return p.createPLS(entries)
	case FormatWPL:
		return p.createWPL(playlistPath, entries)
	case FormatZPL:
		return p.createZPL(playlistPath, entries)
	default:
		return p.createM3U(entries)
	}
}

type playlistEntry struct {
	location string
	title    string
}

// relativeTo returns file relative to dir, or file unchanged if it lives
// outside dir or the paths cannot be related.
func relativeTo(dir, file string) string {
	absDir, err1 := filepath.Abs(dir)
	absFile, err2 := filepath.Abs(file)
	if err1 != nil || err2 != nil {
		return file
	}
	rel, err := filepath.Rel(absDir, absFile)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return absFile
	}
	return rel
}

// createM3U generates an M3U playlist. Durations are unknown, so extended
// entries use -1.
func (p *PlaylistCreator) createM3U(entries []playlistEntry) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, e := range entries {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", e.title))
		}
		sb.WriteString(e.location + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=c_a.mp3
//	Title1=c_a
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(entries []playlistEntry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, e := range entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, e.location))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, e.title))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (p *PlaylistCreator) createWPL(playlistPath string, entries []playlistEntry) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(model.Stem(playlistPath))))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(e.location)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune/Groove Music playlist.
func (p *PlaylistCreator) createZPL(playlistPath string, entries []playlistEntry) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(model.Stem(playlistPath))))
	sb.WriteString("    <meta name=\"Generator\" content=\"audioconv\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(entries)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\" trackTitle=\"%s\"/>\n",
			escapeXML(e.location), escapeXML(e.title)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
