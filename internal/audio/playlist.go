package audio

import (
	"fmt"
	"strings"

	"github.com/handiism/happeytunes/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
//   - ZPL: XML format, Zune/Groove Music
type PlaylistFormat = model.PlaylistFormat

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for title info.
	FormatM3U = model.PlaylistFormatM3U

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS = model.PlaylistFormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL = model.PlaylistFormatWPL

	// FormatZPL creates .zpl files (Zune/Groove Music).
	FormatZPL = model.PlaylistFormatZPL
)

// Locator returns the playlist location of a song: a raw media URL for
// streaming playlists or a file name for saved artists.
type Locator func(song *model.Song) string

// StreamLocator points playlist entries at the raw media URLs.
func StreamLocator(song *model.Song) string {
	return song.MediaURL
}

// PlaylistCreator generates playlist files in various formats.
//
// PlaylistCreator takes an artist and generates a playlist containing
// all of its songs, in title order. Song durations are unknown because
// media files are never inspected, so M3U and PLS entries use -1.
//
// Example:
//
//	// Streaming M3U playlist with extended info
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist(artist, StreamLocator)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Daft Punk - One More Time
//	// https://raw.githubusercontent.com/.../One_More_Time.mp3
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines with titles
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// Parameters:
//   - format: The playlist format to generate
//   - extended: For M3U format, whether to include #EXTINF lines
//     (ignored for other formats)
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// Extension returns the file extension of the generated playlists.
func (p *PlaylistCreator) Extension() string {
	return p.format.Extension()
}

// CreatePlaylist generates playlist content for an artist.
//
// locate decides what each entry points at; pass StreamLocator for remote
// playback or a function returning local file names for saved artists.
func (p *PlaylistCreator) CreatePlaylist(artist *model.Artist, locate Locator) string {
	switch p.format {
	case FormatM3U:
		return p.createM3U(artist, locate)
	case FormatPLS:
		return p.createPLS(artist, locate)
	case FormatWPL:
		return p.createWPL(artist, locate)
	case FormatZPL:
		return p.createZPL(artist, locate)
	default:
		return p.createM3U(artist, locate)
	}
}

// createM3U generates an M3U playlist.
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:-1,Artist - Title
//	location
func (p *PlaylistCreator) createM3U(artist *model.Artist, locate Locator) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, song := range artist.Songs {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s - %s\n", artist.DisplayName, song.Title))
		}
		sb.WriteString(locate(song) + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=location
//	Title1=Song Title
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(artist *model.Artist, locate Locator) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, song := range artist.Songs {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, locate(song)))
		sb.WriteString(fmt.Sprintf("Title%d=%s - %s\n", idx, artist.DisplayName, song.Title))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(artist.Songs)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (p *PlaylistCreator) createWPL(artist *model.Artist, locate Locator) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(artist.DisplayName)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, song := range artist.Songs {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(locate(song))))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune/Groove Music playlist.
//
// ZPL is similar to WPL but includes artist and title attributes.
func (p *PlaylistCreator) createZPL(artist *model.Artist, locate Locator) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(artist.DisplayName)))
	sb.WriteString("    <meta name=\"Generator\" content=\"HappeyTunes\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(artist.Songs)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, song := range artist.Songs {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\" albumArtist=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\"/>\n",
			escapeXML(locate(song)),
			escapeXML(artist.DisplayName),
			escapeXML(song.Title),
			escapeXML(artist.DisplayName)))
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
