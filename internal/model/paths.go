package model

import (
	"path/filepath"
	"regexp"
	"strings"
)

// PathConfig holds path formatting settings for saving an artist locally.
//
// DownloadsPath supports the {artist} placeholder, which is replaced by the
// sanitized display name:
//
//	cfg := &PathConfig{
//	    DownloadsPath:  "/home/user/Music/HappeyTunes/{artist}",
//	    IconFileName:   "cover",
//	    PlaylistFormat: PlaylistFormatM3U,
//	}
type PathConfig struct {
	// DownloadsPath is the folder template for saved artists.
	DownloadsPath string

	// IconFileName is the file name (without extension) used for the saved icon.
	IconFileName string

	// PlaylistFormat determines the playlist file extension.
	PlaylistFormat PlaylistFormat
}

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS

	// PlaylistFormatWPL creates .wpl playlist files (Windows Media Player).
	PlaylistFormatWPL

	// PlaylistFormatZPL creates .zpl playlist files (Zune Media Player).
	PlaylistFormatZPL
)

// ParsePlaylistFormat maps "m3u", "pls", "wpl" and "zpl" to a PlaylistFormat.
// Unknown names fall back to M3U.
func ParsePlaylistFormat(name string) PlaylistFormat {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "pls":
		return PlaylistFormatPLS
	case "wpl":
		return PlaylistFormatWPL
	case "zpl":
		return PlaylistFormatZPL
	default:
		return PlaylistFormatM3U
	}
}

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatM3U:
		return ".m3u"
	case PlaylistFormatPLS:
		return ".pls"
	case PlaylistFormatWPL:
		return ".wpl"
	case PlaylistFormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// ArtistPaths are the local paths used when saving an artist.
type ArtistPaths struct {
	// Folder is the directory all files of the artist are written to.
	Folder string

	// IconPath is where the icon is saved. Empty if the artist has no icon.
	IconPath string

	// PlaylistPath is where the playlist file is written.
	PlaylistPath string
}

// Paths computes the local paths for saving the artist.
//
// Invalid filename characters are replaced with underscores, and the folder
// is truncated if it exceeds Windows path length limits (248 characters).
func (a *Artist) Paths(cfg *PathConfig) *ArtistPaths {
	folder := strings.ReplaceAll(cfg.DownloadsPath, "{artist}", sanitizeFileName(a.DisplayName))
	if len(folder) >= 248 {
		folder = folder[:247]
	}

	paths := &ArtistPaths{
		Folder:       folder,
		PlaylistPath: limitPath(folder, sanitizeFileName(a.DisplayName), cfg.PlaylistFormat.Extension()),
	}

	if a.HasIcon() {
		ext := strings.ToLower(filepath.Ext(a.IconURL))
		name := cfg.IconFileName
		if name == "" {
			name = "cover"
		}
		paths.IconPath = limitPath(folder, sanitizeFileName(name), ext)
	}

	return paths
}

// SongPath returns the local file path for one song of the artist.
func (p *ArtistPaths) SongPath(song *Song) string {
	ext := filepath.Ext(song.Filename)
	base := strings.TrimSuffix(song.Filename, ext)
	return limitPath(p.Folder, sanitizeFileName(base), ext)
}

// limitPath joins folder and name+ext, shortening name when the result
// reaches the Windows MAX_PATH of 260 characters.
func limitPath(folder, name, ext string) string {
	filePath := filepath.Join(folder, name+ext)
	if len(filePath) >= 260 {
		maxLen := 259 - len(folder) - 1 - len(ext)
		if maxLen > 0 && maxLen < len(name) {
			filePath = filepath.Join(folder, name[:maxLen]+ext)
		}
	}
	return filePath
}

var (
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	repeatedSpaces   = regexp.MustCompile(`\s+`)
)

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
//
// Example:
//
//	sanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func sanitizeFileName(name string) string {
	name = invalidFileChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
