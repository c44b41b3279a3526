package model

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AudioExtensions lists the file extensions treated as songs.
var AudioExtensions = []string{".mp3", ".wav", ".ogg", ".m4a"}

// ImageExtensions lists the file extensions treated as possible artist icons.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// Song represents a single audio file inside an artist folder.
//
// Song holds:
//   - Filename exactly as stored in the repository
//   - Title derived from the filename for display and sorting
//   - MediaURL, a raw content URL usable as a streaming source
//
// Example:
//
//	song := NewSong("My_Song-Name.mp3", "https://raw.example/My_Song-Name.mp3")
//	// song.Title = "My Song Name"
type Song struct {
	// Filename is the repository file name, including the extension.
	Filename string

	// Title is the filename without its extension, with underscores and
	// hyphens replaced by spaces.
	Title string

	// MediaURL is the raw content URL of the file.
	MediaURL string
}

// NewSong creates a new Song with a title derived from filename.
func NewSong(filename, mediaURL string) *Song {
	return &Song{
		Filename: filename,
		Title:    SongTitle(filename),
		MediaURL: mediaURL,
	}
}

// Extension returns the lower-cased file extension including the dot.
func (s *Song) Extension() string {
	if m := extensionPattern.FindString(s.Filename); m != "" {
		return strings.ToLower(m)
	}
	return ""
}

// IsMP3 returns true if the song is an MP3 file (the only format that gets ID3 tags).
func (s *Song) IsMP3() bool {
	return s.Extension() == ".mp3"
}

var extensionPattern = regexp.MustCompile(`\.[^/.]+$`)

// SongTitle derives a display title from a filename.
//
// The trailing extension is removed first, then underscores and hyphens
// are replaced by spaces.
//
// Example:
//
//	SongTitle("My_Song-Name.mp3") // Returns "My Song Name"
//	SongTitle("README")           // Returns "README"
func SongTitle(filename string) string {
	return separatorReplacer.Replace(extensionPattern.ReplaceAllString(filename, ""))
}

// SortSongs sorts songs ascending by title using root-locale collation.
//
// Titles that collate equal keep a stable order by filename, so the same
// input always produces the same ordering.
func SortSongs(songs []*Song) {
	// Collators keep internal buffers and must not be shared between goroutines.
	c := collate.New(language.Und)
	sort.SliceStable(songs, func(i, j int) bool {
		if cmp := c.CompareString(songs[i].Title, songs[j].Title); cmp != 0 {
			return cmp < 0
		}
		return songs[i].Filename < songs[j].Filename
	})
}

// IsAudioFile reports whether name ends with one of AudioExtensions, ignoring case.
func IsAudioFile(name string) bool {
	return hasExtension(name, AudioExtensions)
}

// IsImageFile reports whether name ends with one of ImageExtensions, ignoring case.
func IsImageFile(name string) bool {
	return hasExtension(name, ImageExtensions)
}

// IsIconFile reports whether name is an image that looks like an artist picture.
//
// A name qualifies when, ignoring case, it is an image and either contains
// "icon" or "profile", or is exactly "image.png" or "image.jpg".
//
// TODO: replace the name heuristic with an explicit per-artist manifest file.
func IsIconFile(name string) bool {
	if !IsImageFile(name) {
		return false
	}
	lower := strings.ToLower(name)
	return strings.Contains(lower, "icon") ||
		strings.Contains(lower, "profile") ||
		lower == "image.png" ||
		lower == "image.jpg"
}

func hasExtension(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
