package model

import (
	"strconv"
	"strings"
)

// Artist represents one top-level folder of the music repository.
//
// Artist contains everything the presentation layer needs to render a card:
//   - DisplayName for headings (separators replaced by spaces)
//   - FolderName for further API queries and raw URLs (never modified)
//   - Songs ordered by title
//   - IconURL pointing at the artist picture, if one was found
//
// Artists are created via NewArtist and are not modified afterwards.
//
// Example:
//
//	songs := []*Song{NewSong("My_Song.mp3", rawURL)}
//	artist := NewArtist("The-Band", songs, "")
//	// artist.DisplayName = "The Band"
//	// artist.SongCount = 1
type Artist struct {
	// DisplayName is the folder name with underscores and hyphens replaced by spaces.
	DisplayName string

	// FolderName is the raw folder name as returned by the contents API.
	FolderName string

	// Songs contains the audio files of the folder, sorted by Title.
	Songs []*Song

	// IconURL is the raw content URL of the artist picture.
	// Empty string means no icon was found.
	IconURL string

	// SongCount is always len(Songs).
	SongCount int
}

// NewArtist creates a new Artist for the given folder.
//
// Songs are sorted by title using SortSongs before they are stored, so
// callers may pass them in API order. A nil songs slice produces an artist
// with zero songs, which is how failed folder lookups are represented.
func NewArtist(folderName string, songs []*Song, iconURL string) *Artist {
	if songs == nil {
		songs = []*Song{}
	}
	SortSongs(songs)

	return &Artist{
		DisplayName: DisplayName(folderName),
		FolderName:  folderName,
		Songs:       songs,
		IconURL:     iconURL,
		SongCount:   len(songs),
	}
}

// HasIcon returns true if an icon was found for the artist.
func (a *Artist) HasIcon() bool {
	return a.IconURL != ""
}

// Initial returns the upper-cased first letter of the display name.
//
// Used as a placeholder when the artist has no icon.
func (a *Artist) Initial() string {
	for _, r := range a.DisplayName {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// SongCountLabel returns "1 song" or "N songs".
func (a *Artist) SongCountLabel() string {
	if a.SongCount == 1 {
		return "1 song"
	}
	return strconv.Itoa(a.SongCount) + " songs"
}

// FindArtist returns the artist whose folder or display name equals name,
// compared case-insensitively.
func FindArtist(artists []*Artist, name string) (*Artist, bool) {
	for _, a := range artists {
		if strings.EqualFold(a.FolderName, name) || strings.EqualFold(a.DisplayName, name) {
			return a, true
		}
	}
	return nil, false
}

// DisplayName formats a folder name for display.
//
// Underscores and hyphens are replaced with spaces; nothing else changes.
//
// Example:
//
//	DisplayName("Daft_Punk-Live") // Returns "Daft Punk Live"
func DisplayName(folderName string) string {
	return separatorReplacer.Replace(folderName)
}

var separatorReplacer = strings.NewReplacer("_", " ", "-", " ")
