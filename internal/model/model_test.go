package model

import (
	"testing"
)

func TestSongTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"My_Song-Name.mp3", "My Song Name"},
		{"plain.wav", "plain"},
		{"two.dots.ogg", "two.dots"},
		{"no_extension", "no extension"},
		{"UPPER.M4A", "UPPER"},
		{"__edge--.mp3", "  edge  "},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SongTitle(tt.input); got != tt.want {
				t.Errorf("SongTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Daft_Punk", "Daft Punk"},
		{"the-band_live", "the band live"},
		{"Plain Name", "Plain Name"},
		{"dots.stay", "dots.stay"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DisplayName(tt.input); got != tt.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewArtist_PreservesFolderName(t *testing.T) {
	artist := NewArtist("The-Band_X", nil, "")

	if artist.FolderName != "The-Band_X" {
		t.Errorf("FolderName = %q, want %q", artist.FolderName, "The-Band_X")
	}
	if artist.DisplayName != "The Band X" {
		t.Errorf("DisplayName = %q, want %q", artist.DisplayName, "The Band X")
	}
	if artist.SongCount != 0 || len(artist.Songs) != 0 {
		t.Errorf("expected no songs, got %d (%d)", artist.SongCount, len(artist.Songs))
	}
	if artist.HasIcon() {
		t.Error("HasIcon() should be false without an icon URL")
	}
}

func TestNewArtist_SortsSongs(t *testing.T) {
	songs := []*Song{
		NewSong("b.mp3", "u/b"),
		NewSong("A.WAV", "u/A"),
		NewSong("c_song.ogg", "u/c"),
	}

	artist := NewArtist("x", songs, "")

	want := []string{"A", "b", "c song"}
	if artist.SongCount != len(want) {
		t.Fatalf("SongCount = %d, want %d", artist.SongCount, len(want))
	}
	for i, title := range want {
		if artist.Songs[i].Title != title {
			t.Errorf("Songs[%d].Title = %q, want %q", i, artist.Songs[i].Title, title)
		}
	}
}

func TestSortSongs_Deterministic(t *testing.T) {
	build := func() []*Song {
		return []*Song{
			NewSong("same-title.mp3", ""),
			NewSong("same_title.ogg", ""),
			NewSong("Zeta.mp3", ""),
			NewSong("alpha.mp3", ""),
		}
	}

	first, second := build(), build()
	SortSongs(first)
	SortSongs(second)

	for i := range first {
		if first[i].Filename != second[i].Filename {
			t.Errorf("order differs at %d: %q vs %q", i, first[i].Filename, second[i].Filename)
		}
	}
	if first[0].Title != "alpha" {
		t.Errorf("first title = %q, want alpha", first[0].Title)
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name  string
		audio bool
		image bool
		icon  bool
	}{
		{"song.mp3", true, false, false},
		{"SONG.WAV", true, false, false},
		{"track.ogg", true, false, false},
		{"track.m4a", true, false, false},
		{"track.flac", false, false, false},
		{"cover.png", false, true, false},
		{"icon.jpg", false, true, true},
		{"My_Profile.JPEG", false, true, true},
		{"band-ICON.gif", false, true, true},
		{"image.png", false, true, true},
		{"IMAGE.JPG", false, true, true},
		{"image.jpeg", false, true, false},
		{"image.gif", false, true, false},
		{"icon.txt", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAudioFile(tt.name); got != tt.audio {
				t.Errorf("IsAudioFile(%q) = %v, want %v", tt.name, got, tt.audio)
			}
			if got := IsImageFile(tt.name); got != tt.image {
				t.Errorf("IsImageFile(%q) = %v, want %v", tt.name, got, tt.image)
			}
			if got := IsIconFile(tt.name); got != tt.icon {
				t.Errorf("IsIconFile(%q) = %v, want %v", tt.name, got, tt.icon)
			}
		})
	}
}

func TestArtist_Labels(t *testing.T) {
	one := NewArtist("solo", []*Song{NewSong("a.mp3", "")}, "")
	if got := one.SongCountLabel(); got != "1 song" {
		t.Errorf("SongCountLabel() = %q, want %q", got, "1 song")
	}
	if got := one.Initial(); got != "S" {
		t.Errorf("Initial() = %q, want %q", got, "S")
	}

	none := NewArtist("empty", nil, "")
	if got := none.SongCountLabel(); got != "0 songs" {
		t.Errorf("SongCountLabel() = %q, want %q", got, "0 songs")
	}
}

func TestFindArtist(t *testing.T) {
	artists := []*Artist{NewArtist("Daft_Punk", nil, ""), NewArtist("Justice", nil, "")}

	if a, ok := FindArtist(artists, "daft punk"); !ok || a.FolderName != "Daft_Punk" {
		t.Errorf("FindArtist by display name failed: %v %v", a, ok)
	}
	if a, ok := FindArtist(artists, "JUSTICE"); !ok || a.FolderName != "Justice" {
		t.Errorf("FindArtist by folder name failed: %v %v", a, ok)
	}
	if _, ok := FindArtist(artists, "nobody"); ok {
		t.Error("FindArtist should not find unknown artist")
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-file.mp3", "normal-file.mp3"},
		{"file:with:colons.mp3", "file_with_colons.mp3"},
		{"file<with>brackets.mp3", "file_with_brackets.mp3"},
		{"file/with\\slashes.mp3", "file_with_slashes.mp3"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := sanitizeFileName(tt.input); got != tt.want {
				t.Errorf("sanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestArtist_Paths(t *testing.T) {
	cfg := &PathConfig{
		DownloadsPath:  "/music/{artist}",
		IconFileName:   "cover",
		PlaylistFormat: PlaylistFormatPLS,
	}

	artist := NewArtist("AC:DC_Live", []*Song{NewSong("Back_In-Black.mp3", "")}, "https://raw.example/AC%3ADC_Live/icon.PNG")
	paths := artist.Paths(cfg)

	if paths.Folder != "/music/AC_DC Live" {
		t.Errorf("Folder = %q, want %q", paths.Folder, "/music/AC_DC Live")
	}
	if paths.PlaylistPath != "/music/AC_DC Live/AC_DC Live.pls" {
		t.Errorf("PlaylistPath = %q", paths.PlaylistPath)
	}
	if paths.IconPath != "/music/AC_DC Live/cover.png" {
		t.Errorf("IconPath = %q", paths.IconPath)
	}
	if got := paths.SongPath(artist.Songs[0]); got != "/music/AC_DC Live/Back_In-Black.mp3" {
		t.Errorf("SongPath = %q", got)
	}
}

func TestArtist_PathsNoIcon(t *testing.T) {
	artist := NewArtist("x", nil, "")
	paths := artist.Paths(&PathConfig{DownloadsPath: "/music/{artist}"})

	if paths.IconPath != "" {
		t.Errorf("IconPath should be empty, got %q", paths.IconPath)
	}
}

func TestPlaylistFormat_Extension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"m3u", ".m3u"},
		{"PLS", ".pls"},
		{".wpl", ".wpl"},
		{"zpl", ".zpl"},
		{"unknown", ".m3u"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePlaylistFormat(tt.name).Extension(); got != tt.want {
				t.Errorf("Extension() = %q, want %q", got, tt.want)
			}
		})
	}
}
