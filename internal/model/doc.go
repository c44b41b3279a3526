// Package model defines the core data structures used throughout
// the happeytunes application.
//
// # Artist
//
// Artist represents a top-level folder of the music repository:
//
//	artist := model.NewArtist("Daft_Punk", songs, iconURL)
//	fmt.Println(artist.DisplayName)      // "Daft Punk"
//	fmt.Println(artist.SongCountLabel()) // "12 songs"
//
// # Song
//
// Song represents one audio file inside an artist folder:
//
//	song := model.NewSong("One_More-Time.mp3", mediaURL)
//	fmt.Println(song.Title) // "One More Time"
//
// # Classification
//
// IsAudioFile, IsImageFile and IsIconFile decide which repository files
// become songs and which one becomes the artist icon.
//
// # Path Configuration
//
// PathConfig controls where an artist is saved locally:
//
//	paths := artist.Paths(&model.PathConfig{DownloadsPath: "/music/{artist}"})
//	fmt.Println(paths.Folder) // "/music/Daft Punk"
package model
