// Package audio provides the audio side of the application: playlist
// generation, ID3 tag writing for saved songs and an external player for
// streaming.
//
// # Playlist Generation
//
// Generate playlists in various formats:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist(artist, audio.StreamLocator)
//	os.WriteFile("playlist.m3u", []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
//
// # ID3 Tagging
//
// Use the Tagger to write ID3 tags to saved MP3 songs:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(audio.TagInfo{Path: path, Song: song, Artist: artist}, iconBytes)
//
// Other audio formats are skipped.
//
// # Playback
//
// The Player hands raw media URLs to an external program:
//
//	player := audio.NewPlayer("mpv --no-video", logger)
//	err := player.Play(song.MediaURL)
package audio
