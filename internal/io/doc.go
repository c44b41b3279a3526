// Package ioutils provides the file system and image helpers used when an
// artist is saved locally.
//
// # File Operations
//
//	// Write a file atomically, creating parent directories
//	err := ioutils.WriteFile("/music/Daft Punk/Daft Punk.m3u", content)
//
//	// Skip songs already on disk
//	same, err := ioutils.SizeMatches("/music/Daft Punk/One More Time.mp3", remoteSize)
//
// # Icon Processing
//
// The IconProcessor handles artist icons:
//
//	p := ioutils.NewIconProcessor(1000, true)
//
//	// Fit within 1000x1000 and convert to JPEG
//	out, ext, _ := p.Process(pngData, ".png")
//
//	// Small JPEG for embedding in ID3 tags
//	cover, _ := p.Thumbnail(pngData, 500)
package ioutils
