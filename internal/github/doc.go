// Package github discovers artists and songs in a GitHub repository
// through the REST contents API.
//
// The package handles the two lookups of the discovery pipeline:
//
//  1. Listing the repository root to find artist folders
//  2. Listing one artist folder to find songs and an icon
//
// # Repository Layout
//
// Every top-level folder is an artist. Inside a folder, files ending in
// .mp3, .wav, .ogg or .m4a are songs, and the first image whose name
// contains "icon" or "profile" (or is image.png / image.jpg) is the icon:
//
//	Daft_Punk/
//	    One_More-Time.mp3
//	    Around_the_World.ogg
//	    profile.jpg
//
// # Error Handling
//
// Root listing failures are fatal to a run: ErrRepositoryNotFound for 404,
// *StatusError for other statuses (rate limiting included). Folder
// failures are never returned; FetchArtist logs them and yields an empty
// artist instead.
//
// # URLs
//
// Repository builds contents API URLs and raw content URLs. Every path
// segment is encoded with EncodeURIComponent.
package github
