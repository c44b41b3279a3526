package github

import (
	"net/url"
	"strings"

	"github.com/handiism/happeytunes/internal/config"
)

// Repository identifies the repository and branch that hold the music.
//
// Repository builds the two URL families used by the application:
//   - contents API URLs, used to list folders
//   - raw content URLs, used as streaming sources for songs and icons
//
// Example:
//
//	repo := Repository{
//	    Owner:   "octocat",
//	    Name:    "music",
//	    Branch:  "main",
//	    APIRoot: "https://api.github.com/repos",
//	    RawRoot: "https://raw.githubusercontent.com",
//	}
//	repo.ContentsURL("Daft Punk")
//	// https://api.github.com/repos/octocat/music/contents/Daft%20Punk?ref=main
//	repo.RawURL("Daft Punk", "One More Time.mp3")
//	// https://raw.githubusercontent.com/octocat/music/main/Daft%20Punk/One%20More%20Time.mp3
type Repository struct {
	Owner   string
	Name    string
	Branch  string
	APIRoot string
	RawRoot string
}

// RepositoryFromSettings extracts the repository coordinates from settings.
func RepositoryFromSettings(s *config.Settings) Repository {
	return Repository{
		Owner:   s.Owner,
		Name:    s.Repository,
		Branch:  s.Branch,
		APIRoot: s.APIRoot,
		RawRoot: s.RawRoot,
	}
}

// String returns "owner/name".
func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// ContentsURL returns the contents API URL for a folder. An empty folder
// addresses the repository root.
func (r Repository) ContentsURL(folder string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(r.APIRoot, "/"))
	b.WriteString("/")
	b.WriteString(EncodeURIComponent(r.Owner))
	b.WriteString("/")
	b.WriteString(EncodeURIComponent(r.Name))
	b.WriteString("/contents/")
	b.WriteString(EncodeURIComponent(folder))
	b.WriteString("?ref=")
	b.WriteString(url.QueryEscape(r.Branch))
	return b.String()
}

// RawURL returns the raw content URL of a file on the configured branch.
// Every segment is percent-encoded on its own.
func (r Repository) RawURL(segments ...string) string {
	parts := []string{
		strings.TrimRight(r.RawRoot, "/"),
		EncodeURIComponent(r.Owner),
		EncodeURIComponent(r.Name),
	}
	// Branch names may contain slashes, which must stay path separators.
	for _, seg := range strings.Split(r.Branch, "/") {
		parts = append(parts, EncodeURIComponent(seg))
	}
	for _, seg := range segments {
		parts = append(parts, EncodeURIComponent(seg))
	}
	return strings.Join(parts, "/")
}

var uriComponentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s the way browsers encode a URI
// component: everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is escaped.
//
// Example:
//
//	EncodeURIComponent("AC/DC & Friends") // Returns "AC%2FDC%20%26%20Friends"
func EncodeURIComponent(s string) string {
	return uriComponentReplacer.Replace(url.QueryEscape(s))
}
