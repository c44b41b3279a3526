package dto

// Entry types reported by the contents API. Symlinks and submodules use
// other values and are never treated as artists, songs or icons.
const (
	TypeFile = "file"
	TypeDir  = "dir"
)

// Entry is one item of a contents API directory listing.
type Entry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	Size        int64  `json:"size"`
	SHA         string `json:"sha"`
	DownloadURL string `json:"download_url"`
}

// IsDir returns true only for entries whose type is exactly "dir".
func (e Entry) IsDir() bool {
	return e.Type == TypeDir
}

// IsFile returns true only for entries whose type is exactly "file".
func (e Entry) IsFile() bool {
	return e.Type == TypeFile
}
