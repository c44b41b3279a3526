// Package http provides the HTTP client used for the contents API and for
// downloading media.
//
// The Client in this package handles:
//   - User-Agent headers (required by the GitHub API)
//   - Raw responses whose status code the caller interprets
//   - File downloads with progress tracking
//   - File size retrieval via HEAD requests
//   - Timeout handling
//
// # Basic Usage
//
//	client := http.NewClient("HappeyTunes", 30*time.Second)
//
//	// Call the contents API
//	resp, err := client.Fetch(ctx, apiURL, nil)
//
//	// Download file with progress callback
//	client.DownloadFile(ctx, mediaURL, "/path/to/file.mp3", func(written, total int64) {
//	    fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	})
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
